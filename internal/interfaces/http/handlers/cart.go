// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/spicerack-backend/internal/config"
	"github.com/your-org/spicerack-backend/internal/domain/cart"
	"github.com/your-org/spicerack-backend/internal/domain/menu"
	"github.com/your-org/spicerack-backend/internal/interfaces/http/middleware"
)

const sessionCookieName = "spicerack_session"

// CartHandler handles cart endpoints. Each request rebuilds the cart
// from its Redis snapshot, applies one change, and persists the result.
type CartHandler struct {
	menuService *menu.Service
	redisClient *goredis.Client
	logger      *logrus.Logger
	config      *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, redisClient *goredis.Client, logger *logrus.Logger, cfg *config.Config) *CartHandler {
	return &CartHandler{
		menuService: menu.NewService(db, cfg),
		redisClient: redisClient,
		logger:      logger,
		config:      cfg,
	}
}

// storeFor resolves the cart slot for the caller. Authenticated
// customers get a customer-keyed cart; guests ride on a session cookie.
func (h *CartHandler) storeFor(c *gin.Context) *cart.Store {
	var slot cart.Slot
	if customerID, ok := middleware.GetCustomerIDFromContext(c); ok {
		slot = cart.NewCustomerSlot(h.redisClient, customerID)
	} else {
		sessionID, err := c.Cookie(sessionCookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.New().String()
			secure := h.config.App.Environment == "production"
			c.SetCookie(sessionCookieName, sessionID, 86400, "/", "", secure, true)
		}
		slot = cart.NewSessionSlot(h.redisClient, sessionID)
	}

	store := cart.NewStore(slot, h.logger)
	store.Restore(c.Request.Context())
	return store
}

// cartPayload shapes the cart response body
func cartPayload(state cart.State) gin.H {
	return gin.H{
		"cart":          state,
		"meets_minimum": state.MeetsMinimum(),
	}
}

// GetCart returns the caller's cart
func (h *CartHandler) GetCart(c *gin.Context) {
	store := h.storeFor(c)

	c.JSON(http.StatusOK, gin.H{
		"data": cartPayload(store.State()),
	})
}

// AddItemRequest represents an add-to-cart request
type AddItemRequest struct {
	MenuItemID string `json:"menu_item_id" binding:"required"`
	Size       string `json:"size" binding:"omitempty,oneof=8oz 16oz"`
	Quantity   int    `json:"quantity"`
}

// AddItem adds a menu item to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.menuService.GetMenuItem(req.MenuItemID)
	if err != nil {
		if errors.Is(err, menu.ErrMenuItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up menu item"})
		return
	}

	snapshot := cart.SnapshotOf(item)
	size := cart.SizeVariant(req.Size)
	if !size.IsValidFor(snapshot) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid size for this menu item"})
		return
	}

	store := h.storeFor(c)
	state := store.AddItem(c.Request.Context(), snapshot, size, req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
		"data":    cartPayload(state),
	})
}

// UpdateQuantityRequest represents a line quantity change
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateQuantity changes the quantity of a cart line. A quantity of
// zero or less removes the line.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	store := h.storeFor(c)
	state := store.UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated",
		"data":    cartPayload(state),
	})
}

// RemoveItem removes a cart line
func (h *CartHandler) RemoveItem(c *gin.Context) {
	store := h.storeFor(c)
	state := store.RemoveItem(c.Request.Context(), c.Param("id"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
		"data":    cartPayload(state),
	})
}

// SetOrderDayRequest selects the ordering cycle for the cart
type SetOrderDayRequest struct {
	OrderDay menu.OrderDay `json:"order_day" binding:"required,oneof=monday thursday"`
}

// SetOrderDay selects which ordering cycle the cart is for
func (h *CartHandler) SetOrderDay(c *gin.Context) {
	var req SetOrderDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	store := h.storeFor(c)
	state := store.SetOrderDay(c.Request.Context(), req.OrderDay)

	c.JSON(http.StatusOK, gin.H{
		"message": "Order day updated",
		"data":    cartPayload(state),
	})
}

// ClearCart empties the cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	store := h.storeFor(c)
	state := store.ClearCart(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
		"data":    cartPayload(state),
	})
}
