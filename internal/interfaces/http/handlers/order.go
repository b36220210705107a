// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/spicerack-backend/internal/config"
	"github.com/your-org/spicerack-backend/internal/domain/cart"
	"github.com/your-org/spicerack-backend/internal/domain/menu"
	"github.com/your-org/spicerack-backend/internal/domain/notification"
	"github.com/your-org/spicerack-backend/internal/domain/order"
	"github.com/your-org/spicerack-backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderService        *order.Service
	notificationService *notification.Service
	redisClient         *goredis.Client
	logger              *logrus.Logger
	config              *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(db *gorm.DB, redisClient *goredis.Client, notificationService *notification.Service, logger *logrus.Logger, cfg *config.Config) *OrderHandler {
	return &OrderHandler{
		orderService:        order.NewService(db, cfg, logger),
		notificationService: notificationService,
		redisClient:         redisClient,
		logger:              logger,
		config:              cfg,
	}
}

// PlaceOrder creates an order from the request payload
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	customerID, exists := middleware.GetCustomerIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req order.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	placed, err := h.orderService.PlaceOrder(customerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrTermsNotAgreed),
			errors.Is(err, order.ErrBelowMinimum),
			errors.Is(err, order.ErrInvalidDiscountCode),
			errors.Is(err, order.ErrOutsideDeliveryZone):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, order.ErrPickupLocationNotFound), errors.Is(err, menu.ErrMenuItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		}
		return
	}

	// The checkout cart has served its purpose
	slot := cart.NewCustomerSlot(h.redisClient, customerID)
	if err := slot.Remove(c.Request.Context()); err != nil {
		h.logger.WithError(err).Debug("failed to clear cart after order placement")
	}

	// Confirmation notifications must not fail the placement
	if _, err := h.notificationService.DispatchConfirmation(c.Request.Context(), placed.ID); err != nil {
		h.logger.WithError(err).WithField("order_id", placed.ID).Warn("order confirmation dispatch failed")
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    placed,
	})
}

// ListMyOrders returns the authenticated customer's orders
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	customerID, exists := middleware.GetCustomerIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	pagination := paginationFromQuery(c)
	orders, err := h.orderService.ListCustomerOrders(customerID, pagination)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       orders,
		"pagination": pagination,
	})
}

// GetMyOrder returns one of the customer's orders
func (h *OrderHandler) GetMyOrder(c *gin.Context) {
	customerID, exists := middleware.GetCustomerIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	o, err := h.orderService.GetCustomerOrder(customerID, c.Param("id"))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": o})
}

// CancelMyOrder cancels one of the customer's orders while it can
// still be cancelled
func (h *OrderHandler) CancelMyOrder(c *gin.Context) {
	customerID, exists := middleware.GetCustomerIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	cancelled, err := h.orderService.CancelOrder(customerID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, order.ErrInvalidStatus):
			c.JSON(http.StatusConflict, gin.H{"error": "Order can no longer be cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled successfully",
		"data":    cancelled,
	})
}

// ListOrders returns all orders with optional filters (admin)
func (h *OrderHandler) ListOrders(c *gin.Context) {
	filters := &order.ListFilters{
		Status:   order.OrderStatus(c.Query("status")),
		OrderDay: menu.OrderDay(c.Query("order_day")),
	}
	if raw := c.Query("order_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order_date must be YYYY-MM-DD"})
			return
		}
		filters.OrderDate = &parsed
	}

	pagination := paginationFromQuery(c)
	orders, err := h.orderService.ListOrders(filters, pagination)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       orders,
		"pagination": pagination,
	})
}

// GetOrder returns any order by id (admin)
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.orderService.GetOrder(c.Param("id"))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": o})
}

// UpdateOrderStatus transitions an order and notifies the customer (admin)
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	actorID, _ := middleware.GetCustomerIDFromContext(c)

	var req order.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.orderService.UpdateStatus(c.Param("id"), &req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, order.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		}
		return
	}

	// Status notifications ride along but never fail the transition
	result, skipped, err := h.notificationService.DispatchStatusChange(c.Request.Context(), updated.ID, updated.Status)
	if err != nil {
		h.logger.WithError(err).WithField("order_id", updated.ID).Warn("status notification dispatch failed")
	}

	response := gin.H{
		"message": "Order status updated successfully",
		"data":    updated,
	}
	if err == nil && !skipped {
		response["notifications"] = result
	}

	c.JSON(http.StatusOK, response)
}

// paginationFromQuery builds pagination from page/page_size query params
func paginationFromQuery(c *gin.Context) *order.Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return &order.Pagination{Page: page, PageSize: pageSize}
}
