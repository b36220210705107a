// internal/interfaces/http/handlers/menu.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/spicerack-backend/internal/config"
	"github.com/your-org/spicerack-backend/internal/domain/menu"
	"github.com/your-org/spicerack-backend/internal/domain/order"
)

// MenuHandler handles menu endpoints
type MenuHandler struct {
	menuService *menu.Service
	config      *config.Config
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(db *gorm.DB, cfg *config.Config) *MenuHandler {
	return &MenuHandler{
		menuService: menu.NewService(db, cfg),
		config:      cfg,
	}
}

// ListMenuItems returns active menu items, optionally filtered by category
func (h *MenuHandler) ListMenuItems(c *gin.Context) {
	items, err := h.menuService.ListMenuItems(c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list menu items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// GetMenuItem returns one menu item
func (h *MenuHandler) GetMenuItem(c *gin.Context) {
	item, err := h.menuService.GetMenuItem(c.Param("id"))
	if err != nil {
		if errors.Is(err, menu.ErrMenuItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get menu item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": item})
}

// GetWeeklyMenu returns the menu for an ordering cycle. With no date
// parameter it resolves the next upcoming cycle for the requested day.
func (h *MenuHandler) GetWeeklyMenu(c *gin.Context) {
	day := menu.OrderDay(c.Query("order_day"))
	if !day.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_day must be monday or thursday"})
		return
	}

	menuDate := order.NextOrderDate(day, time.Now())
	if raw := c.Query("menu_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "menu_date must be YYYY-MM-DD"})
			return
		}
		menuDate = parsed
	}

	entries, err := h.menuService.GetWeeklyMenu(day, menuDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get weekly menu"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"order_day": day,
			"menu_date": menuDate.Format("2006-01-02"),
			"items":     entries,
		},
	})
}

// CreateMenuItem creates a menu item (admin)
func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var req menu.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.menuService.CreateMenuItem(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Menu item created successfully",
		"data":    item,
	})
}

// UpdateMenuItem updates a menu item (admin)
func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	var req menu.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.menuService.UpdateMenuItem(c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, menu.ErrMenuItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Menu item updated successfully",
		"data":    item,
	})
}

// DeleteMenuItem retires a menu item (admin)
func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	if err := h.menuService.DeleteMenuItem(c.Param("id")); err != nil {
		if errors.Is(err, menu.ErrMenuItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete menu item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted successfully"})
}

// SetWeeklyMenuRequest represents an admin weekly menu assignment
type SetWeeklyMenuRequest struct {
	OrderDay    menu.OrderDay `json:"order_day" binding:"required,oneof=monday thursday"`
	MenuDate    string        `json:"menu_date" binding:"required"`
	MenuItemIDs []string      `json:"menu_item_ids" binding:"required,min=1"`
}

// SetWeeklyMenu replaces the menu for an ordering cycle (admin)
func (h *MenuHandler) SetWeeklyMenu(c *gin.Context) {
	var req SetWeeklyMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	menuDate, err := time.Parse("2006-01-02", req.MenuDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "menu_date must be YYYY-MM-DD"})
		return
	}

	entries, err := h.menuService.SetWeeklyMenu(req.OrderDay, menuDate, req.MenuItemIDs)
	if err != nil {
		if errors.Is(err, menu.ErrMenuItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Weekly menu updated successfully",
		"data":    entries,
	})
}
