// internal/interfaces/http/handlers/pickup.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/spicerack-backend/internal/config"
	"github.com/your-org/spicerack-backend/internal/domain/order"
)

// PickupHandler handles pickup location endpoints
type PickupHandler struct {
	orderService *order.Service
	config       *config.Config
}

// NewPickupHandler creates a new pickup location handler
func NewPickupHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *PickupHandler {
	return &PickupHandler{
		orderService: order.NewService(db, cfg, logger),
		config:       cfg,
	}
}

// ListPickupLocations returns active pickup locations
func (h *PickupHandler) ListPickupLocations(c *gin.Context) {
	locations, err := h.orderService.ListPickupLocations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pickup locations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": locations})
}

// PickupLocationRequest represents a create/update pickup location request
type PickupLocationRequest struct {
	Name           string `json:"name" binding:"required"`
	Address        string `json:"address" binding:"required"`
	City           string `json:"city" binding:"required"`
	State          string `json:"state" binding:"required"`
	ZipCode        string `json:"zip_code" binding:"required"`
	PickupTime     string `json:"pickup_time" binding:"required"`
	DriverName     string `json:"driver_name"`
	DriverPhone    string `json:"driver_phone"`
	CarDescription string `json:"car_description"`
	SortOrder      int    `json:"sort_order"`
}

// CreatePickupLocation adds a pickup location (admin)
func (h *PickupHandler) CreatePickupLocation(c *gin.Context) {
	var req PickupLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	loc := &order.PickupLocation{
		Name:                 req.Name,
		Address:              req.Address,
		City:                 req.City,
		State:                req.State,
		ZipCode:              req.ZipCode,
		PickupTime:           req.PickupTime,
		DriverName:           req.DriverName,
		DriverPhone:          req.DriverPhone,
		DriverCarDescription: req.CarDescription,
		SortOrder:            req.SortOrder,
		IsActive:             true,
	}

	if err := h.orderService.SavePickupLocation(loc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save pickup location"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Pickup location created successfully",
		"data":    loc,
	})
}

// UpdatePickupLocation updates a pickup location (admin)
func (h *PickupHandler) UpdatePickupLocation(c *gin.Context) {
	var req PickupLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	loc := &order.PickupLocation{
		ID:                   c.Param("id"),
		Name:                 req.Name,
		Address:              req.Address,
		City:                 req.City,
		State:                req.State,
		ZipCode:              req.ZipCode,
		PickupTime:           req.PickupTime,
		DriverName:           req.DriverName,
		DriverPhone:          req.DriverPhone,
		DriverCarDescription: req.CarDescription,
		SortOrder:            req.SortOrder,
		IsActive:             true,
	}

	if err := h.orderService.SavePickupLocation(loc); err != nil {
		if errors.Is(err, order.ErrPickupLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save pickup location"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pickup location updated successfully",
		"data":    loc,
	})
}

// DeletePickupLocation deactivates a pickup location (admin)
func (h *PickupHandler) DeletePickupLocation(c *gin.Context) {
	if err := h.orderService.DeletePickupLocation(c.Param("id")); err != nil {
		if errors.Is(err, order.ErrPickupLocationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pickup location"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pickup location deleted successfully"})
}
