// internal/interfaces/http/handlers/customer.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/spicerack-backend/internal/config"
	"github.com/your-org/spicerack-backend/internal/domain/customer"
	"github.com/your-org/spicerack-backend/internal/interfaces/http/middleware"
)

// CustomerHandler handles customer profile and address endpoints
type CustomerHandler struct {
	customerService *customer.Service
	config          *config.Config
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(db *gorm.DB, cfg *config.Config) *CustomerHandler {
	return &CustomerHandler{
		customerService: customer.NewService(db, cfg),
		config:          cfg,
	}
}

// GetProfile returns the authenticated customer's profile
func (h *CustomerHandler) GetProfile(c *gin.Context) {
	customerID, exists := middleware.GetCustomerIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	cust, err := h.customerService.GetByID(customerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": cust})
}

// UpdateProfile applies a partial profile update
func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	customerID, exists := middleware.GetCustomerIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req customer.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cust, err := h.customerService.UpdateProfile(customerID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"data":    cust,
	})
}

// ListAddresses returns the customer's saved addresses
func (h *CustomerHandler) ListAddresses(c *gin.Context) {
	customerID, exists := middleware.GetCustomerIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	addresses, err := h.customerService.ListAddresses(customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list addresses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": addresses})
}

// CreateAddress saves a new delivery address
func (h *CustomerHandler) CreateAddress(c *gin.Context) {
	customerID, exists := middleware.GetCustomerIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req customer.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	addr, err := h.customerService.CreateAddress(customerID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create address"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Address saved successfully",
		"data":    addr,
	})
}

// UpdateAddress updates an existing address
func (h *CustomerHandler) UpdateAddress(c *gin.Context) {
	customerID, exists := middleware.GetCustomerIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	addressID := c.Param("id")

	var req customer.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	addr, err := h.customerService.UpdateAddress(customerID, addressID, &req)
	if err != nil {
		if errors.Is(err, customer.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address updated successfully",
		"data":    addr,
	})
}

// DeleteAddress removes a saved address
func (h *CustomerHandler) DeleteAddress(c *gin.Context) {
	customerID, exists := middleware.GetCustomerIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	addressID := c.Param("id")

	if err := h.customerService.DeleteAddress(customerID, addressID); err != nil {
		if errors.Is(err, customer.ErrAddressNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully"})
}

// CheckDeliveryZone reports whether a zip code is deliverable
func (h *CustomerHandler) CheckDeliveryZone(c *gin.Context) {
	zipCode := c.Query("zip_code")
	if zipCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "zip_code query parameter is required"})
		return
	}

	zone, deliverable, err := h.customerService.CheckDeliveryZone(zipCode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check delivery zone"})
		return
	}

	if !deliverable {
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{"deliverable": false},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"deliverable":  true,
			"delivery_fee": zone.DeliveryFee,
			"area":         zone.Area,
		},
	})
}
