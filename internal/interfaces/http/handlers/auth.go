// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/spicerack-backend/internal/config"
	"github.com/your-org/spicerack-backend/internal/domain/customer"
	"github.com/your-org/spicerack-backend/internal/interfaces/http/middleware"
	"github.com/your-org/spicerack-backend/internal/pkg/auth"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	customerService *customer.Service
	jwtManager      *auth.JWTManager
	config          *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		customerService: customer.NewService(db, cfg),
		jwtManager:      auth.NewJWTManager(cfg),
		config:          cfg,
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// tokenPair issues an access and refresh token for a customer
func (h *AuthHandler) tokenPair(cust *customer.Customer) (gin.H, error) {
	accessToken, err := h.jwtManager.GenerateAccessToken(cust.ID, cust.Email, string(cust.Role))
	if err != nil {
		return nil, err
	}
	refreshToken, err := h.jwtManager.GenerateRefreshToken(cust.ID, cust.Email)
	if err != nil {
		return nil, err
	}
	return gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"customer":      cust,
	}, nil
}

// Register handles customer registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req customer.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cust, err := h.customerService.Register(&req)
	if err != nil {
		if errors.Is(err, customer.ErrEmailAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	data, err := h.tokenPair(cust)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to issue tokens",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"data":    data,
	})
}

// Login handles customer login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cust, err := h.customerService.Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": err.Error(),
		})
		return
	}

	data, err := h.tokenPair(cust)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to issue tokens",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    data,
	})
}

// RefreshToken handles token refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	claims, err := h.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid or expired refresh token",
		})
		return
	}

	// Re-resolve the account so role or status changes take effect
	cust, err := h.customerService.GetByID(claims.CustomerID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Account no longer exists",
		})
		return
	}

	data, err := h.tokenPair(cust)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to issue tokens",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Token refreshed successfully",
		"data":    data,
	})
}

// Logout handles customer logout
func (h *AuthHandler) Logout(c *gin.Context) {
	// Stateless JWT logout is handled client-side
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentCustomer returns the authenticated customer's account
func (h *AuthHandler) GetCurrentCustomer(c *gin.Context) {
	customerID, exists := middleware.GetCustomerIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	cust, err := h.customerService.GetByID(customerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Account not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": cust,
	})
}
