// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/spicerack-backend/internal/config"
	"github.com/your-org/spicerack-backend/internal/pkg/auth"
)

// AuthMiddleware creates JWT authentication middleware
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			c.Abort()
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		// Store customer information in context
		c.Set("customer_id", claims.CustomerID)
		c.Set("customer_email", claims.Email)
		c.Set("customer_role", claims.Role)
		c.Set("is_admin", claims.IsAdmin())
		c.Set("token_claims", claims)

		c.Next()
	}
}

// AdminMiddleware ensures the caller holds the admin role
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("is_admin")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		if !isAdmin.(bool) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Admin access required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuthMiddleware provides optional authentication. Guests fall
// through with no identity set; their cart rides on a session cookie.
func OptionalAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		c.Set("customer_id", claims.CustomerID)
		c.Set("customer_email", claims.Email)
		c.Set("customer_role", claims.Role)
		c.Set("is_admin", claims.IsAdmin())
		c.Set("token_claims", claims)

		c.Next()
	}
}

// GetCustomerIDFromContext extracts the customer ID from gin context
func GetCustomerIDFromContext(c *gin.Context) (string, bool) {
	customerID, exists := c.Get("customer_id")
	if !exists {
		return "", false
	}
	return customerID.(string), true
}

// GetCustomerEmailFromContext extracts the customer email from gin context
func GetCustomerEmailFromContext(c *gin.Context) (string, bool) {
	email, exists := c.Get("customer_email")
	if !exists {
		return "", false
	}
	return email.(string), true
}

// IsAdminFromContext checks if the caller is an admin from gin context
func IsAdminFromContext(c *gin.Context) bool {
	isAdmin, exists := c.Get("is_admin")
	if !exists {
		return false
	}
	return isAdmin.(bool)
}
