// internal/interfaces/http/handlers/notification.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/spicerack-backend/internal/config"
	"github.com/your-org/spicerack-backend/internal/domain/notification"
	"github.com/your-org/spicerack-backend/internal/domain/order"
)

// NotificationHandler handles notification dispatch endpoints
type NotificationHandler struct {
	notificationService *notification.Service
	config              *config.Config
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *notification.Service, cfg *config.Config) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		config:              cfg,
	}
}

// checkConfigured rejects dispatch requests when no channel can
// possibly send. Checked before any data access.
func (h *NotificationHandler) checkConfigured(c *gin.Context) bool {
	if !h.config.EmailConfigured() && !h.config.SMSConfigured() {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "No notification channel is configured",
		})
		return false
	}
	return true
}

func (h *NotificationHandler) writeDispatchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, notification.ErrOrderNotFound), errors.Is(err, notification.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dispatch notifications"})
	}
}

// SendConfirmation dispatches order confirmation notifications
func (h *NotificationHandler) SendConfirmation(c *gin.Context) {
	if !h.checkConfigured(c) {
		return
	}

	var req struct {
		OrderID string `json:"order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "order_id is required",
			"details": err.Error(),
		})
		return
	}

	result, err := h.notificationService.DispatchConfirmation(c.Request.Context(), req.OrderID)
	if err != nil {
		h.writeDispatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"email":   result.Email,
		"sms":     result.SMS,
	})
}

// SendStatusUpdate dispatches status change notifications
func (h *NotificationHandler) SendStatusUpdate(c *gin.Context) {
	if !h.checkConfigured(c) {
		return
	}

	var req struct {
		OrderID string `json:"order_id" binding:"required"`
		Status  string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "order_id and status are required",
			"details": err.Error(),
		})
		return
	}

	result, skipped, err := h.notificationService.DispatchStatusChange(c.Request.Context(), req.OrderID, order.OrderStatus(req.Status))
	if err != nil {
		h.writeDispatchError(c, err)
		return
	}

	if skipped {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"skipped": true,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"email":   result.Email,
		"sms":     result.SMS,
	})
}

// SendReminders dispatches pickup/delivery reminders. With an order_id
// it targets one order; without, every order due today.
func (h *NotificationHandler) SendReminders(c *gin.Context) {
	if !h.checkConfigured(c) {
		return
	}

	var req struct {
		OrderID string `json:"order_id"`
	}
	// Body is optional for the batch case
	_ = c.ShouldBindJSON(&req)

	outcomes, err := h.notificationService.DispatchReminders(c.Request.Context(), req.OrderID)
	if err != nil {
		h.writeDispatchError(c, err)
		return
	}

	sent := 0
	for _, outcome := range outcomes {
		if outcome.Email == notification.OutcomeSent || outcome.SMS == notification.OutcomeSent {
			sent++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"reminders_sent": sent,
		"results":        outcomes,
	})
}
