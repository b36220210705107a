// internal/domain/notification/sms_templates.go
package notification

import (
	"fmt"

	"github.com/your-org/spicerack-backend/internal/domain/customer"
	"github.com/your-org/spicerack-backend/internal/domain/order"
)

// statusSMSMessages mirrors the email copy in text-message length.
// Statuses without an entry produce no SMS.
var statusSMSMessages = map[order.OrderStatus]string{
	order.OrderStatusInProgress: "our kitchen has started preparing it",
	order.OrderStatusReady:      "it's packed and ready",
	order.OrderStatusCompleted:  "it's complete, enjoy",
	order.OrderStatusCanceled:   "it has been canceled",
	order.OrderStatusHold:       "it's on hold, we'll be in touch",
}

func buildConfirmationSMS(o *order.Order, cust *customer.Customer) string {
	return fmt.Sprintf("Hi %s! Your Spice Rack order %s is confirmed for %s (%s). Total %s. See you soon!",
		greeting(cust), o.OrderNumber, o.OrderDate.Format("Mon Jan 2"),
		o.OrderType, dollars(o.Total))
}

func buildStatusSMS(o *order.Order, cust *customer.Customer, status order.OrderStatus) string {
	msg, ok := statusSMSMessages[status]
	if !ok {
		return ""
	}
	return fmt.Sprintf("Hi %s, an update on order %s: %s. - The Spice Rack Atlanta",
		greeting(cust), o.OrderNumber, msg)
}

func buildReminderSMS(o *order.Order, cust *customer.Customer) string {
	if o.OrderType == order.OrderTypePickup && o.PickupLocation != nil {
		window := o.PickupLocation.PickupTime
		if window == "" {
			window = "today"
		}
		return fmt.Sprintf("Hi %s, reminder: your Spice Rack order %s is ready for pickup today at %s (%s).",
			greeting(cust), o.OrderNumber, o.PickupLocation.Name, window)
	}
	return fmt.Sprintf("Hi %s, reminder: your Spice Rack order %s is being delivered today.",
		greeting(cust), o.OrderNumber)
}
