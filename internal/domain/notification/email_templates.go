// internal/domain/notification/email_templates.go
package notification

import (
	"fmt"
	"strings"

	"github.com/your-org/spicerack-backend/internal/domain/customer"
	"github.com/your-org/spicerack-backend/internal/domain/order"
)

// statusEmailMessages maps kitchen statuses to customer-facing copy.
// Statuses without an entry simply produce no email.
var statusEmailMessages = map[order.OrderStatus]struct {
	Headline string
	Body     string
}{
	order.OrderStatusInProgress: {
		Headline: "We're cooking!",
		Body:     "Our kitchen has started preparing your order.",
	},
	order.OrderStatusReady: {
		Headline: "Your order is ready!",
		Body:     "Your order is packed and ready for %s.",
	},
	order.OrderStatusCompleted: {
		Headline: "Order complete",
		Body:     "Your order has been completed. We hope you enjoy every bite!",
	},
	order.OrderStatusCanceled: {
		Headline: "Order canceled",
		Body:     "Your order has been canceled. If this is unexpected, please reach out to us.",
	},
	order.OrderStatusHold: {
		Headline: "Order on hold",
		Body:     "Your order is on hold. We'll be in touch shortly with more details.",
	},
}

func buildConfirmationEmail(o *order.Order, cust *customer.Customer) *emailContent {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("<h2>Thank you for your order, %s!</h2>", greeting(cust)))
	b.WriteString(fmt.Sprintf("<p>Your order <strong>%s</strong> is confirmed for <strong>%s</strong>.</p>",
		o.OrderNumber, o.OrderDate.Format("Monday, January 2")))

	if o.IsGift {
		recipient := o.RecipientName
		if recipient == "" {
			recipient = "your recipient"
		}
		b.WriteString(fmt.Sprintf("<p><em>This order is a gift for %s. We'll keep the surprise.</em></p>", recipient))
	}

	b.WriteString(itemsTable(o))
	b.WriteString(totalsTable(o))
	b.WriteString(fulfillmentSection(o, false))

	if o.SpecialRequests != "" {
		b.WriteString(fmt.Sprintf("<p><strong>Special requests:</strong> %s</p>", o.SpecialRequests))
	}

	return &emailContent{
		Subject: fmt.Sprintf("Order Confirmed - %s", o.OrderNumber),
		HTML:    wrapLayout(b.String()),
	}
}

func buildStatusEmail(o *order.Order, cust *customer.Customer, status order.OrderStatus) *emailContent {
	msg, ok := statusEmailMessages[status]
	if !ok {
		return nil
	}

	body := msg.Body
	if status == order.OrderStatusReady {
		body = fmt.Sprintf(body, string(o.OrderType))
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h2>%s</h2>", msg.Headline))
	b.WriteString(fmt.Sprintf("<p>Hi %s,</p>", greeting(cust)))
	b.WriteString(fmt.Sprintf("<p>%s</p>", body))
	b.WriteString(fmt.Sprintf("<p>Order <strong>%s</strong> for %s.</p>",
		o.OrderNumber, o.OrderDate.Format("Monday, January 2")))
	b.WriteString(fulfillmentSection(o, status == order.OrderStatusReady))

	return &emailContent{
		Subject: fmt.Sprintf("Order Update - %s", o.OrderNumber),
		HTML:    wrapLayout(b.String()),
	}
}

func buildReminderEmail(o *order.Order, cust *customer.Customer) *emailContent {
	var b strings.Builder
	b.WriteString("<h2>Your order is coming up today!</h2>")
	b.WriteString(fmt.Sprintf("<p>Hi %s,</p>", greeting(cust)))
	b.WriteString(fmt.Sprintf("<p>A quick reminder that your order <strong>%s</strong> is scheduled for today.</p>",
		o.OrderNumber))
	b.WriteString(fulfillmentSection(o, true))
	b.WriteString(itemsTable(o))

	return &emailContent{
		Subject: fmt.Sprintf("Reminder: your order %s is today", o.OrderNumber),
		HTML:    wrapLayout(b.String()),
	}
}

func greeting(cust *customer.Customer) string {
	if name := cust.FirstName(); name != "" {
		return name
	}
	return "there"
}

// locationLine renders where the order will be fulfilled
func locationLine(o *order.Order) string {
	if o.OrderType == order.OrderTypePickup {
		if o.PickupLocation == nil {
			return "your selected pickup location"
		}
		return fmt.Sprintf("%s - %s, %s", o.PickupLocation.Name, o.PickupLocation.Address, o.PickupLocation.City)
	}
	return o.DeliveryAddress.String()
}

func fulfillmentSection(o *order.Order, withPickupTime bool) string {
	var b strings.Builder
	if o.OrderType == order.OrderTypePickup {
		b.WriteString(fmt.Sprintf("<p><strong>Pickup:</strong> %s</p>", locationLine(o)))
		if withPickupTime && o.PickupLocation != nil && o.PickupLocation.PickupTime != "" {
			b.WriteString(fmt.Sprintf("<p><strong>Pickup window:</strong> %s</p>", o.PickupLocation.PickupTime))
		}
	} else {
		b.WriteString(fmt.Sprintf("<p><strong>Delivery to:</strong> %s</p>", locationLine(o)))
	}
	return b.String()
}

func itemsTable(o *order.Order) string {
	var b strings.Builder
	b.WriteString(`<table style="width:100%;border-collapse:collapse"><tr><th align="left">Item</th><th align="right">Qty</th><th align="right">Price</th></tr>`)
	for _, item := range o.Items {
		name := item.ItemName
		if item.Size != nil {
			name = fmt.Sprintf("%s (%s)", name, *item.Size)
		}
		b.WriteString(fmt.Sprintf(`<tr><td>%s</td><td align="right">%d</td><td align="right">%s</td></tr>`,
			name, item.Quantity, dollars(item.TotalPrice)))
	}
	b.WriteString("</table>")
	return b.String()
}

func totalsTable(o *order.Order) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<p>Subtotal: %s<br>", dollars(o.Subtotal)))
	if o.DiscountAmount > 0 {
		b.WriteString(fmt.Sprintf("Discount: -%s<br>", dollars(o.DiscountAmount)))
	}
	if o.DeliveryFee > 0 {
		b.WriteString(fmt.Sprintf("Delivery fee: %s<br>", dollars(o.DeliveryFee)))
	}
	b.WriteString(fmt.Sprintf("Tax: %s<br>", dollars(o.Tax)))
	b.WriteString(fmt.Sprintf("<strong>Total: %s</strong></p>", dollars(o.Total)))
	return b.String()
}

func wrapLayout(inner string) string {
	return fmt.Sprintf(`<!DOCTYPE html><html><body style="font-family:Arial,Helvetica,sans-serif;color:#2d2d2d;max-width:600px;margin:0 auto;padding:16px">%s<hr><p style="color:#888;font-size:12px">The Spice Rack Atlanta</p></body></html>`, inner)
}

func dollars(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
