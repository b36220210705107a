// internal/domain/order/entity.go
package order

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/your-org/spicerack-backend/internal/domain/customer"
	"github.com/your-org/spicerack-backend/internal/domain/menu"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusHold       OrderStatus = "hold"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCanceled   OrderStatus = "canceled"
)

// IsValid reports whether the status is a known kitchen status
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusHold,
		OrderStatusReady, OrderStatusCompleted, OrderStatusCanceled:
		return true
	}
	return false
}

// OrderType represents how the customer receives the order
type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypePickup   OrderType = "pickup"
)

// DiscountType represents how a discount code is applied
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// Order represents a weekly meal order
type Order struct {
	ID          string        `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber string        `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	CustomerID  string        `gorm:"type:uuid;not null;index" json:"customer_id"`
	OrderType   OrderType     `gorm:"not null;size:20" json:"order_type"`
	OrderDay    menu.OrderDay `gorm:"not null;size:20;index" json:"order_day"`
	OrderDate   time.Time     `gorm:"type:date;not null;index" json:"order_date"`
	Status      OrderStatus   `gorm:"not null;default:'pending';index" json:"status"`

	// Financial information, in cents
	Subtotal       int64  `gorm:"not null" json:"subtotal"`
	DiscountAmount int64  `gorm:"default:0" json:"discount_amount"`
	DeliveryFee    int64  `gorm:"default:0" json:"delivery_fee"`
	Tax            int64  `gorm:"default:0" json:"tax"`
	Total          int64  `gorm:"not null" json:"total"`
	DiscountCodeID *string `gorm:"type:uuid" json:"discount_code_id,omitempty"`

	// Payment is collected out of band; this is informational only
	PaymentStatus string `gorm:"size:20;default:'unpaid'" json:"payment_status"`

	// Delivery details (delivery orders)
	DeliveryAddress DeliveryAddress `gorm:"embedded;embeddedPrefix:delivery_" json:"delivery_address"`

	// Pickup details (pickup orders)
	PickupLocationID *string `gorm:"type:uuid;index" json:"pickup_location_id,omitempty"`

	// Gift orders
	IsGift           bool   `gorm:"default:false" json:"is_gift"`
	RecipientName    string `gorm:"size:200" json:"recipient_name,omitempty"`
	RecipientPhone   string `gorm:"size:20" json:"recipient_phone,omitempty"`
	GiftMessage      string `gorm:"size:500" json:"gift_message,omitempty"`
	SpecialRequests  string `gorm:"type:text" json:"special_requests,omitempty"`
	AgreedToTerms    bool   `gorm:"default:false" json:"agreed_to_terms"`
	AgreedToTermsAt  *time.Time `json:"agreed_to_terms_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer       *customer.Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	PickupLocation *PickupLocation      `gorm:"foreignKey:PickupLocationID" json:"pickup_location,omitempty"`
	Items          []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	StatusHistory  []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"status_history,omitempty"`
}

// OrderItem represents one line of an order, priced server-side at placement
type OrderItem struct {
	ID                  string    `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID             string    `gorm:"type:uuid;not null;index" json:"order_id"`
	MenuItemID          string    `gorm:"type:uuid;not null;index" json:"menu_item_id"`
	ItemName            string    `gorm:"not null;size:255" json:"item_name"`
	Size                *string   `gorm:"size:10" json:"size,omitempty"` // 8oz or 16oz, nil for single-priced items
	Quantity            int       `gorm:"not null" json:"quantity"`
	UnitPrice           int64     `gorm:"not null" json:"unit_price"`  // In cents
	TotalPrice          int64     `gorm:"not null" json:"total_price"` // UnitPrice * Quantity
	SpecialInstructions string    `gorm:"size:500" json:"special_instructions,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// OrderStatusHistory tracks order status changes
type OrderStatusHistory struct {
	ID        string      `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   string      `gorm:"type:uuid;not null;index" json:"order_id"`
	Status    OrderStatus `gorm:"not null" json:"status"`
	Comment   string      `gorm:"type:text" json:"comment"`
	CreatedBy string      `gorm:"type:uuid" json:"created_by"` // Customer or admin who made the change
	CreatedAt time.Time   `json:"created_at"`
}

// DeliveryAddress is embedded in delivery orders
type DeliveryAddress struct {
	StreetAddress       string `gorm:"size:255" json:"street_address"`
	ApartmentNumber     string `gorm:"size:50" json:"apartment_number"`
	BuildingName        string `gorm:"size:100" json:"building_name"`
	City                string `gorm:"size:100" json:"city"`
	State               string `gorm:"size:2" json:"state"`
	ZipCode             string `gorm:"size:10" json:"zip_code"`
	GateCode            string `gorm:"size:50" json:"gate_code"`
	ParkingInstructions string `gorm:"size:500" json:"parking_instructions"`
	DeliveryNotes       string `gorm:"size:500" json:"delivery_notes"`
}

// String renders the address as "street[, apt], city, state zip"
func (a DeliveryAddress) String() string {
	var b strings.Builder
	b.WriteString(a.StreetAddress)
	if a.ApartmentNumber != "" {
		b.WriteString(", " + a.ApartmentNumber)
	}
	b.WriteString(fmt.Sprintf(", %s, %s %s", a.City, a.State, a.ZipCode))
	return b.String()
}

// PickupLocation represents a pickup point with its driver details
type PickupLocation struct {
	ID                   string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name                 string    `gorm:"not null;size:200" json:"name"`
	Address              string    `gorm:"not null;size:255" json:"address"`
	City                 string    `gorm:"size:100" json:"city"`
	State                string    `gorm:"size:2;default:'GA'" json:"state"`
	ZipCode              string    `gorm:"size:10" json:"zip_code"`
	PickupTime           string    `gorm:"size:100" json:"pickup_time"` // e.g. "5:00 PM - 7:00 PM"
	DriverName           string    `gorm:"size:200" json:"driver_name"`
	DriverPhone          string    `gorm:"size:20" json:"driver_phone"`
	DriverCarDescription string    `gorm:"size:200" json:"driver_car_description"`
	IsActive             bool      `gorm:"default:true" json:"is_active"`
	SortOrder            int       `gorm:"default:0" json:"sort_order"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// DiscountCode represents a promotional code
type DiscountCode struct {
	ID                 string       `gorm:"type:uuid;primaryKey" json:"id"`
	Code               string       `gorm:"uniqueIndex;not null;size:50" json:"code"`
	DiscountType       DiscountType `gorm:"not null;size:20" json:"discount_type"`
	DiscountValue      int64        `gorm:"not null" json:"discount_value"` // Percent (0-100) or cents
	MinimumOrderAmount int64        `gorm:"default:0" json:"minimum_order_amount"`
	MaxUses            *int         `json:"max_uses,omitempty"` // nil means unlimited
	CurrentUses        int          `gorm:"default:0" json:"current_uses"`
	IsActive           bool         `gorm:"default:true" json:"is_active"`
	ValidFrom          *time.Time   `json:"valid_from,omitempty"`
	ValidUntil         *time.Time   `json:"valid_until,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// TableName overrides
func (Order) TableName() string              { return "orders" }
func (OrderItem) TableName() string          { return "order_items" }
func (OrderStatusHistory) TableName() string { return "order_status_history" }
func (PickupLocation) TableName() string     { return "pickup_locations" }
func (DiscountCode) TableName() string       { return "discount_codes" }

// BeforeCreate hooks assign uuid primary keys

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

func (h *OrderStatusHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return nil
}

func (p *PickupLocation) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

func (d *DiscountCode) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// Business methods for Order

// GetFormattedTotal returns total amount as float dollars
func (o *Order) GetFormattedTotal() float64 {
	return float64(o.Total) / 100
}

// CanBeCancelled checks if the order can still be cancelled
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusHold
}

// IsReminderEligible reports whether the order should receive a pickup
// or delivery reminder
func (o *Order) IsReminderEligible() bool {
	return o.Status == OrderStatusInProgress || o.Status == OrderStatusReady
}

// IsUsable reports whether a discount code can be applied to a subtotal
func (d *DiscountCode) IsUsable(subtotal int64, now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.ValidFrom != nil && now.Before(*d.ValidFrom) {
		return false
	}
	if d.ValidUntil != nil && now.After(*d.ValidUntil) {
		return false
	}
	if d.MaxUses != nil && d.CurrentUses >= *d.MaxUses {
		return false
	}
	return subtotal >= d.MinimumOrderAmount
}

// AmountOff computes the discount in cents for a subtotal, capped at the subtotal
func (d *DiscountCode) AmountOff(subtotal int64) int64 {
	var off int64
	switch d.DiscountType {
	case DiscountTypePercentage:
		off = subtotal * d.DiscountValue / 100
	case DiscountTypeFixed:
		off = d.DiscountValue
	}
	if off > subtotal {
		off = subtotal
	}
	if off < 0 {
		off = 0
	}
	return off
}

// GenerateOrderNumber builds an SR- prefixed, time-derived order number
func GenerateOrderNumber(now time.Time) string {
	return "SR-" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
}

// NextOrderDate returns the next occurrence of the ordering cycle's
// weekday strictly after today. Ordering on the cycle day itself rolls
// to next week; the kitchen needs lead time.
func NextOrderDate(day menu.OrderDay, now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	daysUntil := (int(day.Weekday()) - int(today.Weekday()) + 7) % 7
	if daysUntil == 0 {
		daysUntil = 7
	}
	return today.AddDate(0, 0, daysUntil)
}
