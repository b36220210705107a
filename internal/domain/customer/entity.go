// internal/domain/customer/entity.go
package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role determines what a customer account is allowed to do
type Role string

const (
	RoleCustomer  Role = "customer"
	RoleAdmin     Role = "admin"
	RoleKitchen   Role = "kitchen"
	RoleMarketing Role = "marketing"
)

// Customer represents a customer account
type Customer struct {
	ID            string         `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string         `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password      string         `gorm:"not null;size:255" json:"-"` // Don't return in JSON
	FullName      string         `gorm:"size:200" json:"full_name"`
	Phone         string         `gorm:"size:20" json:"phone"`
	Role          Role           `gorm:"size:20;default:'customer'" json:"role"`
	EmailOptIn    *bool          `json:"email_opt_in"` // nil means not asked yet; treated as opted in
	SmsOptIn      *bool          `json:"sms_opt_in"`   // nil means not asked yet; treated as opted in
	IsVIP         bool           `gorm:"default:false" json:"is_vip"`
	LoyaltyPoints int            `gorm:"default:0" json:"loyalty_points"`
	Notes         string         `gorm:"type:text" json:"notes,omitempty"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	LastLoginAt   *time.Time     `json:"last_login_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Addresses []Address `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"addresses,omitempty"`
}

// Address represents a customer delivery address
type Address struct {
	ID                  string    `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID          string    `gorm:"type:uuid;not null;index" json:"customer_id"`
	StreetAddress       string    `gorm:"size:255;not null" json:"street_address"`
	ApartmentNumber     string    `gorm:"size:50" json:"apartment_number"`
	BuildingName        string    `gorm:"size:100" json:"building_name"`
	City                string    `gorm:"size:100;not null" json:"city"`
	State               string    `gorm:"size:2;not null;default:'GA'" json:"state"`
	ZipCode             string    `gorm:"size:10;not null" json:"zip_code"`
	GateCode            string    `gorm:"size:50" json:"gate_code"`
	ParkingInstructions string    `gorm:"size:500" json:"parking_instructions"`
	DeliveryNotes       string    `gorm:"size:500" json:"delivery_notes"`
	IsDefault           bool      `gorm:"default:false" json:"is_default"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// DeliveryZone represents a zip code the kitchen delivers to
type DeliveryZone struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	ZipCode     string    `gorm:"uniqueIndex;not null;size:10" json:"zip_code"`
	Area        string    `gorm:"size:100" json:"area"`
	DeliveryFee int64     `gorm:"default:0" json:"delivery_fee"` // In cents
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides
func (Customer) TableName() string     { return "customers" }
func (Address) TableName() string      { return "customer_addresses" }
func (DeliveryZone) TableName() string { return "delivery_zones" }

// BeforeCreate hook to handle business logic before customer creation
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	// Email should be lowercase
	c.Email = strings.ToLower(c.Email)
	return nil
}

// BeforeCreate assigns a uuid primary key
func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// BeforeCreate assigns a uuid primary key
func (z *DeliveryZone) BeforeCreate(tx *gorm.DB) error {
	if z.ID == "" {
		z.ID = uuid.New().String()
	}
	return nil
}

// IsAdmin returns true for admin accounts
func (c *Customer) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// EmailOptedIn reports whether order emails may be sent.
// Customers who never answered the opt-in question are treated as opted in.
func (c *Customer) EmailOptedIn() bool {
	return c.EmailOptIn == nil || *c.EmailOptIn
}

// SmsOptedIn reports whether order SMS may be sent.
// Customers who never answered the opt-in question are treated as opted in.
func (c *Customer) SmsOptedIn() bool {
	return c.SmsOptIn == nil || *c.SmsOptIn
}

// GetDisplayName returns display name (full name or email)
func (c *Customer) GetDisplayName() string {
	if name := strings.TrimSpace(c.FullName); name != "" {
		return name
	}
	return c.Email
}

// FirstName returns the leading word of the full name, for greetings
func (c *Customer) FirstName() string {
	parts := strings.Fields(c.FullName)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}
