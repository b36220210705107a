// internal/domain/menu/entity.go
package menu

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderDay represents one of the two weekly ordering cycles
type OrderDay string

const (
	OrderDayMonday   OrderDay = "monday"
	OrderDayThursday OrderDay = "thursday"
)

// IsValid reports whether the order day is one of the known cycles
func (d OrderDay) IsValid() bool {
	return d == OrderDayMonday || d == OrderDayThursday
}

// Weekday returns the time.Weekday the cycle falls on
func (d OrderDay) Weekday() time.Weekday {
	if d == OrderDayThursday {
		return time.Thursday
	}
	return time.Monday
}

// Category groups menu items on the storefront
type Category string

const (
	CategoryEntree    Category = "entree"
	CategorySide      Category = "side"
	CategorySoup      Category = "soup"
	CategoryDessert   Category = "dessert"
	CategoryBeverage  Category = "beverage"
	CategorySeasoning Category = "seasoning"
)

// MenuItem represents a dish offered on the weekly menu
type MenuItem struct {
	ID             string         `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string         `gorm:"not null;size:255" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	Category       Category       `gorm:"not null;size:50;index" json:"category"`
	SpiceLevel     int            `gorm:"default:0" json:"spice_level"` // 0-5
	DietaryTags    string         `gorm:"size:500" json:"dietary_tags"` // Comma-separated tags
	HasSizeOptions bool           `gorm:"default:false" json:"has_size_options"`
	Price8oz       *int64         `json:"price_8oz"`    // Price in cents, set when HasSizeOptions
	Price16oz      *int64         `json:"price_16oz"`   // Price in cents, set when HasSizeOptions
	SinglePrice    *int64         `json:"single_price"` // Price in cents, set otherwise
	ImageURL       string         `gorm:"size:500" json:"image_url"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	IsPopular      bool           `gorm:"default:false" json:"is_popular"`
	SortOrder      int            `gorm:"default:0" json:"sort_order"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// WeeklyMenu assigns a menu item to an ordering cycle for a given week
type WeeklyMenu struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	MenuItemID  string    `gorm:"type:uuid;not null;index" json:"menu_item_id"`
	OrderDay    OrderDay  `gorm:"not null;size:20;index" json:"order_day"`
	MenuDate    time.Time `gorm:"type:date;not null;index" json:"menu_date"`
	IsAvailable bool      `gorm:"default:true" json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	MenuItem MenuItem `gorm:"foreignKey:MenuItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"menu_item"`
}

// TableName overrides
func (MenuItem) TableName() string   { return "menu_items" }
func (WeeklyMenu) TableName() string { return "weekly_menus" }

// BeforeCreate assigns a uuid primary key
func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// BeforeCreate assigns a uuid primary key
func (w *WeeklyMenu) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}

// PriceFor resolves the unit price in cents for a size selection.
// Returns false when the item cannot be sold in that size.
func (m *MenuItem) PriceFor(size string) (int64, bool) {
	if m.HasSizeOptions {
		switch size {
		case "8oz":
			if m.Price8oz != nil {
				return *m.Price8oz, true
			}
		case "16oz":
			if m.Price16oz != nil {
				return *m.Price16oz, true
			}
		}
		return 0, false
	}
	if size != "" {
		return 0, false
	}
	if m.SinglePrice != nil {
		return *m.SinglePrice, true
	}
	return 0, false
}

// GetFormattedPrice returns the lowest available price in dollars
func (m *MenuItem) GetFormattedPrice() float64 {
	if m.HasSizeOptions && m.Price8oz != nil {
		return float64(*m.Price8oz) / 100
	}
	if m.SinglePrice != nil {
		return float64(*m.SinglePrice) / 100
	}
	return 0
}
