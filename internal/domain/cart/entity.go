// internal/domain/cart/entity.go
package cart

import (
	"fmt"

	"github.com/your-org/spicerack-backend/internal/domain/menu"
)

// MinimumOrderAmount is the checkout floor in cents
const MinimumOrderAmount int64 = 3000

// SizeVariant is the portion size a line was added in.
// Items without size options use SizeNone.
type SizeVariant string

const (
	Size8oz  SizeVariant = "8oz"
	Size16oz SizeVariant = "16oz"
	SizeNone SizeVariant = ""
)

// IsValidFor reports whether the variant is sellable for the given item
func (v SizeVariant) IsValidFor(item ItemSnapshot) bool {
	if item.HasSizeOptions {
		return v == Size8oz || v == Size16oz
	}
	return v == SizeNone
}

// ItemSnapshot is the menu item data captured when a line is added.
// Prices are resolved from it once and never re-read afterwards.
type ItemSnapshot struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	HasSizeOptions bool   `json:"has_size_options"`
	Price8oz       int64  `json:"price_8oz"`
	Price16oz      int64  `json:"price_16oz"`
	SinglePrice    int64  `json:"single_price"`
}

// SnapshotOf captures the cart-relevant fields of a menu item
func SnapshotOf(item *menu.MenuItem) ItemSnapshot {
	snap := ItemSnapshot{
		ID:             item.ID,
		Name:           item.Name,
		HasSizeOptions: item.HasSizeOptions,
	}
	if item.Price8oz != nil {
		snap.Price8oz = *item.Price8oz
	}
	if item.Price16oz != nil {
		snap.Price16oz = *item.Price16oz
	}
	if item.SinglePrice != nil {
		snap.SinglePrice = *item.SinglePrice
	}
	return snap
}

// UnitPrice resolves the price in cents for a size selection
func (i ItemSnapshot) UnitPrice(size SizeVariant) int64 {
	if i.HasSizeOptions {
		if size == Size16oz {
			return i.Price16oz
		}
		return i.Price8oz
	}
	return i.SinglePrice
}

// Line is one entry in the cart, keyed by item ID and size
type Line struct {
	ID         string       `json:"id"`
	Item       ItemSnapshot `json:"item"`
	Size       SizeVariant  `json:"size,omitempty"`
	Quantity   int          `json:"quantity"`
	UnitPrice  int64        `json:"unit_price"`  // Pinned when the line was added
	TotalPrice int64        `json:"total_price"` // UnitPrice * Quantity
}

// LineID builds the identity key for an (item, size) pair
func LineID(itemID string, size SizeVariant) string {
	if size == SizeNone {
		return fmt.Sprintf("%s-single", itemID)
	}
	return fmt.Sprintf("%s-%s", itemID, size)
}

// State is the full cart contents plus derived totals
type State struct {
	Lines     []Line        `json:"lines"`
	OrderDay  menu.OrderDay `json:"order_day,omitempty"` // Empty until the customer picks a cycle
	Subtotal  int64         `json:"subtotal"`
	ItemCount int           `json:"item_count"`
	Loading   bool          `json:"-"` // True until Restore has run; never persisted
}

// EmptyState returns a cart with nothing in it
func EmptyState() State {
	return State{Lines: []Line{}}
}

// MeetsMinimum reports whether the cart clears the order floor
func (s State) MeetsMinimum() bool {
	return s.Subtotal >= MinimumOrderAmount
}

// FindLine returns the line with the given ID, or nil
func (s State) FindLine(lineID string) *Line {
	for i := range s.Lines {
		if s.Lines[i].ID == lineID {
			return &s.Lines[i]
		}
	}
	return nil
}
