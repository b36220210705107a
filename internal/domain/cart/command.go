// internal/domain/cart/command.go
package cart

import "github.com/your-org/spicerack-backend/internal/domain/menu"

// Command is a cart mutation. Each variant carries exactly the data
// its transition needs; the reducer switches on the concrete type.
type Command interface {
	isCommand()
}

// AddItem adds a line, or grows an existing line with the same item and size
type AddItem struct {
	Item     ItemSnapshot
	Size     SizeVariant
	Quantity int
}

// RemoveItem drops a line by ID; unknown IDs are ignored
type RemoveItem struct {
	LineID string
}

// UpdateQuantity replaces a line's quantity; zero or less removes the line
type UpdateQuantity struct {
	LineID   string
	Quantity int
}

// SetOrderDay selects the ordering cycle
type SetOrderDay struct {
	Day menu.OrderDay
}

// Clear empties the cart
type Clear struct{}

// replaceState swaps in a restored snapshot wholesale
type replaceState struct {
	state State
}

func (AddItem) isCommand()        {}
func (RemoveItem) isCommand()     {}
func (UpdateQuantity) isCommand() {}
func (SetOrderDay) isCommand()    {}
func (Clear) isCommand()          {}
func (replaceState) isCommand()   {}
