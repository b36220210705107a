// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/your-org/spicerack-backend/internal/domain/menu"
)

// ErrNoSnapshot is returned by a Slot when no snapshot has been written yet
var ErrNoSnapshot = errors.New("no cart snapshot")

// Slot is a durable home for one serialized cart
type Slot interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, value string) error
	Remove(ctx context.Context) error
}

// Store owns one customer's cart state. Mutations run the reducer and
// then write the new state to the slot fire-and-forget; the in-memory
// state is the source of truth and a failed write is never surfaced.
// A Store serves one request at a time and is not safe for concurrent use.
type Store struct {
	state  State
	slot   Slot
	logger *logrus.Logger
}

// NewStore creates a store with an empty cart pending restore
func NewStore(slot Slot, logger *logrus.Logger) *Store {
	state := EmptyState()
	state.Loading = true
	return &Store{
		state:  state,
		slot:   slot,
		logger: logger,
	}
}

// Restore loads the persisted snapshot into the store. A missing or
// corrupt snapshot degrades to an empty cart; it never fails the caller.
func (st *Store) Restore(ctx context.Context) State {
	restored := EmptyState()

	raw, err := st.slot.Get(ctx)
	switch {
	case errors.Is(err, ErrNoSnapshot):
		// First visit, nothing saved yet
	case err != nil:
		st.logger.WithError(err).Debug("cart snapshot read failed, starting empty")
	default:
		var snapshot State
		if uerr := json.Unmarshal([]byte(raw), &snapshot); uerr != nil {
			st.logger.WithError(uerr).Warn("corrupt cart snapshot discarded")
		} else {
			if snapshot.Lines == nil {
				snapshot.Lines = []Line{}
			}
			// Totals are recomputed rather than trusted from storage
			snapshot = recalc(snapshot, snapshot.Lines)
			restored = snapshot
		}
	}

	restored.Loading = false
	st.state = reduce(st.state, replaceState{state: restored})
	return st.state
}

// AddItem adds an item to the cart, collapsing into an existing line
// when the same item and size is already present
func (st *Store) AddItem(ctx context.Context, item ItemSnapshot, size SizeVariant, quantity int) State {
	return st.apply(ctx, AddItem{Item: item, Size: size, Quantity: quantity})
}

// RemoveItem removes a line; removing an absent line is a no-op
func (st *Store) RemoveItem(ctx context.Context, lineID string) State {
	return st.apply(ctx, RemoveItem{LineID: lineID})
}

// UpdateQuantity sets a line's quantity; zero or less removes it
func (st *Store) UpdateQuantity(ctx context.Context, lineID string, quantity int) State {
	return st.apply(ctx, UpdateQuantity{LineID: lineID, Quantity: quantity})
}

// SetOrderDay selects the ordering cycle
func (st *Store) SetOrderDay(ctx context.Context, day menu.OrderDay) State {
	return st.apply(ctx, SetOrderDay{Day: day})
}

// ClearCart empties the cart and erases the durable snapshot immediately
func (st *Store) ClearCart(ctx context.Context) State {
	st.state = reduce(st.state, Clear{})
	if err := st.slot.Remove(ctx); err != nil {
		st.logger.WithError(err).Debug("cart snapshot remove failed")
	}
	return st.state
}

// State returns the current cart state
func (st *Store) State() State {
	return st.state
}

// MeetsMinimum reports whether the cart clears the order floor
func (st *Store) MeetsMinimum() bool {
	return st.state.MeetsMinimum()
}

func (st *Store) apply(ctx context.Context, cmd Command) State {
	st.state = reduce(st.state, cmd)
	st.persist(ctx)
	return st.state
}

// persist writes the current state to the slot. Failures are swallowed:
// the cart keeps working from memory and the next mutation retries.
func (st *Store) persist(ctx context.Context) {
	if st.state.Loading {
		return
	}
	data, err := json.Marshal(st.state)
	if err != nil {
		st.logger.WithError(err).Debug("cart snapshot marshal failed")
		return
	}
	if err := st.slot.Set(ctx, string(data)); err != nil {
		st.logger.WithError(err).Debug("cart snapshot write failed")
	}
}
