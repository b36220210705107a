package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/spicerack-backend/internal/domain/menu"
)

func sizedItem(id string, price8oz, price16oz int64) ItemSnapshot {
	return ItemSnapshot{
		ID:             id,
		Name:           "Chicken Tikka Masala",
		HasSizeOptions: true,
		Price8oz:       price8oz,
		Price16oz:      price16oz,
	}
}

func singleItem(id string, price int64) ItemSnapshot {
	return ItemSnapshot{
		ID:          id,
		Name:        "Mango Lassi",
		SinglePrice: price,
	}
}

func TestReduceAddItemNewLine(t *testing.T) {
	state := reduce(EmptyState(), AddItem{Item: sizedItem("item-1", 900, 1600), Size: Size16oz, Quantity: 2})

	require.Len(t, state.Lines, 1)
	line := state.Lines[0]
	assert.Equal(t, "item-1-16oz", line.ID)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, int64(1600), line.UnitPrice)
	assert.Equal(t, int64(3200), line.TotalPrice)
	assert.Equal(t, int64(3200), state.Subtotal)
	assert.Equal(t, 2, state.ItemCount)
}

func TestReduceAddItemCollapsesSameItemAndSize(t *testing.T) {
	state := EmptyState()
	item := sizedItem("item-1", 900, 1600)

	state = reduce(state, AddItem{Item: item, Size: Size8oz, Quantity: 1})
	state = reduce(state, AddItem{Item: item, Size: Size8oz, Quantity: 2})

	require.Len(t, state.Lines, 1)
	assert.Equal(t, 3, state.Lines[0].Quantity)
	assert.Equal(t, int64(2700), state.Lines[0].TotalPrice)
}

func TestReduceAddItemDifferentSizesStayDistinct(t *testing.T) {
	state := EmptyState()
	item := sizedItem("item-1", 900, 1600)

	state = reduce(state, AddItem{Item: item, Size: Size8oz, Quantity: 1})
	state = reduce(state, AddItem{Item: item, Size: Size16oz, Quantity: 1})

	require.Len(t, state.Lines, 2)
	assert.Equal(t, int64(2500), state.Subtotal)
	assert.Equal(t, 2, state.ItemCount)
}

func TestReduceAddItemClampsNonPositiveQuantity(t *testing.T) {
	state := reduce(EmptyState(), AddItem{Item: singleItem("item-1", 500), Quantity: 0})
	require.Len(t, state.Lines, 1)
	assert.Equal(t, 1, state.Lines[0].Quantity)

	state = reduce(EmptyState(), AddItem{Item: singleItem("item-1", 500), Quantity: -3})
	require.Len(t, state.Lines, 1)
	assert.Equal(t, 1, state.Lines[0].Quantity)
}

func TestReducePricePinnedAtAddTime(t *testing.T) {
	item := singleItem("item-1", 500)
	state := reduce(EmptyState(), AddItem{Item: item, Quantity: 1})

	// The menu price changes, then the same item is added again.
	// The existing line keeps its pinned unit price.
	repriced := item
	repriced.SinglePrice = 700
	state = reduce(state, AddItem{Item: repriced, Quantity: 1})

	require.Len(t, state.Lines, 1)
	assert.Equal(t, int64(500), state.Lines[0].UnitPrice)
	assert.Equal(t, int64(1000), state.Lines[0].TotalPrice)

	// Quantity updates also never re-resolve the price
	state = reduce(state, UpdateQuantity{LineID: state.Lines[0].ID, Quantity: 4})
	assert.Equal(t, int64(500), state.Lines[0].UnitPrice)
	assert.Equal(t, int64(2000), state.Lines[0].TotalPrice)
}

func TestReduceUpdateQuantityZeroRemovesLine(t *testing.T) {
	state := reduce(EmptyState(), AddItem{Item: singleItem("item-1", 500), Quantity: 2})
	lineID := state.Lines[0].ID

	state = reduce(state, UpdateQuantity{LineID: lineID, Quantity: 0})

	assert.Empty(t, state.Lines)
	assert.Equal(t, int64(0), state.Subtotal)
	assert.Equal(t, 0, state.ItemCount)
}

func TestReduceRemoveAbsentLineIsNoOp(t *testing.T) {
	state := reduce(EmptyState(), AddItem{Item: singleItem("item-1", 500), Quantity: 2})

	next := reduce(state, RemoveItem{LineID: "does-not-exist"})

	assert.Equal(t, state, next)
}

func TestReduceAggregatesAlwaysRecomputed(t *testing.T) {
	state := EmptyState()
	state = reduce(state, AddItem{Item: sizedItem("item-1", 900, 1600), Size: Size8oz, Quantity: 2})
	state = reduce(state, AddItem{Item: singleItem("item-2", 450), Quantity: 3})
	state = reduce(state, UpdateQuantity{LineID: "item-1-8oz", Quantity: 1})
	state = reduce(state, RemoveItem{LineID: "item-2-single"})

	assert.Equal(t, int64(900), state.Subtotal)
	assert.Equal(t, 1, state.ItemCount)
}

func TestReduceSetOrderDayAndClear(t *testing.T) {
	state := EmptyState()
	state = reduce(state, AddItem{Item: singleItem("item-1", 500), Quantity: 2})
	state = reduce(state, SetOrderDay{Day: menu.OrderDayThursday})
	assert.Equal(t, menu.OrderDayThursday, state.OrderDay)

	state = reduce(state, Clear{})
	assert.Empty(t, state.Lines)
	assert.Equal(t, menu.OrderDay(""), state.OrderDay)
	assert.Equal(t, int64(0), state.Subtotal)
	assert.Equal(t, 0, state.ItemCount)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	state := reduce(EmptyState(), AddItem{Item: singleItem("item-1", 500), Quantity: 2})
	before := state.Lines[0].Quantity

	_ = reduce(state, UpdateQuantity{LineID: state.Lines[0].ID, Quantity: 9})

	assert.Equal(t, before, state.Lines[0].Quantity)
}

func TestMeetsMinimum(t *testing.T) {
	state := reduce(EmptyState(), AddItem{Item: singleItem("item-1", 1000), Quantity: 2})
	assert.False(t, state.MeetsMinimum())

	state = reduce(state, AddItem{Item: singleItem("item-2", 1000), Quantity: 1})
	assert.True(t, state.MeetsMinimum())
}

func TestLineID(t *testing.T) {
	assert.Equal(t, "abc-8oz", LineID("abc", Size8oz))
	assert.Equal(t, "abc-16oz", LineID("abc", Size16oz))
	assert.Equal(t, "abc-single", LineID("abc", SizeNone))
}
