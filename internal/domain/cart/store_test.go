package cart

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/spicerack-backend/internal/domain/menu"
)

// memorySlot is an in-memory Slot for tests
type memorySlot struct {
	value    string
	hasValue bool
	getErr   error
	setErr   error
	sets     int
	removes  int
}

func (m *memorySlot) Get(ctx context.Context) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	if !m.hasValue {
		return "", ErrNoSnapshot
	}
	return m.value, nil
}

func (m *memorySlot) Set(ctx context.Context, value string) error {
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.value = value
	m.hasValue = true
	return nil
}

func (m *memorySlot) Remove(ctx context.Context) error {
	m.removes++
	m.value = ""
	m.hasValue = false
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestStore(slot *memorySlot) *Store {
	store := NewStore(slot, testLogger())
	store.Restore(context.Background())
	return store
}

func TestStoreMutationsPersistSnapshot(t *testing.T) {
	ctx := context.Background()
	slot := &memorySlot{}
	store := newTestStore(slot)

	store.AddItem(ctx, singleItem("item-1", 500), SizeNone, 2)
	require.True(t, slot.hasValue)
	assert.Equal(t, 1, slot.sets)

	store.UpdateQuantity(ctx, "item-1-single", 5)
	assert.Equal(t, 2, slot.sets)

	// The snapshot round-trips into an identical cart
	fresh := NewStore(slot, testLogger())
	restored := fresh.Restore(ctx)
	assert.Equal(t, store.State(), restored)
}

func TestStorePersistFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	slot := &memorySlot{setErr: errors.New("redis down")}
	store := newTestStore(slot)

	state := store.AddItem(ctx, singleItem("item-1", 500), SizeNone, 1)

	// The in-memory cart still advanced
	require.Len(t, state.Lines, 1)
	assert.Equal(t, int64(500), state.Subtotal)
}

func TestStoreRestoreMissingSnapshotStartsEmpty(t *testing.T) {
	store := NewStore(&memorySlot{}, testLogger())
	assert.True(t, store.State().Loading)

	state := store.Restore(context.Background())

	assert.False(t, state.Loading)
	assert.Empty(t, state.Lines)
	assert.Equal(t, int64(0), state.Subtotal)
}

func TestStoreRestoreCorruptSnapshotDegradesToEmpty(t *testing.T) {
	slot := &memorySlot{value: "{not json", hasValue: true}
	store := NewStore(slot, testLogger())

	state := store.Restore(context.Background())

	assert.False(t, state.Loading)
	assert.Empty(t, state.Lines)
}

func TestStoreRestoreReadErrorDegradesToEmpty(t *testing.T) {
	slot := &memorySlot{getErr: errors.New("redis down")}
	store := NewStore(slot, testLogger())

	state := store.Restore(context.Background())

	assert.False(t, state.Loading)
	assert.Empty(t, state.Lines)
}

func TestStoreRestoreRecomputesTotals(t *testing.T) {
	// A snapshot with stale aggregates: totals come from the lines, not storage
	snapshot := `{"lines":[{"id":"item-1-single","item":{"id":"item-1","name":"Mango Lassi","single_price":500},"quantity":2,"unit_price":500,"total_price":1000}],"subtotal":9999,"item_count":42}`
	slot := &memorySlot{value: snapshot, hasValue: true}
	store := NewStore(slot, testLogger())

	state := store.Restore(context.Background())

	assert.Equal(t, int64(1000), state.Subtotal)
	assert.Equal(t, 2, state.ItemCount)
}

func TestStoreNoPersistBeforeRestore(t *testing.T) {
	ctx := context.Background()
	slot := &memorySlot{}
	store := NewStore(slot, testLogger())

	// Mutations before Restore must not clobber the durable snapshot
	store.AddItem(ctx, singleItem("item-1", 500), SizeNone, 1)

	assert.Equal(t, 0, slot.sets)
}

func TestStoreClearCartErasesSnapshotImmediately(t *testing.T) {
	ctx := context.Background()
	slot := &memorySlot{}
	store := newTestStore(slot)

	store.AddItem(ctx, singleItem("item-1", 500), SizeNone, 2)
	store.SetOrderDay(ctx, menu.OrderDayMonday)
	require.True(t, slot.hasValue)

	state := store.ClearCart(ctx)

	assert.Empty(t, state.Lines)
	assert.Equal(t, 1, slot.removes)
	assert.False(t, slot.hasValue)
}

func TestStoreMeetsMinimum(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(&memorySlot{})

	store.AddItem(ctx, sizedItem("item-1", 900, 1600), Size16oz, 1)
	assert.False(t, store.MeetsMinimum())

	store.AddItem(ctx, sizedItem("item-1", 900, 1600), Size16oz, 1)
	assert.True(t, store.MeetsMinimum())
}
