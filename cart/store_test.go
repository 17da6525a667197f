package cart

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Amudhavanm/arul-jayam-farm-mart/models"
)

type memStorage struct {
	data   map[string][]byte
	setErr error
}

func newMemStorage() *memStorage {
	return &memStorage{data: map[string][]byte{}}
}

func (m *memStorage) Get(_ context.Context, key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *memStorage) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *memStorage) Remove(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func newTestStore(t *testing.T) (*Store, *memStorage) {
	t.Helper()
	storage := newMemStorage()
	return NewStore(context.Background(), storage, "u1", zap.NewNop()), storage
}

func tractor(quantity int) AddInput {
	return AddInput{
		ProductID: "p1",
		Name:      "Mahindra 575 DI",
		UnitPrice: 385000,
		Image:     "/img/tractor.jpg",
		Quantity:  quantity,
	}
}

func TestStore_AddMergesOnProductID(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, tractor(1))
	s.Add(ctx, tractor(2))

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.False(t, lines[0].Selected)
}

func TestStore_AddColorPreservation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	in := AddInput{ProductID: "p3", Name: "Power Tiller", UnitPrice: 75000, Quantity: 2, Color: "green"}
	s.Add(ctx, in)

	in.Quantity = 1
	in.Color = ""
	s.Add(ctx, in)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "green", lines[0].Color)

	in.Quantity = 1
	in.Color = "red"
	s.Add(ctx, in)
	assert.Equal(t, "red", s.Lines()[0].Color)
}

func TestStore_AddNotifies(t *testing.T) {
	s, _ := newTestStore(t)

	var added []models.LineItem
	s.OnAdded = func(l models.LineItem) { added = append(added, l) }

	s.Add(context.Background(), tractor(2))
	require.Len(t, added, 1)
	assert.Equal(t, "p1", added[0].ProductID)
	assert.Equal(t, 2, added[0].Quantity)
}

func TestStore_RemoveAbsentIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, tractor(1))
	s.Remove(ctx, "nope")
	assert.Len(t, s.Lines(), 1)

	s.Remove(ctx, "p1")
	assert.Empty(t, s.Lines())
}

func TestStore_SetQuantity(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	s.Add(ctx, tractor(1))

	s.SetQuantity(ctx, "p1", 5)
	assert.Equal(t, 5, s.Lines()[0].Quantity)

	s.SetQuantity(ctx, "p1", 0)
	assert.Equal(t, 5, s.Lines()[0].Quantity, "quantities below 1 are ignored")

	s.SetQuantity(ctx, "p1", -3)
	assert.Equal(t, 5, s.Lines()[0].Quantity)
}

func TestStore_SelectionIndependence(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	in := tractor(2)
	in.Color = "red"
	s.Add(ctx, in)

	s.ToggleSelected(ctx, "p1")
	line := s.Lines()[0]
	assert.True(t, line.Selected)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, 385000.0, line.UnitPrice)
	assert.Equal(t, "red", line.Color)

	s.ToggleSelected(ctx, "p1")
	assert.False(t, s.Lines()[0].Selected)
}

func TestStore_SelectAll(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, tractor(1))
	s.Add(ctx, AddInput{ProductID: "p3", Name: "Power Tiller", UnitPrice: 75000, Quantity: 2})

	s.SelectAll(ctx, true)
	assert.Len(t, s.SelectedLines(), 2)

	s.SelectAll(ctx, false)
	assert.Empty(t, s.SelectedLines())
}

func TestStore_SelectedLinesKeepInsertionOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, AddInput{ProductID: "a", Name: "A", UnitPrice: 1, Quantity: 1})
	s.Add(ctx, AddInput{ProductID: "b", Name: "B", UnitPrice: 1, Quantity: 1})
	s.Add(ctx, AddInput{ProductID: "c", Name: "C", UnitPrice: 1, Quantity: 1})
	s.SelectAll(ctx, true)
	s.ToggleSelected(ctx, "b")

	selected := s.SelectedLines()
	require.Len(t, selected, 2)
	assert.Equal(t, "a", selected[0].ProductID)
	assert.Equal(t, "c", selected[1].ProductID)
}

func TestStore_DerivedTotals(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.Add(ctx, tractor(1))
	s.Add(ctx, AddInput{ProductID: "p3", Name: "Power Tiller", UnitPrice: 75000, Quantity: 2})

	assert.Equal(t, 3, s.TotalItemCount())
	assert.Equal(t, 0.0, s.SelectedSubtotal(), "nothing selected yet")

	s.ToggleSelected(ctx, "p3")
	assert.Equal(t, 150000.0, s.SelectedSubtotal())
	assert.Equal(t, 3, s.TotalItemCount(), "selection does not change counts")
}

func TestStore_PersistsEveryMutation(t *testing.T) {
	storage := newMemStorage()
	ctx := context.Background()

	s := NewStore(ctx, storage, "u1", zap.NewNop())
	s.Add(ctx, tractor(1))
	s.ToggleSelected(ctx, "p1")

	reloaded := NewStore(ctx, storage, "u1", zap.NewNop())
	lines := reloaded.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.True(t, lines[0].Selected)
}

func TestStore_CartsAreScopedPerUser(t *testing.T) {
	storage := newMemStorage()
	ctx := context.Background()

	NewStore(ctx, storage, "u1", zap.NewNop()).Add(ctx, tractor(1))

	other := NewStore(ctx, storage, "u2", zap.NewNop())
	assert.Empty(t, other.Lines())
}

func TestStore_CorruptPayloadFailsOpen(t *testing.T) {
	storage := newMemStorage()
	storage.data["cart:u1"] = []byte("{not json")

	s := NewStore(context.Background(), storage, "u1", zap.NewNop())
	assert.Empty(t, s.Lines())

	// The store stays usable after failing open.
	s.Add(context.Background(), tractor(1))
	assert.Len(t, s.Lines(), 1)
}

func TestStore_StorageFailureKeepsSessionState(t *testing.T) {
	storage := newMemStorage()
	storage.setErr = errors.New("storage down")

	s := NewStore(context.Background(), storage, "u1", zap.NewNop())
	s.Add(context.Background(), tractor(1))

	assert.Len(t, s.Lines(), 1, "in-memory state survives a failed write")
	assert.Empty(t, storage.data)
}

func TestStore_ClearEmptiesStorageToo(t *testing.T) {
	storage := newMemStorage()
	ctx := context.Background()

	s := NewStore(ctx, storage, "u1", zap.NewNop())
	s.Add(ctx, tractor(1))
	s.Clear(ctx)

	assert.Empty(t, s.Lines())

	var persisted []models.LineItem
	require.NoError(t, json.Unmarshal(orEmptyArray(storage.data["cart:u1"]), &persisted))
	assert.Empty(t, persisted)
}

func orEmptyArray(raw []byte) []byte {
	if len(raw) == 0 {
		return []byte("[]")
	}
	return raw
}
