// Package cart holds the canonical line-item collection for one browsing
// session. The collection lives in durable key-value storage under a fixed
// per-user key, so it survives reloads; every mutation writes the whole
// collection back synchronously.
package cart

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/Amudhavanm/arul-jayam-farm-mart/models"
)

// Storage is the durable key-value contract the store persists through.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Store owns the cart lines of a single user. One line per product:
// adding an existing product merges quantities instead of appending.
type Store struct {
	storage Storage
	key     string
	log     *zap.Logger
	lines   []models.LineItem

	// OnAdded, when set, is invoked after every successful Add.
	OnAdded func(models.LineItem)
}

// NewStore loads the user's cart from storage. A missing key yields an
// empty cart; an unparseable payload also yields an empty cart (logged,
// never surfaced to the user).
func NewStore(ctx context.Context, storage Storage, userID string, log *zap.Logger) *Store {
	s := &Store{
		storage: storage,
		key:     "cart:" + userID,
		log:     log,
	}
	raw, err := storage.Get(ctx, s.key)
	if err != nil {
		log.Warn("cart load failed, starting empty", zap.String("key", s.key), zap.Error(err))
		return s
	}
	if len(raw) == 0 {
		return s
	}
	if err := json.Unmarshal(raw, &s.lines); err != nil {
		log.Warn("cart payload unparseable, starting empty", zap.String("key", s.key), zap.Error(err))
		s.lines = nil
	}
	return s
}

// AddInput is a product plus the quantity and color chosen on the
// product page.
type AddInput struct {
	ProductID string
	Name      string
	UnitPrice float64
	Image     string
	Quantity  int
	Color     string
}

// Add merges into an existing line for the same product (quantity summed,
// color overwritten only when the incoming color is non-empty) or appends
// a new unselected line.
func (s *Store) Add(ctx context.Context, in AddInput) {
	if in.Quantity < 1 {
		in.Quantity = 1
	}
	merged := false
	for i := range s.lines {
		if s.lines[i].ProductID == in.ProductID {
			s.lines[i].Quantity += in.Quantity
			if in.Color != "" {
				s.lines[i].Color = in.Color
			}
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, models.LineItem{
			ProductID: in.ProductID,
			Name:      in.Name,
			UnitPrice: in.UnitPrice,
			Image:     in.Image,
			Quantity:  in.Quantity,
			Color:     in.Color,
			Selected:  false,
		})
	}
	s.persist(ctx)

	if s.OnAdded != nil {
		s.OnAdded(s.find(in.ProductID))
	}
}

// Remove deletes the line for the product. Absent product is a no-op.
func (s *Store) Remove(ctx context.Context, productID string) {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// SetQuantity overwrites the line's quantity. Quantities below 1 are
// silently ignored.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = quantity
			s.persist(ctx)
			return
		}
	}
}

// ToggleSelected flips the line's selection flag. Quantity, price and
// color are untouched.
func (s *Store) ToggleSelected(ctx context.Context, productID string) {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Selected = !s.lines[i].Selected
			s.persist(ctx)
			return
		}
	}
}

// SelectAll sets every line's selection flag.
func (s *Store) SelectAll(ctx context.Context, selected bool) {
	for i := range s.lines {
		s.lines[i].Selected = selected
	}
	s.persist(ctx)
}

// Clear empties the whole cart.
func (s *Store) Clear(ctx context.Context) {
	s.lines = nil
	s.persist(ctx)
}

// Lines returns a copy of all lines in insertion order.
func (s *Store) Lines() []models.LineItem {
	out := make([]models.LineItem, len(s.lines))
	copy(out, s.lines)
	return out
}

// SelectedLines returns copies of the selected lines in insertion order.
func (s *Store) SelectedLines() []models.LineItem {
	var out []models.LineItem
	for _, l := range s.lines {
		if l.Selected {
			out = append(out, l)
		}
	}
	return out
}

// TotalItemCount sums quantities across all lines, selected or not.
func (s *Store) TotalItemCount() int {
	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// SelectedSubtotal sums unit price times quantity over selected lines.
func (s *Store) SelectedSubtotal() float64 {
	subtotal := 0.0
	for _, l := range s.lines {
		if l.Selected {
			subtotal += l.UnitPrice * float64(l.Quantity)
		}
	}
	return subtotal
}

func (s *Store) find(productID string) models.LineItem {
	for _, l := range s.lines {
		if l.ProductID == productID {
			return l
		}
	}
	return models.LineItem{}
}

// persist writes the full collection back. Storage failures are logged
// and the in-memory state stays authoritative for the session.
func (s *Store) persist(ctx context.Context) {
	raw, err := json.Marshal(s.lines)
	if err != nil {
		s.log.Error("cart marshal failed", zap.String("key", s.key), zap.Error(err))
		return
	}
	if err := s.storage.Set(ctx, s.key, raw); err != nil {
		s.log.Error("cart persist failed", zap.String("key", s.key), zap.Error(err))
	}
}
