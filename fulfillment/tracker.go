// Package fulfillment tracks per-line packing completion for orders and
// gates the transition to delivered. Checklist state is admin working
// state: it lives in memory only and resets when the server restarts.
package fulfillment

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Amudhavanm/arul-jayam-farm-mart/models"
	"github.com/Amudhavanm/arul-jayam-farm-mart/order"
)

type Tracker struct {
	orders order.Repository
	log    *zap.Logger

	mu        sync.Mutex
	checklist map[string]map[string]bool // order id -> product id -> completed
}

func NewTracker(orders order.Repository, log *zap.Logger) *Tracker {
	return &Tracker{
		orders:    orders,
		log:       log,
		checklist: make(map[string]map[string]bool),
	}
}

// ToggleLine flips the completion flag of one order line and returns the
// order with checklist flags merged in. Once the order is delivered the
// checklist is frozen and toggling is a no-op.
func (t *Tracker) ToggleLine(ctx context.Context, orderID, productID string) (models.Order, error) {
	o, err := t.orders.FindByID(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}
	if o.Status == models.StatusDelivered {
		return t.WithChecklist(o), nil
	}

	t.mu.Lock()
	lines := t.checklist[orderID]
	if lines == nil {
		lines = make(map[string]bool)
		t.checklist[orderID] = lines
	}
	for _, l := range o.Lines {
		if l.Product.ID == productID {
			lines[productID] = !lines[productID]
			break
		}
	}
	t.mu.Unlock()

	return t.WithChecklist(o), nil
}

// IsOrderReady reports whether every line of the order has been checked
// off. An order with zero lines is vacuously ready.
func (t *Tracker) IsOrderReady(o models.Order) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	lines := t.checklist[o.ID.Hex()]
	for _, l := range o.Lines {
		if !lines[l.Product.ID] {
			return false
		}
	}
	return true
}

// CompleteOrder transitions the order to delivered when the checklist is
// complete. A not-ready order is left untouched and reported via the
// boolean, not an error: the UI renders that as a disabled action.
func (t *Tracker) CompleteOrder(ctx context.Context, orderID string) (models.Order, bool, error) {
	o, err := t.orders.FindByID(ctx, orderID)
	if err != nil {
		return models.Order{}, false, err
	}
	if o.Status == models.StatusDelivered {
		return t.WithChecklist(o), true, nil
	}
	if !t.IsOrderReady(o) {
		return t.WithChecklist(o), false, nil
	}

	updated, err := t.orders.UpdateStatus(ctx, orderID, models.StatusDelivered)
	if err != nil {
		return models.Order{}, false, err
	}
	t.log.Info("order fulfilled",
		zap.String("id", orderID),
		zap.String("order_id", updated.OrderID))
	return t.WithChecklist(updated), true, nil
}

// WithChecklist returns a copy of the order whose lines carry the current
// completion flags.
func (t *Tracker) WithChecklist(o models.Order) models.Order {
	t.mu.Lock()
	lines := t.checklist[o.ID.Hex()]
	merged := make([]models.OrderLine, len(o.Lines))
	for i, l := range o.Lines {
		l.Completed = lines[l.Product.ID]
		merged[i] = l
	}
	t.mu.Unlock()

	o.Lines = merged
	return o
}
