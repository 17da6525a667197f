package order

import (
	"context"
	"errors"

	"github.com/Amudhavanm/arul-jayam-farm-mart/models"
)

// ErrNotFound is returned when no order matches the given identifier.
var ErrNotFound = errors.New("order not found")

// Repository persists orders. Orders are never deleted; only the status
// field changes after creation.
type Repository interface {
	// Create stores the draft and returns the stored copy carrying the
	// server-assigned identifier.
	Create(ctx context.Context, draft models.Order) (models.Order, error)
	FindByID(ctx context.Context, id string) (models.Order, error)
	// FindByUser returns the user's orders, most recent first.
	FindByUser(ctx context.Context, userID string) ([]models.Order, error)
	// FindAll returns every order, most recent first.
	FindAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error)
}
