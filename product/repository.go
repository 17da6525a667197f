// Package product is the catalog's single source of truth, injected into
// both the storefront and the admin handlers.
package product

import (
	"context"
	"errors"

	"github.com/Amudhavanm/arul-jayam-farm-mart/models"
)

// ErrNotFound is returned when no product matches the given identifier.
var ErrNotFound = errors.New("product not found")

// Filter narrows a catalog listing. Zero values mean "no constraint".
type Filter struct {
	Category string
	Search   string
	MinPrice float64
	MaxPrice float64
}

type Repository interface {
	Create(ctx context.Context, p models.Product) (models.Product, error)
	Update(ctx context.Context, id string, update Update) (models.Product, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (models.Product, error)
	Find(ctx context.Context, filter Filter) ([]models.Product, error)
}

// Update carries the admin-editable fields; nil means "leave unchanged".
type Update struct {
	Name           *string   `json:"name"`
	Description    *string   `json:"description"`
	Price          *float64  `json:"price"`
	Image          *string   `json:"image"`
	Images         *[]string `json:"images"`
	Category       *string   `json:"category" binding:"omitempty,oneof=tractors harvesters tillers seeders sprayers"`
	Colors         *[]string `json:"colors"`
	Specifications *[]string `json:"specifications"`
	Stock          *int      `json:"stock"`
	Rating         *float64  `json:"rating"`
}
