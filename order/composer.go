// Package order turns selected cart lines into persisted orders and owns
// the order status lifecycle.
package order

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Amudhavanm/arul-jayam-farm-mart/models"
	"github.com/Amudhavanm/arul-jayam-farm-mart/pricing"
)

// Payment methods recorded on an order. Payment is recorded, not processed.
const (
	PaymentUPI        = "upi"
	PaymentNetbanking = "netbanking"
	PaymentCOD        = "cod"
)

// ValidationError reports what was missing or empty in a checkout
// submission. Nothing is mutated and the repository is never contacted
// when validation fails.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid order: " + strings.Join(e.Problems, ", ")
}

// LineRemover is the slice of the cart the composer needs after a
// successful submission.
type LineRemover interface {
	Remove(ctx context.Context, productID string)
}

// Composer builds an immutable order from selected cart lines, submits it
// and clears the consumed lines on success.
type Composer struct {
	repo                  Repository
	freeShippingThreshold float64
	flatShippingFee       float64
	log                   *zap.Logger

	now func() time.Time
}

func NewComposer(repo Repository, freeShippingThreshold, flatShippingFee float64, log *zap.Logger) *Composer {
	return &Composer{
		repo:                  repo,
		freeShippingThreshold: freeShippingThreshold,
		flatShippingFee:       flatShippingFee,
		log:                   log,
		now:                   time.Now,
	}
}

// PlaceOrder validates the address and selection, computes totals, builds
// the order snapshot and submits it. On success every submitted line is
// removed from the cart and the stored order is returned. On persistence
// failure the error is surfaced verbatim and the cart is left untouched.
func (c *Composer) PlaceOrder(
	ctx context.Context,
	user models.AuthUser,
	selected []models.LineItem,
	address models.ShippingAddress,
	paymentMethod string,
	lines LineRemover,
) (models.Order, error) {
	if err := validate(selected, address, paymentMethod); err != nil {
		return models.Order{}, err
	}

	totals := pricing.ComputeTotals(selected, c.freeShippingThreshold, c.flatShippingFee)

	draft := models.Order{
		User: models.UserSnapshot{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
		Lines:           snapshotLines(selected),
		ShippingAddress: trimAddress(address),
		PaymentMethod:   paymentMethod,
		TotalAmount:     totals.Total,
		Status:          models.StatusPending,
		OrderID:         NewDisplayOrderID(),
		CreatedAt:       c.now(),
	}

	stored, err := c.repo.Create(ctx, draft)
	if err != nil {
		c.log.Error("order submission failed",
			zap.String("user_id", user.ID),
			zap.Error(err))
		return models.Order{}, err
	}

	for _, l := range selected {
		lines.Remove(ctx, l.ProductID)
	}

	c.log.Info("order placed",
		zap.String("order_id", stored.OrderID),
		zap.String("id", stored.ID.Hex()),
		zap.String("user_id", user.ID),
		zap.Float64("total", stored.TotalAmount),
		zap.Int("lines", len(stored.Lines)))

	return stored, nil
}

func validate(selected []models.LineItem, address models.ShippingAddress, paymentMethod string) error {
	var problems []string
	if len(selected) == 0 {
		problems = append(problems, "no items selected")
	}
	for _, f := range []struct{ name, value string }{
		{"doorNumber", address.DoorNumber},
		{"street", address.Street},
		{"city", address.City},
		{"state", address.State},
		{"pincode", address.Pincode},
	} {
		if strings.TrimSpace(f.value) == "" {
			problems = append(problems, f.name+" is required")
		}
	}
	switch paymentMethod {
	case PaymentUPI, PaymentNetbanking, PaymentCOD:
	default:
		problems = append(problems, "unknown payment method")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// snapshotLines freezes the selected cart lines. Later cart mutations
// never reach a placed order.
func snapshotLines(selected []models.LineItem) []models.OrderLine {
	out := make([]models.OrderLine, 0, len(selected))
	for _, l := range selected {
		out = append(out, models.OrderLine{
			Product: models.ProductSnapshot{
				ID:    l.ProductID,
				Name:  l.Name,
				Price: l.UnitPrice,
				Image: l.Image,
			},
			Quantity: l.Quantity,
			Color:    l.Color,
		})
	}
	return out
}

func trimAddress(a models.ShippingAddress) models.ShippingAddress {
	return models.ShippingAddress{
		DoorNumber: strings.TrimSpace(a.DoorNumber),
		Street:     strings.TrimSpace(a.Street),
		City:       strings.TrimSpace(a.City),
		State:      strings.TrimSpace(a.State),
		Pincode:    strings.TrimSpace(a.Pincode),
	}
}

// NewDisplayOrderID returns a human-facing label like ORD0042. It is for
// display only and not unique: collisions are possible and the stored
// ObjectID remains the durable key.
func NewDisplayOrderID() string {
	return fmt.Sprintf("ORD%04d", rand.Intn(10000))
}
