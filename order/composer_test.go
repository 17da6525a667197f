package order

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/Amudhavanm/arul-jayam-farm-mart/models"
	"github.com/Amudhavanm/arul-jayam-farm-mart/pricing"
)

type fakeRepo struct {
	created   []models.Order
	createErr error
}

func (f *fakeRepo) Create(_ context.Context, draft models.Order) (models.Order, error) {
	if f.createErr != nil {
		return models.Order{}, f.createErr
	}
	draft.ID = primitive.NewObjectID()
	f.created = append(f.created, draft)
	return draft, nil
}

func (f *fakeRepo) FindByID(context.Context, string) (models.Order, error) {
	return models.Order{}, ErrNotFound
}

func (f *fakeRepo) FindByUser(context.Context, string) ([]models.Order, error) { return nil, nil }

func (f *fakeRepo) FindAll(context.Context) ([]models.Order, error) { return nil, nil }

func (f *fakeRepo) UpdateStatus(context.Context, string, models.OrderStatus) (models.Order, error) {
	return models.Order{}, ErrNotFound
}

type fakeRemover struct {
	removed []string
}

func (f *fakeRemover) Remove(_ context.Context, productID string) {
	f.removed = append(f.removed, productID)
}

var testUser = models.AuthUser{ID: "u1", Username: "arul", Email: "arul@example.com"}

func testAddress() models.ShippingAddress {
	return models.ShippingAddress{
		DoorNumber: "42",
		Street:     "Main Street",
		City:       "Chennai",
		State:      "Tamil Nadu",
		Pincode:    "600001",
	}
}

func testLines() []models.LineItem {
	return []models.LineItem{
		{ProductID: "1", Name: "Mahindra 575 DI", UnitPrice: 385000, Image: "/img/1.jpg", Quantity: 1, Selected: true},
		{ProductID: "3", Name: "Power Tiller", UnitPrice: 75000, Image: "/img/3.jpg", Quantity: 2, Color: "green", Selected: true},
	}
}

func newTestComposer(repo Repository) *Composer {
	return NewComposer(repo, pricing.DefaultFreeShippingThreshold, pricing.DefaultFlatShippingFee, zap.NewNop())
}

func TestPlaceOrder_Success(t *testing.T) {
	repo := &fakeRepo{}
	remover := &fakeRemover{}
	c := newTestComposer(repo)
	c.now = func() time.Time { return time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC) }

	placed, err := c.PlaceOrder(context.Background(), testUser, testLines(), testAddress(), PaymentCOD, remover)
	require.NoError(t, err)

	assert.False(t, placed.ID.IsZero(), "stored copy carries the server identifier")
	assert.Equal(t, models.StatusPending, placed.Status)
	assert.Equal(t, 535000.0, placed.TotalAmount, "above threshold, no shipping fee")
	assert.Equal(t, "cod", placed.PaymentMethod)
	assert.Equal(t, time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC), placed.CreatedAt)

	assert.Equal(t, models.UserSnapshot{ID: "u1", Username: "arul", Email: "arul@example.com"}, placed.User)

	require.Len(t, placed.Lines, 2)
	assert.Equal(t, "Mahindra 575 DI", placed.Lines[0].Product.Name)
	assert.Equal(t, 385000.0, placed.Lines[0].Product.Price)
	assert.Equal(t, 2, placed.Lines[1].Quantity)
	assert.Equal(t, "green", placed.Lines[1].Color)

	assert.Equal(t, []string{"1", "3"}, remover.removed, "submitted lines cleared from the cart")
	require.Len(t, repo.created, 1)
}

func TestPlaceOrder_ShippingFeeBelowThreshold(t *testing.T) {
	repo := &fakeRepo{}
	c := newTestComposer(repo)

	lines := []models.LineItem{{ProductID: "5", Name: "Sprayer", UnitPrice: 5000, Quantity: 1, Selected: true}}
	placed, err := c.PlaceOrder(context.Background(), testUser, lines, testAddress(), PaymentUPI, &fakeRemover{})
	require.NoError(t, err)
	assert.Equal(t, 5500.0, placed.TotalAmount)
}

func TestPlaceOrder_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.ShippingAddress)
		lines   []models.LineItem
		payment string
		problem string
	}{
		{
			name:    "missing street",
			mutate:  func(a *models.ShippingAddress) { a.Street = "   " },
			lines:   testLines(),
			payment: PaymentCOD,
			problem: "street is required",
		},
		{
			name:    "missing pincode",
			mutate:  func(a *models.ShippingAddress) { a.Pincode = "" },
			lines:   testLines(),
			payment: PaymentCOD,
			problem: "pincode is required",
		},
		{
			name:    "empty selection",
			mutate:  func(*models.ShippingAddress) {},
			lines:   nil,
			payment: PaymentCOD,
			problem: "no items selected",
		},
		{
			name:    "unknown payment method",
			mutate:  func(*models.ShippingAddress) {},
			lines:   testLines(),
			payment: "cheque",
			problem: "unknown payment method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			remover := &fakeRemover{}
			c := newTestComposer(repo)

			addr := testAddress()
			tt.mutate(&addr)

			_, err := c.PlaceOrder(context.Background(), testUser, tt.lines, addr, tt.payment, remover)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Problems, tt.problem)
			assert.Empty(t, repo.created, "repository is not contacted on validation failure")
			assert.Empty(t, remover.removed, "cart untouched on validation failure")
		})
	}
}

func TestPlaceOrder_PersistenceFailureLeavesCartUntouched(t *testing.T) {
	repoErr := errors.New("orders collection unavailable")
	repo := &fakeRepo{createErr: repoErr}
	remover := &fakeRemover{}
	c := newTestComposer(repo)

	_, err := c.PlaceOrder(context.Background(), testUser, testLines(), testAddress(), PaymentNetbanking, remover)

	assert.ErrorIs(t, err, repoErr, "persistence failure surfaces verbatim")
	assert.Empty(t, remover.removed)
}

func TestPlaceOrder_OrderIsSnapshotOfSelection(t *testing.T) {
	repo := &fakeRepo{}
	c := newTestComposer(repo)

	lines := testLines()
	placed, err := c.PlaceOrder(context.Background(), testUser, lines, testAddress(), PaymentCOD, &fakeRemover{})
	require.NoError(t, err)

	// Later cart mutations never reach the placed order.
	lines[0].Quantity = 99
	lines[1].Color = "yellow"

	assert.Equal(t, 1, placed.Lines[0].Quantity)
	assert.Equal(t, "green", placed.Lines[1].Color)
	assert.Equal(t, 1, repo.created[0].Lines[0].Quantity)
}

func TestNewDisplayOrderID_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD\d{4}$`)
	for i := 0; i < 100; i++ {
		id := NewDisplayOrderID()
		assert.True(t, pattern.MatchString(id), "unexpected display id %q", id)
	}
}
