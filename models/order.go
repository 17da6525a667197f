package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the lifecycle state of a placed order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the forward-only admin flow
// pending -> processing -> shipped -> delivered permits the move.
// Cancellation is reachable from any non-terminal state.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if target == StatusCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case StatusPending:
		return target == StatusProcessing
	case StatusProcessing:
		return target == StatusShipped
	case StatusShipped:
		return target == StatusDelivered
	}
	return false
}

// UserSnapshot identifies the buyer as they were at submission time.
type UserSnapshot struct {
	ID       string `bson:"id" json:"id"`
	Username string `bson:"username" json:"username"`
	Email    string `bson:"email" json:"email"`
}

// OrderLine is a frozen copy of a selected cart line. Completed is the
// admin-side fulfillment flag; it lives on the wire type so checklist state
// can be merged into admin responses.
type OrderLine struct {
	Product   ProductSnapshot `bson:"product" json:"product"`
	Quantity  int             `bson:"quantity" json:"quantity"`
	Color     string          `bson:"color,omitempty" json:"color,omitempty"`
	Completed bool            `bson:"-" json:"completed"`
}

type ShippingAddress struct {
	DoorNumber string `bson:"doorNumber" json:"doorNumber"`
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	Pincode    string `bson:"pincode" json:"pincode"`
}

// Order is created once at checkout and never deleted. Only Status changes
// afterwards (admin-driven). OrderID is the human-facing display label;
// the Mongo ObjectID is the durable key.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User            UserSnapshot       `bson:"user" json:"user"`
	Lines           []OrderLine        `bson:"lines" json:"lines"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	TotalAmount     float64            `bson:"totalAmount" json:"totalAmount"`
	Status          OrderStatus        `bson:"status" json:"status"`
	OrderID         string             `bson:"orderId" json:"orderId"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
