package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Amudhavanm/arul-jayam-farm-mart/cart"
	"github.com/Amudhavanm/arul-jayam-farm-mart/logger"
	"github.com/Amudhavanm/arul-jayam-farm-mart/middleware"
	"github.com/Amudhavanm/arul-jayam-farm-mart/models"
	"github.com/Amudhavanm/arul-jayam-farm-mart/order"
)

type OrderController struct {
	composer *order.Composer
	orders   order.Repository
	storage  cart.Storage
}

func NewOrderController(composer *order.Composer, orders order.Repository, storage cart.Storage) *OrderController {
	return &OrderController{composer: composer, orders: orders, storage: storage}
}

// Checkout places an order from the cart's selected lines. Validation
// failures return 400 with the list of problems; persistence failures
// leave the cart untouched.
func (oc *OrderController) Checkout(c *gin.Context) {
	var body struct {
		ShippingAddress models.ShippingAddress `json:"shippingAddress"`
		PaymentMethod   string                 `json:"paymentMethod" binding:"required,oneof=upi netbanking cod"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, _ := middleware.CurrentUser(c)
	s := cart.NewStore(c.Request.Context(), oc.storage, user.ID, logger.FromGin(c))

	placed, err := oc.composer.PlaceOrder(
		c.Request.Context(),
		user,
		s.SelectedLines(),
		body.ShippingAddress,
		body.PaymentMethod,
		s,
	)
	var vErr *order.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order", "problems": vErr.Problems})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Order placed", "order": placed})
}

// MyOrders returns the user's orders, most recent first.
func (oc *OrderController) MyOrders(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	orders, err := oc.orders.FindByUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": orders})
}

// GetOrder returns one order, visible to its owner and to admins.
func (oc *OrderController) GetOrder(c *gin.Context) {
	o, ok := oc.authorizedOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": o})
}

// Summary returns a plain-text order summary. A printable PDF is not
// generated here; this is the downloadable stand-in.
func (oc *OrderController) Summary(c *gin.Context) {
	o, ok := oc.authorizedOrder(c)
	if !ok {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Order %s (%s)\n", o.OrderID, o.Status)
	fmt.Fprintf(&b, "Placed: %s\n", o.CreatedAt.Format("02 Jan 2006 15:04"))
	fmt.Fprintf(&b, "Customer: %s <%s>\n\n", o.User.Username, o.User.Email)
	for _, l := range o.Lines {
		fmt.Fprintf(&b, "%d x %s", l.Quantity, l.Product.Name)
		if l.Color != "" {
			fmt.Fprintf(&b, " (%s)", l.Color)
		}
		fmt.Fprintf(&b, " @ %.0f\n", l.Product.Price)
	}
	fmt.Fprintf(&b, "\nShip to: %s, %s, %s, %s %s\n",
		o.ShippingAddress.DoorNumber, o.ShippingAddress.Street,
		o.ShippingAddress.City, o.ShippingAddress.State, o.ShippingAddress.Pincode)
	fmt.Fprintf(&b, "Payment: %s\n", o.PaymentMethod)
	fmt.Fprintf(&b, "Total: %.0f\n", o.TotalAmount)

	c.String(http.StatusOK, b.String())
}

func (oc *OrderController) authorizedOrder(c *gin.Context) (models.Order, bool) {
	o, err := oc.orders.FindByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, order.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return models.Order{}, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return models.Order{}, false
	}

	user, _ := middleware.CurrentUser(c)
	if !user.IsAdmin && o.User.ID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return models.Order{}, false
	}
	return o, true
}
