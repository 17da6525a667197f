package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Amudhavanm/arul-jayam-farm-mart/fulfillment"
	"github.com/Amudhavanm/arul-jayam-farm-mart/logger"
	"github.com/Amudhavanm/arul-jayam-farm-mart/models"
	"github.com/Amudhavanm/arul-jayam-farm-mart/order"
)

type AdminOrderController struct {
	orders  order.Repository
	tracker *fulfillment.Tracker
}

func NewAdminOrderController(orders order.Repository, tracker *fulfillment.Tracker) *AdminOrderController {
	return &AdminOrderController{orders: orders, tracker: tracker}
}

// ListAll returns every order, most recent first, with fulfillment
// checklist flags and readiness merged in for the admin view.
func (ac *AdminOrderController) ListAll(c *gin.Context) {
	orders, err := ac.orders.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	data := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		data = append(data, gin.H{
			"order": ac.tracker.WithChecklist(o),
			"ready": ac.tracker.IsOrderReady(o),
		})
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": data})
}

func (ac *AdminOrderController) GetOrder(c *gin.Context) {
	o, err := ac.orders.FindByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, order.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Fetch success",
		"data":    ac.tracker.WithChecklist(o),
		"ready":   ac.tracker.IsOrderReady(o),
	})
}

// UpdateStatus moves an order along pending -> processing -> shipped ->
// delivered, or to cancelled from any non-terminal state.
func (ac *AdminOrderController) UpdateStatus(c *gin.Context) {
	var body struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || !body.Status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

	existing, err := ac.orders.FindByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, order.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	if !existing.Status.CanTransitionTo(body.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Cannot change status from %s to %s", existing.Status, body.Status),
		})
		return
	}

	updated, err := ac.orders.UpdateStatus(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	logger.FromGin(c).Info("order status updated",
		zap.String("id", updated.ID.Hex()),
		zap.String("order_id", updated.OrderID),
		zap.String("from", existing.Status.String()),
		zap.String("to", updated.Status.String()))

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "data": updated})
}

// Cancel moves a non-terminal order to cancelled.
func (ac *AdminOrderController) Cancel(c *gin.Context) {
	existing, err := ac.orders.FindByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, order.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	if existing.Status.IsTerminal() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order cannot be cancelled"})
		return
	}

	updated, err := ac.orders.UpdateStatus(c.Request.Context(), c.Param("id"), models.StatusCancelled)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled", "data": updated})
}

// ToggleFulfillment flips one line's packing checkbox.
func (ac *AdminOrderController) ToggleFulfillment(c *gin.Context) {
	o, err := ac.tracker.ToggleLine(c.Request.Context(), c.Param("id"), c.Param("productId"))
	if errors.Is(err, order.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update checklist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Checklist updated",
		"data":    o,
		"ready":   ac.tracker.IsOrderReady(o),
	})
}

// CompleteOrder marks a fully checked-off order as delivered. A not-ready
// order is reported back unchanged.
func (ac *AdminOrderController) CompleteOrder(c *gin.Context) {
	o, completed, err := ac.tracker.CompleteOrder(c.Request.Context(), c.Param("id"))
	if errors.Is(err, order.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete order"})
		return
	}
	if !completed {
		c.JSON(http.StatusOK, gin.H{
			"message": "Order is not ready for delivery",
			"data":    o,
			"ready":   false,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order marked as delivered", "data": o, "ready": true})
}
