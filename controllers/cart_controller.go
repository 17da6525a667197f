package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Amudhavanm/arul-jayam-farm-mart/cart"
	"github.com/Amudhavanm/arul-jayam-farm-mart/logger"
	"github.com/Amudhavanm/arul-jayam-farm-mart/middleware"
	"github.com/Amudhavanm/arul-jayam-farm-mart/models"
	"github.com/Amudhavanm/arul-jayam-farm-mart/pricing"
	"github.com/Amudhavanm/arul-jayam-farm-mart/product"
)

type CartController struct {
	products              product.Repository
	storage               cart.Storage
	freeShippingThreshold float64
	flatShippingFee       float64
}

func NewCartController(products product.Repository, storage cart.Storage, freeShippingThreshold, flatShippingFee float64) *CartController {
	return &CartController{
		products:              products,
		storage:               storage,
		freeShippingThreshold: freeShippingThreshold,
		flatShippingFee:       flatShippingFee,
	}
}

// store loads the request user's cart from durable storage.
func (cc *CartController) store(c *gin.Context) *cart.Store {
	user, _ := middleware.CurrentUser(c)
	return cart.NewStore(c.Request.Context(), cc.storage, user.ID, logger.FromGin(c))
}

func (cc *CartController) cartResponse(s *cart.Store) gin.H {
	return gin.H{
		"lines":      s.Lines(),
		"totalItems": s.TotalItemCount(),
		"totals":     pricing.ComputeTotals(s.SelectedLines(), cc.freeShippingThreshold, cc.flatShippingFee),
	}
}

func (cc *CartController) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "data": cc.cartResponse(cc.store(c))})
}

// AddToCart resolves the product and merges it into the cart. The same
// product added twice merges into one line.
func (cc *CartController) AddToCart(c *gin.Context) {
	var body struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
		Color     string `json:"color"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	p, err := cc.products.FindByID(c.Request.Context(), body.ProductID)
	if errors.Is(err, product.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	s := cc.store(c)
	s.OnAdded = func(l models.LineItem) {
		logger.FromGin(c).Info("added to cart",
			zap.String("product_id", l.ProductID),
			zap.Int("quantity", l.Quantity))
	}
	s.Add(c.Request.Context(), cart.AddInput{
		ProductID: p.ID.Hex(),
		Name:      p.Name,
		UnitPrice: p.Price,
		Image:     p.Image,
		Quantity:  body.Quantity,
		Color:     body.Color,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Added to cart", "data": cc.cartResponse(s)})
}

// UpdateQuantity overwrites a line's quantity. Quantities below 1 leave
// the line unchanged.
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	var body struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
		return
	}

	s := cc.store(c)
	s.SetQuantity(c.Request.Context(), c.Param("productId"), body.Quantity)
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "data": cc.cartResponse(s)})
}

func (cc *CartController) RemoveFromCart(c *gin.Context) {
	s := cc.store(c)
	s.Remove(c.Request.Context(), c.Param("productId"))
	c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart", "data": cc.cartResponse(s)})
}

// ToggleSelect flips a line's inclusion in the next checkout.
func (cc *CartController) ToggleSelect(c *gin.Context) {
	s := cc.store(c)
	s.ToggleSelected(c.Request.Context(), c.Param("productId"))
	c.JSON(http.StatusOK, gin.H{"message": "Selection updated", "data": cc.cartResponse(s)})
}

func (cc *CartController) SelectAll(c *gin.Context) {
	var body struct {
		Selected *bool `json:"selected" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	s := cc.store(c)
	s.SelectAll(c.Request.Context(), *body.Selected)
	c.JSON(http.StatusOK, gin.H{"message": "Selection updated", "data": cc.cartResponse(s)})
}

func (cc *CartController) ClearCart(c *gin.Context) {
	s := cc.store(c)
	s.Clear(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared", "data": cc.cartResponse(s)})
}
