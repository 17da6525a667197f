package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Amudhavanm/arul-jayam-farm-mart/logger"
	"github.com/Amudhavanm/arul-jayam-farm-mart/middleware"
	"github.com/Amudhavanm/arul-jayam-farm-mart/models"
	"github.com/Amudhavanm/arul-jayam-farm-mart/product"
	"github.com/Amudhavanm/arul-jayam-farm-mart/recent"
)

type ProductController struct {
	products product.Repository
	recent   *recent.List
}

func NewProductController(products product.Repository, recentList *recent.List) *ProductController {
	return &ProductController{products: products, recent: recentList}
}

// List serves the storefront catalog with optional category, search and
// price filters.
func (pc *ProductController) List(c *gin.Context) {
	filter := product.Filter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if v := c.Query("minPrice"); v != "" {
		filter.MinPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := c.Query("maxPrice"); v != "" {
		filter.MaxPrice, _ = strconv.ParseFloat(v, 64)
	}

	products, err := pc.products.Find(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Fetch success",
		"count":    len(products),
		"products": products,
	})
}

// GetByID serves the product detail page and records the view in the
// user's recently-viewed ring.
func (pc *ProductController) GetByID(c *gin.Context) {
	p, err := pc.products.FindByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, product.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	if user, ok := middleware.CurrentUser(c); ok {
		pc.recent.Record(c.Request.Context(), user.ID, p.ID.Hex())
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "product": p})
}

// RecentlyViewed resolves the user's recently-viewed ring to products.
// Products deleted since the view are skipped.
func (pc *ProductController) RecentlyViewed(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	products := []models.Product{}
	for _, id := range pc.recent.IDs(c.Request.Context(), user.ID) {
		p, err := pc.products.FindByID(c.Request.Context(), id)
		if err != nil {
			continue
		}
		products = append(products, p)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "products": products})
}

func (pc *ProductController) Create(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	created, err := pc.products.Create(c.Request.Context(), p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	logger.FromGin(c).Info("product created",
		zap.String("product_id", created.ID.Hex()),
		zap.String("name", created.Name))

	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": created})
}

func (pc *ProductController) Update(c *gin.Context) {
	var update product.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updated, err := pc.products.Update(c.Request.Context(), c.Param("id"), update)
	if errors.Is(err, product.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": updated})
}

func (pc *ProductController) Delete(c *gin.Context) {
	err := pc.products.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, product.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
