package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Amudhavanm/arul-jayam-farm-mart/controllers"
	"github.com/Amudhavanm/arul-jayam-farm-mart/middleware"
)

type Controllers struct {
	Auth        *controllers.AuthController
	Products    *controllers.ProductController
	Cart        *controllers.CartController
	Orders      *controllers.OrderController
	AdminOrders *controllers.AdminOrderController
}

func Register(r *gin.Engine, auth *middleware.Auth, c Controllers) {
	api := r.Group("/api")
	{
		api.POST("/register", c.Auth.Register)
		api.POST("/login", c.Auth.Login)
		api.POST("/logout", c.Auth.Logout)

		protected := api.Group("/")
		protected.Use(auth.RequireUser())
		{
			admin := protected.Group("/admin")
			admin.Use(auth.RequireAdmin())
			{
				admin.POST("/products", c.Products.Create)
				admin.PUT("/products/:id", c.Products.Update)
				admin.DELETE("/products/:id", c.Products.Delete)
				admin.GET("/products", c.Products.List)

				admin.GET("/orders", c.AdminOrders.ListAll)
				admin.GET("/orders/:id", c.AdminOrders.GetOrder)
				admin.PUT("/orders/:id/status", c.AdminOrders.UpdateStatus)
				admin.PUT("/orders/:id/cancel", c.AdminOrders.Cancel)
				admin.PUT("/orders/:id/fulfillment/:productId", c.AdminOrders.ToggleFulfillment)
				admin.POST("/orders/:id/complete", c.AdminOrders.CompleteOrder)
			}

			user := protected.Group("/user")
			{
				user.GET("/profile", c.Auth.Profile)

				user.GET("/products", c.Products.List)
				user.GET("/products/:id", c.Products.GetByID)
				user.GET("/recently-viewed", c.Products.RecentlyViewed)

				user.GET("/cart", c.Cart.GetCart)
				user.POST("/cart", c.Cart.AddToCart)
				user.PUT("/cart/select-all", c.Cart.SelectAll)
				user.PUT("/cart/:productId", c.Cart.UpdateQuantity)
				user.PUT("/cart/:productId/select", c.Cart.ToggleSelect)
				user.DELETE("/cart/:productId", c.Cart.RemoveFromCart)
				user.DELETE("/cart", c.Cart.ClearCart)

				user.POST("/checkout", c.Orders.Checkout)
				user.GET("/orders", c.Orders.MyOrders)
				user.GET("/orders/:id", c.Orders.GetOrder)
				user.GET("/orders/:id/summary", c.Orders.Summary)
			}
		}
	}
}
