package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Amudhavanm/arul-jayam-farm-mart/config"
	"github.com/Amudhavanm/arul-jayam-farm-mart/controllers"
	"github.com/Amudhavanm/arul-jayam-farm-mart/database"
	"github.com/Amudhavanm/arul-jayam-farm-mart/fulfillment"
	"github.com/Amudhavanm/arul-jayam-farm-mart/logger"
	"github.com/Amudhavanm/arul-jayam-farm-mart/middleware"
	"github.com/Amudhavanm/arul-jayam-farm-mart/order"
	"github.com/Amudhavanm/arul-jayam-farm-mart/pricing"
	"github.com/Amudhavanm/arul-jayam-farm-mart/product"
	"github.com/Amudhavanm/arul-jayam-farm-mart/recent"
	"github.com/Amudhavanm/arul-jayam-farm-mart/routes"
)

func main() {
	config.LoadEnv()

	env := config.GetEnv("APP_ENV", "development")
	log, err := logger.New(env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.Connect(
		config.GetEnv("MONGO_URI", "mongodb://localhost:27017"),
		config.GetEnv("DB_NAME", "farmmart"),
	)
	if err != nil {
		log.Fatal("mongodb connection failed", zap.Error(err))
	}
	log.Info("connected to mongodb")

	secret := config.GetEnv("JWT_SECRET", "")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	threshold := config.GetEnvFloat("FREE_SHIPPING_THRESHOLD", pricing.DefaultFreeShippingThreshold)
	fee := config.GetEnvFloat("SHIPPING_FEE", pricing.DefaultFlatShippingFee)

	kv := database.NewKVStore(db)
	products := product.NewMongoRepository(db)
	orders := order.NewMongoRepository(db)
	composer := order.NewComposer(orders, threshold, fee, log)
	tracker := fulfillment.NewTracker(orders, log)
	recentList := recent.NewList(kv, log)
	auth := middleware.NewAuth(secret, db)

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.SetTrustedProxies(nil)
	r.Use(logger.Recovery(log))
	r.Use(logger.GinMiddleware(log))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = []string{config.GetEnv("FRONTEND_ORIGIN", "http://localhost:5173")}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	routes.Register(r, auth, routes.Controllers{
		Auth:        controllers.NewAuthController(db, auth, secret),
		Products:    controllers.NewProductController(products, recentList),
		Cart:        controllers.NewCartController(products, kv, threshold, fee),
		Orders:      controllers.NewOrderController(composer, orders, kv),
		AdminOrders: controllers.NewAdminOrderController(orders, tracker),
	})

	port := config.GetEnv("PORT", "8080")
	log.Info("listening", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
