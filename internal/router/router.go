package router

import (
	"net/http"
	"time"

	"storefront-service/internal/handlers"
	"storefront-service/internal/metrics"
	"storefront-service/internal/middleware"
	"storefront-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Deps struct {
	Orders        service.OrderService
	Tracking      service.TrackingService
	Notifications service.NotificationService
	ApiConfigs    service.ApiConfigService
	Support       service.SupportService
	Carts         service.CartService // nil: корзины выключены (нет Redis)
	Auth          *service.AuthService
	Metrics       *metrics.Metrics
	CORSOrigins   []string
}

func Router(d Deps, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}

	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", middleware.SessionHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !(len(origins) == 1 && origins[0] == "*"),
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	orderH := handlers.NewOrderHandler(d.Orders, d.Tracking, d.Notifications, log)
	cfgH := handlers.NewApiConfigHandler(d.ApiConfigs, log)
	supportH := handlers.NewSupportHandler(d.Support, log)
	authH := handlers.NewAuthHandler(d.Auth, log)

	api := r.Group("/api/v1")
	api.POST("/auth/login", authH.Login)
	api.POST("/support/messages", supportH.SendMessage)

	orders := api.Group("/orders")
	orders.POST("", middleware.OptionalAuth(d.Auth), orderH.Create)
	orders.GET("/me", middleware.AuthRequired(d.Auth, log), orderH.MyOrders)
	orders.GET("/:orderNumber", orderH.GetByNumber)
	orders.GET("/id/:orderId/notifications", orderH.Notifications)

	api.GET("/notifications/me", middleware.AuthRequired(d.Auth, log), orderH.MyNotifications)
	api.POST("/notifications/:id/read", middleware.AuthRequired(d.Auth, log), orderH.MarkAsRead)

	admin := api.Group("/admin", middleware.AuthRequired(d.Auth, log), middleware.RequireAdmin())
	admin.GET("/orders", orderH.List)
	admin.GET("/orders/stats", orderH.Stats)
	admin.GET("/orders/:orderId", orderH.Get)
	admin.PATCH("/orders/:orderId/status", orderH.UpdateStatus)
	admin.GET("/api-config", cfgH.GetAll)
	admin.PUT("/api-config/whatsapp", cfgH.UpdateWhatsApp)
	admin.GET("/api-config/:provider", cfgH.GetByProvider)

	if d.Carts != nil {
		cartH := handlers.NewCartHandler(d.Carts, log)
		cart := api.Group("/cart", middleware.RequireSession())
		cart.GET("", cartH.Get)
		cart.DELETE("", cartH.Clear)
		cart.POST("/items", cartH.AddItem)
		cart.PATCH("/items/:productId", cartH.UpdateQuantity)
		cart.DELETE("/items/:productId", cartH.RemoveItem)
		cart.POST("/checkout", middleware.OptionalAuth(d.Auth), cartH.Checkout)
	} else {
		log.Warn("cart routes disabled: redis is not configured")
	}

	return r
}
