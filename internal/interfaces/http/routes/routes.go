// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/spicerack-backend/internal/config"
	"github.com/your-org/spicerack-backend/internal/domain/notification"
	"github.com/your-org/spicerack-backend/internal/interfaces/http/handlers"
	"github.com/your-org/spicerack-backend/internal/interfaces/http/middleware"
	"github.com/your-org/spicerack-backend/internal/pkg/email"
	"github.com/your-org/spicerack-backend/internal/pkg/sms"
)

// SetupRoutes wires every API route group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) {
	notificationService := notification.NewService(
		notification.NewRepository(db),
		email.NewEmailService(cfg),
		sms.NewClient(cfg),
		logger,
	)

	authHandler := handlers.NewAuthHandler(db, cfg)
	customerHandler := handlers.NewCustomerHandler(db, cfg)
	menuHandler := handlers.NewMenuHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(db, redisClient, logger, cfg)
	orderHandler := handlers.NewOrderHandler(db, redisClient, notificationService, logger, cfg)
	pickupHandler := handlers.NewPickupHandler(db, logger, cfg)
	notificationHandler := handlers.NewNotificationHandler(notificationService, cfg)
	reportHandler := handlers.NewReportHandler(db, logger, cfg)

	setupAuthRoutes(rg, authHandler, cfg)
	setupCustomerRoutes(rg, customerHandler, cfg)
	setupMenuRoutes(rg, menuHandler, pickupHandler, cfg)
	setupCartRoutes(rg, cartHandler, cfg)
	setupOrderRoutes(rg, orderHandler, cfg)
	setupAdminRoutes(rg, menuHandler, orderHandler, pickupHandler, notificationHandler, reportHandler, cfg)
}

func setupAuthRoutes(rg *gin.RouterGroup, authHandler *handlers.AuthHandler, cfg *config.Config) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/me", authHandler.GetCurrentCustomer)
		}
	}
}

func setupCustomerRoutes(rg *gin.RouterGroup, customerHandler *handlers.CustomerHandler, cfg *config.Config) {
	// Deliverability check is public so the storefront can gate checkout
	rg.GET("/delivery-zones/check", customerHandler.CheckDeliveryZone)

	customers := rg.Group("/customers")
	customers.Use(middleware.AuthMiddleware(cfg))
	{
		customers.GET("/profile", customerHandler.GetProfile)
		customers.PUT("/profile", customerHandler.UpdateProfile)

		customers.GET("/addresses", customerHandler.ListAddresses)
		customers.POST("/addresses", customerHandler.CreateAddress)
		customers.PUT("/addresses/:id", customerHandler.UpdateAddress)
		customers.DELETE("/addresses/:id", customerHandler.DeleteAddress)
	}
}

func setupMenuRoutes(rg *gin.RouterGroup, menuHandler *handlers.MenuHandler, pickupHandler *handlers.PickupHandler, cfg *config.Config) {
	menu := rg.Group("/menu")
	{
		menu.GET("/items", menuHandler.ListMenuItems)
		menu.GET("/items/:id", menuHandler.GetMenuItem)
		menu.GET("/weekly", menuHandler.GetWeeklyMenu)
	}

	rg.GET("/pickup-locations", pickupHandler.ListPickupLocations)
}

func setupCartRoutes(rg *gin.RouterGroup, cartHandler *handlers.CartHandler, cfg *config.Config) {
	// Carts work for guests and authenticated customers alike
	cart := rg.Group("/cart")
	cart.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddItem)
		cart.PUT("/items/:id", cartHandler.UpdateQuantity)
		cart.DELETE("/items/:id", cartHandler.RemoveItem)
		cart.PUT("/order-day", cartHandler.SetOrderDay)
		cart.DELETE("", cartHandler.ClearCart)
	}
}

func setupOrderRoutes(rg *gin.RouterGroup, orderHandler *handlers.OrderHandler, cfg *config.Config) {
	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.POST("", orderHandler.PlaceOrder)
		orders.GET("", orderHandler.ListMyOrders)
		orders.GET("/:id", orderHandler.GetMyOrder)
		orders.PUT("/:id/cancel", orderHandler.CancelMyOrder)
	}
}

func setupAdminRoutes(
	rg *gin.RouterGroup,
	menuHandler *handlers.MenuHandler,
	orderHandler *handlers.OrderHandler,
	pickupHandler *handlers.PickupHandler,
	notificationHandler *handlers.NotificationHandler,
	reportHandler *handlers.ReportHandler,
	cfg *config.Config,
) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		// Menu management
		menu := admin.Group("/menu")
		{
			menu.POST("/items", menuHandler.CreateMenuItem)
			menu.PUT("/items/:id", menuHandler.UpdateMenuItem)
			menu.DELETE("/items/:id", menuHandler.DeleteMenuItem)
			menu.PUT("/weekly", menuHandler.SetWeeklyMenu)
		}

		// Order management
		orders := admin.Group("/orders")
		{
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
			orders.GET("/:id/receipt", reportHandler.GetOrderReceipt)
		}

		// Pickup location management
		pickup := admin.Group("/pickup-locations")
		{
			pickup.POST("", pickupHandler.CreatePickupLocation)
			pickup.PUT("/:id", pickupHandler.UpdatePickupLocation)
			pickup.DELETE("/:id", pickupHandler.DeletePickupLocation)
		}

		// Notification dispatch
		notifications := admin.Group("/notifications")
		{
			notifications.POST("/confirmation", notificationHandler.SendConfirmation)
			notifications.POST("/status", notificationHandler.SendStatusUpdate)
			notifications.POST("/reminders", notificationHandler.SendReminders)
		}

		// Reporting
		reports := admin.Group("/reports")
		{
			reports.GET("/dashboard", reportHandler.GetDashboard)
			reports.GET("/sales", reportHandler.GetSalesByDay)
			reports.GET("/top-items", reportHandler.GetTopItems)
		}
	}
}
