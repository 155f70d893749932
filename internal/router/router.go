package router

import (
	"time"

	"stockdash/internal/config"
	"stockdash/internal/handler"
	"stockdash/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups everything the router wires up.
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Products  *handler.ProductHandler
	Purchases *handler.PurchaseHandler
	Sales     *handler.SaleHandler
	Customers *handler.CustomerHandler
	Dashboard *handler.DashboardHandler
	Inventory *handler.InventoryHandler
	Reports   *handler.ReportHandler
}

// New builds the Gin engine with the full middleware chain and route table.
func New(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(),
		middleware.ErrorHandler(),
		middleware.RateLimiter(300, time.Minute),
	)

	// Public
	r.GET("/health", h.Health.Check)
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Authenticated
	api := r.Group("/", middleware.JWTAuth(cfg.JWTSecret))
	{
		api.GET("/auth/me", h.Auth.Me)

		products := api.Group("/products")
		{
			products.GET("", h.Products.List)
			products.POST("", h.Products.Create)
			products.GET("/:id", h.Products.Get)
			products.PUT("/:id", h.Products.Update)
			products.DELETE("/:id", h.Products.Delete)
			products.PATCH("/:id/stock", h.Products.AdjustStock)
		}

		purchases := api.Group("/purchases")
		{
			purchases.GET("", h.Purchases.List)
			purchases.POST("", h.Purchases.Create)
			purchases.GET("/:id", h.Purchases.Get)
			purchases.PUT("/:id", h.Purchases.Update)
			purchases.DELETE("/:id", h.Purchases.Delete)
		}

		sales := api.Group("/sales")
		{
			sales.GET("", h.Sales.List)
			sales.POST("", h.Sales.Create)
			sales.GET("/:id", h.Sales.Get)
			sales.PUT("/:id", h.Sales.Update)
			sales.DELETE("/:id", h.Sales.Delete)
		}

		customers := api.Group("/customers")
		{
			customers.GET("", h.Customers.List)
			customers.POST("", h.Customers.Create)
			customers.GET("/:id", h.Customers.Get)
			customers.PUT("/:id", h.Customers.Update)
			customers.DELETE("/:id", h.Customers.Delete)
		}

		api.GET("/dashboard", h.Dashboard.Metrics)
		api.GET("/dashboard/metrics", h.Dashboard.Metrics)
		api.GET("/summary/sales", h.Dashboard.SalesSummary)
		api.GET("/summary/inventory", h.Dashboard.InventorySummary)
		api.GET("/summary/customers", h.Dashboard.CustomerSummary)

		api.GET("/inventory/movements", h.Inventory.Movements)

		api.GET("/reports/inventory", h.Reports.Generate)
		api.POST("/reports/inventory/email", h.Reports.Email)

		users := api.Group("/users", middleware.RequireRole("admin"))
		{
			users.GET("", h.Users.List)
			users.POST("", h.Users.Create)
			users.PUT("/:id", h.Users.Update)
			users.DELETE("/:id", h.Users.Delete)
		}
	}

	return r
}
