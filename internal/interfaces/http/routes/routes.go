// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-gateway/internal/backend"
	"github.com/your-org/storefront-gateway/internal/domain/cart"
	"github.com/your-org/storefront-gateway/internal/domain/checkout"
	"github.com/your-org/storefront-gateway/internal/domain/order"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-gateway/internal/pkg/receipt"
)

// Deps carries the shared services the route handlers need
type Deps struct {
	API          *backend.Client
	CartRepo     cart.Repository
	Sessions     *checkout.Manager
	Orchestrator *order.Orchestrator
	Receipts     *receipt.Service
	Logger       *logrus.Logger
}

// SetupRoutes wires all API routes
func SetupRoutes(rg *gin.RouterGroup, deps Deps) {
	setupAuthRoutes(rg, deps)
	setupProductRoutes(rg, deps)
	setupCartRoutes(rg, deps)
	setupCheckoutRoutes(rg, deps)
	setupOrderRoutes(rg, deps)
	setupAdminRoutes(rg, deps)
}

func setupAuthRoutes(rg *gin.RouterGroup, deps Deps) {
	authHandler := handlers.NewAuthHandler(deps.API, deps.CartRepo, deps.Sessions, deps.Logger)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		protected := auth.Group("")
		protected.Use(middleware.RequireAuth())
		{
			protected.GET("/me", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
		}
	}
}

func setupProductRoutes(rg *gin.RouterGroup, deps Deps) {
	productHandler := handlers.NewProductHandler(deps.API, deps.Logger)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
	}
}

func setupCartRoutes(rg *gin.RouterGroup, deps Deps) {
	cartHandler := handlers.NewCartHandler(deps.CartRepo, deps.API, deps.Logger)

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.POST("/items", cartHandler.AddItem)
		cartGroup.PUT("/items/:productId", cartHandler.UpdateItem)
		cartGroup.DELETE("/items/:productId", cartHandler.RemoveItem)
		cartGroup.DELETE("", cartHandler.ClearCart)

		// Reconciliation pulls the account's canonical cart
		cartGroup.POST("/sync", middleware.RequireAuth(), cartHandler.SyncCart)
	}
}

func setupCheckoutRoutes(rg *gin.RouterGroup, deps Deps) {
	checkoutHandler := handlers.NewCheckoutHandler(deps.Sessions, deps.CartRepo, deps.API, deps.Orchestrator, deps.Logger)

	co := rg.Group("/checkout")
	{
		co.POST("", checkoutHandler.Start)
		co.GET("", checkoutHandler.Get)
		co.DELETE("", checkoutHandler.Abandon)
		co.PUT("/shipping", checkoutHandler.SetShipping)
		co.PUT("/payment-method", checkoutHandler.SetPaymentMethod)
		co.POST("/advance", checkoutHandler.Advance)

		// Placement and payment confirmation need a backend session
		placing := co.Group("")
		placing.Use(middleware.RequireAuth())
		{
			placing.POST("/place-order", checkoutHandler.PlaceOrder)
			placing.POST("/confirm-upi", checkoutHandler.ConfirmUPI)
			placing.POST("/complete-widget", checkoutHandler.CompleteWidget)
		}
	}
}

func setupOrderRoutes(rg *gin.RouterGroup, deps Deps) {
	orderHandler := handlers.NewOrderHandler(deps.API, deps.Receipts, deps.Logger)

	orders := rg.Group("/orders")
	orders.Use(middleware.RequireAuth())
	{
		orders.GET("/my-orders", orderHandler.GetMyOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/receipt", orderHandler.GetReceipt)
	}
}

func setupAdminRoutes(rg *gin.RouterGroup, deps Deps) {
	productHandler := handlers.NewProductHandler(deps.API, deps.Logger)
	orderHandler := handlers.NewOrderHandler(deps.API, deps.Receipts, deps.Logger)

	admin := rg.Group("/admin")
	admin.Use(middleware.RequireAuth(), middleware.RequireAdmin())
	{
		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)

		admin.GET("/orders", orderHandler.GetAllOrders)
		admin.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
	}
}
