package routes

import (
	"github.com/gin-gonic/gin"

	"food-marketplace-api/authgate"
	"food-marketplace-api/handlers"
	"food-marketplace-api/middleware"
)

func SetupRoutes(r *gin.Engine, orders *handlers.OrderAPI) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Vendors & menus (no auth needed)
		public.GET("/vendors", handlers.ListVendors)
		public.GET("/vendors/:id", handlers.GetVendor)
		public.GET("/vendors/:id/menu", handlers.GetMenu)
		public.GET("/vendors/:id/reviews", handlers.GetVendorReviews)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
		auth.PUT("/profile", handlers.UpdateProfile)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(authgate.RoleCustomer))
	{
		customer.POST("/orders", orders.PlaceOrder)
		customer.GET("/orders", handlers.GetMyOrders)
		customer.GET("/orders/:id", handlers.GetOrderDetail)
		customer.PUT("/orders/:id/cancel", orders.CancelOrder)

		customer.POST("/reviews", handlers.CreateReview)
		customer.GET("/rewards", handlers.ListRewards)
		customer.POST("/rewards/:id/redeem", handlers.RedeemReward)
	}

	// ── Vendor routes ──────────────────────────────────────────────
	vendor := r.Group("/api/vendor")
	vendor.Use(middleware.AuthRequired(), middleware.RoleRequired(authgate.RoleVendor))
	{
		// Profile
		vendor.GET("/", handlers.GetMyVendor)
		vendor.PUT("/", handlers.UpdateVendor)

		// Menu management
		vendor.POST("/menu", handlers.AddMenuItem)
		vendor.PUT("/menu/:itemId", handlers.UpdateMenuItem)
		vendor.DELETE("/menu/:itemId", handlers.DeleteMenuItem)

		// Live order board
		vendor.GET("/orders/live", orders.LiveOrders)
		vendor.PUT("/orders/:id/ready", orders.MarkReady)
		vendor.PUT("/orders/:id/complete", orders.MarkCompleted)
		vendor.PUT("/orders/:id/cancel", orders.CancelFromBoard)

		// Reviews
		vendor.GET("/reviews", handlers.GetMyReviews)
		vendor.PUT("/reviews/:reviewId/reply", handlers.ReplyReview)

		// Hygiene compliance
		vendor.POST("/hygiene/apply", handlers.ApplyHygieneBadge)
		vendor.GET("/hygiene", handlers.GetHygieneStatus)

		// Supplier quotes
		vendor.GET("/quotes", handlers.GetMyQuotes)
		vendor.PUT("/quotes/:quoteId/decide", handlers.DecideQuote)
	}

	// ── Supplier routes ────────────────────────────────────────────
	supplier := r.Group("/api/supplier")
	supplier.Use(middleware.AuthRequired(), middleware.RoleRequired(authgate.RoleSupplier))
	{
		supplier.POST("/inventory", handlers.AddInventoryItem)
		supplier.GET("/inventory", handlers.ListInventory)
		supplier.PUT("/inventory/:itemId", handlers.UpdateInventoryItem)
		supplier.DELETE("/inventory/:itemId", handlers.DeleteInventoryItem)

		supplier.POST("/quotes", handlers.CreateQuote)
		supplier.GET("/quotes", handlers.ListMyQuotes)

		supplier.POST("/invoices", handlers.CreateInvoice)
		supplier.GET("/invoices", handlers.ListInvoices)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(authgate.RoleAdmin))
	{
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.GET("/vendors", handlers.AdminGetAllVendors)
		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.GET("/hygiene/applications", handlers.AdminListHygieneApplications)
		admin.PUT("/hygiene/applications/:id/decide", handlers.AdminDecideHygieneApplication)
	}
}
