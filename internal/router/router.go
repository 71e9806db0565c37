// internal/router/router.go
package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/marketflow-backend/internal/config"
	"github.com/javajoker/marketflow-backend/internal/database"
	"github.com/javajoker/marketflow-backend/internal/handlers"
	"github.com/javajoker/marketflow-backend/internal/metrics"
	"github.com/javajoker/marketflow-backend/internal/middleware"
	"github.com/javajoker/marketflow-backend/internal/services"
)

const workspaceSweepInterval = time.Minute

// Initialize wires services, handlers and routes. The returned func stops the
// background janitors and must be called on shutdown.
func Initialize(cfg *config.Config) (*gin.Engine, func()) {
	// Initialize services
	sessionStore := services.NewSessionStore(cfg.Session.IdleDuration())
	sessionStore.StartJanitor(workspaceSweepInterval)

	m := metrics.New(sessionStore.Len)

	chatService := services.NewChatServiceFromConfig(cfg.OpenAI)
	chatService.OnOutcome(m.ObserveChat)

	catalogService := services.NewCatalogService(database.SeedProducts(), database.Categories)
	orderService := services.NewOrderService(database.SeedOrders(), cfg.Frontend.BaseURL)
	sellerService := services.NewSellerService(chatService, database.SeedSellerDashboard())
	adminService := services.NewAdminService(database.SeedAdminStats())
	mediaService := services.NewMediaService()

	// Initialize handlers
	chatHandler := handlers.NewChatHandler(chatService, cfg.Server.MaxBodyBytes)
	sessionHandler := handlers.NewSessionHandler(cfg.CORS.AllowedOrigins)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	buyerHandler := handlers.NewBuyerHandler(orderService)
	sellerHandler := handlers.NewSellerHandler(sellerService, mediaService)
	adminHandler := handlers.NewAdminHandler(adminService, mediaService)

	chatLimiter := middleware.NewPerMinuteLimiter(cfg.RateLimit.ChatPerMinute, cfg.RateLimit.ChatBurst)
	uploadLimiter := middleware.NewPerMinuteLimiter(cfg.RateLimit.UploadPerMinute, cfg.RateLimit.UploadBurst)

	cookieStore := middleware.NewCookieStore(cfg.Session, cfg.IsProduction())

	// Initialize Gin router
	r := gin.New()
	r.MaxMultipartMemory = 16 << 20

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(m.Middleware())
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())

	// Health check
	r.GET("/healthz", handlers.Health)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	api := r.Group("/api")
	{
		// Chat relay is stateless and needs no session
		api.POST("/chat", chatLimiter.Middleware(), chatHandler.Chat)

		stateful := api.Group("")
		stateful.Use(middleware.Session(cookieStore, cfg.Session.CookieName, sessionStore))

		// Session routes
		session := stateful.Group("/session")
		{
			session.GET("", sessionHandler.GetSession)
			session.PUT("/role", sessionHandler.UpdateRole)
			session.POST("/cart", sessionHandler.AddToCart)
			session.GET("/events", sessionHandler.Events)
			session.GET("/recently-viewed", sessionHandler.RecentlyViewed)
		}

		// Catalog routes
		catalog := stateful.Group("/catalog")
		{
			catalog.GET("/categories", catalogHandler.GetCategories)
			catalog.GET("/products", catalogHandler.GetProducts)
			catalog.GET("/products/:id", catalogHandler.GetProduct)
			catalog.POST("/products/:id/view", catalogHandler.RecordView)
			catalog.GET("/products/:id/reviews", catalogHandler.GetReviews)
			catalog.POST("/products/:id/reviews", catalogHandler.AddReview)
			catalog.POST("/products/:id/purchase", catalogHandler.Purchase)
		}

		// Buyer routes
		buyer := stateful.Group("/buyer")
		{
			buyer.GET("/orders", buyerHandler.GetOrders)
			buyer.GET("/orders/:orderId", buyerHandler.GetOrder)
			buyer.GET("/orders/:orderId/qrcode", buyerHandler.GetOrderQRCode)
			buyer.POST("/orders/scan", buyerHandler.ScanOrder)
		}

		// Seller routes
		seller := stateful.Group("/seller")
		{
			seller.GET("/dashboard", sellerHandler.GetDashboard)
			seller.GET("/onboarding", sellerHandler.GetOnboarding)
			seller.POST("/onboarding/connect", sellerHandler.ConnectPayments)
			seller.GET("/draft", sellerHandler.GetDraft)
			seller.PUT("/draft", sellerHandler.UpdateDraft)
			seller.POST("/draft/primary-image", uploadLimiter.Middleware(), sellerHandler.UploadPrimaryImage)
			seller.POST("/draft/gallery", uploadLimiter.Middleware(), sellerHandler.UploadGallery)
			seller.DELETE("/draft/gallery/:index", sellerHandler.RemoveGalleryImage)
			seller.POST("/draft/describe", chatLimiter.Middleware(), sellerHandler.DescribeDraft)
		}

		// Admin routes
		admin := stateful.Group("/admin")
		{
			admin.GET("/stats", adminHandler.GetDashboardStats)
			admin.GET("/users", adminHandler.GetUsers)
			admin.POST("/users", adminHandler.CreateUser)
			admin.PUT("/users/:id/role", adminHandler.UpdateUserRole)
			admin.POST("/users/:id/avatar", uploadLimiter.Middleware(), adminHandler.StageAvatar)
			admin.PUT("/users/:id/avatar", adminHandler.CommitAvatar)
			admin.DELETE("/users/:id/avatar", adminHandler.DiscardAvatar)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
		}
	}

	r.NoRoute(staticFallback(cfg.Static.DistPath))

	shutdown := func() {
		sessionStore.Stop()
		chatLimiter.Stop()
		uploadLimiter.Stop()
	}

	return r, shutdown
}
