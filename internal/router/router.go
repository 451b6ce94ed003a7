// internal/router/router.go
package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/cache"
	"github.com/javajoker/storefront-backend/internal/catalog"
	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/handlers"
	"github.com/javajoker/storefront-backend/internal/middleware"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

// Dependencies are the optional backends chosen at startup. Zero values fall
// back to the relational cart store, no cache, SMTP notifications from config
// and Stripe when a key is configured.
type Dependencies struct {
	Cache     *cache.Cache
	CartStore services.CartStore
	Notifier  services.Notifier
	Payments  services.PaymentProvider
}

func Initialize(db *gorm.DB, cfg *config.Config, deps Dependencies) *gin.Engine {
	cartStore := deps.CartStore
	if cartStore == nil {
		cartStore = services.NewGormCartStore(db)
	}

	notifier := deps.Notifier
	if notifier == nil {
		notifier = services.NewNotificationService(cfg)
	}

	payments := deps.Payments
	if payments == nil {
		// only assign a non-nil pointer so the interface stays nil without a key
		if stripe := services.NewPaymentService(cfg.Payment); stripe != nil {
			payments = stripe
		}
	}

	searcher := catalog.Searcher{
		NameWeight:        cfg.Search.NameWeight,
		DescriptionWeight: cfg.Search.DescriptionWeight,
		Threshold:         cfg.Search.Threshold,
		Distance:          cfg.Search.Distance,
	}

	// Initialize services
	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db, deps.Cache)
	productService := services.NewProductService(db, deps.Cache, searcher)
	settingsService := services.NewSettingsService(db, deps.Cache)
	cartService := services.NewCartService(cartStore)
	checkoutService := services.NewCheckoutService(db, deps.Cache, cartService, payments, notifier)
	orderService := services.NewOrderService(db, notifier)
	wishlistService := services.NewWishlistService(db)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userService, cfg.JWT)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	adminHandler := handlers.NewAdminHandler(adminService)
	healthHandler := handlers.NewHealthHandler(db, deps.Cache)
	pageHandler := handlers.NewPageHandler(cfg.Frontend.StaticDir)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	cookie := cfg.JWT.CookieName
	authRequired := middleware.AuthRequired(cookie)
	optionalAuth := middleware.OptionalAuth(cookie)
	adminOnly := []gin.HandlerFunc{
		authRequired,
		middleware.AdminRequired(),
		middleware.AuditLogMiddleware(db),
	}

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.AllowedOrigins))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(middleware.GeneralRateLimit(cfg.RateLimit))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", middleware.AuthRateLimit(cfg.RateLimit), authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authRequired, authHandler.GetProfile)
		}

		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/browse", productHandler.BrowseProducts)
			products.GET("/:id", productHandler.GetProduct)

			admin := products.Group("", adminOnly...)
			{
				admin.POST("", productHandler.CreateProduct)
				admin.PUT("/:id", productHandler.UpdateProduct)
				admin.DELETE("/:id", productHandler.DeleteProduct)
			}
		}

		api.GET("/search", productHandler.SearchProducts)

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.GET("/:id", categoryHandler.GetCategory)

			admin := categories.Group("", adminOnly...)
			{
				admin.POST("", categoryHandler.CreateCategory)
				admin.PUT("/:id", categoryHandler.UpdateCategory)
				admin.DELETE("/:id", categoryHandler.DeleteCategory)
			}
		}

		cart := api.Group("/cart", optionalAuth)
		{
			cart.GET("", cartHandler.GetCart)
			cart.PUT("", cartHandler.ReplaceCart)
			cart.DELETE("", cartHandler.ClearCart)
		}

		api.POST("/checkout", optionalAuth, checkoutHandler.Checkout)

		orders := api.Group("/orders")
		{
			orders.GET("/:id", optionalAuth, orderHandler.GetOrder)

			admin := orders.Group("", adminOnly...)
			{
				admin.GET("", orderHandler.GetOrders)
				admin.PATCH("/:id", orderHandler.UpdateStatus)
			}
		}

		settings := api.Group("/settings")
		{
			settings.GET("", settingsHandler.GetSettings)
			settings.POST("", append(adminOnly, settingsHandler.UpdateSettings)...)
		}

		user := api.Group("/user")
		{
			user.POST("", optionalAuth, userHandler.Register)
			user.GET("/orders", authRequired, userHandler.GetOrders)

			admin := user.Group("", adminOnly...)
			{
				admin.GET("", userHandler.ListCustomers)
				admin.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		api.GET("/admin/stats", append(adminOnly, adminHandler.GetDashboardStats)...)

		wishlist := api.Group("/wishlist", authRequired)
		{
			wishlist.GET("", wishlistHandler.GetWishlist)
			wishlist.POST("", wishlistHandler.AddToWishlist)
			wishlist.DELETE("", wishlistHandler.RemoveFromWishlist)
		}
	}

	// Everything outside /api is a page behind the session gate.
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
			c.Abort()
			return
		}
		c.Next()
	}, middleware.PageGate(cookie), pageHandler.Serve)

	return r
}
