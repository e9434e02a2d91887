// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookswap/bookswap-api/internal/config"
	"github.com/bookswap/bookswap-api/internal/handlers"
	"github.com/bookswap/bookswap-api/internal/middleware"
	"github.com/bookswap/bookswap-api/internal/services"
	"github.com/bookswap/bookswap-api/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)
	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	bookService := services.NewBookService(db)
	tradeService := services.NewTradeService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, authService, storageService)
	bookHandler := handlers.NewBookHandler(bookService, storageService)
	tradeHandler := handlers.NewTradeHandler(tradeService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	limits := middleware.NewRateLimiters(cfg.RateLimit)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(limits.General())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(limits.Auth())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// User routes
		users := v1.Group("/users")
		users.Use(middleware.AuthRequired())
		{
			users.PUT("/profile", userHandler.UpdateProfile)
			users.PUT("/password", userHandler.ChangePassword)
			users.POST("/profile-pic", limits.Upload(), userHandler.UploadProfilePic)
			users.DELETE("/account", userHandler.DeleteAccount)
		}

		// Book routes
		books := v1.Group("/books")
		{
			books.GET("", middleware.OptionalAuth(), bookHandler.GetBooks)
			books.GET("/:id", middleware.OptionalAuth(), bookHandler.GetBook)

			// Authenticated routes
			protected := books.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", bookHandler.CreateBook)
				protected.GET("/mine", bookHandler.GetMyBooks)
				protected.PUT("/:id", bookHandler.UpdateBook)
				protected.DELETE("/:id", bookHandler.DeleteBook)
				protected.POST("/upload-cover", limits.Upload(), bookHandler.UploadCover)
			}
		}

		// Trade routes
		trades := v1.Group("/trades")
		trades.Use(middleware.AuthRequired())
		{
			trades.POST("", tradeHandler.InitiateTrade)
			trades.GET("", tradeHandler.GetMyTrades)
			trades.GET("/:id", tradeHandler.GetTrade)
			trades.PUT("/:id", tradeHandler.RespondToTrade)
			trades.PUT("/:id/counter", tradeHandler.RespondToCounter)
			trades.PUT("/:id/complete", tradeHandler.CompleteTrade)
			trades.DELETE("/:id", tradeHandler.CancelTrade)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			adminUsers := admin.Group("/users")
			{
				adminUsers.GET("", userHandler.GetUsers)
				adminUsers.GET("/:id", userHandler.GetUser)
			}
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", cfg.Upload.LocalDir)
	}

	return r
}
