package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookmarket-backend/internal/shared/middleware"
	"bookmarket-backend/internal/shared/policy"
	"bookmarket-backend/internal/shared/response"
	"bookmarket-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// X-Forwarded-For chỉ được tin khi request đi qua proxy đã khai báo
	if err := router.SetTrustedProxies(c.Config.App.TrustedProxies); err != nil {
		log.Warn().Err(err).Strs("proxies", c.Config.App.TrustedProxies).Msg("invalid TRUSTED_PROXIES, trusting none")
		_ = router.SetTrustedProxies(nil)
	}

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
		middleware.SecurityHeaders(),
	)
	if c.Config.RateLimit.Enabled {
		router.Use(middleware.RateLimit(c.Cache, c.Config.RateLimit.Requests, c.Config.RateLimit.Window))
	}

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Route not found")
	})

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		auth := middleware.Auth(c.JWTManager, c.UserService, c.Config.JWT.CookieName)

		setupAuthRoutes(v1, c, auth)
		setupUserRoutes(v1, c, auth)
		setupContributorRoutes(v1, c, auth)
		setupBookRoutes(v1, c, auth)
		setupReviewRoutes(v1, c, auth)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	group := v1.Group("/auth")
	{
		group.POST("/register", c.UserHandler.Register)
		group.POST("/login", c.UserHandler.Login)
		group.GET("/me", auth, c.UserHandler.GetMe)
		group.GET("/logout", auth, c.UserHandler.Logout)
	}
}

// ========================================
// USER ROUTES (admin)
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	users := v1.Group("/users", auth, middleware.RequireRoles(policy.RoleAdmin))
	{
		users.GET("", c.UserHandler.ListUsers)
		users.GET("/:id", c.UserHandler.GetUser)
		users.POST("", c.UserHandler.CreateUser)
		users.PUT("/:id", c.UserHandler.UpdateUser)
		users.DELETE("/:id", c.UserHandler.DeleteUser)
	}
}

// ========================================
// CONTRIBUTOR ROUTES
// ========================================
func setupContributorRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	contributorOrAdmin := middleware.RequireRoles(policy.RoleContributor, policy.RoleAdmin)
	userOrAdmin := middleware.RequireRoles(policy.RoleUser, policy.RoleAdmin)

	contributors := v1.Group("/contributors")
	{
		// Public
		contributors.GET("", c.ContributorHandler.ListContributors)
		contributors.GET("/:id", c.ContributorHandler.GetContributor)
		contributors.GET("/:id/books", c.BookHandler.ListContributorBooks)
		contributors.GET("/:id/reviews", c.ReviewHandler.ListContributorReviews)

		// Protected
		contributors.GET("/radius/:zipcode/:distance", auth, contributorOrAdmin, c.ContributorHandler.GetContributorsInRadius)
		contributors.POST("", auth, userOrAdmin, c.ContributorHandler.CreateContributor)
		contributors.PUT("/:id", auth, contributorOrAdmin, c.ContributorHandler.UpdateContributor)
		contributors.DELETE("/:id", auth, contributorOrAdmin, c.ContributorHandler.DeleteContributor)
		contributors.PUT("/:id/photo", auth, contributorOrAdmin, c.ContributorHandler.UploadPhoto)

		// Nested
		contributors.POST("/:id/books", auth, contributorOrAdmin, c.BookHandler.CreateBook)
		contributors.POST("/:id/reviews", auth, userOrAdmin, c.ReviewHandler.CreateReview)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	contributorOrAdmin := middleware.RequireRoles(policy.RoleContributor, policy.RoleAdmin)

	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/export", c.BookHandler.ExportBooks)
		books.GET("/:id", c.BookHandler.GetBook)

		books.PUT("/:id", auth, contributorOrAdmin, c.BookHandler.UpdateBook)
		books.DELETE("/:id", auth, contributorOrAdmin, c.BookHandler.DeleteBook)
	}
}

// ========================================
// REVIEW ROUTES
// ========================================
func setupReviewRoutes(v1 *gin.RouterGroup, c *container.Container, auth gin.HandlerFunc) {
	userOrAdmin := middleware.RequireRoles(policy.RoleUser, policy.RoleAdmin)

	reviews := v1.Group("/reviews")
	{
		reviews.GET("", c.ReviewHandler.ListReviews)
		reviews.GET("/:id", c.ReviewHandler.GetReview)

		reviews.PUT("/:id", auth, userOrAdmin, c.ReviewHandler.UpdateReview)
		reviews.DELETE("/:id", auth, userOrAdmin, c.ReviewHandler.DeleteReview)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  gin.H{},
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
