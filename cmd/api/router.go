package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/middleware"
	"library-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupMemberRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupLoanRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.MemberHandler.Register)
		auth.POST("/login", c.MemberHandler.Login)
	}
}

// ========================================
// MEMBER ROUTES
// ========================================
func setupMemberRoutes(v1 *gin.RouterGroup, c *container.Container) {
	members := v1.Group("/members")
	members.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		members.GET("/me", c.MemberHandler.Me)

		librarian := members.Group("")
		librarian.Use(middleware.LibrarianMiddleware())
		{
			librarian.GET("", c.MemberHandler.ListMembers)
			librarian.GET("/:id", c.MemberHandler.GetMember)
			librarian.POST("/:id/lift-suspension", c.MemberHandler.LiftSuspension)
		}
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	books.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/:id", c.BookHandler.GetBook)
		books.POST("", middleware.LibrarianMiddleware(), c.BookHandler.CreateBook)
	}
}

// ========================================
// LOAN ROUTES
// ========================================
func setupLoanRoutes(v1 *gin.RouterGroup, c *container.Container) {
	loans := v1.Group("/loans")
	loans.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		loans.GET("", c.LoanHandler.ListLoans)
		loans.GET("/export", middleware.LibrarianMiddleware(), c.LoanHandler.ExportLoans)
		loans.GET("/:id", c.LoanHandler.GetLoan)
		loans.POST("", c.LoanHandler.BorrowBook)
		loans.POST("/:id/return", middleware.LibrarianMiddleware(), c.LoanHandler.ReturnBook)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.Ping(ctx); err != nil {
				dbStatus = "error: " + err.Error()
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
				redisStatus = "error: " + err.Error()
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
