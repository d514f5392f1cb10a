package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/config"
	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/handler"
	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/middleware"
	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/pkg/logger"
	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Initialize services
	minioSvc, err := service.NewMinioService(&cfg.Minio)
	if err != nil {
		slog.Error("failed to initialize MINIO service", "error", err)
		os.Exit(1)
	}

	// Ensure bucket exists
	if err := minioSvc.EnsureBucket(context.Background()); err != nil {
		slog.Error("failed to ensure MINIO bucket", "error", err)
		os.Exit(1)
	}

	// Initialize document store and workflow engine
	service.InitDocumentStore(&cfg.Store)
	store := service.GetDocumentStore()
	links := service.NewSigningLinkService(&cfg.Signing)
	engine := service.NewWorkflowEngine(store, links, &service.LogNotifier{})

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg)
	documentHandler := handler.NewDocumentHandler(store, engine, minioSvc)
	signingHandler := handler.NewSigningHandler(store, engine, links)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())     // Request ID for tracing
	router.Use(middleware.Recovery())      // Panic recovery
	router.Use(middleware.RequestLogger()) // Access logging
	router.Use(corsMiddleware())           // CORS

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	api := router.Group("/api")
	api.Use(middleware.RateLimit(100, time.Minute))
	{
		api.POST("/auth/login", authHandler.Login)
	}

	// Public signing flow, gated by link tokens and a tighter rate limit
	signing := api.Group("/sign")
	signing.Use(middleware.RateLimit(30, time.Minute))
	{
		signing.GET("/:id/:token", signingHandler.View)
		signing.POST("/:id/:token/viewed", signingHandler.MarkViewed)
		signing.POST("/:id/:token", signingHandler.Sign)
		signing.POST("/:id/:token/decline", signingHandler.Decline)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)

		protected.POST("/documents", documentHandler.Create)
		protected.POST("/documents/upload", documentHandler.Upload)
		protected.GET("/documents", documentHandler.List)
		protected.GET("/documents/:id", documentHandler.Get)
		protected.GET("/documents/:id/status", documentHandler.GetStatus)
		protected.GET("/documents/:id/audit", documentHandler.Audit)
		protected.DELETE("/documents/:id", documentHandler.Delete)

		protected.POST("/documents/:id/signers", documentHandler.AddSigner)
		protected.DELETE("/documents/:id/signers/:signerId", documentHandler.RemoveSigner)
		protected.POST("/documents/:id/fields", documentHandler.AddField)
		protected.POST("/documents/:id/send", documentHandler.Send)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
