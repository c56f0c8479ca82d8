package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/devxkamlesh/dailyos-payments/internal/server/http/handlers"
	"github.com/devxkamlesh/dailyos-payments/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PaymentsFacade, health handlers.HealthChecker, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest(middleware.DefaultMaxBodyBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	balanceHandler := handlers.NewBalanceHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade, logger)
	healthHandler := handlers.NewHealthHandler(health)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)
	user.GET("/balance", middleware.AuthRequired(facade), balanceHandler.Summary)

	payments := api.Group("/payments")
	payments.POST("/webhook", paymentHandler.Webhook)

	session := payments.Group("")
	session.Use(middleware.AuthRequired(facade))
	session.POST("/orders", paymentHandler.Create)
	session.GET("/orders", paymentHandler.List)
	session.POST("/verify", paymentHandler.Verify)

	return engine
}
