package rest

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Eras256/FlowFi/internal/api/middleware"
)

var nowUTC = func() time.Time { return time.Now().UTC() }

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// Relay endpoints used by the browser workflow
	api := router.Group("/api")
	{
		api.POST("/analyze", handler.Analyze)

		api.POST("/deploy", handler.SubmitDeploy)
		api.POST("/deploy/build", handler.BuildDeploy)
		api.GET("/deploy/:hash", handler.GetDeploy)

		api.GET("/market-data", handler.GetMarketData)
		api.GET("/market-data/dashboard", handler.GetMarketDashboard)
		api.GET("/market-data/stream", handler.StreamMarketData)
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Invoice endpoints (public read access)
		v1.GET("/invoices", handler.ListInvoices)
		v1.GET("/invoices/:id", handler.GetInvoice)
		v1.GET("/invoices/:id/events", handler.GetInvoiceEvents)

		// Recording writes require authentication when configured
		v1.POST("/invoices", middleware.Auth(authCfg), handler.CreateInvoice)
		v1.POST("/invoices/:id/fund", middleware.Auth(authCfg), handler.FundInvoice)
	}
}
