// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kilnworks/ceramics-backend/internal/config"
	"github.com/kilnworks/ceramics-backend/internal/handlers"
	"github.com/kilnworks/ceramics-backend/internal/identity"
	"github.com/kilnworks/ceramics-backend/internal/middleware"
	"github.com/kilnworks/ceramics-backend/internal/services"
)

const version = "1.0.0"

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	pricingService := services.NewPricingService(db)
	saleService := services.NewSaleService(db)
	statsService := services.NewStatsService(db)

	// Initialize handlers
	pricingHandler := handlers.NewPricingHandler(pricingService)
	saleHandler := handlers.NewSaleHandler(saleService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Token subjects are trusted without verification unless the verifying
	// resolver is switched on.
	var resolver identity.Resolver = identity.NewClaimsResolver()
	if cfg.JWT.VerifySignatures {
		resolver = identity.NewHMACResolver(cfg.JWT.SecretKey)
	}

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "Ceramic Pricing API is running",
			"version": version,
		})
	})

	// Authenticated routes
	protected := r.Group("")
	protected.Use(middleware.AuthRequired(resolver))
	{
		protected.POST("/predict", pricingHandler.Predict)
		protected.GET("/history", statsHandler.History)
		protected.POST("/historical", saleHandler.Create)
		protected.GET("/stats", statsHandler.Statistics)
	}

	return r
}
