package main

import (
	"fmt"
	"investmon/internal/config"
	"investmon/internal/database"
	"investmon/internal/handlers"
	"investmon/internal/logger"
	"investmon/internal/middleware"
	"investmon/internal/services"
	"investmon/internal/validator"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	priceService := services.NewPriceService(dbManager.Stocks())
	investmentService := services.NewInvestmentService(dbManager.Ledger())
	holdingService := services.NewHoldingService(dbManager.Ledger(), priceService)
	snapshotService := services.NewSnapshotService(dbManager.Ledger())

	// Initialize handlers
	priceHandler := handlers.NewPriceHandler(priceService)
	uploadHandler := handlers.NewUploadHandler(priceService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService)
	holdingHandler := handlers.NewHoldingHandler(holdingService)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotService)
	themeHandler := handlers.NewThemeHandler(appConfig)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Market data routes
	v1.GET("/market", priceHandler.GetMarketOverview)
	market := v1.Group("/market")
	market.GET("/symbols", priceHandler.GetSymbols)
	market.GET("/symbols/:symbol", priceHandler.GetSymbolDetail)
	market.POST("/upload", uploadHandler.UploadPrices)

	// Investment routes
	investments := v1.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.ListInvestments)
	investments.GET("/:id", investmentHandler.GetInvestment)
	investments.PUT("/:id", investmentHandler.UpdateInvestment)
	investments.PUT("/:id/actual-amount", investmentHandler.UpdateActualAmount)
	investments.DELETE("/:id", investmentHandler.DeleteInvestment)
	investments.POST("/:id/transactions", investmentHandler.AddTransaction)
	investments.GET("/:id/transactions", investmentHandler.ListTransactions)

	// Holding routes
	holdings := v1.Group("/holdings")
	holdings.POST("", holdingHandler.CreateHolding)
	holdings.GET("", holdingHandler.ListHoldings)
	holdings.GET("/:id", holdingHandler.GetHolding)
	holdings.PUT("/:id", holdingHandler.UpdateHolding)
	holdings.DELETE("/:id", holdingHandler.DeleteHolding)
	holdings.POST("/manual-value", holdingHandler.SetManualValue)
	holdings.POST("/refresh-prices", holdingHandler.RefreshPrices)
	holdings.GET("/aggregate", holdingHandler.GetAggregatedHoldings)

	// Snapshot routes
	snapshots := v1.Group("/snapshots")
	snapshots.POST("", snapshotHandler.SavePortfolioSnapshot)
	snapshots.GET("", snapshotHandler.ListPortfolioSnapshots)
	snapshots.DELETE("/:id", snapshotHandler.DeletePortfolioSnapshot)
	snapshots.POST("/accounts", snapshotHandler.SaveAccountSnapshots)
	snapshots.GET("/accounts", snapshotHandler.ListAccountSnapshots)
	snapshots.DELETE("/accounts/:id", snapshotHandler.DeleteAccountSnapshot)
	snapshots.DELETE("/accounts", snapshotHandler.BulkDeleteAccountSnapshots)
	snapshots.GET("/account-names", snapshotHandler.GetAccountNames)

	// Theme preference
	v1.PUT("/theme", themeHandler.SetTheme)

	log.Infof("Starting investmon server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
