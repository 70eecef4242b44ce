// Package router assembles the HTTP API.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "stockledger/internal/docs" // registers the swagger spec
	"stockledger/internal/handlers"
	"stockledger/internal/middleware"
	"stockledger/internal/services"
)

// Deps are the collaborators the API is built from.
type Deps struct {
	Ledger    services.LedgerServicer
	Portfolio services.PortfolioServicer
	Quotes    services.QuoteProvider

	JWTSecret []byte
	JWTIssuer string
}

// New returns the API engine with all routes mounted.
func New(deps Deps) *gin.Engine {
	profileHandler := handlers.NewProfileHandler(deps.Ledger)
	holdingHandler := handlers.NewHoldingHandler(deps.Ledger)
	transactionHandler := handlers.NewTransactionHandler(deps.Ledger)
	portfolioHandler := handlers.NewPortfolioHandler(deps.Portfolio)
	quoteHandler := handlers.NewQuoteHandler(deps.Quotes)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	protected.POST("/profile", profileHandler.EnsureProfile)

	holdings := protected.Group("/holdings")
	holdings.GET("", holdingHandler.ListHoldings)
	holdings.POST("", holdingHandler.RecordPurchase)
	holdings.POST("/:id/sell", holdingHandler.SellShares)
	holdings.DELETE("/:id", holdingHandler.DeleteHolding)

	protected.GET("/transactions", transactionHandler.ListTransactions)
	protected.GET("/portfolio", portfolioHandler.GetPortfolio)

	protected.GET("/quotes", quoteHandler.GetQuotes)
	protected.GET("/stocks/search", quoteHandler.SearchStocks)
	protected.GET("/stocks/:symbol", quoteHandler.GetStock)

	return router
}
