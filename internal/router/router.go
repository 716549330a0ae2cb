// Package router assembles the HTTP engine from explicitly constructed
// dependencies.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "finmanager/internal/docs" // Import swagger docs
	"finmanager/internal/handlers"
	"finmanager/internal/logger"
	"finmanager/internal/middleware"
	"finmanager/internal/services"
	"finmanager/internal/validator"
)

// Deps are the process-wide dependencies handed to every handler.
type Deps struct {
	DB          *gorm.DB
	Log         *logger.Logger
	Environment string
	CORSOrigins []string
	// TrustedProxies are allowed to set X-Forwarded-For. Nil trusts none,
	// so rate limiting keys on the socket peer address.
	TrustedProxies []string
	// LogLimiter rate limits the client log ingestion endpoint.
	LogLimiter *middleware.RateLimiter
}

// New builds the gin engine with all routes mounted under /api.
func New(deps Deps) *gin.Engine {
	validator.Register()

	categoryHandler := handlers.NewCategoryHandler(services.NewCategoryService(deps.DB), deps.Log)
	counterpartyHandler := handlers.NewCounterpartyHandler(services.NewCounterpartyService(deps.DB), deps.Log)
	transactionHandler := handlers.NewTransactionHandler(services.NewTransactionService(deps.DB), deps.Log)
	systemHandler := handlers.NewSystemHandler(deps.Log, deps.Environment)

	router := gin.New()
	if err := router.SetTrustedProxies(deps.TrustedProxies); err != nil {
		deps.Log.Warn("Ignoring invalid trusted proxies", "error", err.Error(), "proxies", deps.TrustedProxies)
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(middleware.RequestLogging(deps.Log))
	router.Use(middleware.Recovery(deps.Log))
	router.Use(middleware.CORS(deps.CORSOrigins))
	router.Use(middleware.ErrorHandler(deps.Log))
	router.NoRoute(middleware.NotFound())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")

	// Health check endpoint
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Category routes
	categories := api.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Counterparty routes
	counterparties := api.Group("/counterparties")
	counterparties.GET("", counterpartyHandler.ListCounterparties)
	counterparties.POST("", counterpartyHandler.CreateCounterparty)
	counterparties.GET("/:id", counterpartyHandler.GetCounterpartyByID)
	counterparties.PUT("/:id", counterpartyHandler.UpdateCounterparty)
	counterparties.DELETE("/:id", counterpartyHandler.DeleteCounterparty)

	// Transaction routes
	transactions := api.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)

	// System routes
	system := api.Group("/system")
	system.GET("/info", systemHandler.GetInfo)
	logs := []gin.HandlerFunc{systemHandler.IngestLog}
	if deps.LogLimiter != nil {
		logs = append([]gin.HandlerFunc{middleware.RateLimit(deps.LogLimiter, deps.Log)}, logs...)
	}
	system.POST("/logs", logs...)

	return router
}
