package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lengolf/pos-api/internal/config"
	domainRepo "github.com/lengolf/pos-api/internal/domain/repository"
	"github.com/lengolf/pos-api/internal/presentation/http/handler"
	"github.com/lengolf/pos-api/internal/presentation/http/middleware"
	"github.com/lengolf/pos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Settlement  *handler.SettlementHandler
	Transaction *handler.TransactionHandler
	Session     *handler.SessionHandler
	Printer     *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-staff rate limiter
		rateLimiter := middleware.NewStaffRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerSettlementRoutes(protected, h, deps)
		registerSessionRoutes(protected, h, deps)
		registerTransactionRoutes(protected, h, deps)
		registerPrinterRoutes(protected, h)
	}

	return router
}

func registerSettlementRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Settlement requires an idempotency key: a retried request replays
	// the stored response instead of attempting a second settlement.
	protected.POST("/settlements", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	}), h.Settlement.Settle)
}

func registerSessionRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Print endpoints honour an Idempotency-Key when the client sends one,
	// but do not require it: duplicate prints waste paper, not money.
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	sessions := protected.Group("/sessions")
	{
		sessions.GET("/:id", h.Session.Get)
		sessions.POST("/:id/bill/print", idempotency, h.Session.PrintBill)
		sessions.GET("/:id/settlement", h.Session.GetSettlement)
	}
}

func registerTransactionRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	transactions := protected.Group("/transactions")
	{
		transactions.GET("", h.Transaction.List)
		transactions.GET("/:id", h.Transaction.Get)
		transactions.GET("/:id/receipt", h.Transaction.GetReceipt)
		transactions.POST("/:id/print", idempotency, h.Transaction.Print)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", middleware.RequireRole("manager", "admin"), h.Printer.TestPrint)
	}
}
