package routes

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/LovationAdmin/finance-api/config"
	"github.com/LovationAdmin/finance-api/handlers"
	"github.com/LovationAdmin/finance-api/middleware"
	"github.com/LovationAdmin/finance-api/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

// Services holds the process-wide service graph built on the shared pool.
type Services struct {
	Categories   *services.CategoryService
	Transactions *services.TransactionService
	Budgets      *services.BudgetService
	Dashboard    *services.DashboardService
	Export       *services.ExportService
	Auth         *services.AuthService
}

func NewServices(db *sql.DB, cfg *config.Config) *Services {
	agg := services.NewAggregator(db)
	categories := services.NewCategoryService(db)
	transactions := services.NewTransactionService(db)
	budgets := services.NewBudgetService(db, agg)
	users := services.NewUserService(db)

	return &Services{
		Categories:   categories,
		Transactions: transactions,
		Budgets:      budgets,
		Dashboard:    services.NewDashboardService(agg, categories, transactions, budgets),
		Export:       services.NewExportService(transactions),
		Auth:         services.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL, cfg.DataEncryptionKey),
	}
}

// SetupRouter wires middleware and every /api route. ws may be nil when live updates are off.
func SetupRouter(cfg *config.Config, svc *Services, ws *handlers.WSHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.RateLimiter(cfg.RateLimit, cfg.RateWindow))

	var notifier handlers.Notifier
	if ws != nil {
		notifier = ws
	}

	api := router.Group("/api")
	api.Use(middleware.Authenticate(cfg.JWTSecret))
	{
		SetupAuthRoutes(api, svc)
		SetupFinanceRoutes(api, svc, notifier)

		protected := api.Group("/")
		protected.Use(middleware.RequireAuth())
		SetupUserRoutes(protected, svc)

		if ws != nil {
			api.GET("/ws", ws.HandleWS)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": Version,
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	return router
}

// SetupAuthRoutes sets up sign-up, sign-in and the session lookup.
func SetupAuthRoutes(rg *gin.RouterGroup, svc *Services) {
	authHandler := &handlers.AuthHandler{Auth: svc.Auth}

	rg.POST("/auth/signup", authHandler.Signup)
	rg.POST("/auth/login", authHandler.Login)
	rg.GET("/session", authHandler.GetSession)
}

// SetupFinanceRoutes sets up categories, transactions, budgets and the dashboard.
// They identify the user by userId or by token, so they sit outside RequireAuth.
func SetupFinanceRoutes(rg *gin.RouterGroup, svc *Services, notifier handlers.Notifier) {
	categories := &handlers.CategoryHandler{Categories: svc.Categories, Notifier: notifier}
	rg.GET("/categories", categories.GetCategories)
	rg.POST("/categories", categories.CreateCategory)
	rg.PUT("/categories", categories.UpdateCategory)
	rg.DELETE("/categories", categories.DeleteCategory)

	transactions := &handlers.TransactionHandler{
		Transactions: svc.Transactions,
		Export:       svc.Export,
		Notifier:     notifier,
	}
	rg.GET("/transactions", transactions.GetTransactions)
	rg.GET("/transactions/export", transactions.ExportTransactions)
	rg.POST("/transactions", transactions.CreateTransaction)
	rg.PUT("/transactions", transactions.UpdateTransaction)
	rg.DELETE("/transactions", transactions.DeleteTransaction)

	budgets := &handlers.BudgetHandler{Budgets: svc.Budgets, Notifier: notifier}
	rg.GET("/budgets", budgets.GetBudgets)
	rg.POST("/budgets", budgets.CreateBudget)
	rg.PUT("/budgets", budgets.UpdateBudget)
	rg.DELETE("/budgets", budgets.DeleteBudget)

	dashboard := &handlers.DashboardHandler{Dashboard: svc.Dashboard}
	rg.GET("/dashboard", dashboard.GetDashboard)
}

// SetupUserRoutes sets up routes that require a signed-in user.
func SetupUserRoutes(rg *gin.RouterGroup, svc *Services) {
	userHandler := &handlers.UserHandler{Auth: svc.Auth}

	rg.POST("/user/2fa/setup", userHandler.Setup2FA)
	rg.POST("/user/2fa/verify", userHandler.Verify2FA)
	rg.POST("/user/2fa/disable", userHandler.Disable2FA)
}
