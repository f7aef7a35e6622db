package routes

import (
	"net/http"
	"strings"

	"github.com/calvarezi/midinero/internal/handlers"
	"github.com/calvarezi/midinero/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "http://localhost:3000" || origin == "http://localhost:3001" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}

		c.Next()
	}
}

// AuthMiddleware valida el token Bearer y deja el ID del usuario en el
// contexto como "user_id".
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "falta el token de autorización",
			})
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return handlers.JWTSecret(), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "token inválido o expirado",
			})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "token inválido o expirado",
			})
			return
		}
		sub, ok := claims["sub"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "token inválido o expirado",
			})
			return
		}

		c.Set("user_id", int(sub))
		c.Next()
	}
}

// SetupRouter registra todas las rutas de la API.
func SetupRouter(pool *pgxpool.Pool, notifier *services.Notifier) *gin.Engine {
	r := gin.Default()
	r.Use(CORSMiddleware())

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", handlers.RegisterHandler(pool))
		auth.POST("/login", handlers.LoginHandler(pool))
		auth.GET("/profile", AuthMiddleware(), handlers.ProfileHandler(pool))
	}

	finances := r.Group("/api/finances", AuthMiddleware())

	categories := finances.Group("/categories")
	{
		categories.POST("", handlers.CreateCategoryHandler(pool))
		categories.GET("", handlers.ListCategoriesHandler(pool))
		categories.GET("/:id", handlers.GetCategoryHandler(pool))
		categories.PUT("/:id", handlers.UpdateCategoryHandler(pool))
		categories.DELETE("/:id", handlers.DeleteCategoryHandler(pool))
	}

	transactions := finances.Group("/transactions")
	{
		transactions.POST("", handlers.CreateTransactionHandler(pool, notifier))
		transactions.GET("", handlers.ListTransactionsHandler(pool))
		transactions.GET("/summary", handlers.TransactionSummaryHandler(pool))
		transactions.GET("/export", handlers.ExportTransactionsHandler(pool))
		transactions.GET("/:id", handlers.GetTransactionHandler(pool))
		transactions.PUT("/:id", handlers.UpdateTransactionHandler(pool, notifier))
		transactions.DELETE("/:id", handlers.DeleteTransactionHandler(pool, notifier))
	}

	budgets := finances.Group("/budgets")
	{
		budgets.POST("", handlers.CreateBudgetHandler(pool, notifier))
		budgets.GET("", handlers.ListBudgetsHandler(pool))
		budgets.GET("/:id", handlers.GetBudgetHandler(pool))
		budgets.PUT("/:id", handlers.UpdateBudgetHandler(pool, notifier))
		budgets.DELETE("/:id", handlers.DeleteBudgetHandler(pool))
	}

	goals := finances.Group("/goals")
	{
		goals.POST("", handlers.CreateGoalHandler(pool, notifier))
		goals.GET("", handlers.ListGoalsHandler(pool))
		goals.GET("/export", handlers.ExportGoalsHandler(pool))
		goals.GET("/:id", handlers.GetGoalHandler(pool))
		goals.PUT("/:id", handlers.UpdateGoalHandler(pool, notifier))
		goals.DELETE("/:id", handlers.DeleteGoalHandler(pool))
		goals.POST("/:id/add-amount", handlers.AddGoalAmountHandler(pool, notifier))
		goals.GET("/:id/progress", handlers.GoalProgressHandler(pool))
	}

	notifications := finances.Group("/notifications")
	{
		notifications.GET("", handlers.ListNotificationsHandler(pool))
		notifications.GET("/summary", handlers.NotificationSummaryHandler(pool))
		notifications.POST("/mark-all-read", handlers.MarkAllNotificationsReadHandler(pool))
		notifications.POST("/clear-read", handlers.ClearReadNotificationsHandler(pool))
		notifications.POST("/send-test-email", handlers.SendTestEmailHandler(pool, notifier))
		notifications.POST("/:id/mark-read", handlers.MarkNotificationReadHandler(pool))
		notifications.POST("/:id/archive", handlers.ArchiveNotificationHandler(pool))
		notifications.DELETE("/:id", handlers.DeleteNotificationHandler(pool))
	}

	settings := finances.Group("/settings")
	{
		settings.GET("", handlers.GetSettingsHandler(pool))
		settings.PUT("", handlers.UpdateSettingsHandler(pool))
	}

	dashboard := finances.Group("/dashboard")
	{
		dashboard.GET("/overview", handlers.OverviewHandler(pool))
		dashboard.GET("/trends", handlers.MonthlyTrendsHandler(pool))
		dashboard.GET("/categories", handlers.CategoryBreakdownHandler(pool))
		dashboard.GET("/patterns", handlers.SpendingPatternsHandler(pool))
		dashboard.GET("/prediction", handlers.ExpensePredictionHandler(pool))
		dashboard.GET("/budget-health", handlers.BudgetHealthHandler(pool))
	}

	return r
}
