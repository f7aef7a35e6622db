package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/calvarezi/midinero/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func OverviewHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		overview, err := services.GetOverview(pool, currentUserID(c),
			parseDateQuery(c, "start_date"), parseDateQuery(c, "end_date"))
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudo calcular el resumen", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "resumen financiero general", overview)
	}
}

func MonthlyTrendsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		trends, err := services.GetMonthlyTrends(pool, currentUserID(c), intQuery(c, "months", 12))
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudieron calcular las tendencias", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "tendencias mensuales", trends)
	}
}

func CategoryBreakdownHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		breakdown, err := services.GetCategoryBreakdown(pool, currentUserID(c),
			c.Query("type"), parseDateQuery(c, "start_date"), parseDateQuery(c, "end_date"))
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudo calcular el desglose", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "desglose por categorías", breakdown)
	}
}

func SpendingPatternsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		patterns, err := services.GetSpendingPatterns(pool, currentUserID(c), intQuery(c, "days", 90))
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudieron analizar los patrones", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "patrones de gasto", patterns)
	}
}

func ExpensePredictionHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		prediction, err := services.PredictMonthlyExpenses(pool, currentUserID(c), intQuery(c, "months", 6))
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudo calcular la predicción", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "predicción de gastos", prediction)
	}
}

func BudgetHealthHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		month := time.Now()
		if m := parseDateQuery(c, "month"); m != nil {
			month = *m
		}

		health, err := services.GetBudgetHealth(pool, currentUserID(c), month)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudo evaluar la salud financiera", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "salud de presupuestos", health)
	}
}
