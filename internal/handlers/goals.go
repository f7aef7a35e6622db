package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/internal/export"
	"github.com/calvarezi/midinero/internal/services"
	"github.com/calvarezi/midinero/models"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type goalRequest struct {
	Name         string    `json:"name" binding:"required"`
	Month        time.Time `json:"month" binding:"required"`
	TargetAmount float64   `json:"target_amount" binding:"required,gt=0"`
}

func CreateGoalHandler(pool *pgxpool.Pool, notifier *services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req goalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "datos de meta inválidos", err.Error())
			return
		}

		goal := &models.FinancialGoal{
			UserID:       currentUserID(c),
			Name:         req.Name,
			Month:        services.MonthOf(req.Month),
			TargetAmount: req.TargetAmount,
		}
		if err := database.CreateGoal(pool, goal); err != nil {
			respondError(c, http.StatusBadRequest, "no se pudo crear la meta", err.Error())
			return
		}

		// El mes puede tener ya movimientos suficientes para cumplirla.
		if err := services.RecalcGoal(pool, notifier, goal); err != nil {
			log.Printf("error al recalcular la meta %d: %v", goal.ID, err)
		}
		respondSuccess(c, http.StatusCreated, "meta creada", goal)
	}
}

func ListGoalsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		goals, err := database.GetGoalsByUserID(pool, currentUserID(c))
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudieron obtener las metas", err.Error())
			return
		}

		for i := range goals {
			goals[i].Progress = services.GoalProgress(goals[i].CurrentAmount, goals[i].TargetAmount)
		}
		respondSuccess(c, http.StatusOK, "metas del usuario", goals)
	}
}

func GetGoalHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "ID de meta inválido")
			return
		}

		goal, err := database.GetGoalByID(pool, id)
		if err != nil || goal.UserID != currentUserID(c) {
			respondError(c, http.StatusNotFound, "meta no encontrada")
			return
		}
		goal.Progress = services.GoalProgress(goal.CurrentAmount, goal.TargetAmount)
		respondSuccess(c, http.StatusOK, "detalle de la meta", goal)
	}
}

func UpdateGoalHandler(pool *pgxpool.Pool, notifier *services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "ID de meta inválido")
			return
		}

		var req goalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "datos de meta inválidos", err.Error())
			return
		}

		goal := &models.FinancialGoal{
			ID:           id,
			UserID:       currentUserID(c),
			Name:         req.Name,
			Month:        services.MonthOf(req.Month),
			TargetAmount: req.TargetAmount,
		}
		if err := database.UpdateGoal(pool, goal); err != nil {
			respondError(c, http.StatusNotFound, "no se pudo actualizar la meta", err.Error())
			return
		}

		if err := services.RecalcGoal(pool, notifier, goal); err != nil {
			log.Printf("error al recalcular la meta %d: %v", goal.ID, err)
		}
		respondSuccess(c, http.StatusOK, "meta actualizada", goal)
	}
}

func DeleteGoalHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "ID de meta inválido")
			return
		}

		if err := database.DeleteGoal(pool, currentUserID(c), id); err != nil {
			respondError(c, http.StatusNotFound, "no se pudo eliminar la meta", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "meta eliminada", nil)
	}
}

type addAmountRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// AddGoalAmountHandler registra un aporte manual a la meta. El monto vigente
// sale siempre del libro mayor: el aporte dispara el mismo recálculo que una
// transacción y la respuesta devuelve la meta ya recalculada.
func AddGoalAmountHandler(pool *pgxpool.Pool, notifier *services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "ID de meta inválido")
			return
		}

		var req addAmountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "monto inválido", err.Error())
			return
		}

		goal, err := database.GetGoalByID(pool, id)
		if err != nil || goal.UserID != currentUserID(c) {
			respondError(c, http.StatusNotFound, "meta no encontrada")
			return
		}

		if err := services.RecalcGoal(pool, notifier, goal); err != nil {
			log.Printf("error al recalcular la meta %d: %v", goal.ID, err)
		}
		respondSuccess(c, http.StatusOK, fmt.Sprintf("Aporte de $%.2f agregado correctamente", req.Amount), goal)
	}
}

// GoalProgressHandler devuelve el porcentaje alcanzado, con el ahorro
// recalculado al momento y el progreso acotado al 100%.
func GoalProgressHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "ID de meta inválido")
			return
		}

		goal, err := database.GetGoalByID(pool, id)
		if err != nil || goal.UserID != currentUserID(c) {
			respondError(c, http.StatusNotFound, "meta no encontrada")
			return
		}

		income, expense, err := database.SumIncomeExpense(pool, goal.UserID, services.MonthOf(goal.Month))
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudo calcular el progreso", err.Error())
			return
		}

		savings := income.Sub(expense)
		currentSavings, _ := savings.Round(2).Float64()
		percentage := services.GoalProgress(currentSavings, goal.TargetAmount)
		if percentage > 100 {
			percentage = 100
		}

		respondSuccess(c, http.StatusOK, "Progreso de meta obtenido correctamente.", gin.H{
			"goal_id":             goal.ID,
			"name":                goal.Name,
			"target_amount":       goal.TargetAmount,
			"achieved":            goal.Achieved,
			"current_savings":     currentSavings,
			"progress_percentage": percentage,
		})
	}
}

func ExportGoalsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		goals, err := database.GetGoalsByUserID(pool, currentUserID(c))
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudieron obtener las metas", err.Error())
			return
		}
		if len(goals) == 0 {
			respondError(c, http.StatusNotFound, "No hay metas para exportar.")
			return
		}

		var (
			content     []byte
			contentType string
			filename    string
		)
		format := c.DefaultQuery("format", "csv")
		switch format {
		case "csv":
			content, err = export.GoalsCSV(goals)
			contentType = "text/csv"
			filename = "metas.csv"
		case "xlsx":
			content, err = export.GoalsXLSX(goals)
			contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
			filename = "metas.xlsx"
		default:
			respondError(c, http.StatusBadRequest, "formato de exportación no soportado", format)
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudo generar la exportación", err.Error())
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
		c.Data(http.StatusOK, contentType, content)
	}
}
