package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/internal/services"
	"github.com/calvarezi/midinero/models"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type budgetRequest struct {
	CategoryID         int       `json:"category_id" binding:"required"`
	Month              time.Time `json:"month" binding:"required"`
	LimitAmount        float64   `json:"limit_amount" binding:"required,gt=0"`
	NotifyWhenExceeded *bool     `json:"notify_when_exceeded"`
}

func CreateBudgetHandler(pool *pgxpool.Pool, notifier *services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req budgetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "datos de presupuesto inválidos", err.Error())
			return
		}

		userID := currentUserID(c)
		category, err := database.GetCategoryByID(pool, req.CategoryID)
		if err != nil || category.UserID != userID || !category.IsExpense() {
			respondError(c, http.StatusBadRequest, "el presupuesto requiere una categoría de gasto propia")
			return
		}

		notify := true
		if req.NotifyWhenExceeded != nil {
			notify = *req.NotifyWhenExceeded
		}

		budget := &models.Budget{
			UserID:             userID,
			CategoryID:         req.CategoryID,
			Month:              services.MonthOf(req.Month),
			LimitAmount:        req.LimitAmount,
			NotifyWhenExceeded: notify,
			CategoryName:       category.Name,
		}
		if err := database.CreateBudget(pool, budget); err != nil {
			respondError(c, http.StatusBadRequest, "no se pudo crear el presupuesto", err.Error())
			return
		}

		if err := services.CheckBudget(pool, notifier, budget); err != nil {
			log.Printf("error al verificar el presupuesto %d: %v", budget.ID, err)
		}
		if err := services.AttachBudgetDerived(pool, budget); err != nil {
			log.Printf("error al calcular los derivados del presupuesto %d: %v", budget.ID, err)
		}
		respondSuccess(c, http.StatusCreated, "presupuesto creado", budget)
	}
}

func ListBudgetsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		budgets, err := database.GetBudgetsByUserID(pool, currentUserID(c))
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudieron obtener los presupuestos", err.Error())
			return
		}

		for i := range budgets {
			if err := services.AttachBudgetDerived(pool, &budgets[i]); err != nil {
				respondError(c, http.StatusInternalServerError, "no se pudo calcular el progreso", err.Error())
				return
			}
		}
		respondSuccess(c, http.StatusOK, "presupuestos del usuario", budgets)
	}
}

func GetBudgetHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "ID de presupuesto inválido")
			return
		}

		budget, err := database.GetBudgetByID(pool, id)
		if err != nil || budget.UserID != currentUserID(c) {
			respondError(c, http.StatusNotFound, "presupuesto no encontrado")
			return
		}

		if err := services.AttachBudgetDerived(pool, budget); err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudo calcular el progreso", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "detalle del presupuesto", budget)
	}
}

func UpdateBudgetHandler(pool *pgxpool.Pool, notifier *services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "ID de presupuesto inválido")
			return
		}

		var req budgetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "datos de presupuesto inválidos", err.Error())
			return
		}

		userID := currentUserID(c)
		category, err := database.GetCategoryByID(pool, req.CategoryID)
		if err != nil || category.UserID != userID || !category.IsExpense() {
			respondError(c, http.StatusBadRequest, "el presupuesto requiere una categoría de gasto propia")
			return
		}

		notify := true
		if req.NotifyWhenExceeded != nil {
			notify = *req.NotifyWhenExceeded
		}

		budget := &models.Budget{
			ID:                 id,
			UserID:             userID,
			CategoryID:         req.CategoryID,
			Month:              services.MonthOf(req.Month),
			LimitAmount:        req.LimitAmount,
			NotifyWhenExceeded: notify,
			CategoryName:       category.Name,
		}
		if err := database.UpdateBudget(pool, budget); err != nil {
			respondError(c, http.StatusNotFound, "no se pudo actualizar el presupuesto", err.Error())
			return
		}

		// Bajar el límite puede dejar el presupuesto superado de inmediato.
		if err := services.CheckBudget(pool, notifier, budget); err != nil {
			log.Printf("error al verificar el presupuesto %d: %v", budget.ID, err)
		}
		if err := services.AttachBudgetDerived(pool, budget); err != nil {
			log.Printf("error al calcular los derivados del presupuesto %d: %v", budget.ID, err)
		}
		respondSuccess(c, http.StatusOK, "presupuesto actualizado", budget)
	}
}

func DeleteBudgetHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "ID de presupuesto inválido")
			return
		}

		if err := database.DeleteBudget(pool, currentUserID(c), id); err != nil {
			respondError(c, http.StatusNotFound, "no se pudo eliminar el presupuesto", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "presupuesto eliminado", nil)
	}
}
