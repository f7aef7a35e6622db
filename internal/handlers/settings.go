package handlers

import (
	"net/http"

	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/models"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func GetSettingsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := database.GetSettingsByUserID(pool, currentUserID(c))
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudo obtener la configuración", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "configuración del usuario", settings)
	}
}

type settingsRequest struct {
	HighExpenseThreshold      float64 `json:"high_expense_threshold" binding:"required,gt=0"`
	ReceiveEmailNotifications *bool   `json:"receive_email_notifications" binding:"required"`
}

func UpdateSettingsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req settingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "configuración inválida", err.Error())
			return
		}

		settings := &models.UserSettings{
			UserID:                    currentUserID(c),
			HighExpenseThreshold:      req.HighExpenseThreshold,
			ReceiveEmailNotifications: *req.ReceiveEmailNotifications,
		}
		if err := database.UpsertSettings(pool, settings); err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudo guardar la configuración", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "configuración guardada", settings)
	}
}
