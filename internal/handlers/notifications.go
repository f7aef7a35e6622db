package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/internal/services"
	"github.com/calvarezi/midinero/models"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func parseBoolQuery(c *gin.Context, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

func parseDateQuery(c *gin.Context, name string) *time.Time {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

func ListNotificationsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := database.NotificationFilter{
			Type:       c.Query("type"),
			Priority:   c.Query("priority"),
			IsRead:     parseBoolQuery(c, "is_read"),
			IsArchived: parseBoolQuery(c, "is_archived"),
			StartDate:  parseDateQuery(c, "start_date"),
			EndDate:    parseDateQuery(c, "end_date"),
		}
		if filter.Type != "" && !models.ValidNotificationType(filter.Type) {
			respondError(c, http.StatusBadRequest, "tipo de notificación desconocido", filter.Type)
			return
		}

		notifications, err := database.GetNotificationsByUserID(pool, currentUserID(c), filter)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudieron obtener las notificaciones", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "notificaciones del usuario", notifications)
	}
}

func MarkNotificationReadHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "ID de notificación inválido")
			return
		}

		if err := database.MarkNotificationAsRead(pool, currentUserID(c), id); err != nil {
			respondError(c, http.StatusNotFound, "no se pudo marcar la notificación", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "notificación marcada como leída", nil)
	}
}

func MarkAllNotificationsReadHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := database.MarkAllNotificationsAsRead(pool, currentUserID(c))
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudieron marcar las notificaciones", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, fmt.Sprintf("%d notificaciones marcadas como leídas", count), gin.H{"marked": count})
	}
}

func ArchiveNotificationHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "ID de notificación inválido")
			return
		}

		if err := database.ArchiveNotification(pool, currentUserID(c), id); err != nil {
			respondError(c, http.StatusNotFound, "no se pudo archivar la notificación", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "notificación archivada", nil)
	}
}

// ClearReadNotificationsHandler elimina definitivamente las notificaciones
// que ya fueron leídas y archivadas.
func ClearReadNotificationsHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := database.ClearReadNotifications(pool, currentUserID(c))
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudieron eliminar las notificaciones", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, fmt.Sprintf("%d notificaciones eliminadas", count), gin.H{"deleted": count})
	}
}

func DeleteNotificationHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusBadRequest, "ID de notificación inválido")
			return
		}

		if err := database.DeleteNotification(pool, currentUserID(c), id); err != nil {
			respondError(c, http.StatusNotFound, "no se pudo eliminar la notificación", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "notificación eliminada", nil)
	}
}

func NotificationSummaryHandler(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := database.GetNotificationSummary(pool, currentUserID(c))
		if err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudo calcular el resumen", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "resumen de notificaciones", summary)
	}
}

// SendTestEmailHandler crea una notificación SYSTEM y dispara el envío de
// correo para verificar la configuración SMTP del usuario.
func SendTestEmailHandler(pool *pgxpool.Pool, notifier *services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		notification := &models.Notification{
			UserID:   currentUserID(c),
			Type:     models.NotificationSystem,
			Title:    "Correo de prueba",
			Message:  "Este es un correo de prueba de MiDinero. Si lo recibiste, las notificaciones por correo funcionan.",
			Priority: models.PriorityLow,
		}
		if err := notifier.Create(pool, notification, true); err != nil {
			respondError(c, http.StatusInternalServerError, "no se pudo crear la notificación de prueba", err.Error())
			return
		}
		respondSuccess(c, http.StatusOK, "correo de prueba enviado", notification)
	}
}
