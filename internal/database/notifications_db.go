package database

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/calvarezi/midinero/models"
	"github.com/jackc/pgx/v5"
)

func CreateNotification(db Executor, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, title, message, priority, is_read, is_archived, category_id, period_month)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := db.QueryRow(context.Background(), query,
		notification.UserID,
		notification.Type,
		notification.Title,
		notification.Message,
		notification.Priority,
		notification.IsRead,
		notification.IsArchived,
		notification.CategoryID,
		notification.PeriodMonth).Scan(&notification.ID, &notification.CreatedAt)
	if err != nil {
		return fmt.Errorf("error al crear la notificación: %v", err)
	}
	return nil
}

func GetNotificationByID(db Executor, notificationID int) (*models.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, priority, is_read, is_archived,
		       category_id, period_month, created_at
		FROM notifications
		WHERE id = $1`

	notification := &models.Notification{}
	err := db.QueryRow(context.Background(), query, notificationID).Scan(
		&notification.ID,
		&notification.UserID,
		&notification.Type,
		&notification.Title,
		&notification.Message,
		&notification.Priority,
		&notification.IsRead,
		&notification.IsArchived,
		&notification.CategoryID,
		&notification.PeriodMonth,
		&notification.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("notificación con ID %d no encontrada", notificationID)
		}
		return nil, fmt.Errorf("error al obtener la notificación: %v", err)
	}

	return notification, nil
}

// NotificationFilter son los filtros opcionales del listado de notificaciones.
type NotificationFilter struct {
	Type       string
	Priority   string
	IsRead     *bool
	IsArchived *bool
	StartDate  *time.Time
	EndDate    *time.Time
}

func GetNotificationsByUserID(db Executor, userID int, filter NotificationFilter) ([]models.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, priority, is_read, is_archived,
		       category_id, period_month, created_at
		FROM notifications
		WHERE user_id = $1`
	args := []any{userID}

	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		query += fmt.Sprintf(" AND priority = $%d", len(args))
	}
	if filter.IsRead != nil {
		args = append(args, *filter.IsRead)
		query += fmt.Sprintf(" AND is_read = $%d", len(args))
	}
	if filter.IsArchived != nil {
		args = append(args, *filter.IsArchived)
		query += fmt.Sprintf(" AND is_archived = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("error al obtener las notificaciones: %v", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.Priority,
			&n.IsRead, &n.IsArchived, &n.CategoryID, &n.PeriodMonth, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

// HasBudgetAlert comprueba la clave de deduplicación: si ya existe cualquier
// alerta de presupuesto (BUDGET_EXCEEDED o BUDGET_WARNING) para el usuario,
// la categoría y el mes, no debe emitirse otra.
func HasBudgetAlert(db Executor, userID, categoryID int, month time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM notifications
			WHERE user_id = $1
			  AND category_id = $2
			  AND period_month = $3
			  AND type IN ('BUDGET_EXCEEDED', 'BUDGET_WARNING')
		)`

	var exists bool
	err := db.QueryRow(context.Background(), query, userID, categoryID, month).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error al comprobar alertas previas del presupuesto: %v", err)
	}
	return exists, nil
}

func MarkNotificationAsRead(db Executor, userID, notificationID int) error {
	result, err := db.Exec(context.Background(),
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`,
		notificationID, userID)
	if err != nil {
		return fmt.Errorf("error al marcar la notificación como leída: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("notificación con ID %d no encontrada", notificationID)
	}
	return nil
}

func MarkAllNotificationsAsRead(db Executor, userID int) (int64, error) {
	result, err := db.Exec(context.Background(),
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`, userID)
	if err != nil {
		return 0, fmt.Errorf("error al marcar las notificaciones como leídas: %v", err)
	}
	return result.RowsAffected(), nil
}

func ArchiveNotification(db Executor, userID, notificationID int) error {
	result, err := db.Exec(context.Background(),
		`UPDATE notifications SET is_archived = TRUE WHERE id = $1 AND user_id = $2`,
		notificationID, userID)
	if err != nil {
		return fmt.Errorf("error al archivar la notificación: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("notificación con ID %d no encontrada", notificationID)
	}
	return nil
}

// ClearReadNotifications elimina definitivamente las notificaciones que ya
// fueron leídas Y archivadas. Es la única vía de borrado masivo.
func ClearReadNotifications(db Executor, userID int) (int64, error) {
	result, err := db.Exec(context.Background(),
		`DELETE FROM notifications WHERE user_id = $1 AND is_read = TRUE AND is_archived = TRUE`, userID)
	if err != nil {
		return 0, fmt.Errorf("error al eliminar las notificaciones leídas: %v", err)
	}
	return result.RowsAffected(), nil
}

func DeleteNotification(db Executor, userID, notificationID int) error {
	result, err := db.Exec(context.Background(),
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, notificationID, userID)
	if err != nil {
		return fmt.Errorf("error al eliminar la notificación: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("notificación con ID %d no encontrada", notificationID)
	}
	return nil
}

// NotificationSummary son los contadores del resumen de notificaciones.
type NotificationSummary struct {
	Total          int     `json:"total"`
	Read           int     `json:"read"`
	Unread         int     `json:"unread"`
	Archived       int     `json:"archived"`
	PercentageRead float64 `json:"percentage_read"`
}

func GetNotificationSummary(db Executor, userID int) (*NotificationSummary, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_read),
			COUNT(*) FILTER (WHERE NOT is_read),
			COUNT(*) FILTER (WHERE is_archived)
		FROM notifications
		WHERE user_id = $1`

	summary := &NotificationSummary{}
	err := db.QueryRow(context.Background(), query, userID).Scan(
		&summary.Total, &summary.Read, &summary.Unread, &summary.Archived)
	if err != nil {
		return nil, fmt.Errorf("error al obtener el resumen de notificaciones: %v", err)
	}
	if summary.Total > 0 {
		summary.PercentageRead = math.Round(float64(summary.Read)/float64(summary.Total)*10000) / 100
	}
	return summary, nil
}
