package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/calvarezi/midinero/models"
	"github.com/jackc/pgx/v5"
)

// GetSettingsByUserID devuelve la configuración del usuario. Si todavía no
// tiene fila propia, devuelve los valores por defecto sin error.
func GetSettingsByUserID(db Executor, userID int) (*models.UserSettings, error) {
	query := `
		SELECT id, user_id, high_expense_threshold, receive_email_notifications, created_at
		FROM user_settings
		WHERE user_id = $1`

	settings := &models.UserSettings{}
	err := db.QueryRow(context.Background(), query, userID).Scan(
		&settings.ID,
		&settings.UserID,
		&settings.HighExpenseThreshold,
		&settings.ReceiveEmailNotifications,
		&settings.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &models.UserSettings{
				UserID:                    userID,
				HighExpenseThreshold:      models.DefaultHighExpenseThreshold,
				ReceiveEmailNotifications: true,
			}, nil
		}
		return nil, fmt.Errorf("error al obtener la configuración del usuario: %v", err)
	}

	return settings, nil
}

func UpsertSettings(db Executor, settings *models.UserSettings) error {
	query := `
		INSERT INTO user_settings (user_id, high_expense_threshold, receive_email_notifications)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET high_expense_threshold = EXCLUDED.high_expense_threshold,
		    receive_email_notifications = EXCLUDED.receive_email_notifications
		RETURNING id, created_at`

	err := db.QueryRow(context.Background(), query,
		settings.UserID,
		settings.HighExpenseThreshold,
		settings.ReceiveEmailNotifications).Scan(&settings.ID, &settings.CreatedAt)
	if err != nil {
		return fmt.Errorf("error al guardar la configuración del usuario: %v", err)
	}
	return nil
}
