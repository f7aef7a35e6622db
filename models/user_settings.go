package models

import "time"

// DefaultHighExpenseThreshold es el umbral de gasto alto cuando el usuario
// todavía no tiene configuración propia.
const DefaultHighExpenseThreshold = 500000

type UserSettings struct {
	ID                        int       `json:"id" db:"id"`
	UserID                    int       `json:"user_id" db:"user_id"`
	HighExpenseThreshold      float64   `json:"high_expense_threshold" db:"high_expense_threshold"`
	ReceiveEmailNotifications bool      `json:"receive_email_notifications" db:"receive_email_notifications"`
	CreatedAt                 time.Time `json:"created_at" db:"created_at"`
}
