package models

import "time"

type Budget struct {
	ID                 int       `json:"id" db:"id"`
	UserID             int       `json:"user_id" db:"user_id"`
	CategoryID         int       `json:"category_id" db:"category_id"`
	Month              time.Time `json:"month" db:"month"` // Primer día del mes presupuestado
	LimitAmount        float64   `json:"limit_amount" db:"limit_amount"`
	NotifyWhenExceeded bool      `json:"notify_when_exceeded" db:"notify_when_exceeded"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`

	// Campos derivados, calculados a partir de las transacciones del mes.
	// Nunca se guardan en la base de datos.
	SpentAmount        float64 `json:"spent_amount" db:"-"`
	ProgressPercentage float64 `json:"progress_percentage" db:"-"`
	CategoryName       string  `json:"category_name,omitempty" db:"-"`
}
