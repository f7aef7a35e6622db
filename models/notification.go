package models

import "time"

// Tipos de notificación soportados por el sistema.
const (
	NotificationHighExpense    = "HIGH_EXPENSE"
	NotificationGoalCompleted  = "GOAL_COMPLETED"
	NotificationBudgetExceeded = "BUDGET_EXCEEDED"
	NotificationBudgetWarning  = "BUDGET_WARNING"
	NotificationReminder       = "REMINDER"
	NotificationSystem         = "SYSTEM"
)

// Prioridades de notificación.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

type Notification struct {
	ID         int       `json:"id" db:"id"`
	UserID     int       `json:"user_id" db:"user_id"`
	Type       string    `json:"type" db:"type"`
	Title      string    `json:"title" db:"title"`
	Message    string    `json:"message" db:"message"`
	Priority   string    `json:"priority" db:"priority"`
	IsRead     bool      `json:"is_read" db:"is_read"`
	IsArchived bool      `json:"is_archived" db:"is_archived"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	// Clave estructurada de deduplicación para alertas de presupuesto:
	// (user_id, category_id, type, period_month). Nula para el resto de tipos.
	CategoryID  *int       `json:"category_id,omitempty" db:"category_id"`
	PeriodMonth *time.Time `json:"period_month,omitempty" db:"period_month"`
}

// CanPurge indica si la notificación puede eliminarse definitivamente:
// solo cuando ya fue leída y archivada.
func (n *Notification) CanPurge() bool {
	return n.IsRead && n.IsArchived
}

func ValidNotificationType(t string) bool {
	switch t {
	case NotificationHighExpense, NotificationGoalCompleted, NotificationBudgetExceeded,
		NotificationBudgetWarning, NotificationReminder, NotificationSystem:
		return true
	}
	return false
}
