package services

import (
	"fmt"
	"math"
	"time"

	"github.com/calvarezi/midinero/models"
	"github.com/shopspring/decimal"
)

// MonthOf normaliza cualquier fecha al primer día de su mes, que es como se
// identifican los periodos de presupuestos y metas.
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// ProgressPercentage calcula gastado/límite × 100 redondeado a 2 decimales.
// Con límite cero o negativo devuelve 0, nunca falla por división entre cero.
func ProgressPercentage(spent, limit decimal.Decimal) float64 {
	if limit.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	progress, _ := spent.Div(limit).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return progress
}

// GoalProgress es el porcentaje alcanzado de una meta, redondeado a 2
// decimales. 0 cuando la meta no tiene monto objetivo.
func GoalProgress(currentAmount, targetAmount float64) float64 {
	if targetAmount <= 0 {
		return 0
	}
	return math.Round(currentAmount/targetAmount*10000) / 100
}

// Umbrales de alerta de presupuesto.
const (
	budgetExceededThreshold = 100
	budgetWarningThreshold  = 90
)

// BudgetAlert es la alerta que corresponde emitir para un presupuesto, ya
// redactada. Nula cuando el gasto está por debajo del umbral de aviso.
type BudgetAlert struct {
	Type     string
	Title    string
	Message  string
	Priority string
	Progress float64
}

// EvaluateBudget aplica los umbrales de alerta sobre el gasto recalculado:
// progreso >= 100% emite BUDGET_EXCEEDED con prioridad alta, entre 90% y
// 100% emite BUDGET_WARNING con prioridad media. Solo aplica si el
// presupuesto tiene activado el aviso.
func EvaluateBudget(categoryName string, month time.Time, spent, limit decimal.Decimal, notifyWhenExceeded bool) *BudgetAlert {
	if !notifyWhenExceeded {
		return nil
	}

	progress := ProgressPercentage(spent, limit)
	spentAmount, _ := spent.Round(2).Float64()
	limitAmount, _ := limit.Round(2).Float64()
	period := month.Format("2006-01")

	switch {
	case progress >= budgetExceededThreshold:
		return &BudgetAlert{
			Type:  models.NotificationBudgetExceeded,
			Title: fmt.Sprintf("Presupuesto superado: %s", categoryName),
			Message: fmt.Sprintf(
				"Has superado tu presupuesto para %s en %s. Gasto total: $%.2f / Límite: $%.2f.",
				categoryName, period, spentAmount, limitAmount),
			Priority: models.PriorityHigh,
			Progress: progress,
		}
	case progress >= budgetWarningThreshold:
		return &BudgetAlert{
			Type:  models.NotificationBudgetWarning,
			Title: fmt.Sprintf("Presupuesto casi agotado: %s", categoryName),
			Message: fmt.Sprintf(
				"Ya usaste el %.1f%% del presupuesto para %s en %s. Controla tus gastos.",
				progress, categoryName, period),
			Priority: models.PriorityMedium,
			Progress: progress,
		}
	}
	return nil
}
