package services

import (
	"fmt"
	"log"

	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/models"
	"github.com/shopspring/decimal"
)

// RecalcGoal recalcula el monto actual de la meta desde cero a partir del
// libro mayor: ahorro = ingresos − gastos del mes de la meta. El recálculo es
// total, no incremental, así que da el mismo resultado sin importar el orden
// en que lleguen las transacciones del mes.
//
// El flag achieved es un pestillo de un solo sentido: se enciende la primera
// vez que el ahorro alcanza el objetivo y este recálculo jamás lo apaga. La
// notificación GOAL_COMPLETED se emite solo en esa primera transición.
func RecalcGoal(db database.Executor, notifier *Notifier, goal *models.FinancialGoal) error {
	month := MonthOf(goal.Month)

	income, expense, err := database.SumIncomeExpense(db, goal.UserID, month)
	if err != nil {
		return err
	}

	savings := income.Sub(expense)
	goal.CurrentAmount, _ = savings.Round(2).Float64()
	goal.Progress = GoalProgress(goal.CurrentAmount, goal.TargetAmount)

	if err := database.SaveGoalAmount(db, goal.ID, goal.CurrentAmount); err != nil {
		return err
	}

	if savings.GreaterThanOrEqual(decimal.NewFromFloat(goal.TargetAmount)) {
		flipped, err := database.LatchGoalAchieved(db, goal.ID)
		if err != nil {
			return err
		}
		goal.Achieved = true

		if flipped {
			notification := &models.Notification{
				UserID:   goal.UserID,
				Type:     models.NotificationGoalCompleted,
				Title:    fmt.Sprintf("Meta alcanzada: %s", goal.Name),
				Message:  fmt.Sprintf("¡Felicidades! Has alcanzado tu meta '%s' de $%.2f.", goal.Name, goal.TargetAmount),
				Priority: models.PriorityMedium,
			}
			if err := notifier.Create(db, notification, true); err != nil {
				log.Printf("error al crear la notificación de meta cumplida: %v", err)
			}
		}
	}

	return nil
}
