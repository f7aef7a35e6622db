package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AfterTransactionWrite ejecuta los efectos secundarios de crear, actualizar
// o eliminar una transacción: alerta de gasto alto, verificación del
// presupuesto de la categoría y recálculo de las metas del mes. La escritura
// principal ya está confirmada; los fallos aquí se registran y no se
// propagan al cliente.
func AfterTransactionWrite(pool *pgxpool.Pool, notifier *Notifier, transaction *models.Transaction) {
	category, err := database.GetCategoryByID(pool, transaction.CategoryID)
	if err != nil {
		log.Printf("error al obtener la categoría de la transacción %d: %v", transaction.ID, err)
		return
	}

	month := MonthOf(transaction.Date)

	if category.IsExpense() {
		notifyHighExpense(pool, notifier, transaction, category)

		budget, err := database.GetBudgetByCategoryMonth(pool, transaction.UserID, transaction.CategoryID, month)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			// Sin presupuesto para esa categoría y mes no hay nada que verificar.
		case err != nil:
			log.Printf("error al buscar el presupuesto de la categoría %d: %v", transaction.CategoryID, err)
		default:
			if err := CheckBudget(pool, notifier, budget); err != nil {
				log.Printf("error al verificar el presupuesto %d: %v", budget.ID, err)
			}
		}
	}

	goals, err := database.GetGoalsByMonth(pool, transaction.UserID, month)
	if err != nil {
		log.Printf("error al obtener las metas del mes: %v", err)
		return
	}
	for i := range goals {
		if err := RecalcGoal(pool, notifier, &goals[i]); err != nil {
			log.Printf("error al recalcular la meta %d: %v", goals[i].ID, err)
		}
	}
}

// notifyHighExpense emite una alerta HIGH_EXPENSE cuando el gasto alcanza el
// umbral configurado por el usuario. A diferencia de las alertas de
// presupuesto, cada gasto alto genera su propia notificación.
func notifyHighExpense(pool *pgxpool.Pool, notifier *Notifier, transaction *models.Transaction, category *models.Category) {
	settings, err := database.GetSettingsByUserID(pool, transaction.UserID)
	if err != nil {
		log.Printf("error al obtener la configuración del usuario %d: %v", transaction.UserID, err)
		return
	}

	if transaction.Amount < settings.HighExpenseThreshold {
		return
	}

	notification := &models.Notification{
		UserID:   transaction.UserID,
		Type:     models.NotificationHighExpense,
		Title:    "Gasto alto detectado",
		Message:  fmt.Sprintf("Tu gasto de $%.2f en '%s' supera el límite recomendado.", transaction.Amount, category.Name),
		Priority: models.PriorityHigh,
	}
	if err := notifier.Create(pool, notification, settings.ReceiveEmailNotifications); err != nil {
		log.Printf("error al crear la alerta de gasto alto: %v", err)
	}
}
