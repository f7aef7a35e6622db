package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"time"

	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// budgetLockKey deriva la clave del advisory lock por (usuario, categoría,
// mes). pg_advisory_xact_lock recibe un bigint.
func budgetLockKey(userID, categoryID int, month time.Time) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d:%d:%s", userID, categoryID, month.Format("2006-01"))
	return int64(h.Sum64())
}

// AttachBudgetDerived calcula los campos derivados del presupuesto
// (spent_amount y progress_percentage) a partir del libro mayor. Nunca se
// persisten; se recalculan en cada lectura.
func AttachBudgetDerived(db database.Executor, budget *models.Budget) error {
	month := MonthOf(budget.Month)
	spent, err := database.SumCategoryExpenses(db, budget.UserID, budget.CategoryID, month)
	if err != nil {
		return err
	}
	budget.SpentAmount, _ = spent.Round(2).Float64()
	budget.ProgressPercentage = ProgressPercentage(spent, decimal.NewFromFloat(budget.LimitAmount))
	return nil
}

// CheckBudget recalcula el gasto del presupuesto y emite la alerta que
// corresponda (BUDGET_EXCEEDED o BUDGET_WARNING), como máximo una por
// usuario, categoría y mes.
//
// La secuencia leer-comprobar-escribir corre completa dentro de una
// transacción que mantiene un advisory lock por (usuario, categoría, mes):
// dos escrituras simultáneas sobre el mismo presupuesto no pueden pasar
// ambas la comprobación de duplicados.
func CheckBudget(pool *pgxpool.Pool, notifier *Notifier, budget *models.Budget) error {
	if !budget.NotifyWhenExceeded {
		return nil
	}

	ctx := context.Background()
	month := MonthOf(budget.Month)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error al abrir la transacción de verificación: %v", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`,
		budgetLockKey(budget.UserID, budget.CategoryID, month)); err != nil {
		return fmt.Errorf("error al adquirir el lock del presupuesto: %v", err)
	}

	spent, err := database.SumCategoryExpenses(tx, budget.UserID, budget.CategoryID, month)
	if err != nil {
		return err
	}

	alert := EvaluateBudget(budget.CategoryName, month, spent,
		decimal.NewFromFloat(budget.LimitAmount), budget.NotifyWhenExceeded)
	if alert == nil {
		return tx.Commit(ctx)
	}

	alreadyNotified, err := database.HasBudgetAlert(tx, budget.UserID, budget.CategoryID, month)
	if err != nil {
		return err
	}
	if alreadyNotified {
		// Ya se avisó este mes; se suprime en silencio.
		return tx.Commit(ctx)
	}

	notification := &models.Notification{
		UserID:      budget.UserID,
		Type:        alert.Type,
		Title:       alert.Title,
		Message:     alert.Message,
		Priority:    alert.Priority,
		CategoryID:  &budget.CategoryID,
		PeriodMonth: &month,
	}
	if err := notifier.Create(tx, notification, false); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error al confirmar la transacción de verificación: %v", err)
	}

	// El correo sale recién con la notificación confirmada: un commit fallido
	// no debe generar correo, y el envío SMTP no alarga el advisory lock.
	notifier.DispatchEmail(pool, notification)
	return nil
}

// RecheckMonthlyBudgets vuelve a verificar todos los presupuestos del mes en
// curso. Es idempotente gracias a la deduplicación, así que la tarea diaria
// puede ejecutarla sin miedo a duplicar alertas.
func RecheckMonthlyBudgets(pool *pgxpool.Pool, notifier *Notifier) error {
	month := MonthOf(time.Now())
	budgets, err := database.GetAllBudgetsByMonth(pool, month)
	if err != nil {
		return err
	}

	for i := range budgets {
		if err := CheckBudget(pool, notifier, &budgets[i]); err != nil {
			log.Printf("error al verificar el presupuesto %d: %v", budgets[i].ID, err)
		}
	}
	return nil
}

// SendMonthlyBudgetReminders envía un recordatorio REMINDER a cada usuario
// que tiene presupuestos definidos para el mes que empieza.
func SendMonthlyBudgetReminders(pool *pgxpool.Pool, notifier *Notifier) error {
	month := MonthOf(time.Now())
	budgets, err := database.GetAllBudgetsByMonth(pool, month)
	if err != nil {
		return err
	}

	notified := make(map[int]bool)
	for _, b := range budgets {
		if notified[b.UserID] {
			continue
		}
		notified[b.UserID] = true

		notification := &models.Notification{
			UserID:   b.UserID,
			Type:     models.NotificationReminder,
			Title:    "Recordatorio de presupuestos",
			Message:  fmt.Sprintf("Revisa tus presupuestos de %s.", month.Format("2006-01")),
			Priority: models.PriorityLow,
		}
		if err := notifier.Create(pool, notification, false); err != nil {
			log.Printf("error al crear el recordatorio para el usuario %d: %v", b.UserID, err)
		}
	}
	return nil
}
