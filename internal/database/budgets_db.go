package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/calvarezi/midinero/models"
	"github.com/jackc/pgx/v5"
)

func CreateBudget(db Executor, budget *models.Budget) error {
	query := `
		INSERT INTO budgets (user_id, category_id, month, limit_amount, notify_when_exceeded)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := db.QueryRow(context.Background(), query,
		budget.UserID,
		budget.CategoryID,
		budget.Month,
		budget.LimitAmount,
		budget.NotifyWhenExceeded).Scan(&budget.ID, &budget.CreatedAt)
	if err != nil {
		return fmt.Errorf("error al crear el presupuesto: %v", err)
	}
	return nil
}

func GetBudgetByID(db Executor, budgetID int) (*models.Budget, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, b.month, b.limit_amount,
		       b.notify_when_exceeded, b.created_at, c.name
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.id = $1`

	budget := &models.Budget{}
	err := db.QueryRow(context.Background(), query, budgetID).Scan(
		&budget.ID,
		&budget.UserID,
		&budget.CategoryID,
		&budget.Month,
		&budget.LimitAmount,
		&budget.NotifyWhenExceeded,
		&budget.CreatedAt,
		&budget.CategoryName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("presupuesto con ID %d no encontrado", budgetID)
		}
		return nil, fmt.Errorf("error al obtener el presupuesto: %v", err)
	}

	return budget, nil
}

func GetBudgetsByUserID(db Executor, userID int) ([]models.Budget, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, b.month, b.limit_amount,
		       b.notify_when_exceeded, b.created_at, c.name
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.user_id = $1
		ORDER BY b.month DESC`

	rows, err := db.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("error al obtener los presupuestos: %v", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Month, &b.LimitAmount,
			&b.NotifyWhenExceeded, &b.CreatedAt, &b.CategoryName); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, nil
}

// GetBudgetByCategoryMonth busca el presupuesto de una categoría para un mes
// concreto. Devuelve pgx.ErrNoRows envuelto cuando no existe; el que llama
// decide si eso es un error o un no-op.
func GetBudgetByCategoryMonth(db Executor, userID, categoryID int, month time.Time) (*models.Budget, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, b.month, b.limit_amount,
		       b.notify_when_exceeded, b.created_at, c.name
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.user_id = $1 AND b.category_id = $2 AND b.month = $3`

	budget := &models.Budget{}
	err := db.QueryRow(context.Background(), query, userID, categoryID, month).Scan(
		&budget.ID,
		&budget.UserID,
		&budget.CategoryID,
		&budget.Month,
		&budget.LimitAmount,
		&budget.NotifyWhenExceeded,
		&budget.CreatedAt,
		&budget.CategoryName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("presupuesto no encontrado: %w", pgx.ErrNoRows)
		}
		return nil, fmt.Errorf("error al buscar el presupuesto del mes: %v", err)
	}

	return budget, nil
}

func GetBudgetsByMonth(db Executor, userID int, month time.Time) ([]models.Budget, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, b.month, b.limit_amount,
		       b.notify_when_exceeded, b.created_at, c.name
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.user_id = $1 AND b.month = $2
		ORDER BY c.name`

	rows, err := db.Query(context.Background(), query, userID, month)
	if err != nil {
		return nil, fmt.Errorf("error al obtener los presupuestos del mes: %v", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Month, &b.LimitAmount,
			&b.NotifyWhenExceeded, &b.CreatedAt, &b.CategoryName); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, nil
}

// GetAllBudgetsByMonth devuelve los presupuestos de todos los usuarios para
// un mes. Lo usan las tareas programadas.
func GetAllBudgetsByMonth(db Executor, month time.Time) ([]models.Budget, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, b.month, b.limit_amount,
		       b.notify_when_exceeded, b.created_at, c.name
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.month = $1
		ORDER BY b.user_id, c.name`

	rows, err := db.Query(context.Background(), query, month)
	if err != nil {
		return nil, fmt.Errorf("error al obtener los presupuestos del mes: %v", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.Month, &b.LimitAmount,
			&b.NotifyWhenExceeded, &b.CreatedAt, &b.CategoryName); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, nil
}

func UpdateBudget(db Executor, budget *models.Budget) error {
	query := `
		UPDATE budgets
		SET category_id = $1, month = $2, limit_amount = $3, notify_when_exceeded = $4
		WHERE id = $5 AND user_id = $6`

	result, err := db.Exec(context.Background(), query,
		budget.CategoryID,
		budget.Month,
		budget.LimitAmount,
		budget.NotifyWhenExceeded,
		budget.ID,
		budget.UserID)
	if err != nil {
		return fmt.Errorf("error al actualizar el presupuesto: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("presupuesto con ID %d no encontrado", budget.ID)
	}
	return nil
}

func DeleteBudget(db Executor, userID, budgetID int) error {
	result, err := db.Exec(context.Background(),
		`DELETE FROM budgets WHERE id = $1 AND user_id = $2`, budgetID, userID)
	if err != nil {
		return fmt.Errorf("error al eliminar el presupuesto: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("presupuesto con ID %d no encontrado", budgetID)
	}
	return nil
}
