package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/calvarezi/midinero/models"
	"github.com/jackc/pgx/v5"
)

func CreateGoal(db Executor, goal *models.FinancialGoal) error {
	query := `
		INSERT INTO financial_goals (user_id, name, month, target_amount, current_amount, achieved)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := db.QueryRow(context.Background(), query,
		goal.UserID,
		goal.Name,
		goal.Month,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.Achieved).Scan(&goal.ID, &goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("error al crear la meta: %v", err)
	}
	return nil
}

func GetGoalByID(db Executor, goalID int) (*models.FinancialGoal, error) {
	query := `
		SELECT id, user_id, name, month, target_amount, current_amount, achieved, created_at
		FROM financial_goals
		WHERE id = $1`

	goal := &models.FinancialGoal{}
	err := db.QueryRow(context.Background(), query, goalID).Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Name,
		&goal.Month,
		&goal.TargetAmount,
		&goal.CurrentAmount,
		&goal.Achieved,
		&goal.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("meta con ID %d no encontrada", goalID)
		}
		return nil, fmt.Errorf("error al obtener la meta: %v", err)
	}

	return goal, nil
}

func GetGoalsByUserID(db Executor, userID int) ([]models.FinancialGoal, error) {
	query := `
		SELECT id, user_id, name, month, target_amount, current_amount, achieved, created_at
		FROM financial_goals
		WHERE user_id = $1
		ORDER BY month DESC, name`

	rows, err := db.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("error al obtener las metas: %v", err)
	}
	defer rows.Close()

	var goals []models.FinancialGoal
	for rows.Next() {
		var g models.FinancialGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.Month, &g.TargetAmount,
			&g.CurrentAmount, &g.Achieved, &g.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, nil
}

func GetGoalsByMonth(db Executor, userID int, month time.Time) ([]models.FinancialGoal, error) {
	query := `
		SELECT id, user_id, name, month, target_amount, current_amount, achieved, created_at
		FROM financial_goals
		WHERE user_id = $1 AND month = $2
		ORDER BY name`

	rows, err := db.Query(context.Background(), query, userID, month)
	if err != nil {
		return nil, fmt.Errorf("error al obtener las metas del mes: %v", err)
	}
	defer rows.Close()

	var goals []models.FinancialGoal
	for rows.Next() {
		var g models.FinancialGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.Month, &g.TargetAmount,
			&g.CurrentAmount, &g.Achieved, &g.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, nil
}

func UpdateGoal(db Executor, goal *models.FinancialGoal) error {
	query := `
		UPDATE financial_goals
		SET name = $1, month = $2, target_amount = $3
		WHERE id = $4 AND user_id = $5`

	result, err := db.Exec(context.Background(), query,
		goal.Name,
		goal.Month,
		goal.TargetAmount,
		goal.ID,
		goal.UserID)
	if err != nil {
		return fmt.Errorf("error al actualizar la meta: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("meta con ID %d no encontrada", goal.ID)
	}
	return nil
}

// SaveGoalAmount persiste el monto recalculado de la meta. No toca el flag
// achieved; ese solo cambia mediante LatchGoalAchieved.
func SaveGoalAmount(db Executor, goalID int, currentAmount float64) error {
	_, err := db.Exec(context.Background(),
		`UPDATE financial_goals SET current_amount = $1 WHERE id = $2`,
		currentAmount, goalID)
	if err != nil {
		return fmt.Errorf("error al guardar el progreso de la meta: %v", err)
	}
	return nil
}

// LatchGoalAchieved marca la meta como alcanzada. El flag solo puede pasar de
// false a true; devuelve true únicamente la primera vez que cambia, lo que
// garantiza que la notificación de meta cumplida se emita exactamente una vez.
func LatchGoalAchieved(db Executor, goalID int) (bool, error) {
	result, err := db.Exec(context.Background(),
		`UPDATE financial_goals SET achieved = TRUE WHERE id = $1 AND achieved = FALSE`, goalID)
	if err != nil {
		return false, fmt.Errorf("error al marcar la meta como alcanzada: %v", err)
	}
	return result.RowsAffected() == 1, nil
}

func DeleteGoal(db Executor, userID, goalID int) error {
	result, err := db.Exec(context.Background(),
		`DELETE FROM financial_goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return fmt.Errorf("error al eliminar la meta: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("meta con ID %d no encontrada", goalID)
	}
	return nil
}
