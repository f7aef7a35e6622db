package database

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OverviewRow son las agregaciones crudas del resumen financiero general.
type OverviewRow struct {
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	AvgIncome        decimal.Decimal
	AvgExpense       decimal.Decimal
	TransactionCount int
	IncomeCount      int
	ExpenseCount     int
	MaxExpense       decimal.Decimal
	MinExpense       decimal.Decimal
}

func GetOverviewRow(db Executor, userID int, startDate, endDate *time.Time) (*OverviewRow, error) {
	query := `
		SELECT
			COALESCE(SUM(t.amount) FILTER (WHERE c.type = 'income'), 0),
			COALESCE(SUM(t.amount) FILTER (WHERE c.type = 'expense'), 0),
			COALESCE(AVG(t.amount) FILTER (WHERE c.type = 'income'), 0),
			COALESCE(AVG(t.amount) FILTER (WHERE c.type = 'expense'), 0),
			COUNT(t.id),
			COUNT(t.id) FILTER (WHERE c.type = 'income'),
			COUNT(t.id) FILTER (WHERE c.type = 'expense'),
			COALESCE(MAX(t.amount) FILTER (WHERE c.type = 'expense'), 0),
			COALESCE(MIN(t.amount) FILTER (WHERE c.type = 'expense'), 0)
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1`
	args := []any{userID}

	if startDate != nil {
		args = append(args, *startDate)
		query += fmt.Sprintf(" AND t.date >= $%d", len(args))
	}
	if endDate != nil {
		args = append(args, *endDate)
		query += fmt.Sprintf(" AND t.date <= $%d", len(args))
	}

	row := &OverviewRow{}
	err := db.QueryRow(context.Background(), query, args...).Scan(
		&row.TotalIncome, &row.TotalExpense,
		&row.AvgIncome, &row.AvgExpense,
		&row.TransactionCount, &row.IncomeCount, &row.ExpenseCount,
		&row.MaxExpense, &row.MinExpense,
	)
	if err != nil {
		return nil, fmt.Errorf("error al calcular el resumen financiero: %v", err)
	}
	return row, nil
}

// MonthlyTrendRow es una fila de la serie mensual de ingresos y gastos.
type MonthlyTrendRow struct {
	Month            time.Time
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	TransactionCount int
}

func GetMonthlyTrendRows(db Executor, userID int, since time.Time) ([]MonthlyTrendRow, error) {
	query := `
		SELECT
			DATE_TRUNC('month', t.date) AS month,
			COALESCE(SUM(t.amount) FILTER (WHERE c.type = 'income'), 0),
			COALESCE(SUM(t.amount) FILTER (WHERE c.type = 'expense'), 0),
			COUNT(t.id)
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1 AND t.date >= $2
		GROUP BY month
		ORDER BY month`

	rows, err := db.Query(context.Background(), query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("error al obtener las tendencias mensuales: %v", err)
	}
	defer rows.Close()

	var trends []MonthlyTrendRow
	for rows.Next() {
		var r MonthlyTrendRow
		if err := rows.Scan(&r.Month, &r.TotalIncome, &r.TotalExpense, &r.TransactionCount); err != nil {
			return nil, err
		}
		trends = append(trends, r)
	}
	return trends, nil
}

// CategoryBreakdownRow es el total agrupado por categoría.
type CategoryBreakdownRow struct {
	CategoryID   int
	CategoryName string
	CategoryType string
	Total        decimal.Decimal
	Count        int
	Average      decimal.Decimal
}

func GetCategoryBreakdownRows(db Executor, userID int, categoryType string, startDate, endDate *time.Time) ([]CategoryBreakdownRow, error) {
	query := `
		SELECT c.id, c.name, c.type,
		       COALESCE(SUM(t.amount), 0),
		       COUNT(t.id),
		       COALESCE(AVG(t.amount), 0)
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1`
	args := []any{userID}

	if categoryType != "" {
		args = append(args, categoryType)
		query += fmt.Sprintf(" AND c.type = $%d", len(args))
	}
	if startDate != nil {
		args = append(args, *startDate)
		query += fmt.Sprintf(" AND t.date >= $%d", len(args))
	}
	if endDate != nil {
		args = append(args, *endDate)
		query += fmt.Sprintf(" AND t.date <= $%d", len(args))
	}
	query += ` GROUP BY c.id, c.name, c.type ORDER BY 4 DESC`

	rows, err := db.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("error al obtener el desglose por categorías: %v", err)
	}
	defer rows.Close()

	var breakdown []CategoryBreakdownRow
	for rows.Next() {
		var r CategoryBreakdownRow
		if err := rows.Scan(&r.CategoryID, &r.CategoryName, &r.CategoryType, &r.Total, &r.Count, &r.Average); err != nil {
			return nil, err
		}
		breakdown = append(breakdown, r)
	}
	return breakdown, nil
}

// WeekdaySpendingRow es el gasto agregado por día de la semana.
// Weekday sigue la convención de Postgres: 0 = domingo.
type WeekdaySpendingRow struct {
	Weekday int
	Total   decimal.Decimal
	Count   int
}

func GetWeekdaySpendingRows(db Executor, userID int, since time.Time) ([]WeekdaySpendingRow, error) {
	query := `
		SELECT EXTRACT(DOW FROM t.date)::int, COALESCE(SUM(t.amount), 0), COUNT(t.id)
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1 AND c.type = 'expense' AND t.date >= $2
		GROUP BY 1
		ORDER BY 1`

	rows, err := db.Query(context.Background(), query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("error al obtener el gasto por día de la semana: %v", err)
	}
	defer rows.Close()

	var result []WeekdaySpendingRow
	for rows.Next() {
		var r WeekdaySpendingRow
		if err := rows.Scan(&r.Weekday, &r.Total, &r.Count); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, nil
}

// GetTopExpenseCategory devuelve la categoría de gasto más frecuente desde la
// fecha dada. Nombre vacío cuando no hay gastos.
func GetTopExpenseCategory(db Executor, userID int, since time.Time) (name string, count int, err error) {
	query := `
		SELECT c.name, COUNT(t.id)
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1 AND c.type = 'expense' AND t.date >= $2
		GROUP BY c.name
		ORDER BY COUNT(t.id) DESC
		LIMIT 1`

	rows, err := db.Query(context.Background(), query, userID, since)
	if err != nil {
		return "", 0, fmt.Errorf("error al obtener la categoría más frecuente: %v", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&name, &count); err != nil {
			return "", 0, err
		}
	}
	return name, count, nil
}

// MonthlyCategoryExpenseRow es el gasto total de una categoría en un mes
// concreto. Base de la predicción de gastos.
type MonthlyCategoryExpenseRow struct {
	CategoryID   int
	CategoryName string
	Month        time.Time
	Total        decimal.Decimal
}

func GetMonthlyCategoryExpenseRows(db Executor, userID int, since time.Time) ([]MonthlyCategoryExpenseRow, error) {
	query := `
		SELECT c.id, c.name, DATE_TRUNC('month', t.date) AS month, SUM(t.amount)
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1 AND c.type = 'expense' AND t.date >= $2
		GROUP BY c.id, c.name, month
		ORDER BY c.id, month`

	rows, err := db.Query(context.Background(), query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("error al obtener los gastos mensuales por categoría: %v", err)
	}
	defer rows.Close()

	var result []MonthlyCategoryExpenseRow
	for rows.Next() {
		var r MonthlyCategoryExpenseRow
		if err := rows.Scan(&r.CategoryID, &r.CategoryName, &r.Month, &r.Total); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, nil
}

// SumExpensesBetween suma los gastos del usuario en un rango de fechas.
// Se usa para comparar trimestres al calcular la tendencia.
func SumExpensesBetween(db Executor, userID int, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(t.amount), 0)
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1 AND c.type = 'expense' AND t.date >= $2 AND t.date < $3`

	var total decimal.Decimal
	err := db.QueryRow(context.Background(), query, userID, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error al sumar gastos del periodo: %v", err)
	}
	return total, nil
}
