package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/calvarezi/midinero/models"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func CreateTransaction(db Executor, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, category_id, amount, description, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := db.QueryRow(context.Background(), query,
		transaction.UserID,
		transaction.CategoryID,
		transaction.Amount,
		transaction.Description,
		transaction.Date).Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		return fmt.Errorf("error al crear la transacción: %v", err)
	}
	return nil
}

func GetTransactionByID(db Executor, transactionID int) (*models.Transaction, error) {
	query := `
		SELECT id, user_id, category_id, amount, description, date, created_at
		FROM transactions
		WHERE id = $1`

	transaction := &models.Transaction{}
	err := db.QueryRow(context.Background(), query, transactionID).Scan(
		&transaction.ID,
		&transaction.UserID,
		&transaction.CategoryID,
		&transaction.Amount,
		&transaction.Description,
		&transaction.Date,
		&transaction.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transacción con ID %d no encontrada", transactionID)
		}
		return nil, fmt.Errorf("error al obtener la transacción: %v", err)
	}

	return transaction, nil
}

func GetTransactionsByUserID(db Executor, userID int) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, category_id, amount, description, date, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC`

	rows, err := db.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("error al obtener las transacciones: %v", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Description, &t.Date, &t.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}

func UpdateTransaction(db Executor, transaction *models.Transaction) error {
	query := `
		UPDATE transactions
		SET category_id = $1, amount = $2, description = $3, date = $4
		WHERE id = $5 AND user_id = $6`

	result, err := db.Exec(context.Background(), query,
		transaction.CategoryID,
		transaction.Amount,
		transaction.Description,
		transaction.Date,
		transaction.ID,
		transaction.UserID)
	if err != nil {
		return fmt.Errorf("error al actualizar la transacción: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("transacción con ID %d no encontrada", transaction.ID)
	}
	return nil
}

func DeleteTransaction(db Executor, userID, transactionID int) error {
	result, err := db.Exec(context.Background(),
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, transactionID, userID)
	if err != nil {
		return fmt.Errorf("error al eliminar la transacción: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("transacción con ID %d no encontrada", transactionID)
	}
	return nil
}

// SumCategoryExpenses suma las transacciones de gasto de una categoría en el
// mes indicado. Devuelve cero cuando no hay transacciones, nunca un error por
// ausencia de filas.
func SumCategoryExpenses(db Executor, userID, categoryID int, month time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(t.amount), 0)
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1
		  AND t.category_id = $2
		  AND c.type = 'expense'
		  AND EXTRACT(YEAR FROM t.date) = $3
		  AND EXTRACT(MONTH FROM t.date) = $4`

	var total decimal.Decimal
	err := db.QueryRow(context.Background(), query,
		userID, categoryID, month.Year(), int(month.Month())).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error al sumar gastos de la categoría: %v", err)
	}
	return total, nil
}

// SumIncomeExpense devuelve los totales de ingresos y gastos del usuario en el
// mes indicado, en una sola consulta.
func SumIncomeExpense(db Executor, userID int, month time.Time) (income, expense decimal.Decimal, err error) {
	query := `
		SELECT
			COALESCE(SUM(t.amount) FILTER (WHERE c.type = 'income'), 0),
			COALESCE(SUM(t.amount) FILTER (WHERE c.type = 'expense'), 0)
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1
		  AND EXTRACT(YEAR FROM t.date) = $2
		  AND EXTRACT(MONTH FROM t.date) = $3`

	err = db.QueryRow(context.Background(), query,
		userID, month.Year(), int(month.Month())).Scan(&income, &expense)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("error al sumar ingresos y gastos del mes: %v", err)
	}
	return income, expense, nil
}

// TransactionSummary son los totales globales del usuario para el endpoint
// de resumen.
type TransactionSummary struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Balance      float64 `json:"balance"`
}

func GetTransactionSummary(db Executor, userID int) (*TransactionSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(t.amount) FILTER (WHERE c.type = 'income'), 0),
			COALESCE(SUM(t.amount) FILTER (WHERE c.type = 'expense'), 0)
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1`

	summary := &TransactionSummary{}
	err := db.QueryRow(context.Background(), query, userID).Scan(&summary.TotalIncome, &summary.TotalExpense)
	if err != nil {
		return nil, fmt.Errorf("error al obtener el resumen financiero: %v", err)
	}
	summary.Balance = summary.TotalIncome - summary.TotalExpense
	return summary, nil
}

// ExportTransaction es una fila de transacción con su categoría resuelta,
// lista para exportar.
type ExportTransaction struct {
	ID           int
	Date         time.Time
	CategoryName string
	CategoryType string
	Amount       float64
	Description  string
}

func GetTransactionsForExport(db Executor, userID int) ([]ExportTransaction, error) {
	query := `
		SELECT t.id, t.date, c.name, c.type, t.amount, t.description
		FROM transactions t
		JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1
		ORDER BY t.date DESC`

	rows, err := db.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("error al obtener transacciones para exportar: %v", err)
	}
	defer rows.Close()

	var result []ExportTransaction
	for rows.Next() {
		var t ExportTransaction
		if err := rows.Scan(&t.ID, &t.Date, &t.CategoryName, &t.CategoryType, &t.Amount, &t.Description); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, nil
}
