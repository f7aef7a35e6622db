package services_test

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/internal/services"
	"github.com/calvarezi/midinero/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureJulyLedger crea un usuario con un ingreso de $2000 y un gasto de
// $500 en julio de 2024.
func fixtureJulyLedger(t *testing.T, pool *pgxpool.Pool) (*models.User, time.Time) {
	t.Helper()

	user := &models.User{
		Email:    gofakeit.Email(),
		Password: gofakeit.Password(true, true, true, false, false, 10),
		Name:     gofakeit.Name(),
	}
	require.NoError(t, database.RegisterUser(pool, user))

	ingresos := &models.Category{UserID: user.ID, Name: "sueldo" + gofakeit.DigitN(4), Type: models.CategoryIncome}
	require.NoError(t, database.CreateCategory(pool, ingresos))
	gastos := &models.Category{UserID: user.ID, Name: "comida" + gofakeit.DigitN(4), Type: models.CategoryExpense}
	require.NoError(t, database.CreateCategory(pool, gastos))

	julio := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	ingreso := &models.Transaction{
		UserID:      user.ID,
		CategoryID:  ingresos.ID,
		Amount:      2000,
		Description: "sueldo de julio",
		Date:        julio.AddDate(0, 0, 9),
	}
	require.NoError(t, database.CreateTransaction(pool, ingreso))

	gasto := &models.Transaction{
		UserID:      user.ID,
		CategoryID:  gastos.ID,
		Amount:      500,
		Description: "supermercado",
		Date:        julio.AddDate(0, 0, 14),
	}
	require.NoError(t, database.CreateTransaction(pool, gasto))

	return user, julio
}

// Ingreso de $2000 y gasto de $500 en julio de 2024: el resumen general debe
// reportar balance 1500.
func TestGetOverviewBalance(t *testing.T) {
	pool := integrationPool(t)
	user, julio := fixtureJulyLedger(t, pool)

	desde := julio
	hasta := julio.AddDate(0, 1, 0)
	overview, err := services.GetOverview(pool, user.ID, &desde, &hasta)
	require.NoError(t, err)

	assert.InDelta(t, 2000, overview.TotalIncome, 0.001)
	assert.InDelta(t, 500, overview.TotalExpense, 0.001)
	assert.InDelta(t, 1500, overview.Balance, 0.001)
	assert.InDelta(t, 75, overview.SavingsRate, 0.001)
	assert.Equal(t, 2, overview.TransactionCount)
	assert.Equal(t, 1, overview.IncomeCount)
	assert.Equal(t, 1, overview.ExpenseCount)
	assert.InDelta(t, 500, overview.MaxExpense, 0.001)
}

// El desglose por categorías de gasto atribuye el 100% a la única categoría
// con movimientos.
func TestGetCategoryBreakdownPorcentajes(t *testing.T) {
	pool := integrationPool(t)
	user, julio := fixtureJulyLedger(t, pool)

	desde := julio
	hasta := julio.AddDate(0, 1, 0)
	breakdown, err := services.GetCategoryBreakdown(pool, user.ID, models.CategoryExpense, &desde, &hasta)
	require.NoError(t, err)

	require.Len(t, breakdown, 1)
	assert.InDelta(t, 500, breakdown[0].Total, 0.001)
	assert.InDelta(t, 100, breakdown[0].Percentage, 0.001)
	assert.Equal(t, 1, breakdown[0].TransactionCount)
}
