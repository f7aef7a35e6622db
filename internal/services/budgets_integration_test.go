package services_test

import (
	"os"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/internal/services"
	"github.com/calvarezi/midinero/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func integrationPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load()

	if os.Getenv("DATABASE_URL") == "" && os.Getenv("DB_HOST") == "" {
		t.Skip("sin DATABASE_URL ni DB_HOST, se omiten las pruebas de integración")
	}

	pool, err := database.ConnectDB()
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func fixtureUserWithBudget(t *testing.T, pool *pgxpool.Pool, limit float64) (*models.User, *models.Category, *models.Budget) {
	t.Helper()

	user := &models.User{
		Email:    gofakeit.Email(),
		Password: gofakeit.Password(true, true, true, false, false, 10),
		Name:     gofakeit.Name(),
	}
	require.NoError(t, database.RegisterUser(pool, user))

	category := &models.Category{
		UserID: user.ID,
		Name:   gofakeit.Word() + gofakeit.DigitN(4),
		Type:   models.CategoryExpense,
	}
	require.NoError(t, database.CreateCategory(pool, category))

	budget := &models.Budget{
		UserID:             user.ID,
		CategoryID:         category.ID,
		Month:              services.MonthOf(time.Now()),
		LimitAmount:        limit,
		NotifyWhenExceeded: true,
		CategoryName:       category.Name,
	}
	require.NoError(t, database.CreateBudget(pool, budget))
	return user, category, budget
}

func addExpense(t *testing.T, pool *pgxpool.Pool, userID, categoryID int, amount float64) {
	t.Helper()
	transaction := &models.Transaction{
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: "gasto de prueba",
		Date:        time.Now(),
	}
	require.NoError(t, database.CreateTransaction(pool, transaction))
}

func budgetAlerts(t *testing.T, pool *pgxpool.Pool, userID int) []models.Notification {
	t.Helper()
	todas, err := database.GetNotificationsByUserID(pool, userID, database.NotificationFilter{})
	require.NoError(t, err)

	var alertas []models.Notification
	for _, n := range todas {
		if n.Type == models.NotificationBudgetExceeded || n.Type == models.NotificationBudgetWarning {
			alertas = append(alertas, n)
		}
	}
	return alertas
}

// Verificaciones repetidas del mismo presupuesto superado producen una sola
// alerta por mes.
func TestCheckBudgetDeduplica(t *testing.T) {
	pool := integrationPool(t)
	notifier := services.NewNotifier(nil)

	user, category, budget := fixtureUserWithBudget(t, pool, 500)
	addExpense(t, pool, user.ID, category.ID, 600)

	require.NoError(t, services.CheckBudget(pool, notifier, budget))
	require.NoError(t, services.CheckBudget(pool, notifier, budget))
	require.NoError(t, services.CheckBudget(pool, notifier, budget))

	alertas := budgetAlerts(t, pool, user.ID)
	require.Len(t, alertas, 1)
	assert.Equal(t, models.NotificationBudgetExceeded, alertas[0].Type)
	assert.Equal(t, models.PriorityHigh, alertas[0].Priority)
}

// Una advertencia previa bloquea también la alerta de superación: la clave
// de deduplicación es compartida.
func TestCheckBudgetAdvertenciaBloqueaSuperacion(t *testing.T) {
	pool := integrationPool(t)
	notifier := services.NewNotifier(nil)

	user, category, budget := fixtureUserWithBudget(t, pool, 1000)

	addExpense(t, pool, user.ID, category.ID, 950)
	require.NoError(t, services.CheckBudget(pool, notifier, budget))

	addExpense(t, pool, user.ID, category.ID, 200)
	require.NoError(t, services.CheckBudget(pool, notifier, budget))

	alertas := budgetAlerts(t, pool, user.ID)
	require.Len(t, alertas, 1)
	assert.Equal(t, models.NotificationBudgetWarning, alertas[0].Type)
}

func TestCheckBudgetSinAvisoNoNotifica(t *testing.T) {
	pool := integrationPool(t)
	notifier := services.NewNotifier(nil)

	user, category, budget := fixtureUserWithBudget(t, pool, 100)
	budget.NotifyWhenExceeded = false
	addExpense(t, pool, user.ID, category.ID, 500)

	require.NoError(t, services.CheckBudget(pool, notifier, budget))
	assert.Empty(t, budgetAlerts(t, pool, user.ID))
}

// El recálculo de la meta emite GOAL_COMPLETED exactamente una vez aunque el
// ahorro siga por encima del objetivo en recálculos posteriores.
func TestRecalcGoalNotificaUnaVez(t *testing.T) {
	pool := integrationPool(t)
	notifier := services.NewNotifier(nil)

	user := &models.User{
		Email:    gofakeit.Email(),
		Password: gofakeit.Password(true, true, true, false, false, 10),
		Name:     gofakeit.Name(),
	}
	require.NoError(t, database.RegisterUser(pool, user))

	ingreso := &models.Category{UserID: user.ID, Name: "ingresos" + gofakeit.DigitN(4), Type: models.CategoryIncome}
	require.NoError(t, database.CreateCategory(pool, ingreso))

	mes := services.MonthOf(time.Now())
	goal := &models.FinancialGoal{
		UserID:       user.ID,
		Name:         "Meta de integración",
		Month:        mes,
		TargetAmount: 1000,
	}
	require.NoError(t, database.CreateGoal(pool, goal))

	transaction := &models.Transaction{
		UserID:      user.ID,
		CategoryID:  ingreso.ID,
		Amount:      1500,
		Description: "ingreso de prueba",
		Date:        time.Now(),
	}
	require.NoError(t, database.CreateTransaction(pool, transaction))

	require.NoError(t, services.RecalcGoal(pool, notifier, goal))
	require.NoError(t, services.RecalcGoal(pool, notifier, goal))

	assert.True(t, goal.Achieved)
	assert.InDelta(t, 1500, goal.CurrentAmount, 0.001)

	completadas, err := database.GetNotificationsByUserID(pool, user.ID,
		database.NotificationFilter{Type: models.NotificationGoalCompleted})
	require.NoError(t, err)
	assert.Len(t, completadas, 1)
}

// El monto de la meta sale siempre del libro mayor: cualquier valor guardado
// a mano queda sobrescrito en el siguiente recálculo.
func TestRecalcGoalSobrescribeMontoManual(t *testing.T) {
	pool := integrationPool(t)
	notifier := services.NewNotifier(nil)

	user := &models.User{
		Email:    gofakeit.Email(),
		Password: gofakeit.Password(true, true, true, false, false, 10),
		Name:     gofakeit.Name(),
	}
	require.NoError(t, database.RegisterUser(pool, user))

	ingreso := &models.Category{UserID: user.ID, Name: "ingresos" + gofakeit.DigitN(4), Type: models.CategoryIncome}
	require.NoError(t, database.CreateCategory(pool, ingreso))

	goal := &models.FinancialGoal{
		UserID:       user.ID,
		Name:         "Meta con aporte manual",
		Month:        services.MonthOf(time.Now()),
		TargetAmount: 1000,
	}
	require.NoError(t, database.CreateGoal(pool, goal))

	transaction := &models.Transaction{
		UserID:      user.ID,
		CategoryID:  ingreso.ID,
		Amount:      300,
		Description: "ingreso parcial",
		Date:        time.Now(),
	}
	require.NoError(t, database.CreateTransaction(pool, transaction))

	require.NoError(t, database.SaveGoalAmount(pool, goal.ID, 5000))
	require.NoError(t, services.RecalcGoal(pool, notifier, goal))

	assert.InDelta(t, 300, goal.CurrentAmount, 0.001)
	assert.False(t, goal.Achieved)

	obtenida, err := database.GetGoalByID(pool, goal.ID)
	require.NoError(t, err)
	assert.InDelta(t, 300, obtenida.CurrentAmount, 0.001)
	assert.False(t, obtenida.Achieved)
}
