package services_test

import (
	"testing"
	"time"

	"github.com/calvarezi/midinero/internal/services"
	"github.com/calvarezi/midinero/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthOf(t *testing.T) {
	fecha := time.Date(2025, 3, 17, 15, 42, 9, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), services.MonthOf(fecha))

	primero := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, primero, services.MonthOf(primero))
}

func TestProgressPercentage(t *testing.T) {
	casos := []struct {
		nombre   string
		gastado  float64
		limite   float64
		esperado float64
	}{
		{"mitad del presupuesto", 250, 500, 50},
		{"presupuesto exacto", 500, 500, 100},
		{"presupuesto superado", 750, 500, 150},
		{"limite cero no divide", 100, 0, 0},
		{"limite negativo no divide", 100, -50, 0},
		{"redondeo a dos decimales", 100, 300, 33.33},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			got := services.ProgressPercentage(
				decimal.NewFromFloat(c.gastado), decimal.NewFromFloat(c.limite))
			assert.InDelta(t, c.esperado, got, 0.001)
		})
	}
}

func TestGoalProgress(t *testing.T) {
	assert.InDelta(t, 50.0, services.GoalProgress(500, 1000), 0.001)
	assert.InDelta(t, 100.0, services.GoalProgress(1000, 1000), 0.001)
	assert.InDelta(t, 120.0, services.GoalProgress(1200, 1000), 0.001)
	assert.Equal(t, 0.0, services.GoalProgress(500, 0))
	assert.Equal(t, 0.0, services.GoalProgress(500, -10))
}

func TestEvaluateBudgetSinAviso(t *testing.T) {
	mes := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	alerta := services.EvaluateBudget("Comida", mes,
		decimal.NewFromInt(900), decimal.NewFromInt(500), false)
	assert.Nil(t, alerta)
}

func TestEvaluateBudgetPorDebajoDelUmbral(t *testing.T) {
	mes := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	alerta := services.EvaluateBudget("Comida", mes,
		decimal.NewFromInt(449), decimal.NewFromInt(500), true)
	assert.Nil(t, alerta)
}

func TestEvaluateBudgetAdvertencia(t *testing.T) {
	mes := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	alerta := services.EvaluateBudget("Comida", mes,
		decimal.NewFromInt(450), decimal.NewFromInt(500), true)
	require.NotNil(t, alerta)
	assert.Equal(t, models.NotificationBudgetWarning, alerta.Type)
	assert.Equal(t, models.PriorityMedium, alerta.Priority)
	assert.Equal(t, "Presupuesto casi agotado: Comida", alerta.Title)
	assert.Equal(t, "Ya usaste el 90.0% del presupuesto para Comida en 2025-06. Controla tus gastos.", alerta.Message)
	assert.InDelta(t, 90.0, alerta.Progress, 0.001)
}

func TestEvaluateBudgetSuperado(t *testing.T) {
	mes := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	alerta := services.EvaluateBudget("Transporte", mes,
		decimal.NewFromInt(600), decimal.NewFromInt(500), true)
	require.NotNil(t, alerta)
	assert.Equal(t, models.NotificationBudgetExceeded, alerta.Type)
	assert.Equal(t, models.PriorityHigh, alerta.Priority)
	assert.Equal(t, "Presupuesto superado: Transporte", alerta.Title)
	assert.Equal(t, "Has superado tu presupuesto para Transporte en 2025-06. Gasto total: $600.00 / Límite: $500.00.", alerta.Message)
	assert.InDelta(t, 120.0, alerta.Progress, 0.001)
}

// En el límite exacto del 100% la alerta es de presupuesto superado, no de
// advertencia.
func TestEvaluateBudgetLimiteExacto(t *testing.T) {
	mes := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	alerta := services.EvaluateBudget("Ocio", mes,
		decimal.NewFromInt(500), decimal.NewFromInt(500), true)
	require.NotNil(t, alerta)
	assert.Equal(t, models.NotificationBudgetExceeded, alerta.Type)
}

// Con límite cero el progreso es 0 y nunca se emite alerta.
func TestEvaluateBudgetLimiteCero(t *testing.T) {
	mes := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	alerta := services.EvaluateBudget("Comida", mes,
		decimal.NewFromInt(900), decimal.Zero, true)
	assert.Nil(t, alerta)
}
