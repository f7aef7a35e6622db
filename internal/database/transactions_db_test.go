package database_test

import (
	"testing"
	"time"

	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/models"
)

func TestGetTransactionSummary(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)
	ingresos := createTestCategory(t, pool, user.ID, models.CategoryIncome)
	gastos := createTestCategory(t, pool, user.ID, models.CategoryExpense)

	julio := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	createTestTransaction(t, pool, user.ID, ingresos.ID, 2000, julio.AddDate(0, 0, 9))
	createTestTransaction(t, pool, user.ID, gastos.ID, 500, julio.AddDate(0, 0, 14))

	summary, err := database.GetTransactionSummary(pool, user.ID)
	if err != nil {
		t.Fatalf("error al obtener el resumen: %v", err)
	}
	if summary.TotalIncome != 2000 {
		t.Errorf("ingresos esperados 2000, recibidos %.2f", summary.TotalIncome)
	}
	if summary.TotalExpense != 500 {
		t.Errorf("gastos esperados 500, recibidos %.2f", summary.TotalExpense)
	}
	if summary.Balance != 1500 {
		t.Errorf("balance esperado 1500, recibido %.2f", summary.Balance)
	}
}

func TestSumIncomeExpensePorMes(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)
	ingresos := createTestCategory(t, pool, user.ID, models.CategoryIncome)
	gastos := createTestCategory(t, pool, user.ID, models.CategoryExpense)

	julio := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	createTestTransaction(t, pool, user.ID, ingresos.ID, 2000, julio.AddDate(0, 0, 9))
	createTestTransaction(t, pool, user.ID, gastos.ID, 500, julio.AddDate(0, 0, 14))
	// Otro mes, no debe sumar.
	createTestTransaction(t, pool, user.ID, gastos.ID, 999, julio.AddDate(1, 0, 0))

	ingreso, gasto, err := database.SumIncomeExpense(pool, user.ID, julio)
	if err != nil {
		t.Fatalf("error al sumar ingresos y gastos: %v", err)
	}
	if ingreso.InexactFloat64() != 2000 {
		t.Errorf("ingreso esperado 2000, recibido %s", ingreso)
	}
	if gasto.InexactFloat64() != 500 {
		t.Errorf("gasto esperado 500, recibido %s", gasto)
	}
}
