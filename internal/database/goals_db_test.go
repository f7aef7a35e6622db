package database_test

import (
	"testing"
	"time"

	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/models"
)

func TestLatchGoalAchievedSoloUnaVez(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)

	goal := &models.FinancialGoal{
		UserID:       user.ID,
		Name:         "Ahorro de prueba",
		Month:        time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		TargetAmount: 1000,
	}
	if err := database.CreateGoal(pool, goal); err != nil {
		t.Fatalf("error al crear la meta: %v", err)
	}

	cambio, err := database.LatchGoalAchieved(pool, goal.ID)
	if err != nil {
		t.Fatalf("error al marcar la meta: %v", err)
	}
	if !cambio {
		t.Fatal("la primera marca debía reportar el cambio")
	}

	cambio, err = database.LatchGoalAchieved(pool, goal.ID)
	if err != nil {
		t.Fatalf("error al marcar la meta por segunda vez: %v", err)
	}
	if cambio {
		t.Fatal("la segunda marca no debía reportar cambio alguno")
	}

	obtenida, err := database.GetGoalByID(pool, goal.ID)
	if err != nil {
		t.Fatalf("error al obtener la meta: %v", err)
	}
	if !obtenida.Achieved {
		t.Error("la meta debía quedar marcada como alcanzada")
	}
}

func TestSaveGoalAmountNoTocaElLatch(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)

	goal := &models.FinancialGoal{
		UserID:       user.ID,
		Name:         "Meta persistente",
		Month:        time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		TargetAmount: 1000,
	}
	if err := database.CreateGoal(pool, goal); err != nil {
		t.Fatalf("error al crear la meta: %v", err)
	}
	if _, err := database.LatchGoalAchieved(pool, goal.ID); err != nil {
		t.Fatalf("error al marcar la meta: %v", err)
	}

	// Un recálculo posterior con ahorro menor guarda el monto pero el flag
	// achieved no retrocede.
	if err := database.SaveGoalAmount(pool, goal.ID, 200); err != nil {
		t.Fatalf("error al guardar el monto: %v", err)
	}

	obtenida, err := database.GetGoalByID(pool, goal.ID)
	if err != nil {
		t.Fatalf("error al obtener la meta: %v", err)
	}
	if obtenida.CurrentAmount != 200 {
		t.Errorf("monto esperado 200, recibido %.2f", obtenida.CurrentAmount)
	}
	if !obtenida.Achieved {
		t.Error("el flag achieved no debe apagarse nunca")
	}
}
