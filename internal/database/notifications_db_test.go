package database_test

import (
	"testing"
	"time"

	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/models"
)

func TestHasBudgetAlertDeduplicaPorClave(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)
	category := createTestCategory(t, pool, user.ID, models.CategoryExpense)
	mes := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	existe, err := database.HasBudgetAlert(pool, user.ID, category.ID, mes)
	if err != nil {
		t.Fatalf("error al comprobar alertas: %v", err)
	}
	if existe {
		t.Fatal("no debía existir ninguna alerta todavía")
	}

	alerta := &models.Notification{
		UserID:      user.ID,
		Type:        models.NotificationBudgetWarning,
		Title:       "Presupuesto casi agotado: prueba",
		Message:     "mensaje de prueba",
		Priority:    models.PriorityMedium,
		CategoryID:  &category.ID,
		PeriodMonth: &mes,
	}
	if err := database.CreateNotification(pool, alerta); err != nil {
		t.Fatalf("error al crear la alerta: %v", err)
	}

	// Una advertencia previa también bloquea la alerta de superación: ambas
	// comparten la clave de deduplicación.
	existe, err = database.HasBudgetAlert(pool, user.ID, category.ID, mes)
	if err != nil {
		t.Fatalf("error al comprobar alertas: %v", err)
	}
	if !existe {
		t.Fatal("la advertencia debía contar como alerta existente")
	}

	// Otro mes no queda bloqueado.
	otroMes := mes.AddDate(0, 1, 0)
	existe, err = database.HasBudgetAlert(pool, user.ID, category.ID, otroMes)
	if err != nil {
		t.Fatalf("error al comprobar alertas: %v", err)
	}
	if existe {
		t.Fatal("el mes siguiente no debía tener alertas")
	}
}

func TestClearReadNotificationsSoloLeidasYArchivadas(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)

	crear := func(tipo string) *models.Notification {
		n := &models.Notification{
			UserID:   user.ID,
			Type:     tipo,
			Title:    "prueba",
			Message:  "mensaje",
			Priority: models.PriorityLow,
		}
		if err := database.CreateNotification(pool, n); err != nil {
			t.Fatalf("error al crear la notificación: %v", err)
		}
		return n
	}

	soloLeida := crear(models.NotificationSystem)
	purgable := crear(models.NotificationReminder)
	intacta := crear(models.NotificationSystem)

	if err := database.MarkNotificationAsRead(pool, user.ID, soloLeida.ID); err != nil {
		t.Fatalf("error al marcar como leída: %v", err)
	}
	if err := database.MarkNotificationAsRead(pool, user.ID, purgable.ID); err != nil {
		t.Fatalf("error al marcar como leída: %v", err)
	}
	if err := database.ArchiveNotification(pool, user.ID, purgable.ID); err != nil {
		t.Fatalf("error al archivar: %v", err)
	}

	borradas, err := database.ClearReadNotifications(pool, user.ID)
	if err != nil {
		t.Fatalf("error al limpiar notificaciones: %v", err)
	}
	if borradas != 1 {
		t.Errorf("se esperaba borrar 1 notificación, se borraron %d", borradas)
	}

	restantes, err := database.GetNotificationsByUserID(pool, user.ID, database.NotificationFilter{})
	if err != nil {
		t.Fatalf("error al listar notificaciones: %v", err)
	}
	if len(restantes) != 2 {
		t.Fatalf("debían quedar 2 notificaciones, quedaron %d", len(restantes))
	}
	for _, n := range restantes {
		if n.ID == purgable.ID {
			t.Error("la notificación purgable no debía seguir existiendo")
		}
	}
	_ = intacta
}

func TestNotificationFilters(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)

	alta := &models.Notification{
		UserID:   user.ID,
		Type:     models.NotificationHighExpense,
		Title:    "Gasto alto detectado",
		Message:  "mensaje",
		Priority: models.PriorityHigh,
	}
	if err := database.CreateNotification(pool, alta); err != nil {
		t.Fatalf("error al crear la notificación: %v", err)
	}
	baja := &models.Notification{
		UserID:   user.ID,
		Type:     models.NotificationReminder,
		Title:    "Recordatorio",
		Message:  "mensaje",
		Priority: models.PriorityLow,
	}
	if err := database.CreateNotification(pool, baja); err != nil {
		t.Fatalf("error al crear la notificación: %v", err)
	}

	porTipo, err := database.GetNotificationsByUserID(pool, user.ID,
		database.NotificationFilter{Type: models.NotificationHighExpense})
	if err != nil {
		t.Fatalf("error al filtrar por tipo: %v", err)
	}
	if len(porTipo) != 1 || porTipo[0].ID != alta.ID {
		t.Errorf("el filtro por tipo devolvió %d resultados", len(porTipo))
	}

	sinLeer := false
	porLeida, err := database.GetNotificationsByUserID(pool, user.ID,
		database.NotificationFilter{IsRead: &sinLeer, Priority: models.PriorityLow})
	if err != nil {
		t.Fatalf("error al filtrar por estado: %v", err)
	}
	if len(porLeida) != 1 || porLeida[0].ID != baja.ID {
		t.Errorf("el filtro combinado devolvió %d resultados", len(porLeida))
	}
}
