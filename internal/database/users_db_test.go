package database_test

import (
	"testing"

	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/models"
)

func TestRegisterAndAuthenticateUser(t *testing.T) {
	pool := testPool(t)

	user := createTestUser(t, pool)
	if user.ID == 0 {
		t.Fatal("el registro debía asignar un ID")
	}
	if user.Password != "" {
		t.Error("la contraseña no debe volver al cliente tras el registro")
	}

	// createTestUser genera la contraseña antes del hash; autenticamos con
	// credenciales nuevas para cubrir el flujo completo.
	otro := &models.User{
		Email:    "auth-" + user.Email,
		Password: "secreto123",
		Name:     "Usuario de prueba",
	}
	if err := database.RegisterUser(pool, otro); err != nil {
		t.Fatalf("error al registrar: %v", err)
	}

	autenticado, err := database.AuthenticateUser(pool, otro.Email, "secreto123")
	if err != nil {
		t.Fatalf("error al autenticar: %v", err)
	}
	if autenticado.ID != otro.ID {
		t.Errorf("ID esperado %d, recibido %d", otro.ID, autenticado.ID)
	}

	if _, err := database.AuthenticateUser(pool, otro.Email, "incorrecta"); err == nil {
		t.Error("la contraseña incorrecta debía fallar")
	}
}

func TestRegisterUserCreaConfiguracionPorDefecto(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)

	settings, err := database.GetSettingsByUserID(pool, user.ID)
	if err != nil {
		t.Fatalf("error al obtener la configuración: %v", err)
	}
	if settings.HighExpenseThreshold != models.DefaultHighExpenseThreshold {
		t.Errorf("umbral esperado %d, recibido %.2f",
			models.DefaultHighExpenseThreshold, settings.HighExpenseThreshold)
	}
	if !settings.ReceiveEmailNotifications {
		t.Error("las notificaciones por correo deben estar activas por defecto")
	}
}
