package database_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// Las pruebas de este paquete corren contra una base de datos real. Se
// omiten cuando no hay conexión configurada en el entorno.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load()

	if os.Getenv("DATABASE_URL") == "" && os.Getenv("DB_HOST") == "" {
		t.Skip("sin DATABASE_URL ni DB_HOST, se omiten las pruebas de base de datos")
	}

	pool, err := database.ConnectDB()
	if err != nil {
		t.Fatalf("error al conectar con la base de datos: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool) *models.User {
	t.Helper()
	user := &models.User{
		Email:    gofakeit.Email(),
		Password: gofakeit.Password(true, true, true, false, false, 10),
		Name:     gofakeit.Name(),
	}
	if err := database.RegisterUser(pool, user); err != nil {
		t.Fatalf("error al crear usuario de prueba: %v", err)
	}
	return user
}

func createTestCategory(t *testing.T, pool *pgxpool.Pool, userID int, categoryType string) *models.Category {
	t.Helper()
	category := &models.Category{
		UserID: userID,
		Name:   fmt.Sprintf("%s-%d", gofakeit.Word(), gofakeit.Number(1000, 9999)),
		Type:   categoryType,
	}
	if err := database.CreateCategory(pool, category); err != nil {
		t.Fatalf("error al crear categoría de prueba: %v", err)
	}
	return category
}

func createTestTransaction(t *testing.T, pool *pgxpool.Pool, userID, categoryID int, amount float64, date time.Time) *models.Transaction {
	t.Helper()
	transaction := &models.Transaction{
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: gofakeit.Sentence(4),
		Date:        date,
	}
	if err := database.CreateTransaction(pool, transaction); err != nil {
		t.Fatalf("error al crear transacción de prueba: %v", err)
	}
	return transaction
}
