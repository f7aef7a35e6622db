package database_test

import (
	"testing"
	"time"

	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/models"
)

func TestDeleteCategoryConTransacciones(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)
	category := createTestCategory(t, pool, user.ID, models.CategoryExpense)

	createTestTransaction(t, pool, user.ID, category.ID, 50, time.Now())

	if err := database.DeleteCategory(pool, user.ID, category.ID); err == nil {
		t.Fatal("la categoría con transacciones no debía poder eliminarse")
	}

	// Sigue existiendo.
	if _, err := database.GetCategoryByID(pool, category.ID); err != nil {
		t.Fatalf("la categoría debía seguir existiendo: %v", err)
	}
}

func TestDeleteCategoriaVacia(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)
	category := createTestCategory(t, pool, user.ID, models.CategoryIncome)

	if err := database.DeleteCategory(pool, user.ID, category.ID); err != nil {
		t.Fatalf("error al eliminar la categoría vacía: %v", err)
	}
	if _, err := database.GetCategoryByID(pool, category.ID); err == nil {
		t.Error("la categoría eliminada no debía encontrarse")
	}
}

func TestCategoriaDuplicadaPorUsuario(t *testing.T) {
	pool := testPool(t)
	user := createTestUser(t, pool)
	category := createTestCategory(t, pool, user.ID, models.CategoryExpense)

	duplicada := &models.Category{
		UserID: user.ID,
		Name:   category.Name,
		Type:   category.Type,
	}
	if err := database.CreateCategory(pool, duplicada); err == nil {
		t.Fatal("se esperaba un error por nombre duplicado")
	}

	// El mismo nombre en otra cuenta sí es válido.
	otroUsuario := createTestUser(t, pool)
	ajena := &models.Category{
		UserID: otroUsuario.ID,
		Name:   category.Name,
		Type:   category.Type,
	}
	if err := database.CreateCategory(pool, ajena); err != nil {
		t.Fatalf("otro usuario debía poder reusar el nombre: %v", err)
	}
}
