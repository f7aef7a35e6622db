package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/calvarezi/midinero/models"
	"github.com/jackc/pgx/v5"
)

func CreateCategory(db Executor, category *models.Category) error {
	query := `
		INSERT INTO categories (user_id, name, type)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := db.QueryRow(context.Background(), query,
		category.UserID,
		category.Name,
		category.Type).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return fmt.Errorf("error al crear la categoría: %v", err)
	}
	return nil
}

func GetCategoryByID(db Executor, categoryID int) (*models.Category, error) {
	query := `
		SELECT id, user_id, name, type, created_at
		FROM categories
		WHERE id = $1`

	category := &models.Category{}
	err := db.QueryRow(context.Background(), query, categoryID).Scan(
		&category.ID,
		&category.UserID,
		&category.Name,
		&category.Type,
		&category.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("categoría con ID %d no encontrada", categoryID)
		}
		return nil, fmt.Errorf("error al obtener la categoría: %v", err)
	}

	return category, nil
}

func GetCategoriesByUserID(db Executor, userID int) ([]models.Category, error) {
	query := `
		SELECT id, user_id, name, type, created_at
		FROM categories
		WHERE user_id = $1
		ORDER BY name`

	rows, err := db.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("error al obtener las categorías: %v", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.Type, &category.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func UpdateCategory(db Executor, category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $1, type = $2
		WHERE id = $3 AND user_id = $4`

	result, err := db.Exec(context.Background(), query,
		category.Name,
		category.Type,
		category.ID,
		category.UserID)
	if err != nil {
		return fmt.Errorf("error al actualizar la categoría: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("categoría con ID %d no encontrada", category.ID)
	}
	return nil
}

// DeleteCategory elimina una categoría siempre que no tenga transacciones
// asociadas. Si las tiene, devuelve un error explicando cuántas son.
func DeleteCategory(db Executor, userID, categoryID int) error {
	var count int
	err := db.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM transactions WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return fmt.Errorf("error al contar transacciones de la categoría: %v", err)
	}
	if count > 0 {
		return fmt.Errorf("no puedes eliminar esta categoría porque tiene %d transacciones asociadas", count)
	}

	result, err := db.Exec(context.Background(),
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`, categoryID, userID)
	if err != nil {
		return fmt.Errorf("error al eliminar la categoría: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("categoría con ID %d no encontrada", categoryID)
	}
	return nil
}
