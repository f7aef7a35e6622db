package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/calvarezi/midinero/models"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUser crea un usuario nuevo con la contraseña hasheada y su fila de
// configuración por defecto.
func RegisterUser(db Executor, user *models.User) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error al hashear la contraseña: %v", err)
	}

	query := `
		INSERT INTO users (email, password, name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err = db.QueryRow(context.Background(), query, user.Email, string(hashedPassword), user.Name).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("error al registrar el usuario: %v", err)
	}

	_, err = db.Exec(context.Background(),
		`INSERT INTO user_settings (user_id) VALUES ($1)`, user.ID)
	if err != nil {
		return fmt.Errorf("error al crear la configuración del usuario: %v", err)
	}

	user.Password = ""
	return nil
}

func AuthenticateUser(db Executor, email, password string) (*models.User, error) {
	var user models.User
	query := `SELECT id, email, password, name, created_at FROM users WHERE email = $1`
	err := db.QueryRow(context.Background(), query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.Name, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("usuario no encontrado: %v", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("contraseña incorrecta")
	}

	user.Password = ""
	return &user, nil
}

func GetUserByID(db Executor, userID int) (*models.User, error) {
	var user models.User
	query := `SELECT id, email, name, created_at FROM users WHERE id = $1`
	err := db.QueryRow(context.Background(), query, userID).Scan(
		&user.ID, &user.Email, &user.Name, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("usuario con ID %d no encontrado", userID)
		}
		return nil, fmt.Errorf("error al obtener el usuario: %v", err)
	}
	return &user, nil
}

// GetUserEmail devuelve la dirección de correo del usuario. Cadena vacía si
// no tiene.
func GetUserEmail(db Executor, userID int) (string, error) {
	var email string
	err := db.QueryRow(context.Background(),
		`SELECT email FROM users WHERE id = $1`, userID).Scan(&email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("error al obtener el correo del usuario: %v", err)
	}
	return email, nil
}
