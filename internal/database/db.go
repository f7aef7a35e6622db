package database

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// Executor es la interfaz mínima de consulta que cumplen tanto *pgxpool.Pool
// como pgx.Tx. Permite usar las mismas funciones dentro y fuera de una
// transacción.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ConnString arma la cadena de conexión desde DATABASE_URL o, en su defecto,
// desde las variables DB_*.
func ConnString() string {
	// Cargar variables desde .env si existe
	_ = godotenv.Load()

	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_NAME"))
}

func ConnectDB() (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), ConnString())
	if err != nil {
		return nil, fmt.Errorf("error al conectar con la base de datos: %v", err)
	}

	return pool, nil
}
