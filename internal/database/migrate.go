package database

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations aplica las migraciones pendientes sobre la base de datos.
// Se ejecuta al arrancar, antes de abrir el pool principal.
func RunMigrations(connStr string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("error al leer las migraciones embebidas: %v", err)
	}

	// El driver pgx/v5 de golang-migrate registra el esquema "pgx5".
	url := strings.Replace(connStr, "postgres://", "pgx5://", 1)

	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return fmt.Errorf("error al crear el migrador: %v", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error al aplicar migraciones: %v", err)
	}

	return nil
}
