package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Direction selects which way Migrate moves the schema.
type Direction int

const (
	Up Direction = iota
	Down
)

// Migrate applies the embedded migrations against the configured database.
// Running it when the schema is already current is not an error.
func Migrate(cfg config.DatabaseConfig, direction Direction) error {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", source, PostgresURL(cfg))
	if err != nil {
		return fmt.Errorf("init migrator failed: %w", err)
	}
	defer func() {
		_, _ = migrator.Close()
	}()

	switch direction {
	case Up:
		err = migrator.Up()
	case Down:
		err = migrator.Down()
	default:
		return fmt.Errorf("unknown migration direction %d", direction)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate failed: %w", err)
	}
	return nil
}
