package app

import (
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrations embed.FS

func migrate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("migrate - sql.Open: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("migrate - db.Ping: %w", err)
	}

	goose.SetBaseFS(migrations)

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("migrate - goose.Up: %w", err)
	}

	return nil
}
