package postgres

import (
	"embed"

	pgpkg "github.com/bibbank/agricredit/pkg/postgres"
)

// Migrations holds the schema for the assessment store.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations holding the SQL files.
const MigrationsDir = "migrations"

// Migrate applies pending schema migrations to the database at dsn.
func Migrate(dsn string) error {
	return pgpkg.RunMigrations(dsn, Migrations, MigrationsDir)
}

// Rollback reverts every applied migration. It drops the assessment tables.
func Rollback(dsn string) error {
	return pgpkg.RunMigrationsDown(dsn, Migrations, MigrationsDir)
}
