package store

import (
	"database/sql"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/migrations"
)

// DB wraps a *sql.DB together with the driver it was opened with.
type DB struct {
	*sql.DB
	driver             string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded migrations of the DB's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// Driver returns the database/sql driver name.
func (db *DB) Driver() string {
	return db.driver
}

// isUniqueViolation reports whether err is a unique constraint violation
// in either supported driver.
func isUniqueViolation(err error) bool {
	return postgresError(err) == pgerrcodeUniqueViolation || isSQLiteUniqueViolation(err)
}
