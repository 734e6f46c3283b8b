package database

import (
	"database/sql"
	"os"
	"time"

	"pocketledger/migrations"

	_ "github.com/mattn/go-sqlite3"
)

var DB *sql.DB

// InitDB opens the sqlite database at path and brings the schema up to
// date. Tests set TEST_DB=1 to get an in-memory database instead.
func InitDB(path string) error {
	var err error
	// Connection parameters to better handle concurrent requests
	dsn := path + "?_journal=WAL&_timeout=10000&_busy_timeout=10000"
	if os.Getenv("TEST_DB") == "1" {
		// shared cache so every pooled connection sees the same database
		dsn = "file::memory:?mode=memory&cache=shared"
	}
	DB, err = sql.Open("sqlite3", dsn)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(5)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(time.Minute * 5)

	_, err = DB.Exec("PRAGMA journal_mode=WAL;")
	if err != nil {
		return err
	}

	_, err = DB.Exec("PRAGMA busy_timeout=5000;")
	if err != nil {
		return err
	}

	// Test the connection
	err = DB.Ping()
	if err != nil {
		return err
	}

	// Bring the schema up to date
	if err := migrations.RunMigrations(DB); err != nil {
		return err
	}

	return nil
}
