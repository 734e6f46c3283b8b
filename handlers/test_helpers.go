package handlers

import (
	"context"
	"database/sql"
	"net/http"

	"pocketledger/config"
	"pocketledger/database"
	"pocketledger/middleware"
	"pocketledger/migrations"

	_ "github.com/mattn/go-sqlite3"
)

// TestSessionID is the session token used across handler tests
const TestSessionID = "3f1d8a52-7c4e-4b9a-9d26-5b1f0c8e4a77"

// SetupTestDB points the global connection at a fresh in-memory database
// with the full migration set applied. Tests run with default config.
func SetupTestDB() {
	if _, err := config.Load(""); err != nil {
		panic(err)
	}

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		panic(err)
	}
	// a single connection keeps every statement on the same in-memory database
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db); err != nil {
		panic(err)
	}

	database.DB = db
}

// CleanupTestDB closes the test database connection
func CleanupTestDB() {
	if database.DB != nil {
		database.DB.Close()
	}
}

// SetupTestSession adds a resolved session token to the request context,
// the way RequireSession does for real requests
func SetupTestSession(req *http.Request) *http.Request {
	return SetupTestSessionID(req, TestSessionID)
}

// SetupTestSessionID adds the given session token to the request context
func SetupTestSessionID(req *http.Request, sessionID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.SessionIDKey, sessionID)
	return req.WithContext(ctx)
}
