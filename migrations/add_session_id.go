package migrations

import (
	"database/sql"
	"log"
)

// AddSessionIDToTransactions adds the session_id partition column to the
// transactions table and indexes it for scoped lookups.
func AddSessionIDToTransactions(db *sql.DB) error {
	log.Println("Adding session_id column to transactions table...")

	_, err := db.Exec(`
		ALTER TABLE transactions
		ADD COLUMN session_id TEXT;
	`)
	if err != nil {
		log.Printf("Error adding session_id column: %v", err)
		return err
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_transactions_session_id
		ON transactions (session_id);
	`)
	if err != nil {
		log.Printf("Error creating session_id index: %v", err)
		return err
	}

	return nil
}
