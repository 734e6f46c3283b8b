package services

import (
	"database/sql"
	"fmt"
	"time"

	"pocketledger/database"
	"pocketledger/models"

	"github.com/google/uuid"
)

// CreateTransaction validates the request, applies the sign convention and
// writes a single row owned by sessionID. The session token is always an
// explicit parameter; nothing below the HTTP boundary reads request state.
func CreateTransaction(sessionID string, req *models.CreateTransactionRequest) (*models.Transaction, error) {
	if sessionID == "" {
		return nil, models.ErrNoSession
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t := &models.Transaction{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Title:     req.Title,
		Amount:    req.SignedAmount(),
		CreatedAt: time.Now().UTC(),
	}

	_, err := database.DB.Exec(`
		INSERT INTO transactions (id, session_id, title, amount, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, t.ID, t.SessionID, t.Title, t.Amount, t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	return t, nil
}

// ListTransactions returns every transaction owned by sessionID in
// insertion order. An empty ledger yields an empty, non-nil slice.
func ListTransactions(sessionID string) ([]models.Transaction, error) {
	if sessionID == "" {
		return nil, models.ErrNoSession
	}

	rows, err := database.DB.Query(`
		SELECT id, session_id, title, amount, created_at
		FROM transactions
		WHERE session_id = ?
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.SessionID, &t.Title, &t.Amount, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	return transactions, nil
}

// GetTransactionByID returns the transaction matching both id and
// sessionID, or nil when no such row exists. A row owned by a different
// session is indistinguishable from a missing one. A malformed id fails
// validation before the store is touched.
func GetTransactionByID(sessionID, id string) (*models.Transaction, error) {
	if sessionID == "" {
		return nil, models.ErrNoSession
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: id must be a valid uuid", models.ErrValidation)
	}

	var t models.Transaction
	err := database.DB.QueryRow(`
		SELECT id, session_id, title, amount, created_at
		FROM transactions
		WHERE id = ? AND session_id = ?
	`, id, sessionID).Scan(&t.ID, &t.SessionID, &t.Title, &t.Amount, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}

	return &t, nil
}

// GetSummary returns the net balance of the session's ledger, the sum of
// all signed amounts. An empty ledger sums to 0.
func GetSummary(sessionID string) (*models.Summary, error) {
	if sessionID == "" {
		return nil, models.ErrNoSession
	}

	var s models.Summary
	err := database.DB.QueryRow(`
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE session_id = ?
	`, sessionID).Scan(&s.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}

	return &s, nil
}
