package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"pocketledger/config"
	"pocketledger/middleware"
	"pocketledger/models"
	"pocketledger/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type transactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

type transactionResponse struct {
	Transaction *models.Transaction `json:"transaction"`
}

type summaryResponse struct {
	Summary *models.Summary `json:"summary"`
}

// CreateTransaction handles POST /transactions. The session cookie is
// optional here: a caller without one gets a fresh token minted and handed
// back as a cookie, valid for the configured window. An existing token is
// reused unchanged and its expiry is not refreshed.
func CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cfg := config.Get()
	sessionID, minted := resolveSession(r, cfg.Session.CookieName)

	if _, err := services.CreateTransaction(sessionID, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	// Hand the token back only once the write committed, so a rejected
	// request never issues a session.
	if minted {
		http.SetCookie(w, &http.Cookie{
			Name:   cfg.Session.CookieName,
			Value:  sessionID,
			Path:   "/",
			MaxAge: cfg.Session.MaxAgeDays * 24 * 60 * 60,
		})
	}

	w.WriteHeader(http.StatusCreated)
}

// GetTransactions handles GET /transactions, returning the caller's full
// ledger in insertion order.
func GetTransactions(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionIDFromContext(r)

	transactions, err := services.ListTransactions(sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(transactionsResponse{Transactions: transactions})
}

// GetTransaction handles GET /transactions/{id}. A transaction owned by a
// different session answers exactly like a nonexistent one.
func GetTransaction(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionIDFromContext(r)
	vars := mux.Vars(r)
	id := vars["id"]

	transaction, err := services.GetTransactionByID(sessionID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(transactionResponse{Transaction: transaction})
}

// GetSummary handles GET /transactions/summary, the caller's net balance.
func GetSummary(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionIDFromContext(r)

	summary, err := services.GetSummary(sessionID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summaryResponse{Summary: summary})
}

// resolveSession returns the caller's session token, minting a fresh one
// when the request carries no cookie.
func resolveSession(r *http.Request, cookieName string) (sessionID string, minted bool) {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, false
	}
	return uuid.New().String(), true
}

// writeServiceError maps the service error kinds onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNoSession):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
