package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pocketledger/config"
	"pocketledger/database"
	"pocketledger/handlers"
	"pocketledger/models"

	"github.com/google/uuid"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	handlers.SetupTestDB()
	t.Cleanup(handlers.CleanupTestDB)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Error loading config: %v", err)
	}
	return NewServer(database.DB, cfg).Handler()
}

func postTransaction(t *testing.T, h http.Handler, body string, session *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if session != nil {
		req.AddCookie(session)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func get(t *testing.T, h http.Handler, url string, session *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", url, nil)
	if session != nil {
		req.AddCookie(session)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "sessionId" {
			return c
		}
	}
	t.Fatal("Expected a sessionId cookie to be set")
	return nil
}

func TestCreateTransactionMintsCookieAndListReturnsIt(t *testing.T) {
	h := newTestServer(t)

	w := postTransaction(t, h, `{"title":"New transaction","amount":5000,"type":"credit"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status code %d, got %d", http.StatusCreated, w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("Expected an empty body, got %q", w.Body.String())
	}
	cookie := sessionCookie(t, w)

	listResp := get(t, h, "/transactions", cookie)
	if listResp.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, listResp.Code)
	}

	var response struct {
		Transactions []models.Transaction `json:"transactions"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&response); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if len(response.Transactions) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(response.Transactions))
	}
	if response.Transactions[0].Title != "New transaction" {
		t.Errorf("Expected title 'New transaction', got %q", response.Transactions[0].Title)
	}
	if response.Transactions[0].Amount != 5000 {
		t.Errorf("Expected amount 5000, got %v", response.Transactions[0].Amount)
	}
}

func TestCreateTransactionReusesExistingSession(t *testing.T) {
	h := newTestServer(t)

	first := postTransaction(t, h, `{"title":"First","amount":5000,"type":"credit"}`, nil)
	cookie := sessionCookie(t, first)

	second := postTransaction(t, h, `{"title":"Second","amount":2000,"type":"debit"}`, cookie)
	if second.Code != http.StatusCreated {
		t.Fatalf("Expected status code %d, got %d", http.StatusCreated, second.Code)
	}
	if len(second.Result().Cookies()) != 0 {
		t.Error("Expected no new cookie when the caller already has a session")
	}

	// Both rows belong to the same session
	listResp := get(t, h, "/transactions", cookie)
	var response struct {
		Transactions []models.Transaction `json:"transactions"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&response); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if len(response.Transactions) != 2 {
		t.Errorf("Expected 2 transactions, got %d", len(response.Transactions))
	}
}

func TestGetSpecificTransaction(t *testing.T) {
	h := newTestServer(t)

	created := postTransaction(t, h, `{"title":"New transaction","amount":5000,"type":"credit"}`, nil)
	cookie := sessionCookie(t, created)

	listResp := get(t, h, "/transactions", cookie)
	var listBody struct {
		Transactions []models.Transaction `json:"transactions"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&listBody); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if len(listBody.Transactions) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(listBody.Transactions))
	}
	id := listBody.Transactions[0].ID

	getResp := get(t, h, "/transactions/"+id, cookie)
	if getResp.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, getResp.Code)
	}

	var getBody struct {
		Transaction *models.Transaction `json:"transaction"`
	}
	if err := json.NewDecoder(getResp.Body).Decode(&getBody); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if getBody.Transaction == nil {
		t.Fatal("Expected a transaction, got null")
	}
	if getBody.Transaction.Title != "New transaction" || getBody.Transaction.Amount != 5000 {
		t.Errorf("Unexpected transaction: %+v", getBody.Transaction)
	}
}

func TestGetTransactionMalformedIDRejected(t *testing.T) {
	h := newTestServer(t)

	created := postTransaction(t, h, `{"title":"New transaction","amount":5000,"type":"credit"}`, nil)
	cookie := sessionCookie(t, created)

	resp := get(t, h, "/transactions/not-a-uuid", cookie)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, resp.Code)
	}
}

func TestGetTransactionAcrossSessionsBehavesAsNotFound(t *testing.T) {
	h := newTestServer(t)

	// Session one owns a transaction
	created := postTransaction(t, h, `{"title":"Owned","amount":5000,"type":"credit"}`, nil)
	ownerCookie := sessionCookie(t, created)

	listResp := get(t, h, "/transactions", ownerCookie)
	var listBody struct {
		Transactions []models.Transaction `json:"transactions"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&listBody); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	ownedID := listBody.Transactions[0].ID

	// Session two asks for it; the answer must match a wholly nonexistent id
	otherCookie := &http.Cookie{Name: "sessionId", Value: uuid.New().String()}

	foreign := get(t, h, "/transactions/"+ownedID, otherCookie)
	missing := get(t, h, "/transactions/"+uuid.New().String(), otherCookie)

	for _, resp := range []*httptest.ResponseRecorder{foreign, missing} {
		if resp.Code != http.StatusOK {
			t.Fatalf("Expected status code %d, got %d", http.StatusOK, resp.Code)
		}
	}
	if foreign.Body.String() != missing.Body.String() {
		t.Errorf("Expected identical bodies, got %q and %q", foreign.Body.String(), missing.Body.String())
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(foreign.Body).Decode(&body); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if string(body["transaction"]) != "null" {
		t.Errorf("Expected a null transaction, got %s", body["transaction"])
	}
}

func TestSummary(t *testing.T) {
	h := newTestServer(t)

	created := postTransaction(t, h, `{"title":"New transaction","amount":5000,"type":"credit"}`, nil)
	cookie := sessionCookie(t, created)

	postTransaction(t, h, `{"title":"New transaction","amount":2000,"type":"debit"}`, cookie)

	resp := get(t, h, "/transactions/summary", cookie)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, resp.Code)
	}

	var body struct {
		Summary models.Summary `json:"summary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if body.Summary.Amount != 3000 {
		t.Errorf("Expected summary amount 3000, got %v", body.Summary.Amount)
	}
}

func TestSummaryOfFreshSessionIsZero(t *testing.T) {
	h := newTestServer(t)

	// A token the server has never seen still reads an empty ledger
	cookie := &http.Cookie{Name: "sessionId", Value: uuid.New().String()}

	resp := get(t, h, "/transactions/summary", cookie)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, resp.Code)
	}

	var body struct {
		Summary models.Summary `json:"summary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if body.Summary.Amount != 0 {
		t.Errorf("Expected summary amount 0, got %v", body.Summary.Amount)
	}
}

func TestReadEndpointsRequireSessionCookie(t *testing.T) {
	h := newTestServer(t)

	urls := []string{
		"/transactions",
		"/transactions/summary",
		"/transactions/" + uuid.New().String(),
	}

	for _, url := range urls {
		resp := get(t, h, url, nil)
		if resp.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without cookie: expected status code %d, got %d", url, http.StatusUnauthorized, resp.Code)
		}

		malformed := get(t, h, url, &http.Cookie{Name: "sessionId", Value: "not-a-uuid"})
		if malformed.Code != http.StatusUnauthorized {
			t.Errorf("GET %s with malformed cookie: expected status code %d, got %d", url, http.StatusUnauthorized, malformed.Code)
		}
	}
}

func TestHealthCheck(t *testing.T) {
	h := newTestServer(t)

	resp := get(t, h, "/health", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, resp.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Error decoding response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status 'ok', got %q", body["status"])
	}
}
