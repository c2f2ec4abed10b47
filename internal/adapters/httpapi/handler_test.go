package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chi "github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/akshata29/corporateactions-sub000/internal/adapters/ledger"
	"github.com/akshata29/corporateactions-sub000/internal/adapters/pending"
	"github.com/akshata29/corporateactions-sub000/internal/adapters/registry"
	"github.com/akshata29/corporateactions-sub000/internal/adapters/transport"
	"github.com/akshata29/corporateactions-sub000/internal/usecase/dispatch"
	"github.com/akshata29/corporateactions-sub000/internal/usecase/subscriptions"
)

func newTestRouter() chi.Router {
	reg := registry.NewMemory()
	queue := pending.NewMemory(0)
	history := ledger.NewMemory(100)
	dispatcher := dispatch.NewService(reg, transport.NewQueue(queue), history, zerolog.Nop())
	subs := subscriptions.NewService(reg, history, zerolog.Nop())

	r := chi.NewRouter()
	NewHandler(subs, dispatcher, queue, history, zerolog.Nop()).Routes(r)
	return r
}

func do(t *testing.T, r chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSubscribeAndPreferences(t *testing.T) {
	r := newTestRouter()

	rec := do(t, r, http.MethodPost, "/api/v1/subscriptions", map[string]any{
		"user_id": "u1", "display_name": "Avery", "symbols": []string{"aapl"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, r, http.MethodGet, "/api/v1/subscriptions/u1/preferences", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var prefs map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &prefs); err != nil {
		t.Fatalf("decode preferences: %v", err)
	}
	if !prefs["marketOpen"] || !prefs["immediateAlerts"] {
		t.Fatalf("expected default-true preferences, got %v", prefs)
	}

	rec = do(t, r, http.MethodPut, "/api/v1/subscriptions/u1/preferences/marketOpen", map[string]any{"enabled": false})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = do(t, r, http.MethodPut, "/api/v1/subscriptions/u1/preferences/bogus", map[string]any{"enabled": true})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown key, got %d", rec.Code)
	}
}

func TestPreferencesUnknownUser(t *testing.T) {
	r := newTestRouter()
	rec := do(t, r, http.MethodGet, "/api/v1/subscriptions/ghost/preferences", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTriggerAndPopFlow(t *testing.T) {
	r := newTestRouter()

	do(t, r, http.MethodPost, "/api/v1/subscriptions", map[string]any{
		"user_id": "u1", "symbols": []string{"AAPL"},
	})

	rec := do(t, r, http.MethodPost, "/api/v1/campaigns/market-open/trigger", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result["succeeded"].(float64) != 1 {
		t.Fatalf("expected one delivery, got %v", result["succeeded"])
	}

	rec = do(t, r, http.MethodPost, "/api/v1/notifications/u1/pop", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on pop, got %d", rec.Code)
	}
	rec = do(t, r, http.MethodPost, "/api/v1/notifications/u1/pop", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on empty queue, got %d", rec.Code)
	}
}

func TestTriggerUnknownCampaign(t *testing.T) {
	r := newTestRouter()
	rec := do(t, r, http.MethodPost, "/api/v1/campaigns/blue-moon/trigger", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	r := newTestRouter()
	do(t, r, http.MethodPost, "/api/v1/subscriptions", map[string]any{
		"user_id": "u1", "symbols": []string{"AAPL", "MSFT"},
	})

	rec := do(t, r, http.MethodGet, "/api/v1/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var stats map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats["total_subscriptions"].(float64) != 1 || stats["unique_symbols"].(float64) != 2 {
		t.Fatalf("unexpected stats: %v", stats)
	}
	if stats["success_rate"].(float64) != 0 {
		t.Fatalf("expected zero success rate on empty ledger, got %v", stats["success_rate"])
	}
}

func TestUnsubscribeRemovesRecord(t *testing.T) {
	r := newTestRouter()
	do(t, r, http.MethodPost, "/api/v1/subscriptions", map[string]any{
		"user_id": "u1", "symbols": []string{"X"},
	})

	rec := do(t, r, http.MethodDelete, "/api/v1/subscriptions/u1/symbols", map[string]any{"symbols": []string{"X"}})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = do(t, r, http.MethodGet, "/api/v1/subscriptions/u1/preferences", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after full unsubscribe, got %d", rec.Code)
	}
}
