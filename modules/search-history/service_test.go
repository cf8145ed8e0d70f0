package searchhistory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

func TestServiceWithoutRedisIsNoOp(t *testing.T) {
	service := NewService(nil)

	if service.Available() {
		t.Error("service without Redis should report unavailable")
	}

	// Every operation is a silent no-op.
	service.Record(context.Background(), "a cat riding a bicycle")

	entries, err := service.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}

	if err := service.Clear(context.Background()); err != nil {
		t.Errorf("clear should be a no-op, got %v", err)
	}
}

func TestHandleRecentUnavailable(t *testing.T) {
	r := mux.NewRouter()
	NewSearchHistoryHandler(NewService(nil)).RegisterRoutes(r)

	req := httptest.NewRequest("GET", "/api/searches", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Searches  []SearchEntry `json:"searches"`
		Count     int           `json:"count"`
		Available bool          `json:"available"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Available {
		t.Error("response should flag search history as unavailable")
	}
	if resp.Count != 0 {
		t.Errorf("expected empty history, got %d", resp.Count)
	}
}
