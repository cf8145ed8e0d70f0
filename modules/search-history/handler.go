package searchhistory

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type SearchHistoryHandler struct {
	service *Service
}

func NewSearchHistoryHandler(service *Service) *SearchHistoryHandler {
	return &SearchHistoryHandler{service: service}
}

// RegisterRoutes wires the search history endpoints.
func (h *SearchHistoryHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/searches", h.HandleRecent).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/searches", h.HandleClear).Methods("DELETE")
	log.Println("✅ Search history routes registered: /api/searches")
}

// HandleRecent returns the most recently submitted prompts.
func (h *SearchHistoryHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		log.Printf("❌ [Searches] Failed to load searches: %v", err)
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": "could not load search history"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"searches":  entries,
		"count":     len(entries),
		"available": h.service.Available(),
	})
}

// HandleClear wipes the search history.
func (h *SearchHistoryHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := h.service.Clear(r.Context()); err != nil {
		log.Printf("❌ [Searches] Failed to clear searches: %v", err)
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": "could not clear search history"})
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"status": "cleared"})
}
