package generatevideo

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// SearchRecorder records submitted prompts for the search history feature.
// May be nil when Redis is unavailable.
type SearchRecorder interface {
	Record(ctx context.Context, prompt string)
}

type GenerateVideoHandler struct {
	orchestrator *Orchestrator
	searches     SearchRecorder
}

func NewGenerateVideoHandler(orchestrator *Orchestrator, searches SearchRecorder) *GenerateVideoHandler {
	return &GenerateVideoHandler{
		orchestrator: orchestrator,
		searches:     searches,
	}
}

// RegisterRoutes wires the generation and history endpoints.
func (h *GenerateVideoHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/generate", h.HandleGenerate).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/generate/status", h.HandleStatus).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/history", h.HandleListHistory).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/history/{id}", h.HandleDeleteHistory).Methods("DELETE", "OPTIONS")
	log.Println("✅ Generate video routes registered: /api/generate, /api/history")
}

// HandleGenerate runs one blocking generation and returns the terminal result.
func (h *GenerateVideoHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(GenerationResult{
			Status:      StatusFailed,
			ErrorDetail: "invalid request body",
		})
		return
	}

	if h.searches != nil && req.Prompt != "" {
		h.searches.Record(r.Context(), req.Prompt)
	}

	result := h.orchestrator.Submit(r.Context(), &req, nil)

	if result.Status == StatusFailed {
		w.WriteHeader(failureStatusCode(result))
	}
	json.NewEncoder(w).Encode(result)
}

// failureStatusCode picks the HTTP status for a failed result. Only
// validation failures are the caller's fault; provider problems map to
// gateway-side codes.
func failureStatusCode(result *GenerationResult) int {
	switch result.kind {
	case failKindValidation:
		return http.StatusUnprocessableEntity
	case failKindRateLimit:
		return http.StatusTooManyRequests
	case failKindConfiguration:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// HandleStatus reports whether the remote provider is reachable and the model
// is loaded.
func (h *GenerateVideoHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	available := h.orchestrator.client != nil && h.orchestrator.client.Available()
	json.NewEncoder(w).Encode(map[string]interface{}{
		"available": available,
	})
}

// HandleListHistory returns past generations, most recent first.
func (h *GenerateVideoHandler) HandleListHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if h.orchestrator.history == nil || !h.orchestrator.history.Available() {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "history is unavailable: store not configured",
		})
		return
	}

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	entries, err := h.orchestrator.history.List(r.Context(), limit)
	if err != nil {
		log.Printf("❌ [History] List failed: %v", err)
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "could not load history",
		})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// HandleDeleteHistory removes one history entry.
func (h *GenerateVideoHandler) HandleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if h.orchestrator.history == nil || !h.orchestrator.history.Available() {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "history is unavailable: store not configured",
		})
		return
	}

	id := mux.Vars(r)["id"]
	if err := h.orchestrator.history.Delete(r.Context(), id); err != nil {
		log.Printf("❌ [History] Delete %s failed: %v", id, err)
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "could not delete history entry",
		})
		return
	}

	log.Printf("🗑️  [History] Deleted entry: %s", id)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "deleted",
		"id":     id,
	})
}
