package promptrefiner

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

type RefinerHandler struct {
	service *Service
}

func NewRefinerHandler(service *Service) *RefinerHandler {
	return &RefinerHandler{service: service}
}

// RegisterRoutes wires the prompt refinement endpoint.
func (h *RefinerHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/refine-prompt", h.HandleRefine).Methods("POST", "OPTIONS")
	log.Println("✅ Refiner routes registered: /api/refine-prompt")
}

// HandleRefine enhances a raw prompt for video generation.
func (h *RefinerHandler) HandleRefine(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req RefineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid request body"})
		return
	}

	if req.Prompt == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "prompt is required"})
		return
	}

	json.NewEncoder(w).Encode(h.service.Refine(r.Context(), &req))
}
