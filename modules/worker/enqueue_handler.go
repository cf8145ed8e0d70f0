package worker

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/DineshDk431/AI-Video-Generator/modules/common/database"
	"github.com/DineshDk431/AI-Video-Generator/modules/common/model"
	generatevideo "github.com/DineshDk431/AI-Video-Generator/modules/generate-video"
)

// EnqueueHandler accepts generation requests for the async queue path.
type EnqueueHandler struct {
	rdb *redis.Client
	db  *database.Client
}

// EnqueueResponse - enqueue result with the caller's position in the queue.
type EnqueueResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message,omitempty"`
	Error         string `json:"error,omitempty"`
	JobID         string `json:"job_id,omitempty"`
	Queue         string `json:"queue,omitempty"`
	QueuePosition int64  `json:"queuePosition,omitempty"`
}

func NewEnqueueHandler(rdb *redis.Client, db *database.Client) *EnqueueHandler {
	if rdb == nil {
		log.Println("⚠️  [Enqueue] Redis not connected, queue endpoints disabled")
		return nil
	}

	log.Println("✅ [Enqueue] Handler initialized with Redis connection")
	return &EnqueueHandler{
		rdb: rdb,
		db:  db,
	}
}

// RegisterRoutes wires the queue endpoints.
func (h *EnqueueHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/enqueue", h.HandleEnqueue).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/jobs/{jobId}", h.HandleJobStatus).Methods("GET", "OPTIONS")
	log.Println("✅ Enqueue routes registered: /api/enqueue, /api/jobs/{jobId}")
}

// HandleEnqueue validates the request, persists a pending job document and
// pushes its id onto the Redis queue.
func (h *EnqueueHandler) HandleEnqueue(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req generatevideo.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ [Enqueue] Invalid request: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(EnqueueResponse{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	if err := req.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(EnqueueResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	if !h.db.Available() {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(EnqueueResponse{
			Success: false,
			Error:   "job queue is unavailable: store not configured",
		})
		return
	}

	job := &model.VideoJob{
		JobID:         uuid.New().String(),
		Prompt:        req.Prompt,
		FrameCount:    req.FrameCount,
		FPS:           req.FPS,
		QualityPreset: req.QualityPreset,
		Style:         req.Style,
		Status:        model.JobStatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.db.CreateJob(ctx, job); err != nil {
		log.Printf("❌ [Enqueue] Failed to create job: %v", err)
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(EnqueueResponse{
			Success: false,
			Error:   "could not create job",
		})
		return
	}

	if _, err := h.rdb.LPush(ctx, jobQueue, job.JobID).Result(); err != nil {
		log.Printf("❌ [Enqueue] Redis LPUSH failed: %v", err)
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(EnqueueResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	queueLen, _ := h.rdb.LLen(ctx, jobQueue).Result()

	log.Printf("✅ [Enqueue] Job %s enqueued successfully (position: %d)", job.JobID, queueLen)

	json.NewEncoder(w).Encode(EnqueueResponse{
		Success:       true,
		Message:       "Job enqueued successfully",
		JobID:         job.JobID,
		Queue:         jobQueue,
		QueuePosition: queueLen,
	})
}

// HandleJobStatus returns the current job document for polling clients.
func (h *EnqueueHandler) HandleJobStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	jobID := mux.Vars(r)["jobId"]

	job, err := h.db.FetchJob(r.Context(), jobID)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "job not found",
		})
		return
	}

	json.NewEncoder(w).Encode(job)
}
