package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/DineshDk431/AI-Video-Generator/modules/common/config"
	"github.com/DineshDk431/AI-Video-Generator/modules/common/database"
	redisClient "github.com/DineshDk431/AI-Video-Generator/modules/common/redis"
	"github.com/DineshDk431/AI-Video-Generator/modules/common/storage"
	generatevideo "github.com/DineshDk431/AI-Video-Generator/modules/generate-video"
	"github.com/DineshDk431/AI-Video-Generator/modules/progress"
	promptrefiner "github.com/DineshDk431/AI-Video-Generator/modules/prompt-refiner"
	searchhistory "github.com/DineshDk431/AI-Video-Generator/modules/search-history"
	"github.com/DineshDk431/AI-Video-Generator/modules/submodule/huggingface"
	"github.com/DineshDk431/AI-Video-Generator/modules/worker"
)

// enableCORS adds permissive CORS headers for the frontend.
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "ai-video-generator",
	})
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Shared infrastructure. Each client degrades to unavailable when its
	// credentials are missing, the server starts either way.
	rdb := redisClient.Connect(cfg)
	db := database.NewClient(cfg)
	artifacts := storage.NewClient(cfg)

	hfClient := huggingface.NewClient(cfg, huggingface.DefaultRetryPolicy)
	if hfClient.Available() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := hfClient.Ping(ctx); err != nil {
			log.Printf("⚠️  [Startup] Provider status probe failed: %v", err)
		} else {
			log.Println("✅ [Startup] Provider reachable")
		}
		cancel()
	} else {
		log.Println("⚠️  [Startup] HF_TOKEN not set, generation endpoints will report unavailable")
	}

	orchestrator := generatevideo.NewOrchestrator(hfClient, artifacts, db)

	// Persistence failures are best effort, surface them in the logs only.
	go func() {
		for storeErr := range orchestrator.StoreFailures() {
			log.Printf("⚠️  [History] Persistence failure: %v", storeErr.Err)
		}
	}()

	searches := searchhistory.NewService(rdb)
	refiner := promptrefiner.NewService(cfg)
	hub := progress.NewHub()

	// Async queue path
	go worker.New(rdb, db, orchestrator, hub).Start()

	r := mux.NewRouter()
	r.Use(enableCORS)

	r.HandleFunc("/", healthCheck).Methods("GET")
	r.HandleFunc("/health", healthCheck).Methods("GET")

	generatevideo.NewGenerateVideoHandler(orchestrator, searches).RegisterRoutes(r)
	promptrefiner.NewRefinerHandler(refiner).RegisterRoutes(r)
	searchhistory.NewSearchHistoryHandler(searches).RegisterRoutes(r)
	progress.NewProgressHandler(hub).RegisterRoutes(r)

	if enqueue := worker.NewEnqueueHandler(rdb, db); enqueue != nil {
		enqueue.RegisterRoutes(r)
	}

	port := cfg.Port

	log.Printf("🚀 AI Video Generator Server starting on port %s", port)
	log.Printf("🎬 Generate endpoint: http://localhost:%s/api/generate", port)
	log.Printf("📡 Progress endpoint: ws://localhost:%s/ws/progress", port)
	log.Printf("❤️  Health check: http://localhost:%s/health", port)

	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
