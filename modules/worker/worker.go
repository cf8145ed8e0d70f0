package worker

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DineshDk431/AI-Video-Generator/modules/common/database"
	"github.com/DineshDk431/AI-Video-Generator/modules/common/model"
	generatevideo "github.com/DineshDk431/AI-Video-Generator/modules/generate-video"
	"github.com/DineshDk431/AI-Video-Generator/modules/progress"
)

const jobQueue = "jobs:queue"

// Worker drains the Redis job queue and runs each job through the
// generation pipeline.
type Worker struct {
	rdb          *redis.Client
	db           *database.Client
	orchestrator *generatevideo.Orchestrator
	hub          *progress.Hub
}

func New(rdb *redis.Client, db *database.Client, orchestrator *generatevideo.Orchestrator, hub *progress.Hub) *Worker {
	return &Worker{
		rdb:          rdb,
		db:           db,
		orchestrator: orchestrator,
		hub:          hub,
	}
}

// Start blocks on the queue forever. Run it in its own goroutine.
func (w *Worker) Start() {
	log.Println("🔄 Redis Queue Worker starting...")

	if w.rdb == nil {
		log.Println("⚠️  [Worker] Redis not connected, queue worker disabled")
		return
	}
	if !w.db.Available() {
		log.Println("⚠️  [Worker] Job store not configured, queue worker disabled")
		return
	}

	log.Printf("👀 Watching queue: %s", jobQueue)

	ctx := context.Background()

	for {
		// BRPOP blocks until a job id arrives
		result, err := w.rdb.BRPop(ctx, 0, jobQueue).Result()
		if err != nil {
			log.Printf("❌ Redis BRPOP error: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		// result[0] is the queue name, result[1] the job id
		jobID := result[1]
		log.Printf("🎯 Received new job: %s", jobID)

		go w.processJob(ctx, jobID)
	}
}

// processJob runs one queued job to a terminal status, streaming progress
// to any WebSocket subscribers along the way.
func (w *Worker) processJob(ctx context.Context, jobID string) {
	log.Printf("🚀 Processing job: %s", jobID)

	job, err := w.db.FetchJob(ctx, jobID)
	if err != nil {
		log.Printf("❌ Failed to fetch job %s: %v", jobID, err)
		return
	}

	log.Printf("📦 Job Data:")
	log.Printf("   JobID: %s", job.JobID)
	log.Printf("   Prompt: %s", job.Prompt)
	log.Printf("   Frames: %d @ %d fps", job.FrameCount, job.FPS)
	log.Printf("   Preset: %s", job.QualityPreset)

	if err := w.db.UpdateJobStatus(ctx, jobID, model.JobStatusProcessing); err != nil {
		log.Printf("⚠️  [Worker] Failed to mark job %s processing: %v", jobID, err)
	}

	report := w.hub.Publisher(jobID)
	report("Generation started")

	req := &generatevideo.GenerationRequest{
		Prompt:        job.Prompt,
		FrameCount:    job.FrameCount,
		FPS:           job.FPS,
		QualityPreset: job.QualityPreset,
		Style:         job.Style,
		JobID:         job.JobID,
	}

	result := w.orchestrator.Submit(ctx, req, report)

	if result.Status == generatevideo.StatusReady {
		report("Video ready: " + result.VideoReference)
	} else {
		report("Generation failed: " + result.ErrorDetail)
	}

	if err := w.db.CompleteJob(ctx, jobID, result); err != nil {
		log.Printf("❌ [Worker] Failed to record result for job %s: %v", jobID, err)
		return
	}

	log.Printf("✅ Job %s processing completed", jobID)
}
