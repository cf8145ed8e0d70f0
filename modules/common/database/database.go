package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"github.com/DineshDk431/AI-Video-Generator/modules/common/config"
	"github.com/DineshDk431/AI-Video-Generator/modules/common/model"
	generatevideo "github.com/DineshDk431/AI-Video-Generator/modules/generate-video"
)

const (
	historyTable = "video_history"
	jobsTable    = "video_jobs"
)

// Client wraps the Supabase document store for history entries and job
// documents. A client built without credentials stays up and reports
// unavailable; every call then returns a store error instead of panicking.
type Client struct {
	supabase *supabase.Client
}

// NewClient creates the store adapter. Returns a disabled client when
// Supabase credentials are missing or the SDK rejects them.
func NewClient(cfg *config.Config) *Client {
	if !cfg.HistoryConfigured() {
		log.Println("⚠️  [Database] Supabase credentials missing, history store unavailable")
		return &Client{}
	}

	supabaseClient, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, &supabase.ClientOptions{})
	if err != nil {
		log.Printf("❌ [Database] Failed to create Supabase client: %v", err)
		return &Client{}
	}

	log.Println("✅ [Database] Supabase client initialized")
	return &Client{supabase: supabaseClient}
}

// Available reports whether the store can be reached at all.
func (c *Client) Available() bool {
	return c != nil && c.supabase != nil
}

// Append inserts one history entry. Called only for ready results.
func (c *Client) Append(ctx context.Context, entry *generatevideo.HistoryEntry) error {
	if !c.Available() {
		return fmt.Errorf("history store not configured")
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	insertData := map[string]interface{}{
		"id":              entry.ID,
		"prompt":          entry.Prompt,
		"frame_count":     entry.FrameCount,
		"fps":             entry.FPS,
		"quality_preset":  entry.QualityPreset,
		"style":           entry.Style,
		"video_reference": entry.VideoReference,
		"created_at":      entry.CreatedAt.Format(time.RFC3339),
	}

	_, _, err := c.supabase.From(historyTable).
		Insert(insertData, false, "", "", "").
		Execute()

	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	log.Printf("💾 [Database] History entry saved: %s", entry.ID)
	return nil
}

// List returns up to limit history entries, most recent first. Each call
// re-queries the store, so a fresh append shows up on the next call.
func (c *Client) List(ctx context.Context, limit int) ([]generatevideo.HistoryEntry, error) {
	if !c.Available() {
		return nil, fmt.Errorf("history store not configured")
	}

	data, _, err := c.supabase.From(historyTable).
		Select("*", "exact", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}

	var entries []generatevideo.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse history response: %w", err)
	}

	return entries, nil
}

// Delete removes one history entry by id.
func (c *Client) Delete(ctx context.Context, id string) error {
	if !c.Available() {
		return fmt.Errorf("history store not configured")
	}

	_, _, err := c.supabase.From(historyTable).
		Delete("", "").
		Eq("id", id).
		Execute()

	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}

	return nil
}

// CreateJob inserts a pending job document for the async queue path.
func (c *Client) CreateJob(ctx context.Context, job *model.VideoJob) error {
	if !c.Available() {
		return fmt.Errorf("job store not configured")
	}

	insertData := map[string]interface{}{
		"job_id":         job.JobID,
		"prompt":         job.Prompt,
		"frame_count":    job.FrameCount,
		"fps":            job.FPS,
		"quality_preset": job.QualityPreset,
		"style":          job.Style,
		"status":         model.JobStatusPending,
		"created_at":     job.CreatedAt.Format(time.RFC3339),
	}

	_, _, err := c.supabase.From(jobsTable).
		Insert(insertData, false, "", "", "").
		Execute()

	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}

	log.Printf("💾 [Database] Job created: %s", job.JobID)
	return nil
}

// FetchJob loads one job document by id.
func (c *Client) FetchJob(ctx context.Context, jobID string) (*model.VideoJob, error) {
	if !c.Available() {
		return nil, fmt.Errorf("job store not configured")
	}

	data, _, err := c.supabase.From(jobsTable).
		Select("*", "exact", false).
		Eq("job_id", jobID).
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to query job: %w", err)
	}

	var jobs []model.VideoJob
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("failed to parse job response: %w", err)
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}

	return &jobs[0], nil
}

// UpdateJobStatus moves a job through its lifecycle and stamps the matching
// timestamp column.
func (c *Client) UpdateJobStatus(ctx context.Context, jobID string, status string) error {
	if !c.Available() {
		return fmt.Errorf("job store not configured")
	}

	updateData := map[string]interface{}{
		"status": status,
	}

	if status == model.JobStatusProcessing {
		updateData["started_at"] = "now()"
	} else if status == model.JobStatusReady || status == model.JobStatusFailed {
		updateData["completed_at"] = "now()"
	}

	_, _, err := c.supabase.From(jobsTable).
		Update(updateData, "", "").
		Eq("job_id", jobID).
		Execute()

	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}

	log.Printf("📝 [Database] Job %s status updated to: %s", jobID, status)
	return nil
}

// CompleteJob writes the terminal result of a processed job.
func (c *Client) CompleteJob(ctx context.Context, jobID string, result *generatevideo.GenerationResult) error {
	if !c.Available() {
		return fmt.Errorf("job store not configured")
	}

	status := model.JobStatusFailed
	if result.Status == generatevideo.StatusReady {
		status = model.JobStatusReady
	}

	updateData := map[string]interface{}{
		"status":          status,
		"video_reference": result.VideoReference,
		"error_detail":    result.ErrorDetail,
		"completed_at":    "now()",
	}

	_, _, err := c.supabase.From(jobsTable).
		Update(updateData, "", "").
		Eq("job_id", jobID).
		Execute()

	if err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}

	log.Printf("✅ [Database] Job %s completed: %s", jobID, status)
	return nil
}
