package model

import "time"

// VideoJob is one row of the video_jobs table: a queued generation request
// plus its lifecycle state. Mirrors the request fields flat so the worker can
// rebuild the generation request without a nested document.
type VideoJob struct {
	JobID          string     `json:"job_id"`
	Prompt         string     `json:"prompt"`
	FrameCount     int        `json:"frame_count"`
	FPS            int        `json:"fps"`
	QualityPreset  string     `json:"quality_preset"`
	Style          string     `json:"style,omitempty"`
	Status         string     `json:"status"` // pending, processing, ready, failed
	VideoReference string     `json:"video_reference,omitempty"`
	ErrorDetail    string     `json:"error_detail,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusReady      = "ready"
	JobStatusFailed     = "failed"
)
