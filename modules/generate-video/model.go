package generatevideo

import (
	"strings"
	"time"
)

// GenerationRequest carries the user's prompt and generation parameters.
// Immutable once submitted.
type GenerationRequest struct {
	Prompt        string `json:"prompt"`
	FrameCount    int    `json:"frame_count"`
	FPS           int    `json:"fps"`
	QualityPreset string `json:"quality_preset"`
	Style         string `json:"style,omitempty"` // "cinematic", "anime", "normal"
	JobID         string `json:"job_id,omitempty"`
}

// GenerationResult is the terminal outcome of a submission.
type GenerationResult struct {
	Status         string `json:"status"` // "pending", "ready", "failed"
	VideoReference string `json:"video_reference,omitempty"`
	ErrorDetail    string `json:"error_detail,omitempty"`
	Retryable      bool   `json:"retryable,omitempty"`

	// kind classifies a failed result for the HTTP layer; not serialized.
	kind string
}

// Failure kinds.
const (
	failKindValidation    = "validation"
	failKindConfiguration = "configuration"
	failKindRateLimit     = "rate_limit"
	failKindProvider      = "provider"
	failKindStore         = "store"
)

// HistoryEntry is the persisted record of one completed generation.
// Created only after a result reaches ready; listed and deleted, never updated.
type HistoryEntry struct {
	ID             string    `json:"id"`
	Prompt         string    `json:"prompt"`
	FrameCount     int       `json:"frame_count"`
	FPS            int       `json:"fps"`
	QualityPreset  string    `json:"quality_preset"`
	Style          string    `json:"style,omitempty"`
	VideoReference string    `json:"video_reference"`
	CreatedAt      time.Time `json:"created_at"`
}

const (
	StatusPending = "pending"
	StatusReady   = "ready"
	StatusFailed  = "failed"
)

// QualityPreset maps a preset name to the resolution and inference steps sent
// to the provider.
type QualityPreset struct {
	Width  int
	Height int
	Steps  int
}

// Presets mirror the resolution table of the frontend form.
var QualityPresets = map[string]QualityPreset{
	"fast":     {Width: 256, Height: 256, Steps: 15},
	"balanced": {Width: 384, Height: 384, Steps: 25},
	"high":     {Width: 512, Height: 512, Steps: 40},
}

// Parameter bounds. The provider additionally caps frames at 48 per request;
// the client clamps, validation only enforces the form's own limits.
const (
	MinFrameCount = 8
	MaxFrameCount = 90
	MinFPS        = 8
	MaxFPS        = 24
)

var validStyles = map[string]bool{
	"":          true,
	"cinematic": true,
	"anime":     true,
	"normal":    true,
}

// Validate checks a request locally, before any network call.
func (r *GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return &ValidationError{Field: "prompt", Reason: "must not be empty"}
	}
	if r.FrameCount < MinFrameCount || r.FrameCount > MaxFrameCount {
		return &ValidationError{Field: "frame_count", Reason: "must be between 8 and 90"}
	}
	if r.FPS < MinFPS || r.FPS > MaxFPS {
		return &ValidationError{Field: "fps", Reason: "must be between 8 and 24"}
	}
	if _, ok := QualityPresets[strings.ToLower(r.QualityPreset)]; !ok {
		return &ValidationError{Field: "quality_preset", Reason: "must be one of fast, balanced, high"}
	}
	if !validStyles[strings.ToLower(r.Style)] {
		return &ValidationError{Field: "style", Reason: "must be one of cinematic, anime, normal"}
	}
	return nil
}

// Preset returns the resolved quality preset for a validated request.
func (r *GenerationRequest) Preset() QualityPreset {
	return QualityPresets[strings.ToLower(r.QualityPreset)]
}
