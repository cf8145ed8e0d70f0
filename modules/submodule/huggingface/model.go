package huggingface

import "time"

// Provider-documented limits for the hosted text-to-video models.
const (
	ProviderFrameLimit = 48
	ProviderStepLimit  = 50
	ProviderSizeLimit  = 512
)

// RetryPolicy bounds the loading-retry loop. The provider answers 503 with an
// estimated_time hint while the model cold-starts; attempts beyond MaxRetries
// surface as a transient provider error.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// DefaultRetryPolicy waits up to roughly five minutes for a cold model.
var DefaultRetryPolicy = RetryPolicy{
	MaxRetries: 30,
	BaseDelay:  10 * time.Second,
	MaxDelay:   30 * time.Second,
}

// inferencePayload is the request body for the hosted inference endpoint.
type inferencePayload struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	NumFrames         int    `json:"num_frames"`
	NumInferenceSteps int    `json:"num_inference_steps"`
	Height            int    `json:"height"`
	Width             int    `json:"width"`
	NegativePrompt    string `json:"negative_prompt,omitempty"`
}

// errorResponse is the provider's JSON error shape. estimated_time is only
// present on 503 loading responses.
type errorResponse struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}
