package generatevideo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// ProviderVideo is the raw payload returned by the remote inference client.
type ProviderVideo struct {
	Data        []byte
	ContentType string
	Model       string
}

// InferenceClient generates a video remotely. progress may be nil.
type InferenceClient interface {
	Generate(ctx context.Context, req *GenerationRequest, progress func(string)) (*ProviderVideo, error)
	Available() bool
}

// ArtifactStore persists raw video bytes and returns an opaque handle
// (a storage URL or a local file path).
type ArtifactStore interface {
	SaveVideo(ctx context.Context, data []byte, contentType string) (string, error)
}

// HistoryStore is the adapter over the cloud document database.
type HistoryStore interface {
	Append(ctx context.Context, entry *HistoryEntry) error
	List(ctx context.Context, limit int) ([]HistoryEntry, error)
	Delete(ctx context.Context, id string) error
	Available() bool
}

// Orchestrator sequences validate -> invoke -> persist -> done. Dependencies
// are injected so tests can substitute doubles without process-wide state.
type Orchestrator struct {
	client    InferenceClient
	artifacts ArtifactStore
	history   HistoryStore

	// Persistence failures are reported here instead of on the result:
	// a history write is a best-effort side channel, not part of the
	// generation contract. Sends never block.
	storeErrs chan StoreError
}

// NewOrchestrator wires the generation pipeline.
func NewOrchestrator(client InferenceClient, artifacts ArtifactStore, history HistoryStore) *Orchestrator {
	return &Orchestrator{
		client:    client,
		artifacts: artifacts,
		history:   history,
		storeErrs: make(chan StoreError, 16),
	}
}

// StoreFailures exposes the non-blocking persistence failure channel.
func (o *Orchestrator) StoreFailures() <-chan StoreError {
	return o.storeErrs
}

// Submit runs one generation to a terminal result. It blocks for the duration
// of the provider call, including the client's internal loading retries.
func (o *Orchestrator) Submit(ctx context.Context, req *GenerationRequest, progress func(string)) *GenerationResult {
	// Validating: reject bad input before touching the network
	if err := req.Validate(); err != nil {
		log.Printf("⚠️  [Generate] Rejected request: %v", err)
		return &GenerationResult{
			Status:      StatusFailed,
			ErrorDetail: err.Error(),
			kind:        failKindValidation,
		}
	}

	if o.client == nil || !o.client.Available() {
		return &GenerationResult{
			Status:      StatusFailed,
			ErrorDetail: "video generation is unavailable: HF_TOKEN not configured",
			kind:        failKindConfiguration,
		}
	}

	// Invoking
	log.Printf("🎬 [Generate] Submitting prompt to provider: %s", truncate(req.Prompt, 60))
	video, err := o.client.Generate(ctx, req, progress)
	if err != nil {
		return failedResult(err)
	}

	// Persisting: the artifact must land somewhere before the result is ready
	reference, err := o.artifacts.SaveVideo(ctx, video.Data, video.ContentType)
	if err != nil {
		log.Printf("❌ [Generate] Failed to store video artifact: %v", err)
		return &GenerationResult{
			Status:      StatusFailed,
			ErrorDetail: fmt.Sprintf("video generated but could not be stored: %v", err),
			Retryable:   true,
			kind:        failKindStore,
		}
	}

	result := &GenerationResult{
		Status:         StatusReady,
		VideoReference: reference,
	}

	// Best effort: a store failure is logged and reported on the side
	// channel, the ready result goes back to the caller regardless.
	o.appendHistory(ctx, req, reference)

	log.Printf("✅ [Generate] Video ready: %s", reference)
	return result
}

func (o *Orchestrator) appendHistory(ctx context.Context, req *GenerationRequest, reference string) {
	if o.history == nil || !o.history.Available() {
		log.Println("⚠️  [Generate] History store unavailable, skipping persistence")
		return
	}

	entry := &HistoryEntry{
		Prompt:         req.Prompt,
		FrameCount:     req.FrameCount,
		FPS:            req.FPS,
		QualityPreset:  req.QualityPreset,
		Style:          req.Style,
		VideoReference: reference,
		CreatedAt:      time.Now().UTC(),
	}

	if err := o.history.Append(ctx, entry); err != nil {
		storeErr := StoreError{Op: "append", Err: err}
		log.Printf("⚠️  [Generate] %v (result still returned)", &storeErr)
		select {
		case o.storeErrs <- storeErr:
		default:
		}
	}
}

// failedResult translates a typed client error into a terminal failed result
// with a human-readable detail. Raw transport errors never reach the caller.
func failedResult(err error) *GenerationResult {
	var transientErr *TransientProviderError
	if errors.As(err, &transientErr) {
		return &GenerationResult{
			Status:      StatusFailed,
			ErrorDetail: "the model is still loading on the provider's servers, please try again in a few minutes",
			Retryable:   true,
			kind:        failKindProvider,
		}
	}

	var rateErr *RateLimitError
	if errors.As(err, &rateErr) {
		return &GenerationResult{
			Status:      StatusFailed,
			ErrorDetail: "the provider's rate limit was reached, please wait before generating again",
			kind:        failKindRateLimit,
		}
	}

	var confErr *ConfigurationError
	if errors.As(err, &confErr) {
		return &GenerationResult{
			Status:      StatusFailed,
			ErrorDetail: confErr.Error(),
			kind:        failKindConfiguration,
		}
	}

	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return &GenerationResult{
			Status:      StatusFailed,
			ErrorDetail: fmt.Sprintf("video generation failed: %s", provErr.Detail),
			kind:        failKindProvider,
		}
	}

	log.Printf("❌ [Generate] Provider call failed: %v", err)
	return &GenerationResult{
		Status:      StatusFailed,
		ErrorDetail: "video generation failed: could not reach the provider",
		Retryable:   true,
		kind:        failKindProvider,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
