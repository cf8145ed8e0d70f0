package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/DineshDk431/AI-Video-Generator/modules/common/config"
	generatevideo "github.com/DineshDk431/AI-Video-Generator/modules/generate-video"
)

// Client calls the Hugging Face Inference API for text-to-video generation.
// It keeps no state between calls; the loading-retry loop is its only
// suspension point.
type Client struct {
	apiURL     string
	model      string
	token      string
	policy     RetryPolicy
	httpClient *http.Client
}

// NewClient builds a client from configuration. A missing token does not
// fail construction; the client reports unavailable instead.
func NewClient(cfg *config.Config, policy RetryPolicy) *Client {
	if cfg.HFToken == "" {
		log.Println("⚠️  [HuggingFace] HF_TOKEN not configured, client starts unavailable")
	}

	return &Client{
		apiURL: cfg.HFAPIURL,
		model:  cfg.HFModel,
		token:  cfg.HFToken,
		policy: policy,
		httpClient: &http.Client{
			Timeout: 300 * time.Second, // video generation is slow
		},
	}
}

// Available reports whether the client has credentials to call the provider.
func (c *Client) Available() bool {
	return c.token != ""
}

// Ping probes the provider's model status endpoint.
func (c *Client) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/status/%s", c.apiURL, c.model)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider status check returned %d", resp.StatusCode)
	}
	return nil
}

// Generate sends one generation request and blocks until the provider returns
// a video payload or a terminal error. 503 loading responses are retried with
// bounded backoff per the client's policy; 429 surfaces immediately as a rate
// limit error.
func (c *Client) Generate(ctx context.Context, req *generatevideo.GenerationRequest, progress func(string)) (*generatevideo.ProviderVideo, error) {
	if c.token == "" {
		return nil, &generatevideo.ConfigurationError{Component: "inference client", Missing: "HF_TOKEN"}
	}

	preset := req.Preset()

	payload := inferencePayload{
		Inputs: EnhancePrompt(req.Prompt, req.Style),
		Parameters: inferenceParameters{
			NumFrames:         minInt(req.FrameCount, ProviderFrameLimit),
			NumInferenceSteps: minInt(preset.Steps, ProviderStepLimit),
			Height:            minInt(preset.Height, ProviderSizeLimit),
			Width:             minInt(preset.Width, ProviderSizeLimit),
			NegativePrompt:    DefaultNegativePrompt,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", c.apiURL, c.model)

	report(progress, "Sending request to the inference provider...")

	for attempt := 0; ; attempt++ {
		resp, err := c.post(ctx, url, body)
		if err != nil {
			return nil, fmt.Errorf("provider request failed: %w", err)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("failed to read provider response: %w", readErr)
		}

		switch resp.StatusCode {
		case http.StatusOK:
			contentType := resp.Header.Get("Content-Type")
			if contentType == "" {
				contentType = "video/mp4"
			}
			log.Printf("✅ [HuggingFace] Video payload received: %d bytes", len(respBody))
			return &generatevideo.ProviderVideo{
				Data:        respBody,
				ContentType: contentType,
				Model:       c.model,
			}, nil

		case http.StatusServiceUnavailable:
			// Model cold start. Retry with the provider's estimate when
			// it gives one, otherwise exponential backoff.
			wait, detail := c.loadingWait(respBody, attempt)
			if attempt >= c.policy.MaxRetries {
				log.Printf("❌ [HuggingFace] Retry ceiling reached after %d attempts", attempt+1)
				return nil, &generatevideo.TransientProviderError{
					Detail:        detail,
					EstimatedWait: wait,
				}
			}

			report(progress, fmt.Sprintf("Model loading on provider servers... (retry %d/%d)", attempt+1, c.policy.MaxRetries))
			log.Printf("⏳ [HuggingFace] Model loading, retry %d/%d in %v", attempt+1, c.policy.MaxRetries, wait)

			if err := sleepCtx(ctx, wait); err != nil {
				return nil, err
			}

		case http.StatusTooManyRequests:
			log.Printf("❌ [HuggingFace] Rate limited: %s", truncateBody(respBody))
			return nil, &generatevideo.RateLimitError{Detail: truncateBody(respBody)}

		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, &generatevideo.ConfigurationError{Component: "inference client", Missing: "a valid HF_TOKEN"}

		default:
			log.Printf("❌ [HuggingFace] Provider error: status=%d, body=%s", resp.StatusCode, truncateBody(respBody))
			return nil, &generatevideo.ProviderError{
				StatusCode: resp.StatusCode,
				Detail:     truncateBody(respBody),
			}
		}
	}
}

func (c *Client) post(ctx context.Context, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	return c.httpClient.Do(req)
}

// loadingWait derives the next retry delay from a 503 body.
func (c *Client) loadingWait(body []byte, attempt int) (time.Duration, string) {
	detail := "model is loading"

	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		if errResp.Error != "" {
			detail = errResp.Error
		}
		if errResp.EstimatedTime > 0 {
			wait := time.Duration(errResp.EstimatedTime * float64(time.Second))
			if wait > c.policy.MaxDelay {
				wait = c.policy.MaxDelay
			}
			return wait, detail
		}
	}

	wait := c.policy.BaseDelay << uint(attempt)
	if wait > c.policy.MaxDelay || wait <= 0 {
		wait = c.policy.MaxDelay
	}
	return wait, detail
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func report(progress func(string), msg string) {
	if progress != nil {
		progress(msg)
	}
}

func truncateBody(body []byte) string {
	s := string(body)
	if len(s) > 200 {
		return s[:200]
	}
	return s
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
