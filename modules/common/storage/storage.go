package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/DineshDk431/AI-Video-Generator/modules/common/config"
)

const bucket = "videos"

// Client stores generated video artifacts. Uploads go to Supabase Storage;
// when that is not configured or the upload fails, the bytes land in a local
// output directory so a generated video is never dropped.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// SaveVideo persists the payload and returns an opaque handle: a public
// storage URL on upload success, a local file path otherwise.
func (c *Client) SaveVideo(ctx context.Context, data []byte, contentType string) (string, error) {
	fileName := fmt.Sprintf("hf_video_%d_%d.mp4", time.Now().Unix(), rand.Intn(999999))

	if c.cfg.HistoryConfigured() {
		url, err := c.uploadToSupabase(ctx, fileName, data, contentType)
		if err == nil {
			return url, nil
		}
		log.Printf("⚠️  [Storage] Supabase upload failed, falling back to local file: %v", err)
	}

	return c.saveLocal(fileName, data)
}

func (c *Client) uploadToSupabase(ctx context.Context, fileName string, data []byte, contentType string) (string, error) {
	filePath := fmt.Sprintf("generated-videos/%s", fileName)
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.cfg.SupabaseURL, bucket, filePath)

	log.Printf("📤 [Storage] Uploading video to storage: %s (%d bytes)", filePath, len(data))

	req, err := http.NewRequestWithContext(ctx, "POST", uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.SupabaseServiceKey)
	if contentType == "" {
		contentType = "video/mp4"
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload video: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(body))
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.cfg.SupabaseURL, bucket, filePath)
	log.Printf("✅ [Storage] Video uploaded: %s", publicURL)
	return publicURL, nil
}

func (c *Client) saveLocal(fileName string, data []byte) (string, error) {
	if err := os.MkdirAll(c.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(c.cfg.OutputDir, fileName)
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write video file: %w", err)
	}

	log.Printf("✅ [Storage] Video saved locally: %s (%d bytes)", outputPath, len(data))
	return outputPath, nil
}
