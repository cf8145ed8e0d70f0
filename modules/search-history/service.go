package searchhistory

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	searchesKey = "searches:recent"
	maxSearches = 100
)

// SearchEntry is one recorded prompt submission.
type SearchEntry struct {
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"created_at"`
}

// Service keeps the most recent submitted prompts in a Redis list. With no
// Redis connection every operation is a silent no-op.
type Service struct {
	rdb *redis.Client
}

func NewService(rdb *redis.Client) *Service {
	if rdb == nil {
		log.Println("⚠️  [Searches] Redis unavailable, search history disabled")
	}
	return &Service{rdb: rdb}
}

// Available reports whether search history is backed by Redis.
func (s *Service) Available() bool {
	return s.rdb != nil
}

// Record stores one submitted prompt, newest first, trimmed to the cap.
// Best effort: failures are logged and dropped.
func (s *Service) Record(ctx context.Context, prompt string) {
	if !s.Available() {
		return
	}

	entry := SearchEntry{Prompt: prompt, CreatedAt: time.Now().UTC()}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	pipe := s.rdb.Pipeline()
	pipe.LPush(ctx, searchesKey, data)
	pipe.LTrim(ctx, searchesKey, 0, maxSearches-1)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("⚠️  [Searches] Failed to record search: %v", err)
	}
}

// Recent returns up to limit recorded prompts, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]SearchEntry, error) {
	if !s.Available() {
		return []SearchEntry{}, nil
	}

	if limit <= 0 || limit > maxSearches {
		limit = 50
	}

	raw, err := s.rdb.LRange(ctx, searchesKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]SearchEntry, 0, len(raw))
	for _, item := range raw {
		var entry SearchEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue // skip unparseable entries
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Clear drops the whole search history.
func (s *Service) Clear(ctx context.Context) error {
	if !s.Available() {
		return nil
	}
	return s.rdb.Del(ctx, searchesKey).Err()
}
