package database

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/DineshDk431/AI-Video-Generator/modules/common/config"
	generatevideo "github.com/DineshDk431/AI-Video-Generator/modules/generate-video"
)

func stubClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(&config.Config{
		SupabaseURL:        server.URL,
		SupabaseServiceKey: "service-key",
	})
	if !client.Available() {
		t.Fatal("client should be available with credentials")
	}
	return client, server
}

func TestListOrdersByCreatedAtDescending(t *testing.T) {
	var gotPath string
	var gotQuery url.Values

	client, _ := stubClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Range", "0-1/2")
		w.Write([]byte(`[
			{"id":"2","prompt":"newer","frame_count":16,"fps":8,"quality_preset":"fast","video_reference":"outputs/b.mp4","created_at":"2026-08-30T12:00:00Z"},
			{"id":"1","prompt":"older","frame_count":16,"fps":8,"quality_preset":"fast","video_reference":"outputs/a.mp4","created_at":"2026-08-29T12:00:00Z"}
		]`))
	})

	entries, err := client.List(context.Background(), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasSuffix(gotPath, "/"+historyTable) {
		t.Errorf("expected query against %s, got path %s", historyTable, gotPath)
	}
	if order := gotQuery.Get("order"); !strings.Contains(order, "created_at.desc") {
		t.Errorf("list must request created_at descending, got order=%q", order)
	}
	if limit := gotQuery.Get("limit"); limit != "50" {
		t.Errorf("expected limit=50, got %q", limit)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Prompt != "newer" || entries[1].Prompt != "older" {
		t.Errorf("response order lost in decoding: %+v", entries)
	}
	if !entries[0].CreatedAt.After(entries[1].CreatedAt) {
		t.Errorf("first entry should be the most recent, got %v then %v", entries[0].CreatedAt, entries[1].CreatedAt)
	}
}

func TestAppendInsertsHistoryRow(t *testing.T) {
	var gotPath, gotAuth string
	var gotRow map[string]interface{}

	client, _ := stubClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotRow)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[]`))
	})

	entry := &generatevideo.HistoryEntry{
		Prompt:         "a cat riding a bicycle",
		FrameCount:     16,
		FPS:            8,
		QualityPreset:  "fast",
		VideoReference: "outputs/v.mp4",
	}

	if err := client.Append(context.Background(), entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasSuffix(gotPath, "/"+historyTable) {
		t.Errorf("expected insert into %s, got path %s", historyTable, gotPath)
	}
	if gotAuth != "Bearer service-key" {
		t.Errorf("missing service key auth: %q", gotAuth)
	}
	if entry.ID == "" {
		t.Error("append should assign an id")
	}
	if entry.CreatedAt.IsZero() {
		t.Error("append should stamp created_at")
	}
	if gotRow["prompt"] != "a cat riding a bicycle" || gotRow["video_reference"] != "outputs/v.mp4" {
		t.Errorf("row fields lost on insert: %+v", gotRow)
	}
	if gotRow["created_at"] == "" || gotRow["created_at"] == nil {
		t.Errorf("created_at missing from insert: %+v", gotRow)
	}
}

func TestUnconfiguredClientRefusesCalls(t *testing.T) {
	client := NewClient(&config.Config{})

	if client.Available() {
		t.Error("client without credentials should report unavailable")
	}
	if _, err := client.List(context.Background(), 10); err == nil {
		t.Error("list on an unconfigured store should fail")
	}
	if err := client.Append(context.Background(), &generatevideo.HistoryEntry{Prompt: "x"}); err == nil {
		t.Error("append on an unconfigured store should fail")
	}
}
