package generatevideo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
)

type fakeRecorder struct {
	prompts []string
}

func (f *fakeRecorder) Record(ctx context.Context, prompt string) {
	f.prompts = append(f.prompts, prompt)
}

func newTestRouter(o *Orchestrator, searches SearchRecorder) *mux.Router {
	r := mux.NewRouter()
	NewGenerateVideoHandler(o, searches).RegisterRoutes(r)
	return r
}

func TestHandleGenerateReady(t *testing.T) {
	client := &fakeInferenceClient{
		available: true,
		video:     &ProviderVideo{Data: []byte("mp4"), ContentType: "video/mp4"},
	}
	o := NewOrchestrator(client, &fakeArtifactStore{reference: "outputs/v.mp4"}, &fakeHistoryStore{available: true})
	recorder := &fakeRecorder{}
	router := newTestRouter(o, recorder)

	body := `{"prompt":"a cat riding a bicycle","frame_count":16,"fps":8,"quality_preset":"fast"}`
	req := httptest.NewRequest("POST", "/api/generate", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result GenerationResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if result.Status != StatusReady {
		t.Errorf("expected ready, got %s (%s)", result.Status, result.ErrorDetail)
	}
	if result.VideoReference == "" {
		t.Error("ready result must carry a video reference")
	}
	if len(recorder.prompts) != 1 || recorder.prompts[0] != "a cat riding a bicycle" {
		t.Errorf("prompt was not recorded: %v", recorder.prompts)
	}
}

func TestHandleGenerateValidationFailure(t *testing.T) {
	client := &fakeInferenceClient{available: true}
	o := NewOrchestrator(client, &fakeArtifactStore{}, &fakeHistoryStore{available: true})
	router := newTestRouter(o, nil)

	body := `{"prompt":"","frame_count":16,"fps":8,"quality_preset":"fast"}`
	req := httptest.NewRequest("POST", "/api/generate", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	if client.calls != 0 {
		t.Errorf("provider must not be called, got %d calls", client.calls)
	}
}

func TestHandleGenerateFailureStatusCodes(t *testing.T) {
	validBody := `{"prompt":"a cat riding a bicycle","frame_count":16,"fps":8,"quality_preset":"fast"}`

	cases := []struct {
		name   string
		client *fakeInferenceClient
		want   int
	}{
		{
			name:   "rate limited",
			client: &fakeInferenceClient{available: true, err: &RateLimitError{Detail: "quota"}},
			want:   http.StatusTooManyRequests,
		},
		{
			name:   "model loading exhausted",
			client: &fakeInferenceClient{available: true, err: &TransientProviderError{Detail: "loading"}},
			want:   http.StatusBadGateway,
		},
		{
			name:   "provider error",
			client: &fakeInferenceClient{available: true, err: &ProviderError{StatusCode: 500, Detail: "boom"}},
			want:   http.StatusBadGateway,
		},
		{
			name:   "transport failure",
			client: &fakeInferenceClient{available: true, err: context.DeadlineExceeded},
			want:   http.StatusBadGateway,
		},
		{
			name:   "client unavailable",
			client: &fakeInferenceClient{available: false},
			want:   http.StatusServiceUnavailable,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := NewOrchestrator(tc.client, &fakeArtifactStore{}, &fakeHistoryStore{available: true})
			router := newTestRouter(o, nil)

			req := httptest.NewRequest("POST", "/api/generate", strings.NewReader(validBody))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Errorf("expected %d, got %d: %s", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestHandleGenerateInvalidBody(t *testing.T) {
	o := NewOrchestrator(&fakeInferenceClient{available: true}, &fakeArtifactStore{}, &fakeHistoryStore{})
	router := newTestRouter(o, nil)

	req := httptest.NewRequest("POST", "/api/generate", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleStatus(t *testing.T) {
	o := NewOrchestrator(&fakeInferenceClient{available: false}, &fakeArtifactStore{}, &fakeHistoryStore{})
	router := newTestRouter(o, nil)

	req := httptest.NewRequest("GET", "/api/generate/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var status map[string]bool
	if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if status["available"] {
		t.Error("status should report unavailable without a token")
	}
}

func TestHandleListHistory(t *testing.T) {
	history := &fakeHistoryStore{
		available: true,
		entries: []HistoryEntry{
			{ID: "2", Prompt: "newer", CreatedAt: time.Now()},
			{ID: "1", Prompt: "older", CreatedAt: time.Now().Add(-time.Hour)},
		},
	}
	o := NewOrchestrator(&fakeInferenceClient{available: true}, &fakeArtifactStore{}, history)
	router := newTestRouter(o, nil)

	req := httptest.NewRequest("GET", "/api/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Entries []HistoryEntry `json:"entries"`
		Count   int            `json:"count"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Count != 2 || len(resp.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", resp.Count)
	}
	if resp.Entries[0].Prompt != "newer" {
		t.Errorf("entries should be most recent first, got %q", resp.Entries[0].Prompt)
	}
}

func TestHandleListHistoryUnavailable(t *testing.T) {
	o := NewOrchestrator(&fakeInferenceClient{available: true}, &fakeArtifactStore{}, &fakeHistoryStore{available: false})
	router := newTestRouter(o, nil)

	req := httptest.NewRequest("GET", "/api/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when store is unconfigured, got %d", w.Code)
	}
}
