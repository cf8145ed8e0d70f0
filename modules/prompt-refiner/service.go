package promptrefiner

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"github.com/DineshDk431/AI-Video-Generator/modules/common/config"
	geminiretry "github.com/DineshDk431/AI-Video-Generator/modules/common/gemini"
)

const systemPrompt = `You are an expert at creating prompts for AI video generation.
Your task is to enhance prompts to create stunning, high-definition videos.
Output a single, highly detailed paragraph focusing on:
- Visual specs: 4k, photorealistic, cinematic lighting, sharp focus
- Camera movement: steady cam, slow pan, zoom, tracking shot
- Atmosphere: detailed background, specific mood, lighting effects
- Action: clear movement description
Keep it under 75 words. Return ONLY the refined prompt.`

// Service refines raw user prompts with Gemini. Without a configured API key
// it degrades to returning the prompt unchanged.
type Service struct {
	apiKey string
	model  string
}

func NewService(cfg *config.Config) *Service {
	if !cfg.RefinerConfigured() {
		log.Println("⚠️  [Refiner] GEMINI_API_KEY not configured, refiner runs in passthrough mode")
	}

	return &Service{
		apiKey: cfg.GeminiAPIKey,
		model:  cfg.GeminiModel,
	}
}

// Available reports whether Gemini refinement is configured.
func (s *Service) Available() bool {
	return s.apiKey != ""
}

// Refine enhances a prompt for video generation. Errors and missing
// configuration both fall back to the original prompt; refinement is an
// optional quality boost, never a gate.
func (s *Service) Refine(ctx context.Context, req *RefineRequest) *RefineResponse {
	if !s.Available() {
		return &RefineResponse{RefinedPrompt: req.Prompt, Source: "passthrough"}
	}

	style := req.Style
	if style == "" {
		style = "cinematic"
	}

	var userMessage string
	if req.Feedback != "" {
		userMessage = fmt.Sprintf("Original prompt: %q\nUser feedback: %q\nStyle: %s\n\nRefine this prompt incorporating the feedback. Return ONLY the refined prompt, nothing else.",
			req.Prompt, req.Feedback, style)
	} else {
		userMessage = fmt.Sprintf("Original prompt: %q\nStyle: %s\n\nRefine this prompt. Return ONLY the refined prompt, nothing else.",
			req.Prompt, style)
	}

	content := &genai.Content{
		Parts: []*genai.Part{
			genai.NewPartFromText(systemPrompt + "\n\n" + userMessage),
		},
	}

	log.Printf("✨ [Refiner] Refining prompt (%d chars, style: %s)", len(req.Prompt), style)

	result, err := geminiretry.GenerateContentWithRetry(
		ctx,
		[]string{s.apiKey},
		s.model,
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			Temperature: floatPtr(0.7),
		},
	)
	if err != nil {
		log.Printf("⚠️  [Refiner] Gemini call failed, falling back to original prompt: %v", err)
		return &RefineResponse{RefinedPrompt: req.Prompt, Source: "passthrough", Error: "refinement unavailable"}
	}

	refined := extractText(result)
	if refined == "" {
		return &RefineResponse{RefinedPrompt: req.Prompt, Source: "passthrough", Error: "empty refinement"}
	}

	log.Printf("✅ [Refiner] Prompt refined: %d -> %d chars", len(req.Prompt), len(refined))
	return &RefineResponse{RefinedPrompt: refined, Source: "gemini"}
}

func extractText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 {
		return ""
	}

	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				return strings.TrimSpace(part.Text)
			}
		}
	}
	return ""
}

func floatPtr(f float64) *float32 {
	f32 := float32(f)
	return &f32
}
