package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"HF_TOKEN", "HUGGINGFACE_TOKEN", "HF_API_URL", "HF_MODEL",
		"SUPABASE_URL", "SUPABASE_SERVICE_KEY", "GEMINI_API_KEY",
		"REDIS_HOST", "REDIS_PORT", "PORT", "OUTPUT_DIR",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("missing credentials must not fail loading: %v", err)
	}

	if cfg.HFAPIURL != "https://api-inference.huggingface.co" {
		t.Errorf("unexpected default API URL: %s", cfg.HFAPIURL)
	}
	if cfg.HFModel != "damo-vilab/text-to-video-ms-1.7b" {
		t.Errorf("unexpected default model: %s", cfg.HFModel)
	}
	if cfg.Port != "8080" {
		t.Errorf("unexpected default port: %s", cfg.Port)
	}
	if cfg.OutputDir != "outputs" {
		t.Errorf("unexpected default output dir: %s", cfg.OutputDir)
	}

	if cfg.InferenceConfigured() {
		t.Error("inference should be unconfigured without a token")
	}
	if cfg.HistoryConfigured() {
		t.Error("history should be unconfigured without Supabase credentials")
	}
	if cfg.RefinerConfigured() {
		t.Error("refiner should be unconfigured without a Gemini key")
	}
}

func TestLoadConfigTokenFallback(t *testing.T) {
	t.Setenv("HF_TOKEN", "")
	t.Setenv("HUGGINGFACE_TOKEN", "hf_legacy")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HFToken != "hf_legacy" {
		t.Errorf("HUGGINGFACE_TOKEN fallback not applied: %q", cfg.HFToken)
	}
	if !cfg.InferenceConfigured() {
		t.Error("inference should be configured via the fallback token")
	}
}

func TestGetRedisAddr(t *testing.T) {
	cfg := &Config{RedisHost: "redis.internal", RedisPort: "6380"}
	if got := cfg.GetRedisAddr(); got != "redis.internal:6380" {
		t.Errorf("unexpected address: %s", got)
	}
}
