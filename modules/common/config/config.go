package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting the server uses.
type Config struct {
	// Hugging Face Inference API
	HFToken  string
	HFAPIURL string
	HFModel  string

	// Supabase (history documents + video storage)
	SupabaseURL            string
	SupabaseServiceKey     string
	SupabaseStorageBaseURL string

	// Gemini (prompt refiner)
	GeminiAPIKey string
	GeminiModel  string

	// Redis (job queue, search history)
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
	RedisUseTLS   bool

	// Server
	Port string

	// Local fallback directory for generated videos
	OutputDir string
}

// LoadConfig reads .env (if present) and the environment. Missing provider or
// store credentials are reported as warnings, not errors: the matching
// component starts in an "unavailable" state instead of killing the process.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	}

	useTLS := false
	if tlsStr := os.Getenv("REDIS_USE_TLS"); tlsStr != "" {
		if parsed, err := strconv.ParseBool(tlsStr); err == nil {
			useTLS = parsed
		}
	}

	// HUGGINGFACE_TOKEN is accepted as a fallback name for HF_TOKEN
	hfToken := os.Getenv("HF_TOKEN")
	if hfToken == "" {
		hfToken = os.Getenv("HUGGINGFACE_TOKEN")
	}

	cfg := &Config{
		HFToken:  hfToken,
		HFAPIURL: getEnv("HF_API_URL", "https://api-inference.huggingface.co"),
		HFModel:  getEnv("HF_MODEL", "damo-vilab/text-to-video-ms-1.7b"),

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey:     getEnv("SUPABASE_SERVICE_KEY", ""),
		SupabaseStorageBaseURL: getEnv("SUPABASE_STORAGE_BASE_URL", ""),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisUsername: getEnv("REDIS_USERNAME", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisUseTLS:   useTLS,

		Port: getEnv("PORT", "8080"),

		OutputDir: getEnv("OUTPUT_DIR", "outputs"),
	}

	log.Println("✅ Configuration loaded")
	log.Printf("   HF model: %s (token configured: %v)", cfg.HFModel, cfg.HFToken != "")
	log.Printf("   Supabase: %s (configured: %v)", cfg.SupabaseURL, cfg.HistoryConfigured())
	log.Printf("   Redis: %s (TLS: %v)", cfg.GetRedisAddr(), cfg.RedisUseTLS)
	log.Printf("   Gemini refiner configured: %v", cfg.RefinerConfigured())

	if !cfg.InferenceConfigured() {
		log.Println("⚠️  HF_TOKEN missing - video generation will report unavailable")
	}
	if !cfg.HistoryConfigured() {
		log.Println("⚠️  SUPABASE_URL/SUPABASE_SERVICE_KEY missing - history will report unavailable")
	}

	return cfg, nil
}

// InferenceConfigured reports whether the remote inference client has credentials.
func (c *Config) InferenceConfigured() bool {
	return c.HFToken != ""
}

// HistoryConfigured reports whether the Supabase history store has credentials.
func (c *Config) HistoryConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseServiceKey != ""
}

// RefinerConfigured reports whether the Gemini prompt refiner has credentials.
func (c *Config) RefinerConfigured() bool {
	return c.GeminiAPIKey != ""
}

// GetRedisAddr builds the Redis connection address.
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
