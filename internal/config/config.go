package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	APIPort            string
	BackendAPIKey      string // API key for authenticating requests (empty = no auth, dev mode)
	CorsAllowedOrigins string // Comma-separated allowed origins (empty = *, dev mode)

	// Workspaces
	TempDir         string
	MaxWorkspaceAge time.Duration
	SweepInterval   time.Duration

	// Gemini (primary story backend)
	GeminiKey string

	// Groq (fallback story backend)
	GroqKey   string
	GroqModel string

	// ElevenLabs (preferred TTS provider — Google Translate TTS is the keyless fallback)
	ElevenLabsKey     string
	ElevenLabsVoiceID string
}

// Load reads configuration from the environment. No key is required:
// missing AI backends degrade the affected endpoints instead of aborting
// startup.
func Load() *Config {
	// Load .env file if it exists (ignore error in production)
	_ = godotenv.Load()

	return &Config{
		APIPort:            getEnv("PORT", "8000"),
		BackendAPIKey:      getEnv("BACKEND_API_KEY", ""),
		CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", ""),
		TempDir:            getEnv("TEMP_DIR", "/tmp/kathachitra"),
		MaxWorkspaceAge:    getEnvDuration("MAX_WORKSPACE_AGE_SECONDS", 300),
		SweepInterval:      getEnvDuration("SWEEP_INTERVAL_SECONDS", 300),
		GeminiKey:          getEnv("GEMINI_API_KEY", ""),
		GroqKey:            getEnv("GROQ_API_KEY", ""),
		GroqModel:          getEnv("GROQ_MODEL", ""),
		ElevenLabsKey:      getEnv("ELEVENLABS_API_KEY", ""),
		ElevenLabsVoiceID:  getEnv("ELEVENLABS_VOICE_ID", ""),
	}
}

// Supported cultures, languages, and themes exposed by the catalog
// endpoints and echoed by /health.

var SupportedCultures = []string{
	"Bengali", "Hindi", "Tamil", "Japanese", "Chinese",
	"Korean", "African", "Norse", "Greek", "Egyptian",
	"Celtic", "Native American", "Mayan", "Persian", "Arabic",
	"Russian", "Irish", "Scottish", "Vietnamese", "Thai",
}

var SupportedLanguages = []string{
	"English", "Hindi", "Bengali", "Tamil", "Telugu", "Kannada", "Punjabi",
	"Spanish", "French", "German", "Italian", "Portuguese", "Dutch", "Russian",
}

var StoryThemes = []string{
	"myth", "folklore", "legend", "moral tale",
	"creation story", "hero journey", "love story",
	"wisdom tale", "trickster tale", "nature spirit",
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil && i > 0 {
			return time.Duration(i) * time.Second
		}
	}
	return time.Duration(defaultSeconds) * time.Second
}
