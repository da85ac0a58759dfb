package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at process start.
// Credentials are optional; an absent key swaps the affected module client
// for its canned-data stand-in, nothing else.
type Config struct {
	Env        string
	ListenAddr string

	PageSpeedAPIKey string
	GeminiAPIKey    string
	BingAPIKey      string
	ApifyAPIToken   string
	GSCAccessToken  string

	CORSOrigins   []string
	Debug         bool
	ModuleTimeout time.Duration
}

// Load reads configuration once. A .env file in the working directory is
// honored when present; real environment variables win over it.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:             getenv("APP_ENV", "development"),
		ListenAddr:      getenv("LISTEN_ADDR", ":8080"),
		PageSpeedAPIKey: os.Getenv("PAGESPEED_API_KEY"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		BingAPIKey:      os.Getenv("BING_API_KEY"),
		ApifyAPIToken:   os.Getenv("APIFY_API_TOKEN"),
		GSCAccessToken:  os.Getenv("GSC_ACCESS_TOKEN"),
		CORSOrigins:     splitList(getenv("CORS_ORIGINS", "*")),
		Debug:           getenvBool("DEBUG", false),
		ModuleTimeout:   getenvDuration("MODULE_TIMEOUT", 60*time.Second),
	}
}

// ConfiguredAPIs reports which upstream credentials are present, for the
// health and root endpoints.
func (c Config) ConfiguredAPIs() map[string]bool {
	return map[string]bool{
		"pagespeed": c.PageSpeedAPIKey != "",
		"gemini":    c.GeminiAPIKey != "",
		"bing":      c.BingAPIKey != "",
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
