// Package config provides centralized configuration loaded from environment
// variables, plus the event and result-type registries shared by the API
// server and the CLI.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Event registry — the WCA events the normalizer recognizes
// --------------------------------------------------------------------------

type EventConfig struct {
	ID   string
	Name string
}

var EventRegistry = map[string]EventConfig{
	"333":    {ID: "333", Name: "3x3x3 Cube"},
	"222":    {ID: "222", Name: "2x2x2 Cube"},
	"444":    {ID: "444", Name: "4x4x4 Cube"},
	"555":    {ID: "555", Name: "5x5x5 Cube"},
	"666":    {ID: "666", Name: "6x6x6 Cube"},
	"777":    {ID: "777", Name: "7x7x7 Cube"},
	"333oh":  {ID: "333oh", Name: "3x3 One-Handed"},
	"222bf":  {ID: "222bf", Name: "2x2 Blindfolded"},
	"333bf":  {ID: "333bf", Name: "3x3 Blindfolded"},
	"444bf":  {ID: "444bf", Name: "4x4 Blindfolded"},
	"555bf":  {ID: "555bf", Name: "5x5 Blindfolded"},
	"333fm":  {ID: "333fm", Name: "3x3 Fewest Moves"},
	"333mbf": {ID: "333mbf", Name: "3x3 Multi-Blind"},
	"clock":  {ID: "clock", Name: "Clock"},
	"minx":   {ID: "minx", Name: "Megaminx"},
	"pyram":  {ID: "pyram", Name: "Pyraminx"},
	"skewb":  {ID: "skewb", Name: "Skewb"},
	"sq1":    {ID: "sq1", Name: "Square-1"},
}

// KnownEvent reports whether the event ID is in the registry.
func KnownEvent(id string) bool {
	_, ok := EventRegistry[id]
	return ok
}

// --------------------------------------------------------------------------
// Result-type registry
// --------------------------------------------------------------------------

type ResultTypeConfig struct {
	ID    string
	Label string
}

var ResultTypeRegistry = map[string]ResultTypeConfig{
	"single":  {ID: "single", Label: "Single Best"},
	"average": {ID: "average", Label: "Average"},
	"rank":    {ID: "rank", Label: "Rank (Position)"},
	"wr":      {ID: "wr", Label: "World Rank"},
	"cr":      {ID: "cr", Label: "Continental Rank"},
	"nr":      {ID: "nr", Label: "National Rank"},
	"solves":  {ID: "solves", Label: "All Solves"},
	"worst":   {ID: "worst", Label: "Worst Solve"},
}

// KnownResultType reports whether the result type ID is in the registry.
func KnownResultType(id string) bool {
	_, ok := ResultTypeRegistry[id]
	return ok
}

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting (inbound)
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// WCA upstream
	WCABaseURL           string
	WCASearchURL         string
	WCARequestsPerMinute int
	FetchWorkers         int
	FetchTimeout         time.Duration

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	return &Config{
		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		WCABaseURL:           envOr("WCA_API_BASE_URL", "https://raw.githubusercontent.com/robiningelbrecht/wca-rest-api/master"),
		WCASearchURL:         envOr("WCA_SEARCH_URL", "https://www.worldcubeassociation.org/api/v0/search"),
		WCARequestsPerMinute: envInt("WCA_REQUESTS_PER_MINUTE", 600),
		FetchWorkers:         envInt("FETCH_WORKERS", 8),
		FetchTimeout:         time.Duration(envInt("FETCH_TIMEOUT_SECONDS", 30)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
