package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds the complete runtime configuration.
type Config struct {
	Engine      EngineConfig      `yaml:"engine" json:"engine"`
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// EngineConfig selects and configures the linguistic-analysis engine.
type EngineConfig struct {
	// Provider name: "rule" (default, built-in), "spacy" (REST sidecar), "openai"
	Provider string `yaml:"provider" json:"provider"`

	// BaseURL for the spacy sidecar or a custom OpenAI-compatible endpoint
	BaseURL string `yaml:"base_url,omitempty" json:"base_url,omitempty"`

	// Model name for the openai provider
	Model string `yaml:"model,omitempty" json:"model,omitempty"`

	// APIKey for the openai provider (prefer OPENAI_API_KEY env var)
	APIKey string `yaml:"-" json:"-"`

	// Timeout per engine request, in seconds
	Timeout int `yaml:"timeout" json:"timeout"`
}

// HTTPConfig configures fetching for the scan input mode.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls" json:"insecure_tls"`
}

// CacheConfig configures the parse-result cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// ConcurrencyConfig configures batch processing.
type ConcurrencyConfig struct {
	BatchWorkers      int     `yaml:"batch_workers" json:"batch_workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int     `yaml:"burst" json:"burst"`
}

// OutputConfig configures report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Provider: "rule",
			Timeout:  30,
		},
		HTTP: HTTPConfig{
			Timeout:      2 * time.Minute,
			UserAgent:    "Reqsift/0.1 (+https://github.com/reqsift/reqsift)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers:      4,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".reqsift-cache"
	}
	return filepath.Join(home, ".reqsift", "cache")
}
