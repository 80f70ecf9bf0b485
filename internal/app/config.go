package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bk-kiran/NYTimesConnectionsSolver/embed"
	"github.com/bk-kiran/NYTimesConnectionsSolver/solver"
)

// LLMSettings is the persisted slice of the language model configuration.
// The API key itself comes from the environment, never from the file.
type LLMSettings struct {
	Enabled     bool    `json:"enabled"`
	BaseURL     string  `json:"baseURL"`
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
	TimeoutSec  int     `json:"timeoutSec"`
	MaxRetries  int     `json:"maxRetries"`
}

// FetcherSettings configures the puzzle API client.
type FetcherSettings struct {
	BaseURL    string `json:"baseURL"`
	TimeoutSec int    `json:"timeoutSec"`
	MaxRetries int    `json:"maxRetries"`
}

// Config aggregates every layer's configuration into one JSON document.
type Config struct {
	Solver   solver.Config   `json:"solver"`
	Embedder embed.Config    `json:"embedder"`
	LLM      LLMSettings     `json:"llm"`
	Fetcher  FetcherSettings `json:"fetcher"`
}

// DefaultConfig returns the application defaults.
func DefaultConfig() Config {
	return Config{
		Solver: solver.DefaultConfig(),
		Embedder: embed.Config{
			CacheDir:  "cache",
			MaxSeqLen: 64,
		},
		LLM: LLMSettings{
			Enabled:     true,
			Model:       "gpt-4-turbo-preview",
			Temperature: 0.3,
			MaxTokens:   2000,
			TimeoutSec:  60,
			MaxRetries:  3,
		},
		Fetcher: FetcherSettings{
			TimeoutSec: 30,
			MaxRetries: 3,
		},
	}
}

// ApplyDefaults fills zero values in every section.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()
	c.Solver.ApplyDefaults()
	if c.Embedder.MaxSeqLen <= 0 {
		c.Embedder.MaxSeqLen = def.Embedder.MaxSeqLen
	}
	if c.LLM.Model == "" {
		c.LLM.Model = def.LLM.Model
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = def.LLM.Temperature
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = def.LLM.MaxTokens
	}
	if c.LLM.TimeoutSec <= 0 {
		c.LLM.TimeoutSec = def.LLM.TimeoutSec
	}
	if c.LLM.MaxRetries <= 0 {
		c.LLM.MaxRetries = def.LLM.MaxRetries
	}
	if c.Fetcher.TimeoutSec <= 0 {
		c.Fetcher.TimeoutSec = def.Fetcher.TimeoutSec
	}
	if c.Fetcher.MaxRetries <= 0 {
		c.Fetcher.MaxRetries = def.Fetcher.MaxRetries
	}
}

// Timeout converts the persisted seconds into a duration.
func (s LLMSettings) Timeout() time.Duration { return time.Duration(s.TimeoutSec) * time.Second }

// Timeout converts the persisted seconds into a duration.
func (s FetcherSettings) Timeout() time.Duration { return time.Duration(s.TimeoutSec) * time.Second }

const defaultConfigFile = "config.json"

// LoadConfig loads configuration from the given path or the default
// config.json. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// SaveConfig persists configuration to disk.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = defaultConfigFile
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	cfg.ApplyDefaults()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
