package solver

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Calibration remaps a source's raw score range onto [0,1]. Raw scores below
// Floor clamp to 0 and above Ceil clamp to 1.
type Calibration struct {
	Floor float32 `json:"floor"`
	Ceil  float32 `json:"ceil"`
}

// Config aggregates the engine's tuning constants. The boost and penalty
// values are empirically chosen and preserved as configuration rather than
// re-derived.
type Config struct {
	// TopK restricts the exact-cover search to the K highest-scoring
	// candidates of the pool.
	TopK int `json:"topK"`
	// MaxCombos is the hard cap on inspected 4-combinations. It bounds
	// worst-case work as an iteration count, not a wall-clock timer.
	MaxCombos int `json:"maxCombos"`

	// SourceWeights scale each source's calibrated score during merging.
	SourceWeights map[string]float32 `json:"sourceWeights"`
	// Calibrations holds the per-source raw score ranges.
	Calibrations map[string]Calibration `json:"calibrations"`

	// PatternBoost is added once when a pattern source proposed the candidate.
	PatternBoost float32 `json:"patternBoost"`
	// AgreementBoost is added when two or more independent sources agree.
	AgreementBoost float32 `json:"agreementBoost"`
	// WordplayBoost is added when the caller flags the candidate as matching
	// a detected linguistic pattern.
	WordplayBoost float32 `json:"wordplayBoost"`
	// OverlapPenalty multiplies both candidates of a pair sharing two or
	// more items. Applied once per unordered pair.
	OverlapPenalty float32 `json:"overlapPenalty"`

	// DiversityBonus multiplies the composite score when a combination spans
	// three or more distinct category types.
	DiversityBonus float32 `json:"diversityBonus"`
	// ValidationWeight scales the mean secondary validation score added to
	// the composite score.
	ValidationWeight float32 `json:"validationWeight"`

	// FitThreshold is the minimum fit score for assigning an orphaned token
	// to an under-full group during conflict resolution.
	FitThreshold float32 `json:"fitThreshold"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		TopK:      20,
		MaxCombos: 5000,
		SourceWeights: map[string]float32{
			SourceEmbeddings: 0.4,
			SourcePattern:    0.5,
			SourceLLM:        0.6,
		},
		Calibrations: map[string]Calibration{
			SourceEmbeddings: {Floor: 0.2, Ceil: 0.9},
		},
		PatternBoost:     0.15,
		AgreementBoost:   0.3,
		WordplayBoost:    0.1,
		OverlapPenalty:   0.7,
		DiversityBonus:   1.1,
		ValidationWeight: 0.2,
		FitThreshold:     0.3,
	}
}

// ApplyDefaults populates zero values with the engine defaults and clamps
// out-of-range settings.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()
	if c.TopK <= 0 {
		c.TopK = def.TopK
	}
	if c.MaxCombos <= 0 {
		// A zero search budget is still expressible per call; the config
		// default only covers the unset case.
		c.MaxCombos = def.MaxCombos
	}
	if len(c.SourceWeights) == 0 {
		c.SourceWeights = def.SourceWeights
	}
	if c.Calibrations == nil {
		c.Calibrations = def.Calibrations
	}
	if c.PatternBoost == 0 {
		c.PatternBoost = def.PatternBoost
	}
	if c.AgreementBoost == 0 {
		c.AgreementBoost = def.AgreementBoost
	}
	if c.WordplayBoost == 0 {
		c.WordplayBoost = def.WordplayBoost
	}
	if c.OverlapPenalty <= 0 || c.OverlapPenalty > 1 {
		c.OverlapPenalty = def.OverlapPenalty
	}
	if c.DiversityBonus < 1 {
		c.DiversityBonus = def.DiversityBonus
	}
	if c.ValidationWeight == 0 {
		c.ValidationWeight = def.ValidationWeight
	}
	if c.FitThreshold <= 0 {
		c.FitThreshold = def.FitThreshold
	}
}

// Clone creates a deep copy so callers can mutate safely.
func (c Config) Clone() Config {
	buf, _ := json.Marshal(c)
	var out Config
	_ = json.Unmarshal(buf, &out)
	return out
}

// weight returns the merge weight for a source, defaulting to the LLM weight
// for unknown sources.
func (c *Config) weight(source string) float32 {
	if w, ok := c.SourceWeights[source]; ok {
		return w
	}
	return 0.5
}

// calibrate remaps a raw score using the source's calibration range.
func (c *Config) calibrate(score float32, source string) float32 {
	cal, ok := c.Calibrations[source]
	if !ok || cal.Ceil <= cal.Floor {
		return clamp01(score)
	}
	return clamp01((score - cal.Floor) / (cal.Ceil - cal.Floor))
}

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
	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	cfg.ApplyDefaults()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
