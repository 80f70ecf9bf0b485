package embed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Embedder is the surface the generators and the solver need: vectors for
// puzzle tokens.
type Embedder interface {
	EmbedToken(ctx context.Context, token string) ([]float32, error)
	EmbedTokens(ctx context.Context, tokens []string) ([][]float32, error)
	ModelID() string
	Close() error
}

// Config wires an ONNX-backed embedder: model location plus an optional disk
// cache directory.
type Config struct {
	LibraryPath   string `json:"libraryPath"`
	ModelPath     string `json:"modelPath"`
	TokenizerPath string `json:"tokenizerPath"`
	ModelID       string `json:"modelID"`
	CacheDir      string `json:"cacheDir"`
	MaxSeqLen     int    `json:"maxSeqLen"`
}

// OrtEmbedder runs a local ONNX sentence-transformer with memory and disk
// caching keyed on the model identity.
type OrtEmbedder struct {
	enc   *Encoder
	cache *vectorCache
	id    string
}

// NewOrtEmbedder initializes the encoder and prepares the cache directory.
func NewOrtEmbedder(cfg Config) (*OrtEmbedder, error) {
	if cfg.ModelID == "" && cfg.ModelPath != "" {
		cfg.ModelID = filepath.Base(cfg.ModelPath)
	}
	if cfg.CacheDir != "" {
		if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}
	enc, err := NewEncoder(EncoderConfig{
		LibraryPath:   cfg.LibraryPath,
		ModelPath:     cfg.ModelPath,
		TokenizerPath: cfg.TokenizerPath,
		MaxSeqLen:     cfg.MaxSeqLen,
	})
	if err != nil {
		return nil, err
	}
	return &OrtEmbedder{
		enc:   enc,
		cache: newVectorCache(cfg.CacheDir, cfg.ModelID),
		id:    cfg.ModelID,
	}, nil
}

// ModelID returns the identifier used for cache keys.
func (o *OrtEmbedder) ModelID() string { return o.id }

// Close releases the underlying inference session.
func (o *OrtEmbedder) Close() error {
	if o == nil || o.enc == nil {
		return nil
	}
	err := o.enc.Close()
	o.enc = nil
	return err
}

// EmbedToken embeds one token, consulting the memory cache, then the disk
// cache, then the model. Tokens are embedded in lowercase so the cache is
// insensitive to the puzzle's presentation casing.
func (o *OrtEmbedder) EmbedToken(ctx context.Context, token string) ([]float32, error) {
	if o == nil || o.enc == nil {
		return nil, errors.New("embed: embedder is not initialized")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text := strings.ToLower(strings.Join(strings.Fields(token), " "))
	key := o.cache.key(text)

	if vec, ok := o.cache.get(key); ok {
		return vec, nil
	}
	if vec, ok, err := o.cache.load(key); err == nil && ok {
		o.cache.put(key, vec)
		return cloneVector(vec), nil
	}
	vec, err := o.enc.Encode(text)
	if err != nil {
		return nil, err
	}
	o.cache.put(key, vec)
	_ = o.cache.save(key, vec)
	return cloneVector(vec), nil
}

// EmbedTokens embeds a slice of tokens sequentially.
func (o *OrtEmbedder) EmbedTokens(ctx context.Context, tokens []string) ([][]float32, error) {
	out := make([][]float32, len(tokens))
	for i, tok := range tokens {
		vec, err := o.EmbedToken(ctx, tok)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}
