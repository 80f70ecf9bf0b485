package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/bk-kiran/NYTimesConnectionsSolver/solver"
	"github.com/bk-kiran/NYTimesConnectionsSolver/wordplay"
)

// LLMConfig configures the chat-completions client.
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
	MaxRetries  int
}

// DefaultLLMConfig returns sensible defaults for an OpenAI-compatible
// endpoint.
func DefaultLLMConfig(apiKey string) LLMConfig {
	return LLMConfig{
		APIKey:      apiKey,
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-4-turbo-preview",
		Temperature: 0.3,
		MaxTokens:   2000,
		Timeout:     60 * time.Second,
		MaxRetries:  3,
	}
}

// LLMGenerator asks a chat model for a full 4x4 solution and converts each
// returned group into a raw candidate.
type LLMGenerator struct {
	cfg    LLMConfig
	client *http.Client
	logger *log.Logger
}

// NewLLMGenerator builds the generator. The logger may be nil.
func NewLLMGenerator(cfg LLMConfig, logger *log.Logger) (*LLMGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("generate: api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4-turbo-preview"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2000
	}
	return &LLMGenerator{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}, nil
}

const llmSystemPrompt = `You are an expert at solving NYT Connections puzzles.

Rules:
- There are 4 groups of 4 words each (16 words total)
- Each group shares a common theme or connection
- Categories can be:
  * semantic: words that share a meaning (synonyms, related concepts)
  * wordplay: words that share a linguistic pattern
  * fill_in_blank: words that complete a phrase (e.g. "SILENT ___")
  * compound: words that combine with another word
- Difficulty levels: Yellow (easiest), Green, Blue, Purple (trickiest)
- Think step-by-step to identify the connections

Return your response as a JSON object with a "groups" key containing exactly
4 groups, each with "words" (4 strings), "category", "type" (one of semantic,
wordplay, fill_in_blank, compound), "explanation" and "confidence" (0.0-1.0).
Make sure all 16 words are used exactly once across the 4 groups.`

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float32       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat *formatSpec   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type formatSpec struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

type llmGroup struct {
	Words       []string `json:"words"`
	Category    string   `json:"category"`
	Type        string   `json:"type"`
	Explanation string   `json:"explanation"`
	Confidence  float32  `json:"confidence"`
}

type llmSolution struct {
	Groups []llmGroup `json:"groups"`
}

// Generate prompts the model with the 16 tokens and any detected wordplay
// hints, then parses the solution into raw candidates. Groups that reuse a
// token or have the wrong size are skipped; normalization downstream rejects
// anything else malformed.
func (g *LLMGenerator) Generate(ctx context.Context, tokens []string, findings wordplay.Findings) ([]solver.RawCandidate, error) {
	if len(tokens) != solver.UniverseSize {
		return nil, fmt.Errorf("generate: expected %d tokens, got %d", solver.UniverseSize, len(tokens))
	}
	userPrompt := fmt.Sprintf(`Analyze these 16 words and find the 4 groups of 4 words each:

%s

Detected wordplay hints:
%s

Think step-by-step:
1. Look for obvious semantic connections (synonyms, related concepts)
2. Check for wordplay patterns (shared prefixes, suffixes, compound words)
3. Consider fill-in-blank patterns
4. Identify the trickiest connections last`,
		strings.Join(tokens, ", "), findings.Format())

	content, err := g.complete(ctx, userPrompt)
	if err != nil {
		return nil, err
	}
	return parseSolution(content)
}

// complete posts one chat completion, retrying transient failures with
// exponential backoff.
func (g *LLMGenerator) complete(ctx context.Context, userPrompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: g.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: llmSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    g.cfg.Temperature,
		MaxTokens:      g.cfg.MaxTokens,
		ResponseFormat: &formatSpec{Type: "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < g.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(1<<uint(attempt-1)) * time.Second
			g.logf("retrying chat completion in %s (attempt %d)", delay, attempt+1)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}
		content, retryable, err := g.post(ctx, body)
		if err == nil {
			return content, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
	}
	return "", fmt.Errorf("chat completion failed after %d attempts: %w", g.cfg.MaxRetries, lastErr)
}

func (g *LLMGenerator) post(ctx context.Context, body []byte) (content string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("post chat completion: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", true, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", true, fmt.Errorf("chat completion status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("chat completion status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", false, fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", false, fmt.Errorf("chat completion error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", false, errors.New("chat completion returned no choices")
	}
	return parsed.Choices[0].Message.Content, false, nil
}

// parseSolution converts the model's JSON into raw candidates, tolerating a
// markdown code fence around the object.
func parseSolution(content string) ([]solver.RawCandidate, error) {
	content = stripCodeFence(content)

	var sol llmSolution
	if err := json.Unmarshal([]byte(content), &sol); err != nil {
		return nil, fmt.Errorf("parse solution: %w", err)
	}

	used := make(map[string]struct{})
	var out []solver.RawCandidate
	for _, grp := range sol.Groups {
		if len(grp.Words) != solver.GroupSize {
			continue
		}
		dup := false
		for _, w := range grp.Words {
			if _, ok := used[strings.ToUpper(w)]; ok {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		for _, w := range grp.Words {
			used[strings.ToUpper(w)] = struct{}{}
		}
		conf := grp.Confidence
		if conf == 0 {
			conf = 0.8
		}
		out = append(out, solver.RawCandidate{
			Items:         append([]string(nil), grp.Words...),
			Score:         conf,
			Source:        solver.SourceLLM,
			CategoryLabel: grp.Category,
			CategoryType:  normalizeType(grp.Type),
			Explanation:   grp.Explanation,
		})
	}
	if len(out) == 0 {
		return nil, errors.New("solution contained no usable groups")
	}
	return out, nil
}

func normalizeType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case solver.CategoryWordplay:
		return solver.CategoryWordplay
	case solver.CategoryFillBlank, "fill-in-blank":
		return solver.CategoryFillBlank
	case solver.CategoryCompound, "compounds":
		return solver.CategoryCompound
	default:
		return solver.CategorySemantic
	}
}

func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

func (g *LLMGenerator) logf(format string, args ...any) {
	if g.logger != nil {
		g.logger.Printf(format, args...)
	}
}
