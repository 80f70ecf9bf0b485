package generate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bk-kiran/NYTimesConnectionsSolver/solver"
	"github.com/bk-kiran/NYTimesConnectionsSolver/wordplay"
)

var sixteen = []string{
	"FAST", "FIRM", "SECURE", "TIGHT",
	"ACCOUNT", "CLIENT", "CONSUMER", "USER",
	"FROSTY", "MISTLETOE", "RAINMAKER", "SNOWMAN",
	"AUCTION", "MOVIE", "PARTNER", "TREATMENT",
}

const solutionJSON = `{
  "groups": [
    {"words": ["FAST", "FIRM", "SECURE", "TIGHT"], "category": "Ways to hold", "type": "semantic", "explanation": "synonyms", "confidence": 0.9},
    {"words": ["ACCOUNT", "CLIENT", "CONSUMER", "USER"], "category": "Customer", "type": "semantic", "explanation": "synonyms", "confidence": 0.85},
    {"words": ["FROSTY", "MISTLETOE", "RAINMAKER", "SNOWMAN"], "category": "Winter things", "type": "semantic", "explanation": "wintry", "confidence": 0.7},
    {"words": ["AUCTION", "MOVIE", "PARTNER", "TREATMENT"], "category": "SILENT ___", "type": "fill_in_blank", "explanation": "silent auction etc", "confidence": 0.6}
  ]
}`

func chatBody(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestParseSolution(t *testing.T) {
	cands, err := parseSolution(solutionJSON)
	require.NoError(t, err)
	require.Len(t, cands, 4)
	assert.Equal(t, solver.SourceLLM, cands[0].Source)
	assert.Equal(t, "Ways to hold", cands[0].CategoryLabel)
	assert.Equal(t, solver.CategorySemantic, cands[0].CategoryType)
	assert.Equal(t, solver.CategoryFillBlank, cands[3].CategoryType)
	assert.InDelta(t, 0.9, float64(cands[0].Score), 1e-6)
}

func TestParseSolutionStripsCodeFence(t *testing.T) {
	cands, err := parseSolution("```json\n" + solutionJSON + "\n```")
	require.NoError(t, err)
	assert.Len(t, cands, 4)
}

func TestParseSolutionSkipsDuplicateGroups(t *testing.T) {
	cands, err := parseSolution(`{"groups": [
		{"words": ["A", "B", "C", "D"], "confidence": 0.9},
		{"words": ["A", "E", "F", "G"], "confidence": 0.9},
		{"words": ["H", "I", "J"], "confidence": 0.9}
	]}`)
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, []string{"A", "B", "C", "D"}, cands[0].Items)
}

func TestParseSolutionDefaultsConfidence(t *testing.T) {
	cands, err := parseSolution(`{"groups": [{"words": ["A", "B", "C", "D"]}]}`)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, float64(cands[0].Score), 1e-6)
}

func TestParseSolutionRejectsGarbage(t *testing.T) {
	_, err := parseSolution("not json at all")
	require.Error(t, err)

	_, err = parseSolution(`{"groups": []}`)
	require.Error(t, err)
}

func TestLLMGeneratorEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[1].Content, "FROSTY")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatBody(solutionJSON)))
	}))
	defer srv.Close()

	cfg := DefaultLLMConfig("test-key")
	cfg.BaseURL = srv.URL
	gen, err := NewLLMGenerator(cfg, nil)
	require.NoError(t, err)

	cands, err := gen.Generate(context.Background(), sixteen, wordplay.Findings{})
	require.NoError(t, err)
	assert.Len(t, cands, 4)
}

func TestLLMGeneratorRetriesOnServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(chatBody(solutionJSON)))
	}))
	defer srv.Close()

	cfg := DefaultLLMConfig("test-key")
	cfg.BaseURL = srv.URL
	gen, err := NewLLMGenerator(cfg, nil)
	require.NoError(t, err)

	cands, err := gen.Generate(context.Background(), sixteen, wordplay.Findings{})
	require.NoError(t, err)
	assert.Len(t, cands, 4)
	assert.Equal(t, 2, calls)
}

func TestLLMGeneratorDoesNotRetryClientError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	cfg := DefaultLLMConfig("test-key")
	cfg.BaseURL = srv.URL
	gen, err := NewLLMGenerator(cfg, nil)
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), sixteen, wordplay.Findings{})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestLLMGeneratorRequiresKey(t *testing.T) {
	_, err := NewLLMGenerator(LLMConfig{}, nil)
	require.Error(t, err)
}

func TestLLMGeneratorWrongTokenCount(t *testing.T) {
	gen, err := NewLLMGenerator(DefaultLLMConfig("k"), nil)
	require.NoError(t, err)
	_, err = gen.Generate(context.Background(), []string{"A"}, wordplay.Findings{})
	require.Error(t, err)
}
