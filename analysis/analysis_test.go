package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bk-kiran/NYTimesConnectionsSolver/solver"
)

// stubEmbedder returns fixed vectors per token.
type stubEmbedder map[string][]float32

func (s stubEmbedder) EmbedToken(_ context.Context, token string) ([]float32, error) {
	v, ok := s[token]
	if !ok {
		return nil, errors.New("unknown token")
	}
	return v, nil
}

func (s stubEmbedder) EmbedTokens(ctx context.Context, tokens []string) ([][]float32, error) {
	out := make([][]float32, len(tokens))
	for i, tok := range tokens {
		v, err := s.EmbedToken(ctx, tok)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (stubEmbedder) ModelID() string { return "stub" }
func (stubEmbedder) Close() error    { return nil }

func tightCluster(tokens ...string) stubEmbedder {
	s := make(stubEmbedder, len(tokens))
	for _, tok := range tokens {
		s[tok] = []float32{1, 0}
	}
	return s
}

func spreadOut(tokens ...string) stubEmbedder {
	s := make(stubEmbedder, len(tokens))
	for i, tok := range tokens {
		vec := make([]float32, len(tokens))
		vec[i] = 1
		s[tok] = vec
	}
	return s
}

func TestValidateCohesiveGroup(t *testing.T) {
	items := []string{"FAST", "QUICK", "RAPID", "SPEEDY"}
	v := NewValidator(tightCluster(items...))

	res := v.Validate(context.Background(), items, "Speedy")
	assert.InDelta(t, 0.4, float64(res.Score), 1e-6)
	assert.Contains(t, res.Reasons, "high semantic similarity")
	assert.Contains(t, res.Reasons, "concise category name")
	// Cohesion alone sits exactly at the threshold, so structure has to tip it.
	assert.False(t, res.Valid)
}

func TestValidateFillInBlankGroup(t *testing.T) {
	items := []string{"BASKET", "FOOT", "SNOW", "EYE"}
	v := NewValidator(spreadOut(items...))

	res := v.Validate(context.Background(), items, "___ BALL")
	assert.True(t, res.Valid)
	assert.Contains(t, res.Reasons, "fill-in-blank pattern: ___ BALL")
}

func TestValidateWrongSize(t *testing.T) {
	v := NewValidator(nil)
	res := v.Validate(context.Background(), []string{"A", "B"}, "")
	assert.Zero(t, res.Score)
	assert.False(t, res.Valid)
}

func TestValidateVagueCategoryPenalized(t *testing.T) {
	items := []string{"FAST", "QUICK", "RAPID", "SPEEDY"}
	v := NewValidator(tightCluster(items...))

	concise := v.Validate(context.Background(), items, "Speedy")
	vague := v.Validate(context.Background(), items, "things that are speedy somehow")
	assert.Greater(t, concise.Score, vague.Score)
	assert.Contains(t, vague.Reasons, "vague category name")
}

func TestValidateEmbedderFailureDegrades(t *testing.T) {
	items := []string{"BASKET", "FOOT", "SNOW", "EYE"}
	v := NewValidator(stubEmbedder{})

	res := v.Validate(context.Background(), items, "___ BALL")
	// The structural fill-in-blank check alone keeps the group valid.
	assert.True(t, res.Valid)
}

func TestAnnotateSetsValidationScores(t *testing.T) {
	items := []string{"FAST", "QUICK", "RAPID", "SPEEDY"}
	v := NewValidator(tightCluster(items...))

	cands := []solver.RawCandidate{{Items: items, Source: solver.SourceLLM}}
	v.Annotate(context.Background(), cands)
	require.NotNil(t, cands[0].ValidationScore)
	assert.Greater(t, *cands[0].ValidationScore, float32(0))
}

func TestPredictDifficulty(t *testing.T) {
	synonyms := []string{"FAST", "QUICK", "RAPID", "SPEEDY"}
	assert.Equal(t, DifficultyYellow,
		PredictDifficulty(context.Background(), tightCluster(synonyms...), synonyms))

	blanks := []string{"BASKET", "FOOT", "SNOW", "EYE"}
	assert.Equal(t, DifficultyPurple,
		PredictDifficulty(context.Background(), spreadOut(blanks...), blanks))

	assert.Equal(t, DifficultyUnknown,
		PredictDifficulty(context.Background(), nil, synonyms))
	assert.Equal(t, DifficultyUnknown,
		PredictDifficulty(context.Background(), stubEmbedder{}, synonyms))
}

func TestAnnotateDifficulty(t *testing.T) {
	items := []string{"FAST", "QUICK", "RAPID", "SPEEDY"}
	result := &solver.Result{Groups: []solver.Group{{Items: items}}}
	AnnotateDifficulty(context.Background(), tightCluster(items...), result)
	assert.Equal(t, DifficultyYellow, result.Groups[0].Difficulty)
}
