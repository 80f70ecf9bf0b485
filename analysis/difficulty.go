package analysis

import (
	"context"

	"github.com/bk-kiran/NYTimesConnectionsSolver/embed"
	"github.com/bk-kiran/NYTimesConnectionsSolver/solver"
	"github.com/bk-kiran/NYTimesConnectionsSolver/wordplay"
)

// Difficulty levels match the puzzle's color coding, yellow easiest through
// purple trickiest.
const (
	DifficultyYellow  = "yellow"
	DifficultyGreen   = "green"
	DifficultyBlue    = "blue"
	DifficultyPurple  = "purple"
	DifficultyUnknown = "unknown"
)

// PredictDifficulty estimates a group's difficulty from its semantic
// cohesion and the presence of wordplay. Wordplay with low similarity is the
// classic purple group; tight synonym sets are yellow.
func PredictDifficulty(ctx context.Context, embedder embed.Embedder, items []string) string {
	if len(items) != solver.GroupSize || embedder == nil {
		return DifficultyUnknown
	}
	vecs, err := embedder.EmbedTokens(ctx, items)
	if err != nil {
		return DifficultyUnknown
	}
	avg, _ := pairwiseStats(vecs)

	findings := wordplay.Analyze(items)
	hasWordplay := len(findings.NameSplits) > 0 || len(findings.Compounds) > 0

	switch {
	case hasWordplay && avg < 0.4:
		return DifficultyPurple
	case hasWordplay && avg < 0.5:
		return DifficultyBlue
	case avg > 0.7:
		return DifficultyYellow
	case avg > 0.5:
		return DifficultyGreen
	case avg > 0.3:
		return DifficultyBlue
	default:
		return DifficultyPurple
	}
}

// AnnotateDifficulty fills the Difficulty field of each result group.
func AnnotateDifficulty(ctx context.Context, embedder embed.Embedder, result *solver.Result) {
	for i := range result.Groups {
		result.Groups[i].Difficulty = PredictDifficulty(ctx, embedder, result.Groups[i].Items)
	}
}
