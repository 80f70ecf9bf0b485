// Package analysis scores proposed groups independently of the generators:
// secondary validation of a group's cohesion and per-group difficulty
// prediction.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/bk-kiran/NYTimesConnectionsSolver/embed"
	"github.com/bk-kiran/NYTimesConnectionsSolver/solver"
	"github.com/bk-kiran/NYTimesConnectionsSolver/wordplay"
)

// Validation is the outcome of scoring one 4-token group.
type Validation struct {
	Score   float32
	Reasons []string
	Valid   bool
}

// validThreshold separates plausible groups from noise.
const validThreshold float32 = 0.4

// Validator scores groups by combining embedding cohesion with detected
// wordplay structure. The embedder may be nil, in which case only the
// structural checks run.
type Validator struct {
	embedder embed.Embedder
}

// NewValidator builds a validator over the given embedder.
func NewValidator(embedder embed.Embedder) *Validator {
	return &Validator{embedder: embedder}
}

// Validate scores one group. Embedding failures degrade to structural checks
// rather than failing the validation.
func (v *Validator) Validate(ctx context.Context, items []string, categoryLabel string) Validation {
	out := Validation{}
	if len(items) != solver.GroupSize {
		out.Reasons = append(out.Reasons, fmt.Sprintf("group must have exactly %d words", solver.GroupSize))
		return out
	}

	if v.embedder != nil {
		if vecs, err := v.embedder.EmbedTokens(ctx, items); err == nil {
			avg, min := pairwiseStats(vecs)
			switch {
			case avg > 0.6:
				out.Score += 0.3
				out.Reasons = append(out.Reasons, "high semantic similarity")
			case avg < 0.3 && min < 0.2:
				out.Score += 0.1
				out.Reasons = append(out.Reasons, "low similarity - possible wordplay")
			case avg > 0.4:
				out.Score += 0.15
				out.Reasons = append(out.Reasons, "moderate semantic similarity")
			}
		} else {
			out.Reasons = append(out.Reasons, "could not calculate embeddings: "+err.Error())
		}
	}

	findings := wordplay.Analyze(items)

	for _, p := range findings.Compounds {
		if len(p.Words) == solver.GroupSize {
			out.Score += 0.4
			out.Reasons = append(out.Reasons, "fill-in-blank pattern: "+p.Pattern)
			break
		}
	}

	switch len(findings.NameSplits) {
	case solver.GroupSize:
		out.Score += 0.4
		out.Reasons = append(out.Reasons, "all words contain name combinations")
	case solver.GroupSize - 1:
		out.Score += 0.2
		out.Reasons = append(out.Reasons, "most words contain name combinations")
	}

	for prefix, words := range findings.Prefixes {
		if len(words) == solver.GroupSize {
			out.Score += 0.3
			out.Reasons = append(out.Reasons, "shared prefix: "+prefix)
			break
		}
	}

	if categoryLabel != "" {
		if len(strings.Fields(categoryLabel)) <= 3 {
			out.Score += 0.1
			out.Reasons = append(out.Reasons, "concise category name")
		}
		lower := strings.ToLower(categoryLabel)
		for _, vague := range []string{"related to", "associated with", "things that can", "things that are"} {
			if strings.Contains(lower, vague) {
				out.Score *= 0.8
				out.Reasons = append(out.Reasons, "vague category name")
				break
			}
		}
	}

	if sameLength(items) {
		out.Score += 0.05
		out.Reasons = append(out.Reasons, "all words have same length")
	}

	if out.Score > 1 {
		out.Score = 1
	}
	out.Valid = out.Score > validThreshold
	return out
}

// Annotate attaches validation scores to raw candidates in place.
func (v *Validator) Annotate(ctx context.Context, cands []solver.RawCandidate) {
	for i := range cands {
		res := v.Validate(ctx, cands[i].Items, cands[i].CategoryLabel)
		score := res.Score
		cands[i].ValidationScore = &score
	}
}

// pairwiseStats returns the mean and minimum pairwise cosine similarity.
func pairwiseStats(vecs [][]float32) (avg, min float32) {
	min = 1
	var sum float32
	pairs := 0
	for i := 0; i < len(vecs); i++ {
		for j := i + 1; j < len(vecs); j++ {
			sim := embed.Cosine(vecs[i], vecs[j])
			sum += sim
			if sim < min {
				min = sim
			}
			pairs++
		}
	}
	if pairs == 0 {
		return 0, 0
	}
	return sum / float32(pairs), min
}

func sameLength(items []string) bool {
	for _, it := range items[1:] {
		if len(it) != len(items[0]) {
			return false
		}
	}
	return true
}
