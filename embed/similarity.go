package embed

import (
	"context"
	"math"

	"github.com/bk-kiran/NYTimesConnectionsSolver/solver"
)

// Cosine returns the cosine similarity of two vectors, or 0 when either has
// zero magnitude or the lengths differ.
func Cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

// MeanPairwise returns the mean cosine similarity over all unordered pairs of
// vectors. Fewer than two vectors score 0.
func MeanPairwise(vecs [][]float32) float32 {
	n := len(vecs)
	if n < 2 {
		return 0
	}
	var sum float32
	pairs := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum += Cosine(vecs[i], vecs[j])
			pairs++
		}
	}
	return sum / float32(pairs)
}

// Scorer adapts an Embedder to the solver's pairwise similarity interface.
// Negative similarities clamp to 0: anti-correlation carries no signal for
// group membership.
func Scorer(ctx context.Context, e Embedder) solver.Scorer {
	return solver.ScorerFunc(func(a, b string) (float32, error) {
		va, err := e.EmbedToken(ctx, a)
		if err != nil {
			return 0, err
		}
		vb, err := e.EmbedToken(ctx, b)
		if err != nil {
			return 0, err
		}
		sim := Cosine(va, vb)
		if sim < 0 {
			sim = 0
		}
		return sim, nil
	})
}
