// Package generate produces raw candidate groupings from the three sources
// the engine merges: semantic embeddings, detected wordplay patterns and a
// language model.
package generate

import (
	"context"
	"fmt"
	"sort"

	"github.com/bk-kiran/NYTimesConnectionsSolver/embed"
	"github.com/bk-kiran/NYTimesConnectionsSolver/solver"
)

// EmbeddingsGenerator scores every 4-token combination by mean pairwise
// cosine similarity and keeps the best ones.
type EmbeddingsGenerator struct {
	embedder embed.Embedder
	topK     int
}

// NewEmbeddingsGenerator builds the generator. topK defaults to 20 when not
// positive.
func NewEmbeddingsGenerator(embedder embed.Embedder, topK int) *EmbeddingsGenerator {
	if topK <= 0 {
		topK = 20
	}
	return &EmbeddingsGenerator{embedder: embedder, topK: topK}
}

// Generate embeds the tokens once, then walks all 1820 4-combinations of the
// 16 tokens and returns the topK by mean pairwise similarity.
func (g *EmbeddingsGenerator) Generate(ctx context.Context, tokens []string) ([]solver.RawCandidate, error) {
	if len(tokens) != solver.UniverseSize {
		return nil, fmt.Errorf("generate: expected %d tokens, got %d", solver.UniverseSize, len(tokens))
	}
	vecs, err := g.embedder.EmbedTokens(ctx, tokens)
	if err != nil {
		return nil, fmt.Errorf("embed tokens: %w", err)
	}

	n := len(tokens)
	out := make([]solver.RawCandidate, 0, g.topK)
	for a := 0; a < n-3; a++ {
		for b := a + 1; b < n-2; b++ {
			for c := b + 1; c < n-1; c++ {
				for d := c + 1; d < n; d++ {
					score := embed.MeanPairwise([][]float32{vecs[a], vecs[b], vecs[c], vecs[d]})
					out = append(out, solver.RawCandidate{
						Items:  []string{tokens[a], tokens[b], tokens[c], tokens[d]},
						Score:  score,
						Source: solver.SourceEmbeddings,
					})
				}
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > g.topK {
		out = out[:g.topK]
	}
	return out, nil
}
