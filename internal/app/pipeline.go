// Package app wires the generators, the solver and the analysis passes into
// one puzzle-solving pipeline.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/bk-kiran/NYTimesConnectionsSolver/analysis"
	"github.com/bk-kiran/NYTimesConnectionsSolver/embed"
	"github.com/bk-kiran/NYTimesConnectionsSolver/generate"
	"github.com/bk-kiran/NYTimesConnectionsSolver/solver"
	"github.com/bk-kiran/NYTimesConnectionsSolver/wordplay"
)

// LLMSource is the slice of the LLM generator the pipeline needs. It exists
// so tests can stub the model.
type LLMSource interface {
	Generate(ctx context.Context, tokens []string, findings wordplay.Findings) ([]solver.RawCandidate, error)
}

// Pipeline runs one puzzle end to end: candidate generation from all
// sources, normalization and merging, partition search, conflict repair and
// difficulty annotation.
type Pipeline struct {
	cfg       Config
	engine    *solver.Service
	embedder  embed.Embedder
	llm       LLMSource
	validator *analysis.Validator
	logger    *log.Logger
}

// NewPipeline assembles the pipeline. The embedder is required; llm and
// logger may be nil. A nil llm simply skips that source.
func NewPipeline(cfg Config, embedder embed.Embedder, llm LLMSource, logger *log.Logger) *Pipeline {
	cfg.ApplyDefaults()
	var scorer solver.Scorer
	if embedder != nil {
		scorer = embed.Scorer(context.Background(), embedder)
	}
	engine := solver.NewService(cfg.Solver, scorer, logger)
	return &Pipeline{
		cfg:       cfg,
		engine:    engine,
		embedder:  embedder,
		llm:       llm,
		validator: analysis.NewValidator(embedder),
		logger:    logger,
	}
}

// Solve runs the full pipeline over 16 puzzle tokens.
func (p *Pipeline) Solve(ctx context.Context, words []string) (*solver.Result, error) {
	u, err := solver.NewUniverse(words)
	if err != nil {
		return nil, fmt.Errorf("build universe: %w", err)
	}
	findings := wordplay.Analyze(words)
	p.engine.SetPatternSignals(findings.HasWordplay, wordplay.FitsBlank)

	var raw []solver.RawCandidate

	embCands, err := generate.NewEmbeddingsGenerator(p.embedder, p.cfg.Solver.TopK).Generate(ctx, words)
	if err != nil {
		return nil, fmt.Errorf("embeddings candidates: %w", err)
	}
	p.logf("embeddings source proposed %d candidates", len(embCands))
	raw = append(raw, embCands...)

	patCands := generate.PatternGenerator{}.Generate(words)
	p.logf("pattern source proposed %d candidates", len(patCands))
	raw = append(raw, patCands...)

	if p.llm != nil {
		llmCands, err := p.llm.Generate(ctx, words, findings)
		if err != nil {
			// The model is the least reliable source; the puzzle is still
			// solvable from the other two.
			p.logf("llm source failed: %v", err)
		} else {
			p.logf("llm source proposed %d candidates", len(llmCands))
			raw = append(raw, llmCands...)
		}
	}

	p.validator.Annotate(ctx, raw)

	pool := p.engine.Normalize(u, raw)
	for _, rej := range pool.Rejections() {
		p.logf("dropped %v from %s: %s", rej.Items, rej.Source, rej.Reason)
	}

	part, err := p.engine.Solve(pool, u, p.cfg.Solver.TopK, p.cfg.Solver.MaxCombos)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	repaired, res, err := p.engine.ResolveConflicts(part, u)
	if err != nil {
		return nil, fmt.Errorf("resolve conflicts: %w", err)
	}

	result := p.engine.BuildResult(u, repaired, res)
	analysis.AnnotateDifficulty(ctx, p.embedder, &result)
	return &result, nil
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}
