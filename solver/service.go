package solver

import (
	"log"
)

// Scorer supplies pairwise semantic similarity to the conflict resolver.
// Implementations may be slow or remote; the engine treats every call as a
// plain synchronous function and never caches on its behalf.
type Scorer interface {
	Similarity(a, b string) (float32, error)
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(a, b string) (float32, error)

// Similarity implements Scorer.
func (f ScorerFunc) Similarity(a, b string) (float32, error) { return f(a, b) }

// Signal reports whether a single token matches an externally detected
// linguistic pattern.
type Signal func(token string) bool

// BlankSignal reports whether a token fits a group's fill-in-the-blank
// pattern, given the group's category label.
type BlankSignal func(token, categoryLabel string) bool

// Service is the partition selection and repair engine. It is synchronous
// and free of shared mutable state: each invocation operates on its own pool
// and partition instances.
type Service struct {
	cfg    Config
	scorer Scorer

	wordplay Signal
	blank    BlankSignal

	logger *log.Logger
}

// NewService constructs the engine. The scorer and logger may be nil; a nil
// scorer degrades every similarity to zero rather than failing resolution.
func NewService(cfg Config, scorer Scorer, logger *log.Logger) *Service {
	cfg.ApplyDefaults()
	return &Service{cfg: cfg, scorer: scorer, logger: logger}
}

// Config returns a copy of the engine configuration.
func (s *Service) Config() Config { return s.cfg.Clone() }

// SetPatternSignals installs the optional wordplay and fill-in-the-blank
// signals consulted during conflict resolution. Either may be nil.
func (s *Service) SetPatternSignals(wordplay Signal, blank BlankSignal) {
	s.wordplay = wordplay
	s.blank = blank
}

// Solve selects a partition from the pool: the bounded exact-cover search
// first, the greedy assembler when no covering combination is found. topK
// and budget override the configured defaults when non-negative; a budget of
// zero skips the search entirely and goes straight to greedy assembly.
//
// A pool with fewer than four candidates is a tagged failure
// (ErrInsufficientPool), not a partial partition.
func (s *Service) Solve(pool *Pool, u *Universe, topK, budget int) (*Partition, error) {
	if pool == nil || pool.Len() < GroupSize {
		return nil, ErrInsufficientPool
	}
	if topK <= 0 {
		topK = s.cfg.TopK
	}
	if budget < 0 {
		budget = s.cfg.MaxCombos
	}
	if part, ok := s.searchExactCover(pool, topK, budget); ok {
		s.logf("exact cover found within budget %d", budget)
		return part, nil
	}
	s.logf("no exact cover within budget %d, falling back to greedy assembly", budget)
	return s.assembleGreedy(pool), nil
}

// BuildResult collapses a repaired partition and its resolution report into
// the public result shape.
func (s *Service) BuildResult(u *Universe, p *Partition, res Resolution) Result {
	out := Result{
		State:         p.State.String(),
		FullyResolved: res.FullyResolved,
		Unassigned:    append([]string(nil), res.Unassigned...),
	}
	var union uint32
	count := 0
	disjoint := true
	for _, g := range p.Groups {
		mask, ok := u.itemMask(g.Items)
		if ok {
			if union&mask != 0 {
				disjoint = false
			}
			union |= mask
		}
		count += len(g.Items)
		out.Groups = append(out.Groups, Group{
			Items:         append([]string(nil), g.Items...),
			Score:         g.Score,
			CategoryLabel: g.CategoryLabel,
			Explanation:   g.Explanation,
		})
	}
	out.CoversUniverse = len(p.Groups) == GroupSize && count == UniverseSize &&
		disjoint && union == fullMask
	return out
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
