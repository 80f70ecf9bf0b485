package solver

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"
)

// Pool holds the calibrated, deduplicated candidates for one puzzle, sorted
// by descending score with first-seen order breaking ties.
type Pool struct {
	cands   []*Candidate
	rejects []Rejection
}

// Len returns the number of merged candidates.
func (p *Pool) Len() int { return len(p.cands) }

// Candidates returns the pool entries in score order.
func (p *Pool) Candidates() []*Candidate {
	return append([]*Candidate(nil), p.cands...)
}

// Rejections returns the raw candidates dropped during normalization.
func (p *Pool) Rejections() []Rejection {
	return append([]Rejection(nil), p.rejects...)
}

// mergeEntry tracks the best calibrated score seen per source for one
// distinct item set while the pool is being built.
type mergeEntry struct {
	cand     *Candidate
	bySource map[string]float32
}

// Normalize turns heterogeneous raw candidate lists into one calibrated,
// deduplicated pool. Malformed candidates (wrong item count, items outside
// the universe) are dropped and reported via Rejections, never propagated as
// a fatal error.
func (s *Service) Normalize(u *Universe, raw []RawCandidate) *Pool {
	pool := &Pool{}
	byKey := make(map[string]*mergeEntry)
	order := make([]*mergeEntry, 0, len(raw))

	for _, rc := range raw {
		items, reason := s.normalizeItems(u, rc.Items)
		if reason != "" {
			pool.rejects = append(pool.rejects, Rejection{Items: rc.Items, Source: rc.Source, Reason: reason})
			s.logf("rejected candidate [%s] from %s: %s", describeItems(rc.Items), rc.Source, reason)
			continue
		}
		key := poolKey(items)
		calibrated := s.cfg.calibrate(rc.Score, rc.Source)

		entry, ok := byKey[key]
		if !ok {
			mask, _ := u.itemMask(items)
			entry = &mergeEntry{
				cand: &Candidate{
					Items: items,
					key:   key,
					order: len(order),
					mask:  mask,
				},
				bySource: make(map[string]float32, 2),
			}
			byKey[key] = entry
			order = append(order, entry)
		}
		if calibrated > entry.bySource[rc.Source] {
			entry.bySource[rc.Source] = calibrated
		}
		if !entry.cand.HasSource(rc.Source) {
			entry.cand.Sources = append(entry.cand.Sources, rc.Source)
		}
		entry.cand.Wordplay = entry.cand.Wordplay || rc.Wordplay
		mergeMetadata(entry.cand, rc)
	}

	for _, entry := range order {
		entry.cand.Score = s.combineScores(entry)
		pool.cands = append(pool.cands, entry.cand)
	}
	s.applyOverlapPenalty(pool.cands)

	sort.SliceStable(pool.cands, func(i, j int) bool {
		return pool.cands[i].Score > pool.cands[j].Score
	})
	return pool
}

// normalizeItems validates and canonicalizes a raw item set. The returned
// reason is empty on success.
func (s *Service) normalizeItems(u *Universe, items []string) ([]string, string) {
	if len(items) != GroupSize {
		return nil, fmt.Sprintf("expected %d items, got %d", GroupSize, len(items))
	}
	out := make([]string, 0, GroupSize)
	seen := make(map[string]struct{}, GroupSize)
	for _, raw := range items {
		tok := NormalizeToken(raw)
		if tok == "" {
			return nil, fmt.Sprintf("empty item %q", raw)
		}
		if !u.Contains(tok) {
			return nil, fmt.Sprintf("item %q outside universe", tok)
		}
		if _, ok := seen[tok]; ok {
			return nil, fmt.Sprintf("duplicate item %q", tok)
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	sort.Strings(out)
	return out, ""
}

// combineScores folds the per-source calibrated scores into the merged
// confidence: weighted sum, plus the pattern boost, the multi-source
// agreement boost and the wordplay boost, capped at 1.
func (s *Service) combineScores(entry *mergeEntry) float32 {
	var score float32
	for source, calibrated := range entry.bySource {
		score += s.cfg.weight(source) * calibrated
	}
	if _, ok := entry.bySource[SourcePattern]; ok {
		score += s.cfg.PatternBoost
	}
	if len(entry.bySource) >= 2 {
		score += s.cfg.AgreementBoost
	}
	if entry.cand.Wordplay {
		score += s.cfg.WordplayBoost
	}
	return clamp01(score)
}

// applyOverlapPenalty damps every unordered pair of distinct candidates
// sharing two or more items. The penalty is applied exactly once per pair,
// in insertion order, so merged pools score deterministically.
func (s *Service) applyOverlapPenalty(cands []*Candidate) {
	for i := 0; i < len(cands); i++ {
		for j := i + 1; j < len(cands); j++ {
			shared := cands[i].mask & cands[j].mask
			if bits.OnesCount32(shared) >= 2 {
				cands[i].Score *= s.cfg.OverlapPenalty
				cands[j].Score *= s.cfg.OverlapPenalty
			}
		}
	}
}

// mergeMetadata fills empty metadata fields from the incoming raw candidate.
// LLM-provided labels and explanations win over earlier blanks; the first
// non-empty value is otherwise kept.
func mergeMetadata(c *Candidate, rc RawCandidate) {
	if rc.CategoryLabel != "" && (c.CategoryLabel == "" || rc.Source == SourceLLM) {
		c.CategoryLabel = rc.CategoryLabel
	}
	if rc.CategoryType != "" && (c.CategoryType == "" || rc.Source == SourceLLM) {
		c.CategoryType = rc.CategoryType
	}
	if rc.Explanation != "" && (c.Explanation == "" || rc.Source == SourceLLM) {
		c.Explanation = rc.Explanation
	}
	if rc.ValidationScore != nil {
		v := clamp01(*rc.ValidationScore)
		if c.ValidationScore == nil || v > *c.ValidationScore {
			c.ValidationScore = &v
		}
	}
}

// describeItems renders an item set for logs and rejection messages.
func describeItems(items []string) string {
	return strings.Join(items, ", ")
}
