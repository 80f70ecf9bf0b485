package solver

import (
	"fmt"
	"strings"
)

// Fit score composition. The similarity share and the category bonuses are
// tuning choices preserved from the reference behaviour.
const (
	fitSimilarityWeight float32 = 0.7
	fitCategoryBonus    float32 = 0.3
	fitSubstringBonus   float32 = 0.1
)

// ResolveConflicts repairs a partition that violates the exactly-covers
// invariant. Duplicated tokens are retained only in their best-fitting
// group, missing universe tokens are absorbed into under-full groups when
// they fit above the threshold, and whatever cannot be repaired without
// guessing is reported instead of forced.
//
// The input partition is never mutated; the repaired copy is returned. On an
// already-valid partition the pass is a no-op and no fit scores are
// computed.
func (s *Service) ResolveConflicts(p *Partition, u *Universe) (*Partition, Resolution, error) {
	if p == nil {
		return nil, Resolution{}, ErrNilPartition
	}
	out := p.clone()
	res := Resolution{}

	assigned := make(map[string][]int)
	for gi, g := range out.Groups {
		for _, tok := range g.Items {
			assigned[tok] = append(assigned[tok], gi)
		}
	}

	if s.partitionValid(out, assigned, u) {
		res.FullyResolved = true
		return out, res, nil
	}

	// Step 1: every duplicated token stays only in the group it fits best.
	for _, tok := range u.tokens {
		owners := assigned[tok]
		if len(owners) < 2 {
			continue
		}
		bestIdx, bestFit := -1, float32(-1)
		for _, gi := range owners {
			if fit := s.fitScore(tok, out.Groups[gi]); fit > bestFit {
				bestFit, bestIdx = fit, gi
			}
		}
		for _, gi := range owners {
			if gi != bestIdx {
				removeItem(out.Groups[gi], tok)
				res.Moved++
			}
		}
		assigned[tok] = []int{bestIdx}
		s.logf("kept duplicate %q in group %d (fit %.2f)", tok, bestIdx+1, bestFit)
	}

	// Step 2: absorb tokens missing from every group into the best-fitting
	// under-full group, if any fits above the threshold.
	for _, tok := range u.tokens {
		if len(assigned[tok]) > 0 {
			continue
		}
		bestIdx, bestFit := -1, float32(-1)
		for gi, g := range out.Groups {
			if len(g.Items) >= GroupSize {
				continue
			}
			if fit := s.fitScore(tok, g); fit > bestFit {
				bestFit, bestIdx = fit, gi
			}
		}
		if bestIdx >= 0 && bestFit > s.cfg.FitThreshold {
			insertItem(out.Groups[bestIdx], tok)
			assigned[tok] = []int{bestIdx}
			res.Moved++
			s.logf("assigned missing %q to group %d (fit %.2f)", tok, bestIdx+1, bestFit)
		} else {
			res.Unassigned = append(res.Unassigned, tok)
		}
	}

	// Step 3: a final pull of still-unassigned tokens into groups left
	// under-full by the earlier steps. Over-full groups are reported, never
	// trimmed by guesswork.
	for gi, g := range out.Groups {
		if len(g.Items) >= GroupSize {
			continue
		}
		remaining := res.Unassigned[:0]
		for _, tok := range res.Unassigned {
			if len(g.Items) < GroupSize {
				if fit := s.fitScore(tok, g); fit > s.cfg.FitThreshold {
					insertItem(g, tok)
					res.Moved++
					s.logf("pulled %q into under-full group %d (fit %.2f)", tok, gi+1, fit)
					continue
				}
			}
			remaining = append(remaining, tok)
		}
		res.Unassigned = remaining
	}

	res.FullyResolved = true
	var union uint32
	for gi, g := range out.Groups {
		if len(g.Items) != GroupSize {
			res.FullyResolved = false
			res.Notes = append(res.Notes, fmt.Sprintf("group %d has %d items", gi+1, len(g.Items)))
		}
		mask, ok := u.itemMask(g.Items)
		if !ok {
			res.FullyResolved = false
			continue
		}
		union |= mask
	}
	if len(out.Groups) != GroupSize || union != fullMask {
		res.FullyResolved = false
	}
	if res.FullyResolved && !out.State.CoversUniverse() {
		out.State = CoverGreedyExact
	}
	return out, res, nil
}

// partitionValid reports whether the partition already satisfies the
// exactly-covers invariant: four groups of four distinct tokens each, no
// token owned twice, union equal to the universe.
func (s *Service) partitionValid(p *Partition, assigned map[string][]int, u *Universe) bool {
	if len(p.Groups) != GroupSize {
		return false
	}
	for _, g := range p.Groups {
		if len(g.Items) != GroupSize {
			return false
		}
	}
	if len(assigned) != UniverseSize {
		return false
	}
	for tok, owners := range assigned {
		if len(owners) != 1 || u.Index(tok) < 0 {
			return false
		}
	}
	return true
}

// fitScore measures how well a single token belongs to a group: the mean
// injected similarity against the group's other members, plus category-type
// and label-substring bonuses. Scorer failures degrade the affected pair to
// zero similarity instead of aborting the repair.
func (s *Service) fitScore(tok string, g *Candidate) float32 {
	var score float32

	others := make([]string, 0, len(g.Items))
	for _, it := range g.Items {
		if !strings.EqualFold(it, tok) {
			others = append(others, it)
		}
	}
	if len(others) > 0 && s.scorer != nil {
		var sum float32
		for _, other := range others {
			sim, err := s.scorer.Similarity(tok, other)
			if err != nil {
				s.logf("similarity scorer failed for (%q, %q): %v", tok, other, err)
				sim = 0
			}
			if sim < 0 {
				sim = 0
			}
			sum += sim
		}
		score += fitSimilarityWeight * (sum / float32(len(others)))
	}

	switch g.CategoryType {
	case CategoryWordplay:
		if s.wordplay != nil && s.wordplay(tok) {
			score += fitCategoryBonus
		}
	case CategoryFillBlank:
		if s.blank != nil && s.blank(tok, g.CategoryLabel) {
			score += fitCategoryBonus
		}
	}

	lower := strings.ToLower(tok)
	if strings.Contains(strings.ToLower(g.CategoryLabel), lower) || anyContainsFold(others, lower) {
		score += fitSubstringBonus
	}
	return clamp01(score)
}

func anyContainsFold(items []string, lower string) bool {
	for _, it := range items {
		if strings.Contains(strings.ToLower(it), lower) {
			return true
		}
	}
	return false
}

func removeItem(g *Candidate, tok string) {
	out := g.Items[:0]
	for _, it := range g.Items {
		if it != tok {
			out = append(out, it)
		}
	}
	g.Items = out
}

func insertItem(g *Candidate, tok string) {
	g.Items = append(g.Items, tok)
}
