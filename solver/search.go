package solver

// searchExactCover enumerates 4-combinations of the top-K pool candidates in
// lexicographic index order, looking for the highest-scoring combination
// whose item sets are pairwise disjoint and union to the full universe.
//
// The budget caps the number of inspected combinations; once exhausted, the
// best combination found so far is returned. With the defaults
// (K=20, B=5000) the full C(20,4)=4845 space is inspected, so the cap only
// bites on misconfiguration. The first combination reaching the maximal
// composite score wins, which keeps results stable across runs.
func (s *Service) searchExactCover(pool *Pool, topK, budget int) (*Partition, bool) {
	cands := pool.cands
	if len(cands) < GroupSize {
		return nil, false
	}
	if topK <= 0 {
		topK = s.cfg.TopK
	}
	if len(cands) > topK {
		cands = cands[:topK]
	}

	var best []*Candidate
	var bestScore float32 = -1
	inspected := 0

	n := len(cands)
	for a := 0; a < n-3; a++ {
		for b := a + 1; b < n-2; b++ {
			// Prune branches that already collide; pruned combinations
			// still count against the budget, matching the enumeration cap.
			abOK := cands[a].mask&cands[b].mask == 0
			for c := b + 1; c < n-1; c++ {
				for d := c + 1; d < n; d++ {
					inspected++
					if inspected > budget {
						s.logf("search budget %d exhausted, keeping best found so far", budget)
						return partitionFrom(best)
					}
					if !abOK {
						continue
					}
					union := cands[a].mask | cands[b].mask | cands[c].mask | cands[d].mask
					if union != fullMask {
						continue
					}
					// Four disjoint masks of four bits each are the only way
					// to reach a full 16-bit union, so disjointness of the
					// remaining pairs is implied by the union check.
					score := s.compositeScore(cands[a], cands[b], cands[c], cands[d])
					if score > bestScore {
						bestScore = score
						best = []*Candidate{cands[a], cands[b], cands[c], cands[d]}
					}
				}
			}
		}
	}
	return partitionFrom(best)
}

func partitionFrom(best []*Candidate) (*Partition, bool) {
	if best == nil {
		return nil, false
	}
	groups := make([]*Candidate, len(best))
	for i, c := range best {
		groups[i] = c.clone()
	}
	return &Partition{Groups: groups, State: CoverExact}, true
}

// compositeScore ranks a covering combination: the summed candidate scores,
// multiplied by the diversity bonus when three or more distinct non-empty
// category types are present, plus the weighted mean secondary validation
// score (0.5 when a candidate carries none).
func (s *Service) compositeScore(group ...*Candidate) float32 {
	var sum float32
	types := make(map[string]struct{}, len(group))
	var validation float32
	for _, c := range group {
		sum += c.Score
		if c.CategoryType != "" {
			types[c.CategoryType] = struct{}{}
		}
		if c.ValidationScore != nil {
			validation += *c.ValidationScore
		} else {
			validation += 0.5
		}
	}
	if len(types) >= 3 {
		sum *= s.cfg.DiversityBonus
	}
	sum += s.cfg.ValidationWeight * (validation / float32(len(group)))
	return sum
}
