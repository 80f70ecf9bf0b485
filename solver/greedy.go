package solver

// assembleGreedy builds a best-effort partition in a single walk over the
// pool: candidates are accepted in score order whenever their item set is
// disjoint from everything accepted so far. When fewer than four disjoint
// candidates exist, the partition is padded with the highest-scoring
// remaining entries regardless of overlap, and tagged as non-covering so the
// caller can tell the degraded state apart.
func (s *Service) assembleGreedy(pool *Pool) *Partition {
	var groups []*Candidate
	var used uint32
	taken := make(map[string]struct{}, GroupSize)

	for _, c := range pool.cands {
		if c.mask&used != 0 {
			continue
		}
		groups = append(groups, c.clone())
		taken[c.key] = struct{}{}
		used |= c.mask
		if len(groups) == GroupSize {
			break
		}
	}

	state := CoverGreedyPartial
	if len(groups) == GroupSize && used == fullMask {
		state = CoverGreedyExact
	}

	if len(groups) < GroupSize {
		s.logf("greedy assembly found only %d disjoint groups, padding", len(groups))
		for _, c := range pool.cands {
			if _, ok := taken[c.key]; ok {
				continue
			}
			groups = append(groups, c.clone())
			taken[c.key] = struct{}{}
			if len(groups) == GroupSize {
				break
			}
		}
	}
	if len(groups) == 0 {
		return &Partition{State: CoverNone}
	}
	return &Partition{Groups: groups, State: state}
}
