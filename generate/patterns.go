package generate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bk-kiran/NYTimesConnectionsSolver/solver"
	"github.com/bk-kiran/NYTimesConnectionsSolver/wordplay"
)

// Pattern generator confidences. Compound anchors are the strongest signal;
// name splits and homophones are weaker and more often red herrings.
const (
	compoundConfidence  float32 = 0.75
	nameConfidence      float32 = 0.6
	homophoneConfidence float32 = 0.55
)

// PatternGenerator turns detected wordplay into candidate groupings.
type PatternGenerator struct{}

// Generate runs the wordplay detectors over the tokens and emits one raw
// candidate per pattern that matches exactly four of them.
func (PatternGenerator) Generate(tokens []string) []solver.RawCandidate {
	findings := wordplay.Analyze(tokens)
	var out []solver.RawCandidate

	for _, p := range findings.Compounds {
		if len(p.Words) != solver.GroupSize {
			continue
		}
		out = append(out, solver.RawCandidate{
			Items:         append([]string(nil), p.Words...),
			Score:         compoundConfidence,
			Source:        solver.SourcePattern,
			CategoryLabel: p.Pattern,
			CategoryType:  solver.CategoryFillBlank,
			Explanation:   fmt.Sprintf("each word combines with %s", p.Anchor),
			Wordplay:      true,
		})
	}

	if group := nameSplitGroup(findings); len(group) == solver.GroupSize {
		out = append(out, solver.RawCandidate{
			Items:         group,
			Score:         nameConfidence,
			Source:        solver.SourcePattern,
			CategoryLabel: "TWO FIRST NAMES",
			CategoryType:  solver.CategoryWordplay,
			Explanation:   "each word splits into two common first names",
			Wordplay:      true,
		})
	}

	for _, group := range findings.Homophones {
		if len(group) != solver.GroupSize {
			continue
		}
		out = append(out, solver.RawCandidate{
			Items:         append([]string(nil), group...),
			Score:         homophoneConfidence,
			Source:        solver.SourcePattern,
			CategoryLabel: "SOUND-ALIKES",
			CategoryType:  solver.CategoryWordplay,
			Explanation:   "words share a phonetic code: " + strings.Join(group, ", "),
			Wordplay:      true,
		})
	}
	return out
}

// nameSplitGroup collects tokens with name splits, in puzzle order, capped at
// a group. Fewer than four is no pattern.
func nameSplitGroup(f wordplay.Findings) []string {
	if len(f.NameSplits) < solver.GroupSize {
		return nil
	}
	words := make([]string, 0, len(f.NameSplits))
	for w := range f.NameSplits {
		words = append(words, w)
	}
	// Map order is random; sort for a deterministic candidate.
	sort.Strings(words)
	return words[:solver.GroupSize]
}
