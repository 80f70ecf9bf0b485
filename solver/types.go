package solver

// UniverseSize is the number of tokens in a Connections puzzle.
const UniverseSize = 16

// GroupSize is the number of tokens in a single group.
const GroupSize = 4

// Source tags attached to raw candidates by the generator layers.
const (
	SourceEmbeddings = "embeddings"
	SourcePattern    = "pattern"
	SourceLLM        = "llm"
)

// Category types recognized by the conflict resolver.
const (
	CategorySemantic  = "semantic"
	CategoryWordplay  = "wordplay"
	CategoryFillBlank = "fill_in_blank"
	CategoryCompound  = "compound"
)

// RawCandidate is a proposed 4-token grouping as produced by a single
// generator, before calibration and merging.
type RawCandidate struct {
	Items           []string
	Score           float32
	Source          string
	CategoryLabel   string
	CategoryType    string
	Explanation     string
	ValidationScore *float32
	Wordplay        bool
}

// Candidate is a calibrated, possibly multi-source grouping held by a Pool.
// Items are normalized tokens in sorted order.
type Candidate struct {
	Items           []string
	Score           float32
	Sources         []string
	CategoryLabel   string
	CategoryType    string
	Explanation     string
	ValidationScore *float32
	Wordplay        bool

	key   string
	order int
	mask  uint32
}

// Key returns the order-independent identity of the candidate's item set.
func (c *Candidate) Key() string { return c.key }

// HasSource reports whether the candidate was proposed by the given source.
func (c *Candidate) HasSource(source string) bool {
	for _, s := range c.Sources {
		if s == source {
			return true
		}
	}
	return false
}

func (c *Candidate) clone() *Candidate {
	out := *c
	out.Items = append([]string(nil), c.Items...)
	out.Sources = append([]string(nil), c.Sources...)
	if c.ValidationScore != nil {
		v := *c.ValidationScore
		out.ValidationScore = &v
	}
	return &out
}

// Rejection records a raw candidate dropped during normalization.
type Rejection struct {
	Items  []string
	Source string
	Reason string
}

// CoverageState describes how a partition was assembled and whether it
// covers the universe.
type CoverageState int

const (
	// CoverNone means no partition could be assembled at all.
	CoverNone CoverageState = iota
	// CoverExact means the exact-cover search found a covering partition.
	CoverExact
	// CoverGreedyExact means the greedy fallback happened to cover exactly.
	CoverGreedyExact
	// CoverGreedyPartial means the greedy fallback produced a partition
	// that does not cover the universe.
	CoverGreedyPartial
)

// CoversUniverse collapses the state to the boolean coverage flag.
func (s CoverageState) CoversUniverse() bool {
	return s == CoverExact || s == CoverGreedyExact
}

func (s CoverageState) String() string {
	switch s {
	case CoverExact:
		return "exact"
	case CoverGreedyExact:
		return "greedy-exact"
	case CoverGreedyPartial:
		return "greedy-partial"
	default:
		return "none"
	}
}

// Partition is an ordered sequence of up to four candidates intended to
// cover the universe exactly once.
type Partition struct {
	Groups []*Candidate
	State  CoverageState
}

func (p *Partition) clone() *Partition {
	out := &Partition{State: p.State}
	out.Groups = make([]*Candidate, len(p.Groups))
	for i, g := range p.Groups {
		out.Groups[i] = g.clone()
	}
	return out
}

// Resolution reports the outcome of a conflict-resolution pass.
type Resolution struct {
	// FullyResolved is true iff every group has exactly four items and the
	// union of the groups is the full universe.
	FullyResolved bool
	// Unassigned lists universe tokens that fit no group above the
	// threshold. They are reported rather than forced into a group.
	Unassigned []string
	// Moved counts tokens removed from a duplicate group or assigned to an
	// under-full group.
	Moved int
	// Notes carries human-readable diagnostics about unresolved conflicts.
	Notes []string
}

// Group is the public per-group result shape.
type Group struct {
	Items         []string `json:"items"`
	Score         float32  `json:"score"`
	CategoryLabel string   `json:"categoryLabel,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"`
}

// Result is the final public result shape returned to callers.
type Result struct {
	Groups         []Group  `json:"groups"`
	CoversUniverse bool     `json:"coversUniverse"`
	State          string   `json:"state"`
	FullyResolved  bool     `json:"fullyResolved"`
	Unassigned     []string `json:"unassigned,omitempty"`
}
