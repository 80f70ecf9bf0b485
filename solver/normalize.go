package solver

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeToken canonicalizes a puzzle token: NFKC normalization, whitespace
// collapse and upper-casing. Comparison throughout the engine is performed on
// normalized tokens.
func NormalizeToken(tok string) string {
	tok = strings.TrimSpace(tok)
	tok = strings.Join(strings.Fields(tok), " ")
	return strings.ToUpper(norm.NFKC.String(tok))
}

// Universe is the fixed ordered collection of the 16 puzzle tokens.
type Universe struct {
	tokens []string
	index  map[string]int
}

// NewUniverse validates and normalizes the 16 puzzle tokens. Duplicate or
// empty tokens are an input error, never silently repaired.
func NewUniverse(tokens []string) (*Universe, error) {
	if len(tokens) != UniverseSize {
		return nil, fmt.Errorf("%w: got %d", ErrUniverseSize, len(tokens))
	}
	u := &Universe{
		tokens: make([]string, 0, UniverseSize),
		index:  make(map[string]int, UniverseSize),
	}
	for _, raw := range tokens {
		tok := NormalizeToken(raw)
		if tok == "" {
			return nil, fmt.Errorf("%w: %q", ErrEmptyToken, raw)
		}
		if _, ok := u.index[tok]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateToken, tok)
		}
		u.index[tok] = len(u.tokens)
		u.tokens = append(u.tokens, tok)
	}
	return u, nil
}

// Tokens returns the normalized tokens in their original order.
func (u *Universe) Tokens() []string {
	return append([]string(nil), u.tokens...)
}

// Contains reports whether the normalized form of tok is part of the universe.
func (u *Universe) Contains(tok string) bool {
	_, ok := u.index[NormalizeToken(tok)]
	return ok
}

// Index returns the position of the token within the universe, or -1.
func (u *Universe) Index(tok string) int {
	if i, ok := u.index[NormalizeToken(tok)]; ok {
		return i
	}
	return -1
}

// fullMask is the bitmask covering all 16 universe positions.
const fullMask uint32 = 1<<UniverseSize - 1

// itemMask folds a normalized item set into a universe bitmask. The second
// return is false when any item lies outside the universe.
func (u *Universe) itemMask(items []string) (uint32, bool) {
	var mask uint32
	for _, it := range items {
		i, ok := u.index[it]
		if !ok {
			return 0, false
		}
		mask |= 1 << uint(i)
	}
	return mask, true
}

// poolKey builds the case-folded, order-independent identity of an item set.
func poolKey(items []string) string {
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x1f")
}
