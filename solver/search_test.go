package solver

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testGroup struct {
	items      []string
	score      float32
	catType    string
	validation float32 // <= 0 means absent
}

// poolOf builds a pool directly, bypassing calibration, so search behaviour
// can be tested against exact scores.
func poolOf(t *testing.T, u *Universe, groups ...testGroup) *Pool {
	t.Helper()
	p := &Pool{}
	for i, g := range groups {
		mask, ok := u.itemMask(g.items)
		require.True(t, ok, "test group %d outside universe", i)
		c := &Candidate{
			Items:        append([]string(nil), g.items...),
			Score:        g.score,
			CategoryType: g.catType,
			key:          poolKey(g.items),
			order:        i,
			mask:         mask,
		}
		if g.validation > 0 {
			v := g.validation
			c.ValidationScore = &v
		}
		p.cands = append(p.cands, c)
	}
	return p
}

func coveringGroups() []testGroup {
	return []testGroup{
		{items: []string{"A", "B", "C", "D"}, score: 0.9},
		{items: []string{"E", "F", "G", "H"}, score: 0.85},
		{items: []string{"I", "J", "K", "L"}, score: 0.8},
		{items: []string{"M", "N", "O", "P"}, score: 0.75},
		{items: []string{"A", "E", "I", "M"}, score: 0.5},
	}
}

func TestSolveExactRecovery(t *testing.T) {
	u := letterUniverse(t)
	svc := newTestService()
	pool := poolOf(t, u, coveringGroups()...)

	part, err := svc.Solve(pool, u, 20, 5000)
	require.NoError(t, err)
	require.Equal(t, CoverExact, part.State)
	require.Len(t, part.Groups, 4)
	assert.Equal(t, []string{"A", "B", "C", "D"}, part.Groups[0].Items)
	assert.Equal(t, []string{"E", "F", "G", "H"}, part.Groups[1].Items)
	assert.Equal(t, []string{"I", "J", "K", "L"}, part.Groups[2].Items)
	assert.Equal(t, []string{"M", "N", "O", "P"}, part.Groups[3].Items)
	assert.True(t, part.State.CoversUniverse())
}

func TestSolveDeterminism(t *testing.T) {
	u := letterUniverse(t)
	svc := newTestService()

	first, err := svc.Solve(poolOf(t, u, coveringGroups()...), u, 20, 5000)
	require.NoError(t, err)
	second, err := svc.Solve(poolOf(t, u, coveringGroups()...), u, 20, 5000)
	require.NoError(t, err)
	assert.True(t, reflect.DeepEqual(first, second))
}

func TestSolvePrefersHigherComposite(t *testing.T) {
	u := letterUniverse(t)
	svc := newTestService()

	// Two complete covers exist; the lower-scoring one enumerates first and
	// must lose to the higher composite found later in the scan.
	pool := poolOf(t, u,
		testGroup{items: []string{"A", "B", "C", "D"}, score: 0.9},
		testGroup{items: []string{"E", "F", "G", "H"}, score: 0.85},
		testGroup{items: []string{"I", "J", "K", "L"}, score: 0.1},
		testGroup{items: []string{"M", "N", "O", "P"}, score: 0.1},
		testGroup{items: []string{"I", "J", "K", "M"}, score: 0.9},
		testGroup{items: []string{"L", "N", "O", "P"}, score: 0.9},
	)

	part, err := svc.Solve(pool, u, 20, 5000)
	require.NoError(t, err)
	require.Equal(t, CoverExact, part.State)
	keys := map[string]bool{}
	for _, g := range part.Groups {
		keys[g.Key()] = true
	}
	assert.True(t, keys[poolKey([]string{"I", "J", "K", "M"})])
	assert.True(t, keys[poolKey([]string{"L", "N", "O", "P"})])
	assert.False(t, keys[poolKey([]string{"I", "J", "K", "L"})])
}

func TestSolveDiversityBonus(t *testing.T) {
	svc := newTestService()

	diverse := []*Candidate{
		{Score: 0.5, CategoryType: CategorySemantic},
		{Score: 0.5, CategoryType: CategoryWordplay},
		{Score: 0.5, CategoryType: CategoryFillBlank},
		{Score: 0.5, CategoryType: CategorySemantic},
	}
	uniform := []*Candidate{
		{Score: 0.5, CategoryType: CategorySemantic},
		{Score: 0.5, CategoryType: CategorySemantic},
		{Score: 0.5, CategoryType: CategorySemantic},
		{Score: 0.5, CategoryType: CategorySemantic},
	}
	// sum 2.0; diverse: 2.0*1.1 + 0.2*0.5 = 2.3; uniform: 2.0 + 0.1 = 2.1.
	assert.InDelta(t, 2.3, float64(svc.compositeScore(diverse...)), 1e-4)
	assert.InDelta(t, 2.1, float64(svc.compositeScore(uniform...)), 1e-4)
}

func TestSolveValidationScoreInComposite(t *testing.T) {
	svc := newTestService()
	v := float32(1.0)
	with := []*Candidate{{Score: 0.5, ValidationScore: &v}, {Score: 0.5, ValidationScore: &v}, {Score: 0.5, ValidationScore: &v}, {Score: 0.5, ValidationScore: &v}}
	without := []*Candidate{{Score: 0.5}, {Score: 0.5}, {Score: 0.5}, {Score: 0.5}}
	assert.InDelta(t, 2.2, float64(svc.compositeScore(with...)), 1e-4)
	assert.InDelta(t, 2.1, float64(svc.compositeScore(without...)), 1e-4)
}

func TestSolveZeroBudgetFallsBackToGreedy(t *testing.T) {
	u := letterUniverse(t)
	svc := newTestService()

	part, err := svc.Solve(poolOf(t, u, coveringGroups()...), u, 20, 0)
	require.NoError(t, err)
	require.Equal(t, CoverGreedyExact, part.State)
	require.Len(t, part.Groups, 4)
	assert.True(t, part.State.CoversUniverse())
}

func TestSolveInsufficientPool(t *testing.T) {
	u := letterUniverse(t)
	svc := newTestService()

	pool := poolOf(t, u,
		testGroup{items: []string{"A", "B", "C", "D"}, score: 0.9},
		testGroup{items: []string{"E", "F", "G", "H"}, score: 0.8},
	)
	_, err := svc.Solve(pool, u, 20, 5000)
	require.ErrorIs(t, err, ErrInsufficientPool)
}

func TestSolveNoCoverFallsBackToGreedy(t *testing.T) {
	u := letterUniverse(t)
	svc := newTestService()

	// No combination unions to the universe: P is never covered.
	pool := poolOf(t, u,
		testGroup{items: []string{"A", "B", "C", "D"}, score: 0.9},
		testGroup{items: []string{"E", "F", "G", "H"}, score: 0.85},
		testGroup{items: []string{"I", "J", "K", "L"}, score: 0.8},
		testGroup{items: []string{"M", "N", "O", "A"}, score: 0.75},
	)
	part, err := svc.Solve(pool, u, 20, 5000)
	require.NoError(t, err)
	assert.Equal(t, CoverGreedyPartial, part.State)
	assert.False(t, part.State.CoversUniverse())
}

func TestSearchBudgetIsHardCap(t *testing.T) {
	u := letterUniverse(t)
	svc := newTestService()

	pool := poolOf(t, u, coveringGroups()...)

	// Budget zero inspects nothing.
	part, ok := svc.searchExactCover(pool, 20, 0)
	assert.False(t, ok)
	assert.Nil(t, part)

	// Budget one inspects exactly the first combination, which happens to be
	// the cover here.
	part, ok = svc.searchExactCover(pool, 20, 1)
	require.True(t, ok)
	assert.Equal(t, CoverExact, part.State)
}
