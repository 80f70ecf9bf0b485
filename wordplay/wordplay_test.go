package wordplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameSplits(t *testing.T) {
	splits := NameSplits("JACKAL")
	require.NotEmpty(t, splits)
	assert.Contains(t, splits, NameSplit{First: "JACK", Second: "AL"})

	assert.Empty(t, NameSplits("XYZZY"))
	assert.Empty(t, NameSplits("AL")) // too short to split
}

func TestAffixes(t *testing.T) {
	prefix, suffix := Affixes("UNDOING")
	assert.Equal(t, "UN", prefix)
	assert.Equal(t, "ING", suffix)

	prefix, suffix = Affixes("CAT")
	assert.Empty(t, prefix)
	assert.Empty(t, suffix)

	// A token that is only a suffix is not flagged as carrying one.
	_, suffix = Affixes("ING")
	assert.Empty(t, suffix)
}

func TestSoundex(t *testing.T) {
	assert.Equal(t, "R250", Soundex("REIGN"))
	assert.Equal(t, "R500", Soundex("RAIN"))
	assert.Equal(t, "R500", Soundex("REIN"))
	assert.Equal(t, "", Soundex(""))
	assert.Len(t, Soundex("CHRISTOPHER"), 4)
}

func TestHomophoneGroups(t *testing.T) {
	groups := HomophoneGroups([]string{"RAIN", "REIN", "SNOW", "FOOT"})
	require.Len(t, groups, 1)
	assert.ElementsMatch(t, []string{"RAIN", "REIN"}, groups[0])
}

func TestCompoundPatterns(t *testing.T) {
	patterns := CompoundPatterns([]string{"BASKET", "FOOT", "SNOW", "EYE", "CHAIR"})
	require.NotEmpty(t, patterns)

	var ball *CompoundPattern
	for i := range patterns {
		if patterns[i].Anchor == "BALL" {
			ball = &patterns[i]
		}
	}
	require.NotNil(t, ball)
	assert.Equal(t, "___ BALL", ball.Pattern)
	assert.ElementsMatch(t, []string{"BASKET", "FOOT", "SNOW", "EYE"}, ball.Words)
}

func TestCompoundPatternsNeedThreeWords(t *testing.T) {
	assert.Empty(t, CompoundPatterns([]string{"BASKET", "FOOT", "CHAIR", "TABLE"}))
}

func TestAnalyzeAndHasWordplay(t *testing.T) {
	f := Analyze([]string{"JACKAL", "BASKET", "FOOT", "SNOW", "EYE", "CHAIR"})

	assert.True(t, f.HasWordplay("jackal"))
	assert.True(t, f.HasWordplay("BASKET"))
	assert.False(t, f.HasWordplay("CHAIR"))
	assert.Contains(t, f.NameSplits, "JACKAL")
}

func TestFitsBlank(t *testing.T) {
	assert.True(t, FitsBlank("BASKET", "___ BALL"))
	assert.True(t, FitsBlank("basket", "___ ball"))
	assert.False(t, FitsBlank("CHAIR", "___ BALL"))
	assert.False(t, FitsBlank("BASKET", "UNKNOWN PATTERN"))
}

func TestFormat(t *testing.T) {
	f := Analyze([]string{"JACKAL", "BASKET", "FOOT", "SNOW", "EYE"})
	out := f.Format()
	assert.Contains(t, out, "JACKAL = JACK + AL")
	assert.Contains(t, out, "___ BALL")

	empty := Analyze([]string{"CHAIR"})
	assert.Equal(t, "No obvious wordplay patterns detected.", empty.Format())
}
