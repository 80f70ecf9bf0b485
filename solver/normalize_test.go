package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func letterUniverse(t *testing.T) *Universe {
	t.Helper()
	u, err := NewUniverse([]string{
		"A", "B", "C", "D", "E", "F", "G", "H",
		"I", "J", "K", "L", "M", "N", "O", "P",
	})
	require.NoError(t, err)
	return u
}

func TestNormalizeToken(t *testing.T) {
	assert.Equal(t, "FAST", NormalizeToken("  fast "))
	assert.Equal(t, "ICE CREAM", NormalizeToken("ice   cream"))
	assert.Equal(t, "", NormalizeToken("   "))
}

func TestNewUniverse(t *testing.T) {
	u := letterUniverse(t)
	assert.Equal(t, UniverseSize, len(u.Tokens()))
	assert.True(t, u.Contains("a"))
	assert.Equal(t, 15, u.Index("p"))
	assert.Equal(t, -1, u.Index("Z"))
}

func TestNewUniverseWrongSize(t *testing.T) {
	_, err := NewUniverse([]string{"A", "B"})
	require.ErrorIs(t, err, ErrUniverseSize)
}

func TestNewUniverseDuplicateCaseInsensitive(t *testing.T) {
	_, err := NewUniverse([]string{
		"A", "a", "C", "D", "E", "F", "G", "H",
		"I", "J", "K", "L", "M", "N", "O", "P",
	})
	require.ErrorIs(t, err, ErrDuplicateToken)
}

func TestNewUniverseEmptyToken(t *testing.T) {
	_, err := NewUniverse([]string{
		"A", " ", "C", "D", "E", "F", "G", "H",
		"I", "J", "K", "L", "M", "N", "O", "P",
	})
	require.ErrorIs(t, err, ErrEmptyToken)
}

func TestPoolKeyOrderIndependent(t *testing.T) {
	assert.Equal(t, poolKey([]string{"B", "A", "D", "C"}), poolKey([]string{"D", "C", "B", "A"}))
	assert.NotEqual(t, poolKey([]string{"A", "B", "C", "D"}), poolKey([]string{"A", "B", "C", "E"}))
}

func TestItemMask(t *testing.T) {
	u := letterUniverse(t)
	mask, ok := u.itemMask([]string{"A", "B", "C", "D"})
	require.True(t, ok)
	assert.Equal(t, uint32(0b1111), mask)

	_, ok = u.itemMask([]string{"A", "B", "C", "Z"})
	assert.False(t, ok)
}
