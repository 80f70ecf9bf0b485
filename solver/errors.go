package solver

import "errors"

var (
	// ErrUniverseSize indicates the universe does not contain exactly 16 tokens.
	ErrUniverseSize = errors.New("solver: universe must contain exactly 16 tokens")
	// ErrDuplicateToken indicates the universe contains a case-insensitive duplicate.
	ErrDuplicateToken = errors.New("solver: universe contains duplicate token")
	// ErrEmptyToken indicates a universe token normalizes to the empty string.
	ErrEmptyToken = errors.New("solver: universe contains empty token")
	// ErrInsufficientPool indicates the pool holds fewer than four candidates.
	ErrInsufficientPool = errors.New("solver: pool has fewer than 4 candidates")
	// ErrNilPartition indicates a nil partition was passed to the resolver.
	ErrNilPartition = errors.New("solver: partition is nil")
)
