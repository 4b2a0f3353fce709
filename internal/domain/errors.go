package domain

import "errors"

// Sentinel errors shared across the retrieval core. Callers classify
// failures with errors.Is; the HTTP layer maps them to status codes.
var (
	// ErrNotReady is returned while the engine or index has not finished
	// (or has failed) initialization.
	ErrNotReady = errors.New("retrieval engine not initialized")

	// ErrEmptyCorpus is returned when there are no documents to search.
	ErrEmptyCorpus = errors.New("corpus is empty")

	// ErrInvalidK is returned for a non-positive result count.
	ErrInvalidK = errors.New("result count must be positive")

	// ErrDimensionMismatch is returned when a vector's length does not
	// match the index dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrDegenerateVector is returned when a zero-norm vector is
	// normalized. A zero vector has no direction and cannot participate
	// in cosine similarity.
	ErrDegenerateVector = errors.New("zero-norm vector cannot be normalized")

	// ErrIndexOutOfRange is returned for a document index outside the
	// corpus bounds.
	ErrIndexOutOfRange = errors.New("document index out of range")
)
