// Package memory provides the exact in-memory similarity index: a
// brute-force inner-product scan over unit vectors. O(N·D) per query,
// which is the reference behavior at this corpus scale.
package memory

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/domain"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/vecmath"
)

// Index holds the corpus vectors. Populated by a single Build call,
// read-only thereafter.
type Index struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float64
	built     bool
}

// NewIndex creates an empty index.
func NewIndex() *Index { return &Index{} }

// Build stores the given vectors. All vectors must share one dimension;
// the sequence must be non-empty. Build may only be called once.
func (x *Index) Build(vectors [][]float64) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.built {
		return errors.New("index already built")
	}
	if len(vectors) == 0 {
		return fmt.Errorf("build index: %w", domain.ErrEmptyCorpus)
	}
	dim := len(vectors[0])
	if dim == 0 {
		return fmt.Errorf("zero-dimensional vector: %w", domain.ErrDimensionMismatch)
	}
	for i := range vectors {
		if len(vectors[i]) != dim {
			return fmt.Errorf("vector %d has %d components, want %d: %w", i, len(vectors[i]), dim, domain.ErrDimensionMismatch)
		}
	}
	cp := make([][]float64, len(vectors))
	for i, v := range vectors {
		cp[i] = append([]float64(nil), v...)
	}
	x.vectors = cp
	x.dimension = dim
	x.built = true
	return nil
}

// Search returns the topK highest inner products against the stored
// vectors, sorted by descending score. Ties break by ascending document
// index so results are deterministic.
func (x *Index) Search(vector []float64, topK int) ([]domain.Hit, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if !x.built {
		return nil, fmt.Errorf("search: %w", domain.ErrNotReady)
	}
	if topK <= 0 {
		return nil, fmt.Errorf("topK %d: %w", topK, domain.ErrInvalidK)
	}
	if len(vector) != x.dimension {
		return nil, fmt.Errorf("query has %d components, index dimension is %d: %w", len(vector), x.dimension, domain.ErrDimensionMismatch)
	}
	scores := make([]float64, len(x.vectors))
	for i := range x.vectors {
		scores[i] = vecmath.Dot(x.vectors[i], vector)
	}
	idxs := make([]int, len(scores))
	for i := range idxs {
		idxs[i] = i
	}
	sort.Slice(idxs, func(a, b int) bool {
		if scores[idxs[a]] != scores[idxs[b]] {
			return scores[idxs[a]] > scores[idxs[b]]
		}
		return idxs[a] < idxs[b]
	})
	if topK > len(idxs) {
		topK = len(idxs)
	}
	hits := make([]domain.Hit, topK)
	for i := 0; i < topK; i++ {
		hits[i] = domain.Hit{Score: scores[idxs[i]], Index: idxs[i]}
	}
	return hits, nil
}

// Len returns the number of stored vectors.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.vectors)
}

// Dimension returns the vector dimension, zero before Build.
func (x *Index) Dimension() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.dimension
}
