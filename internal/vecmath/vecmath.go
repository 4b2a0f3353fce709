// Package vecmath holds the small amount of vector arithmetic the
// retrieval core needs: inner products and L2 normalization.
package vecmath

import (
	"math"

	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/domain"
)

// Dot returns the inner product of a and b over their common length.
func Dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// Norm returns the L2 norm of v.
func Norm(v []float64) float64 {
	return math.Sqrt(Dot(v, v))
}

// Normalize returns a copy of v rescaled to unit L2 norm, so that the
// inner product of two normalized vectors equals their cosine similarity.
// A zero-norm vector is rejected with domain.ErrDegenerateVector rather
// than passed through: silently keeping it would corrupt downstream
// cosine semantics.
func Normalize(v []float64) ([]float64, error) {
	norm := Norm(v)
	if norm == 0 {
		return nil, domain.ErrDegenerateVector
	}
	out := make([]float64, len(v))
	for i := range v {
		out[i] = v[i] / norm
	}
	return out, nil
}
