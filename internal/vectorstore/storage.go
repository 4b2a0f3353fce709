// Package vectorstore defines the similarity index contract: a set of
// unit vectors, populated once, answering top-k inner-product queries.
package vectorstore

import "github.com/Gthorpe2274/mocha-emig-clone-4/internal/domain"

// Index stores document vectors and supports top-k inner-product search.
// Build is a one-time operation; the index is read-only afterward, so
// Search may be called concurrently without further coordination.
type Index interface {
	Build(vectors [][]float64) error
	Search(vector []float64, topK int) ([]domain.Hit, error)
	Len() int
	Dimension() int
}
