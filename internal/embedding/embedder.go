// Package embedding defines the vectorizer contract. Implementations wrap
// an embedding model as a black box: text in, fixed-dimension vector out.
package embedding

// Embedder converts free text into a numeric vector representation.
// All vectors produced by one instance share the same dimension; remote
// implementations discover it on the first call and keep it fixed for the
// process lifetime.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(text string) ([]float64, error)
	EmbedBatch(texts []string) ([][]float64, error)
}
