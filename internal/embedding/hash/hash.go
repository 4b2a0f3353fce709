// Package hash provides a deterministic, offline embedder that maps token
// hashes into a fixed number of buckets. It carries no semantic model, but
// it is stable across runs and processes, which makes it the default when
// no embedding endpoint is configured and the workhorse for tests.
package hash

import (
	"hash/fnv"
	"regexp"
	"strings"

	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/vecmath"
)

const defaultDimension = 256

// Embedder hashes unigrams and adjacent-token bigrams into buckets and
// L2-normalizes the resulting count vector.
type Embedder struct {
	dimension    int
	tokenPattern *regexp.Regexp
}

// NewEmbedder creates a hashing embedder with the given output dimension.
// Non-positive dimensions fall back to the default.
func NewEmbedder(dimension int) *Embedder {
	if dimension <= 0 {
		dimension = defaultDimension
	}
	return &Embedder{
		dimension:    dimension,
		tokenPattern: regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\p{N}+`),
	}
}

// Name returns the identifier of this embedder implementation.
func (e *Embedder) Name() string { return "hash" }

// Dimension returns the dimensionality of the produced embedding vectors.
func (e *Embedder) Dimension() int { return e.dimension }

// Embed returns a unit vector for the given text. Text with no tokens
// yields the zero vector; callers that need a direction must reject it.
func (e *Embedder) Embed(text string) ([]float64, error) {
	vec := make([]float64, e.dimension)
	tokens := e.tokenPattern.FindAllString(strings.ToLower(text), -1)
	for i, tok := range tokens {
		vec[e.bucket(tok)]++
		if i > 0 {
			vec[e.bucket(tokens[i-1]+" "+tok)]++
		}
	}
	if len(tokens) == 0 {
		return vec, nil
	}
	unit, err := vecmath.Normalize(vec)
	if err != nil {
		return vec, nil
	}
	return unit, nil
}

// EmbedBatch embeds each text in order.
func (e *Embedder) EmbedBatch(texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		vec, err := e.Embed(t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (e *Embedder) bucket(token string) int {
	h := fnv.New64a()
	_, _ = h.Write([]byte(token))
	return int(h.Sum64() % uint64(e.dimension))
}
