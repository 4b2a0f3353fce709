// Package service orchestrates retrieval: query enhancement,
// vectorization, normalization, index search, and result assembly.
package service

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/corpus"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/domain"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/embedding"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/vecmath"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/vectorstore"
)

// DefaultMaxResults is the result count used when a caller does not ask
// for a specific number.
const DefaultMaxResults = 5

// Engine is the retrieval core. Lifecycle: NewEngine → Build → ready.
// After a successful Build the engine is read-only and safe for
// concurrent Retrieve calls; a failed Build leaves it in the pre-init
// state with the error captured for the readiness probe.
type Engine struct {
	embedder embedding.Embedder
	index    vectorstore.Index

	mu      sync.RWMutex
	docs    *corpus.Store
	ready   bool
	lastErr error
}

// NewEngine creates an engine that is not yet ready to serve queries.
func NewEngine(embedder embedding.Embedder, index vectorstore.Index) *Engine {
	return &Engine{embedder: embedder, index: index}
}

// Build embeds the corpus, normalizes every vector, and populates the
// index. It must complete before any Retrieve succeeds; queries arriving
// earlier observe the not-ready state.
func (e *Engine) Build(docs []domain.Document) error {
	start := time.Now()
	store := corpus.NewStore(docs)
	if store.Len() == 0 {
		return e.fail(fmt.Errorf("build: %w", domain.ErrEmptyCorpus))
	}
	slog.Info("building retrieval index", "embedder", e.embedder.Name(), "documents", store.Len())

	vectors, err := e.embedder.EmbedBatch(store.Contents())
	if err != nil {
		return e.fail(fmt.Errorf("vectorize corpus: %w", err))
	}
	if len(vectors) != store.Len() {
		return e.fail(fmt.Errorf("embedded %d documents, expected %d", len(vectors), store.Len()))
	}
	for i := range vectors {
		unit, err := vecmath.Normalize(vectors[i])
		if err != nil {
			return e.fail(fmt.Errorf("normalize document %d: %w", i, err))
		}
		vectors[i] = unit
	}
	if err := e.index.Build(vectors); err != nil {
		return e.fail(fmt.Errorf("build index: %w", err))
	}

	e.mu.Lock()
	e.docs = store
	e.ready = true
	e.lastErr = nil
	e.mu.Unlock()

	slog.Info("retrieval index ready",
		"documents", store.Len(),
		"dimension", e.index.Dimension(),
		"took", time.Since(start),
	)
	return nil
}

func (e *Engine) fail(err error) error {
	e.mu.Lock()
	e.lastErr = err
	e.mu.Unlock()
	slog.Error("retrieval engine initialization failed", "error", err)
	return err
}

// Retrieve returns the maxResults most similar documents to the query,
// ranked by descending cosine similarity. Country and category bias the
// embedding by extending the query text; they do not filter candidates.
func (e *Engine) Retrieve(query, country, category string, maxResults int) ([]domain.RetrievedResult, error) {
	e.mu.RLock()
	ready, docs := e.ready, e.docs
	e.mu.RUnlock()
	if !ready {
		return nil, domain.ErrNotReady
	}
	if maxResults <= 0 {
		return nil, fmt.Errorf("max results %d: %w", maxResults, domain.ErrInvalidK)
	}
	if docs.Len() == 0 {
		return nil, domain.ErrEmptyCorpus
	}
	k := min(maxResults, docs.Len())

	vec, err := e.embedder.Embed(enhanceQuery(query, country, category))
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}
	unit, err := vecmath.Normalize(vec)
	if err != nil {
		return nil, fmt.Errorf("normalize query: %w", err)
	}

	hits, err := e.index.Search(unit, k)
	if err != nil {
		return nil, err
	}
	results := make([]domain.RetrievedResult, len(hits))
	for i, h := range hits {
		doc, err := docs.Get(h.Index)
		if err != nil {
			return nil, err
		}
		results[i] = domain.RetrievedResult{
			Content:       doc.Content,
			Source:        doc.Source,
			Country:       doc.Country,
			Category:      doc.Category,
			Score:         h.Score,
			Rank:          i + 1,
			DocumentIndex: h.Index,
		}
	}
	return results, nil
}

// Ready reports whether the engine has finished initialization.
func (e *Engine) Ready() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ready
}

// LastError returns the most recent initialization error, or "".
func (e *Engine) LastError() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.lastErr == nil {
		return ""
	}
	return e.lastErr.Error()
}

// DocumentCount returns the number of indexed documents.
func (e *Engine) DocumentCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.docs == nil {
		return 0
	}
	return e.docs.Len()
}

// enhanceQuery appends the country and, unless it is the catch-all
// "general", the category (underscores spelled out) to the query text.
// Plain concatenation: it steers the embedding toward the right documents
// without restricting the candidate set.
func enhanceQuery(query, country, category string) string {
	enhanced := query
	if country != "" {
		enhanced += " " + country
	}
	if category != "" && category != "general" {
		enhanced += " " + strings.ReplaceAll(category, "_", " ")
	}
	return enhanced
}
