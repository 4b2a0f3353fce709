// Package qdrant implements the similarity index contract over the Qdrant
// REST API. Qdrant's Dot distance on unit vectors matches the in-memory
// index's cosine semantics; exactness then depends on the server's search
// parameters.
package qdrant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/domain"
)

// Index is a minimal REST client to Qdrant. It recreates the collection
// on Build and queries it on Search.
type Index struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	count      int
	built      bool
	client     *http.Client
}

// Config contains connection details for a Qdrant instance.
type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

// NewIndex creates an unbuilt Qdrant-backed index.
func NewIndex(cfg Config) *Index {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Index{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

// Build drops any existing collection, recreates it with Dot distance,
// and upserts one point per vector with the corpus position as payload.
func (x *Index) Build(vectors [][]float64) error {
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
	// Drop a stale collection from a previous process; best-effort.
	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/collections/%s", x.url, x.collection), nil)
	x.setAuth(req)
	if resp, err := x.client.Do(req); err == nil {
		_ = resp.Body.Close()
	}
	create := map[string]any{
		"vectors": map[string]any{
			"size":     dim,
			"distance": "Dot",
		},
	}
	if err := x.putJSON(fmt.Sprintf("%s/collections/%s", x.url, x.collection), create); err != nil {
		return err
	}
	points := make([]map[string]any, len(vectors))
	for i := range vectors {
		points[i] = map[string]any{
			"id":     i,
			"vector": vectors[i],
			"payload": map[string]any{
				"document_index": i,
			},
		}
	}
	body := map[string]any{"points": points}
	if err := x.putJSON(fmt.Sprintf("%s/collections/%s/points?wait=true", x.url, x.collection), body); err != nil {
		return err
	}
	x.dimension = dim
	x.count = len(vectors)
	x.built = true
	return nil
}

// Search queries the collection for the topK nearest points.
func (x *Index) Search(vector []float64, topK int) ([]domain.Hit, error) {
	if !x.built {
		return nil, fmt.Errorf("search: %w", domain.ErrNotReady)
	}
	if topK <= 0 {
		return nil, fmt.Errorf("topK %d: %w", topK, domain.ErrInvalidK)
	}
	if len(vector) != x.dimension {
		return nil, fmt.Errorf("query has %d components, index dimension is %d: %w", len(vector), x.dimension, domain.ErrDimensionMismatch)
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := x.postJSON(fmt.Sprintf("%s/collections/%s/points/search", x.url, x.collection), req, &resp); err != nil {
		return nil, err
	}
	hits := make([]domain.Hit, 0, len(resp.Result))
	for _, r := range resp.Result {
		idx, ok := r.Payload["document_index"].(float64)
		if !ok {
			return nil, errors.New("qdrant point missing document_index payload")
		}
		hits = append(hits, domain.Hit{Score: r.Score, Index: int(idx)})
	}
	return hits, nil
}

// Len returns the number of stored vectors.
func (x *Index) Len() int { return x.count }

// Dimension returns the vector dimension, zero before Build.
func (x *Index) Dimension() int { return x.dimension }

func (x *Index) setAuth(req *http.Request) {
	if x.apiKey != "" {
		req.Header.Set("api-key", x.apiKey)
	}
}

func (x *Index) putJSON(url string, body any) error {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	x.setAuth(req)
	resp, err := x.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (x *Index) postJSON(url string, body any, out any) error {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	x.setAuth(req)
	resp, err := x.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
