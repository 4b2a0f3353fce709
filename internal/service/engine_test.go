package service

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/corpus"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/domain"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/embedding/hash"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/vectorstore/memory"
)

// fakeEmbedder returns canned vectors keyed by exact text and records the
// texts it was asked to embed.
type fakeEmbedder struct {
	vectors map[string][]float64
	texts   []string
}

func (f *fakeEmbedder) Name() string   { return "fake" }
func (f *fakeEmbedder) Dimension() int { return 2 }

func (f *fakeEmbedder) Embed(text string) ([]float64, error) {
	f.texts = append(f.texts, text)
	v, ok := f.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no canned vector for %q", text)
	}
	return v, nil
}

func (f *fakeEmbedder) EmbedBatch(texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i, t := range texts {
		v, err := f.Embed(t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func testDocs() []domain.Document {
	return []domain.Document{
		{Content: "doc a", Source: "src a", Country: "Portugal", Category: "visa_requirements"},
		{Content: "doc b", Source: "src b", Country: "Spain", Category: "cost_of_living"},
		{Content: "doc c", Source: "src c", Country: "Mexico", Category: "visa_requirements"},
	}
}

func builtEngine(t *testing.T, queryVectors map[string][]float64) (*Engine, *fakeEmbedder) {
	t.Helper()
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"doc a": {1, 0},
		"doc b": {0, 1},
		"doc c": {0.7, 0.7},
	}}
	for text, vec := range queryVectors {
		emb.vectors[text] = vec
	}
	engine := NewEngine(emb, memory.NewIndex())
	if err := engine.Build(testDocs()); err != nil {
		t.Fatalf("build: %v", err)
	}
	return engine, emb
}

func TestEngine_RetrieveBeforeBuild(t *testing.T) {
	engine := NewEngine(&fakeEmbedder{vectors: map[string][]float64{}}, memory.NewIndex())
	if _, err := engine.Retrieve("anything", "", "", 5); !errors.Is(err, domain.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if engine.Ready() {
		t.Error("engine reports ready before build")
	}
}

func TestEngine_BuildEmptyCorpus(t *testing.T) {
	engine := NewEngine(&fakeEmbedder{vectors: map[string][]float64{}}, memory.NewIndex())
	err := engine.Build(nil)
	if !errors.Is(err, domain.ErrEmptyCorpus) {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
	if engine.Ready() {
		t.Error("engine reports ready after failed build")
	}
	if engine.LastError() == "" {
		t.Error("expected last error to be recorded")
	}
}

func TestEngine_BuildFailureLeavesNotReady(t *testing.T) {
	// Embedder knows no document texts, so the bulk embed fails.
	engine := NewEngine(&fakeEmbedder{vectors: map[string][]float64{}}, memory.NewIndex())
	if err := engine.Build(testDocs()); err == nil {
		t.Fatal("expected build error")
	}
	if engine.Ready() {
		t.Error("engine reports ready after failed build")
	}
	if _, err := engine.Retrieve("q", "", "", 5); !errors.Is(err, domain.ErrNotReady) {
		t.Errorf("expected ErrNotReady after failed build, got %v", err)
	}
}

func TestEngine_RetrieveRanking(t *testing.T) {
	engine, _ := builtEngine(t, map[string][]float64{"query": {1, 0}})

	results, err := engine.Retrieve("query", "", "", 2)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].DocumentIndex != 0 || math.Abs(results[0].Score-1.0) > 1e-6 {
		t.Errorf("first result = %+v, want document 0 score 1.0", results[0])
	}
	if results[1].DocumentIndex != 2 || math.Abs(results[1].Score-math.Sqrt2/2) > 1e-6 {
		t.Errorf("second result = %+v, want document 2 score ~0.7071", results[1])
	}
	for i, r := range results {
		if r.Rank != i+1 {
			t.Errorf("result %d has rank %d", i, r.Rank)
		}
	}
}

func TestEngine_ResultsEchoDocumentMetadata(t *testing.T) {
	engine, _ := builtEngine(t, map[string][]float64{"query Germany visa requirements": {1, 0}})

	// The request's country/category bias the embedding; the returned
	// metadata comes from the matched documents themselves.
	results, err := engine.Retrieve("query", "Germany", "visa_requirements", 1)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if results[0].Country != "Portugal" || results[0].Category != "visa_requirements" {
		t.Errorf("metadata = %q/%q, want the matched document's Portugal/visa_requirements", results[0].Country, results[0].Category)
	}
	if results[0].Source != "src a" || results[0].Content != "doc a" {
		t.Errorf("result payload = %+v, want document 0 fields", results[0])
	}
}

func TestEngine_QueryEnhancement(t *testing.T) {
	engine, emb := builtEngine(t, map[string][]float64{
		"visa requirements Portugal cost of living": {1, 0},
	})

	if _, err := engine.Retrieve("visa requirements", "Portugal", "cost_of_living", 1); err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	last := emb.texts[len(emb.texts)-1]
	if last != "visa requirements Portugal cost of living" {
		t.Errorf("embedded %q, want the enhanced query", last)
	}
}

func TestEngine_QueryEnhancementSkipsGeneral(t *testing.T) {
	engine, emb := builtEngine(t, map[string][]float64{"visa requirements": {1, 0}})

	if _, err := engine.Retrieve("visa requirements", "", "general", 1); err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	last := emb.texts[len(emb.texts)-1]
	if last != "visa requirements" {
		t.Errorf("embedded %q, want the bare query for category general", last)
	}
}

func TestEngine_MaxResultsClampedToCorpusSize(t *testing.T) {
	engine, _ := builtEngine(t, map[string][]float64{"query": {1, 0}})

	results, err := engine.Retrieve("query", "", "", 50)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected all 3 documents, got %d", len(results))
	}
}

func TestEngine_InvalidMaxResults(t *testing.T) {
	engine, _ := builtEngine(t, map[string][]float64{"query": {1, 0}})

	for _, k := range []int{0, -1} {
		if _, err := engine.Retrieve("query", "", "", k); !errors.Is(err, domain.ErrInvalidK) {
			t.Errorf("maxResults=%d: expected ErrInvalidK, got %v", k, err)
		}
	}
}

func TestEngine_DegenerateQueryVector(t *testing.T) {
	engine, _ := builtEngine(t, map[string][]float64{"nonsense": {0, 0}})

	_, err := engine.Retrieve("nonsense", "", "", 1)
	if !errors.Is(err, domain.ErrDegenerateVector) {
		t.Fatalf("expected ErrDegenerateVector, got %v", err)
	}
}

func TestEngine_VectorizationErrorPropagates(t *testing.T) {
	engine, _ := builtEngine(t, nil)

	if _, err := engine.Retrieve("unknown text", "", "", 1); err == nil {
		t.Fatal("expected vectorization error for unknown query")
	}
}

func TestEngine_NormalizesCorpusVectors(t *testing.T) {
	// Unnormalized document vectors must not inflate scores.
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"doc a": {5, 0},
		"doc b": {0, 3},
		"doc c": {2, 2},
		"query": {1, 0},
	}}
	engine := NewEngine(emb, memory.NewIndex())
	if err := engine.Build(testDocs()); err != nil {
		t.Fatalf("build: %v", err)
	}
	results, err := engine.Retrieve("query", "", "", 1)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if math.Abs(results[0].Score-1.0) > 1e-6 {
		t.Errorf("score = %v, want 1.0 after normalization", results[0].Score)
	}
}

func TestEngine_Deterministic(t *testing.T) {
	engine := NewEngine(hash.NewEmbedder(0), memory.NewIndex())
	if err := engine.Build(corpus.Default()); err != nil {
		t.Fatalf("build: %v", err)
	}
	first, err := engine.Retrieve("visa requirements", "Portugal", "cost_of_living", 5)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	second, err := engine.Retrieve("visa requirements", "Portugal", "cost_of_living", 5)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical retrievals returned different results")
	}
}

func TestEngine_IndexAlignment(t *testing.T) {
	docs := corpus.Default()
	engine := NewEngine(hash.NewEmbedder(0), memory.NewIndex())
	if err := engine.Build(docs); err != nil {
		t.Fatalf("build: %v", err)
	}
	results, err := engine.Retrieve("visa requirements income", "", "", len(docs))
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(results) != len(docs) {
		t.Fatalf("expected %d results, got %d", len(docs), len(results))
	}
	for _, r := range results {
		want := docs[r.DocumentIndex]
		if r.Content != want.Content || r.Source != want.Source {
			t.Errorf("result for index %d does not match corpus document", r.DocumentIndex)
		}
	}
}

func TestEngine_DocumentCount(t *testing.T) {
	engine, _ := builtEngine(t, nil)
	if n := engine.DocumentCount(); n != 3 {
		t.Errorf("DocumentCount = %d, want 3", n)
	}
}
