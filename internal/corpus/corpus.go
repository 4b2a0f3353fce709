// Package corpus holds the ordered, read-only document collection the
// similarity index is built over. Element i of the corpus and vector i of
// the index always describe the same document.
package corpus

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/domain"
)

// Store is an ordered sequence of documents, read-only after construction.
type Store struct {
	docs []domain.Document
}

// NewStore copies the given documents into a read-only store.
func NewStore(docs []domain.Document) *Store {
	cp := append([]domain.Document(nil), docs...)
	return &Store{docs: cp}
}

// Get returns the document at the given corpus position.
func (s *Store) Get(index int) (domain.Document, error) {
	if index < 0 || index >= len(s.docs) {
		return domain.Document{}, fmt.Errorf("index %d with corpus size %d: %w", index, len(s.docs), domain.ErrIndexOutOfRange)
	}
	return s.docs[index], nil
}

// Len returns the number of documents in the store.
func (s *Store) Len() int { return len(s.docs) }

// Contents returns the document texts in corpus order, for embedding.
func (s *Store) Contents() []string {
	texts := make([]string, len(s.docs))
	for i := range s.docs {
		texts[i] = s.docs[i].Content
	}
	return texts
}

// Load reads documents from a YAML file. An empty path returns the
// built-in default corpus. Documents are validated at load time so that
// malformed entries fail startup instead of polluting the index.
func Load(path string) ([]domain.Document, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var docs []domain.Document
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}
	for i := range docs {
		if docs[i].Content == "" {
			return nil, fmt.Errorf("corpus %s: document %d has no content", path, i)
		}
		if docs[i].Source == "" {
			return nil, fmt.Errorf("corpus %s: document %d has no source", path, i)
		}
	}
	return docs, nil
}
