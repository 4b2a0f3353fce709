package domain

// Document is a single corpus passage with its provenance metadata.
// Documents are immutable once loaded and are identified by their 0-based
// position in the corpus store; that position is the join key to the
// document's vector in the similarity index.
type Document struct {
	Content  string `yaml:"content" json:"content"`
	Source   string `yaml:"source" json:"source"`
	Country  string `yaml:"country,omitempty" json:"country,omitempty"`
	Category string `yaml:"category,omitempty" json:"category,omitempty"`
}

// Hit pairs an inner-product score with the corpus position of the
// matching document.
type Hit struct {
	Score float64
	Index int
}

// RetrievedResult is one ranked retrieval answer. Constructed per query.
type RetrievedResult struct {
	Content       string
	Source        string
	Country       string
	Category      string
	Score         float64
	Rank          int // 1-based position in the result list
	DocumentIndex int // original corpus position
}
