// Package retriever turns "get relevant context for a question" into one
// operation over the vector store.
package retriever

import (
	"context"
	"fmt"
	"strings"

	"github.com/ziadkadry99/smartsupport/internal/vectordb"
)

// ContextSeparator visibly delimits chunks in the combined context text.
const ContextSeparator = "\n\n---\n\n"

// Retriever answers context queries against a vector store. Queries go
// through the store's own embedding function, the same one used at indexing
// time.
type Retriever struct {
	store vectordb.Store
	topK  int
}

// New creates a Retriever. topK is the default result count when Query is
// called with k <= 0.
func New(store vectordb.Store, topK int) *Retriever {
	if topK <= 0 {
		topK = 3
	}
	return &Retriever{store: store, topK: topK}
}

// Query returns the combined context text for the question, in descending
// relevance order, together with the deduplicated source list in first-seen
// order. An empty index yields ("", nil, nil).
func (r *Retriever) Query(ctx context.Context, question string, k int) (string, []string, error) {
	if k <= 0 {
		k = r.topK
	}

	results, err := r.store.Search(ctx, question, k)
	if err != nil {
		return "", nil, fmt.Errorf("searching knowledge base: %w", err)
	}
	if len(results) == 0 {
		return "", nil, nil
	}

	parts := make([]string, 0, len(results))
	var sources []string
	seen := make(map[string]bool)

	for _, res := range results {
		parts = append(parts, res.Chunk.Content)
		source := res.Chunk.Source()
		if !seen[source] {
			seen[source] = true
			sources = append(sources, source)
		}
	}

	return strings.Join(parts, ContextSeparator), sources, nil
}
