package retriever

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ziadkadry99/smartsupport/internal/vectordb"
)

// fakeStore returns canned search results and records the requested k.
type fakeStore struct {
	results []vectordb.Result
	err     error
	lastK   int
}

func (f *fakeStore) Insert(ctx context.Context, chunks []vectordb.Chunk) (int, error) {
	return len(chunks), nil
}

func (f *fakeStore) Search(ctx context.Context, query string, k int) ([]vectordb.Result, error) {
	f.lastK = k
	return f.results, f.err
}

func (f *fakeStore) Clear(ctx context.Context) error { return nil }

func (f *fakeStore) Stats() vectordb.Stats { return vectordb.Stats{Count: len(f.results)} }

func chunk(content, source string) vectordb.Result {
	return vectordb.Result{Chunk: vectordb.Chunk{
		Content:  content,
		Metadata: map[string]string{"source": source},
	}}
}

func TestQueryJoinsContextInOrder(t *testing.T) {
	store := &fakeStore{results: []vectordb.Result{
		chunk("most relevant", "a.md"),
		chunk("second", "b.md"),
		chunk("third", "a.md"),
	}}
	r := New(store, 3)

	context_, sources, err := r.Query(context.Background(), "question", 0)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}

	parts := strings.Split(context_, ContextSeparator)
	if len(parts) != 3 {
		t.Fatalf("expected 3 context parts, got %d", len(parts))
	}
	if parts[0] != "most relevant" || parts[2] != "third" {
		t.Error("context parts not in relevance order")
	}

	if len(sources) != 2 {
		t.Fatalf("expected 2 deduplicated sources, got %d", len(sources))
	}
	if sources[0] != "a.md" || sources[1] != "b.md" {
		t.Errorf("sources not in first-seen order: %v", sources)
	}
}

func TestQueryEmptyIndex(t *testing.T) {
	r := New(&fakeStore{}, 3)

	context_, sources, err := r.Query(context.Background(), "question", 0)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if context_ != "" {
		t.Errorf("expected empty context, got %q", context_)
	}
	if sources != nil {
		t.Errorf("expected nil sources, got %v", sources)
	}
}

func TestQueryDefaultsTopK(t *testing.T) {
	store := &fakeStore{}
	r := New(store, 7)

	if _, _, err := r.Query(context.Background(), "q", 0); err != nil {
		t.Fatalf("Query: %v", err)
	}
	if store.lastK != 7 {
		t.Errorf("expected default k=7, got %d", store.lastK)
	}

	if _, _, err := r.Query(context.Background(), "q", 2); err != nil {
		t.Fatalf("Query: %v", err)
	}
	if store.lastK != 2 {
		t.Errorf("expected explicit k=2, got %d", store.lastK)
	}
}

func TestQueryPropagatesSearchErrors(t *testing.T) {
	r := New(&fakeStore{err: errors.New("index offline")}, 3)

	if _, _, err := r.Query(context.Background(), "q", 0); err == nil {
		t.Error("expected error from failing store")
	}
}

func TestQueryMissingSourceFallsBackToUnknown(t *testing.T) {
	store := &fakeStore{results: []vectordb.Result{
		{Chunk: vectordb.Chunk{Content: "orphan chunk", Metadata: map[string]string{}}},
	}}
	r := New(store, 3)

	_, sources, err := r.Query(context.Background(), "q", 0)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(sources) != 1 || sources[0] != vectordb.UnknownSource {
		t.Errorf("expected [Unknown], got %v", sources)
	}
}
