package vectordb

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	chromem "github.com/philippgille/chromem-go"

	"github.com/ziadkadry99/smartsupport/internal/embeddings"
)

// ChromemStore implements Store using chromem-go with a snapshot file under
// the data directory. Every mutating operation exports a fresh snapshot
// before returning, so a crash loses at most the in-flight batch.
type ChromemStore struct {
	mu         sync.RWMutex
	db         *chromem.DB
	collection *chromem.Collection
	name       string
	snapshot   string
	embedFunc  chromem.EmbeddingFunc
}

// NewChromemStore creates a store for the named collection, restoring the
// snapshot from dataDir when one exists. A missing or corrupt snapshot is
// logged and the store starts empty.
func NewChromemStore(embedder embeddings.Embedder, dataDir, collection string) (*ChromemStore, error) {
	ef := embeddings.ToChromemFunc(embedder)
	s := &ChromemStore{
		db:        chromem.NewDB(),
		name:      collection,
		snapshot:  filepath.Join(dataDir, collection+".gob.gz"),
		embedFunc: ef,
	}

	if _, err := os.Stat(s.snapshot); err == nil {
		if err := s.db.ImportFromFile(s.snapshot, ""); err != nil {
			log.Printf("vectordb: could not load snapshot %s, starting empty: %v", s.snapshot, err)
		} else {
			s.collection = s.db.GetCollection(collection, ef)
		}
	}

	if s.collection == nil {
		col, err := s.db.GetOrCreateCollection(collection, nil, ef)
		if err != nil {
			return nil, fmt.Errorf("create collection: %w", err)
		}
		s.collection = col
	}

	return s, nil
}

func (s *ChromemStore) Insert(ctx context.Context, chunks []Chunk) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	docs := make([]chromem.Document, len(chunks))
	for i, c := range chunks {
		id := c.ID
		if id == "" {
			id = uuid.NewString()
		}
		meta := make(map[string]string, len(c.Metadata)+1)
		for k, v := range c.Metadata {
			meta[k] = v
		}
		if meta["source"] == "" {
			meta["source"] = UnknownSource
		}
		docs[i] = chromem.Document{
			ID:       id,
			Content:  c.Content,
			Metadata: meta,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.collection.AddDocuments(ctx, docs, 1); err != nil {
		return 0, fmt.Errorf("add documents: %w", err)
	}

	if err := s.persistLocked(); err != nil {
		return 0, err
	}

	return len(docs), nil
}

func (s *ChromemStore) Search(ctx context.Context, query string, k int) ([]Result, error) {
	s.mu.RLock()
	col := s.collection
	s.mu.RUnlock()

	if k <= 0 {
		k = 3
	}

	// chromem-go requires nResults <= collection size.
	count := col.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := col.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	out := make([]Result, len(results))
	for i, r := range results {
		out[i] = Result{
			Chunk: Chunk{
				ID:       r.ID,
				Content:  r.Content,
				Metadata: r.Metadata,
			},
			Similarity: r.Similarity,
		}
	}
	return out, nil
}

func (s *ChromemStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.DeleteCollection(s.name); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}

	col, err := s.db.GetOrCreateCollection(s.name, nil, s.embedFunc)
	if err != nil {
		return fmt.Errorf("recreate collection: %w", err)
	}
	s.collection = col

	if err := os.Remove(s.snapshot); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}

func (s *ChromemStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Count:      s.collection.Count(),
		Collection: s.name,
	}
}

func (s *ChromemStore) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.snapshot), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := s.db.ExportToFile(s.snapshot, true, ""); err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}
	return nil
}
