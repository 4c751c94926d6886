package vectordb

import "context"

// Store defines the interface for storing and searching chunks by embedding
// similarity. The store is shared across concurrent conversations; mutating
// operations are serialized against each other and readers never observe a
// partially written index.
type Store interface {
	// Insert embeds and appends the given chunks, persists the index to
	// stable storage, and returns the number inserted. A persistence
	// failure is returned to the caller.
	Insert(ctx context.Context, chunks []Chunk) (int, error)

	// Search returns the k nearest chunks for the query text, highest
	// similarity first. An empty index yields an empty result, never an
	// error. There is no similarity cutoff: the k nearest are returned
	// regardless of score.
	Search(ctx context.Context, query string, k int) ([]Result, error)

	// Clear drops all chunks and deletes the persisted snapshot.
	Clear(ctx context.Context) error

	// Stats returns the stored chunk count and the collection name.
	Stats() Stats
}
