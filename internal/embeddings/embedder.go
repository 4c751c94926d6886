// Package embeddings turns text into vectors for the knowledge base.
// Indexing and querying must go through the same Embedder so that support
// documents and customer questions share one embedding space.
package embeddings

import "context"

// Embedder maps texts to fixed-dimension float vectors.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions is the vector width the model produces.
	Dimensions() int

	// Name identifies the model, used in startup banners and stats.
	Name() string
}
