package vectordb

// UnknownSource is the source label applied to chunks stored without one.
const UnknownSource = "Unknown"

// Chunk is a piece of knowledge-base content to be stored and searched.
// Metadata always carries a "source" key once the chunk is stored.
type Chunk struct {
	ID       string
	Content  string
	Metadata map[string]string
}

// Source returns the chunk's source metadata.
func (c Chunk) Source() string {
	if s := c.Metadata["source"]; s != "" {
		return s
	}
	return UnknownSource
}

// Result pairs a chunk with its similarity score.
type Result struct {
	Chunk      Chunk
	Similarity float32
}

// Stats describes the state of a store.
type Stats struct {
	Count      int
	Collection string
}
