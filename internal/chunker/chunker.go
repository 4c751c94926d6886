// Package chunker splits raw document text into overlapping fixed-size
// windows, the unit of storage and retrieval for the knowledge base.
package chunker

import "strings"

// Document is raw text with per-document metadata, as produced by a loader.
type Document struct {
	Text     string
	Metadata map[string]string
}

// Chunk is one bounded-length slice of a source document. Metadata is an
// independent copy of the parent document's metadata.
type Chunk struct {
	Text     string
	Metadata map[string]string
}

// Splitter produces overlapping chunks of at most chunkSize runes, where
// each chunk after the first begins exactly overlap runes before the end of
// its predecessor. Concatenating the chunks with the overlap removed
// reconstructs the source text.
type Splitter struct {
	chunkSize int
	overlap   int
}

// separators are tried in order when choosing a cut point, preferring
// paragraph, line, sentence and word boundaries over a hard rune cut.
var separators = []string{"\n\n", "\n", ". ", " "}

// New creates a Splitter. Invalid sizes fall back to 1000/200.
func New(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = chunkSize / 5
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}
}

// Split chunks a single text. Empty input yields zero chunks; input no
// longer than the chunk size yields exactly one chunk equal to the input.
func (s *Splitter) Split(text string, meta map[string]string) []Chunk {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= s.chunkSize {
		return []Chunk{{Text: text, Metadata: copyMeta(meta)}}
	}

	var chunks []Chunk
	start := 0
	for {
		end := start + s.chunkSize
		if end >= len(runes) {
			chunks = append(chunks, Chunk{Text: string(runes[start:]), Metadata: copyMeta(meta)})
			return chunks
		}

		end = s.cutPoint(runes, start, end)
		chunks = append(chunks, Chunk{Text: string(runes[start:end]), Metadata: copyMeta(meta)})
		start = end - s.overlap
	}
}

// SplitDocuments chunks every document in order.
func (s *Splitter) SplitDocuments(docs []Document) []Chunk {
	var chunks []Chunk
	for _, doc := range docs {
		chunks = append(chunks, s.Split(doc.Text, doc.Metadata)...)
	}
	return chunks
}

// cutPoint picks the end of the chunk starting at start, whose hard limit is
// hardEnd. It scans the back half of the window for the highest-priority
// separator, cutting just after it; with no separator it cuts at hardEnd.
// The returned end always exceeds start+overlap so the next chunk makes
// progress.
func (s *Splitter) cutPoint(runes []rune, start, hardEnd int) int {
	minEnd := start + s.chunkSize/2
	if minEnd <= start+s.overlap {
		minEnd = start + s.overlap + 1
	}
	if minEnd >= hardEnd {
		return hardEnd
	}

	window := string(runes[minEnd:hardEnd])
	for _, sep := range separators {
		if idx := strings.LastIndex(window, sep); idx >= 0 {
			return minEnd + len([]rune(window[:idx+len(sep)]))
		}
	}
	return hardEnd
}

func copyMeta(meta map[string]string) map[string]string {
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}
