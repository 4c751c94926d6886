package documents

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ziadkadry99/smartsupport/internal/chunker"
	"github.com/ziadkadry99/smartsupport/internal/vectordb"
)

// DefaultExcludes are directory names skipped during directory loads.
var DefaultExcludes = []string{
	".git",
	"node_modules",
	"vendor",
	"__pycache__",
	".venv",
	".idea",
	".vscode",
	".DS_Store",
}

// Ingestor chunks documents and inserts them into the vector store.
type Ingestor struct {
	splitter *chunker.Splitter
	store    vectordb.Store
}

// NewIngestor builds an ingest pipeline over the given store.
func NewIngestor(splitter *chunker.Splitter, store vectordb.Store) *Ingestor {
	return &Ingestor{splitter: splitter, store: store}
}

// AddTexts chunks raw texts and stores them. metadatas is optional and
// aligned by index with texts.
func (in *Ingestor) AddTexts(ctx context.Context, texts []string, metadatas []map[string]string) (int, error) {
	docs := make([]chunker.Document, 0, len(texts))
	for i, text := range texts {
		var meta map[string]string
		if i < len(metadatas) {
			meta = metadatas[i]
		}
		docs = append(docs, chunker.Document{Text: text, Metadata: meta})
	}
	var chunks []vectordb.Chunk
	for _, piece := range in.splitter.SplitDocuments(docs) {
		chunks = append(chunks, vectordb.Chunk{Content: piece.Text, Metadata: piece.Metadata})
	}
	if len(chunks) == 0 {
		return 0, nil
	}
	return in.store.Insert(ctx, chunks)
}

// AddFile loads, chunks and stores one document. source overrides the
// recorded source name; empty means the file's base name.
func (in *Ingestor) AddFile(ctx context.Context, path, source string) (int, error) {
	text, err := Load(path)
	if err != nil {
		return 0, err
	}
	if source == "" {
		source = filepath.Base(path)
	}
	return in.AddTexts(ctx, []string{text}, []map[string]string{{
		"source": source,
		"path":   path,
	}})
}

// FileResult reports one file processed by LoadDirectory.
type FileResult struct {
	Path   string
	Chunks int
	Err    error
}

// LoadDirectory walks dir recursively and ingests every supported file.
// include and exclude are doublestar glob patterns matched against the
// path relative to dir; empty include means everything. Per-file errors
// are reported through onFile (may be nil) and do not stop the walk.
// Returns the total number of chunks added.
func (in *Ingestor) LoadDirectory(ctx context.Context, dir string, include, exclude []string, onFile func(FileResult)) (int, error) {
	total := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && excludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		if !Supported(path) || !matchesInclude(rel, include) || matchesAny(rel, exclude) {
			return nil
		}

		added, loadErr := in.AddFile(ctx, path, "")
		if loadErr != nil {
			log.Printf("documents: loading %s: %v", path, loadErr)
		} else {
			total += added
		}
		if onFile != nil {
			onFile(FileResult{Path: path, Chunks: added, Err: loadErr})
		}
		return nil
	})
	if err != nil {
		return total, fmt.Errorf("load directory %s: %w", dir, err)
	}
	return total, nil
}

func excludedDir(name string) bool {
	for _, excl := range DefaultExcludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return false
}

func matchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(relPath, patterns)
}

// matchesAny checks relPath against the glob patterns, also trying the
// bare filename so "*.md" works at any depth.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.PathMatch(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, filepath.Base(normalized)); err == nil && matched {
			return true
		}
	}
	return false
}
