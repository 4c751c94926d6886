package documents

import (
	"context"
	"log"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a knowledge directory and ingests files as they are
// created or modified, so dropping a document into the directory updates
// the knowledge base without a restart.
type Watcher struct {
	watcher  *fsnotify.Watcher
	ingestor *Ingestor
	settle   time.Duration
}

// NewWatcher builds a watcher over the given ingest pipeline.
func NewWatcher(ingestor *Ingestor) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:  fsw,
		ingestor: ingestor,
		settle:   200 * time.Millisecond,
	}, nil
}

// Watch monitors dir until ctx is cancelled. Deletes are ignored: the
// vector store keeps already-ingested chunks.
func (w *Watcher) Watch(ctx context.Context, dir string) error {
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	log.Printf("documents: watching %s", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 || !Supported(event.Name) {
				continue
			}
			// Editors fire several events per save; let the file settle.
			time.Sleep(w.settle)
			added, err := w.ingestor.AddFile(ctx, event.Name, "")
			if err != nil {
				log.Printf("documents: watch ingest %s: %v", event.Name, err)
				continue
			}
			log.Printf("documents: ingested %s (%d chunks)", event.Name, added)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("documents: watch error: %v", err)
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
