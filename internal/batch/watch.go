package batch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay gives the producer time to finish writing before we read
const settleDelay = 500 * time.Millisecond

// Handler processes one file dropped into the watched directory
type Handler func(ctx context.Context, path string) error

// Watcher monitors a directory and hands newly created subtitle files to
// the handler, at most maxConcurrent at a time.
type Watcher struct {
	dir     string
	handler Handler
	fw      *fsnotify.Watcher
	sem     chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher sets up a watcher on dir. maxConcurrent falls back to 2.
func NewWatcher(dir string, handler Handler, maxConcurrent int) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	if maxConcurrent < 1 {
		maxConcurrent = 2
	}
	return &Watcher{
		dir:     dir,
		handler: handler,
		fw:      fw,
		sem:     make(chan struct{}, maxConcurrent),
	}, nil
}

// Start blocks until the context is cancelled or the watcher breaks. In-flight
// handlers are waited for before returning.
func (w *Watcher) Start(ctx context.Context) error {
	log.Printf("[watch] monitoring %s", w.dir)
	for {
		select {
		case <-ctx.Done():
			w.wg.Wait()
			return ctx.Err()

		case event, ok := <-w.fw.Events:
			if !ok {
				w.wg.Wait()
				return fmt.Errorf("watcher event channel closed")
			}
			if event.Op&fsnotify.Create != fsnotify.Create || !IsSubtitleFile(event.Name) {
				continue
			}
			log.Printf("[watch] new subtitle file: %s", event.Name)
			time.Sleep(settleDelay)

			select {
			case w.sem <- struct{}{}:
			case <-ctx.Done():
				w.wg.Wait()
				return ctx.Err()
			}
			w.wg.Add(1)
			go func(path string) {
				defer w.wg.Done()
				defer func() { <-w.sem }()
				if err := w.handler(ctx, path); err != nil {
					log.Printf("[watch] %s: %v", path, err)
				}
			}(event.Name)

		case err, ok := <-w.fw.Errors:
			if !ok {
				w.wg.Wait()
				return fmt.Errorf("watcher error channel closed")
			}
			log.Printf("[watch] error: %v", err)
		}
	}
}

// Stop closes the underlying filesystem watcher
func (w *Watcher) Stop() error {
	return w.fw.Close()
}

// IsSubtitleFile reports whether the name carries a subtitle extension
func IsSubtitleFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".srt", ".vtt", ".json":
		return true
	}
	return false
}
