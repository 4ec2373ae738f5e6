package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"rsift/app/feed"
)

const debounceDelay = 200 * time.Millisecond

// Pipeline is the part of the feed processor the watcher drives.
type Pipeline interface {
	Run() error
	InputPath() string
}

var _ Pipeline = (*feed.Processor)(nil)

// Watcher re-runs the filtering pipeline whenever the input document
// changes. The parent directory is watched rather than the file itself, so
// site generators and editors that replace the file via rename are still
// caught.
type Watcher struct {
	processor Pipeline
	fsWatcher *fsnotify.Watcher
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func NewWatcher(processor Pipeline) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}

	dir := filepath.Dir(processor.InputPath())
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		processor: processor,
		fsWatcher: fsWatcher,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.loop()

	slog.Info("Watching for changes", "input", w.processor.InputPath())
}

func (w *Watcher) Stop() {
	w.cancel()
	w.fsWatcher.Close()
	w.wg.Wait()
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	// Site generators emit several writes in a burst; run once after the
	// burst settles.
	var debounce *time.Timer
	var debounceC <-chan time.Time

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isInputEvent(event) {
				continue
			}

			slog.Debug("Input change detected", "op", event.Op.String(), "path", event.Name)

			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
				debounceC = debounce.C
			} else {
				// A timer that already fired leaves its tick in the channel;
				// drain it before Reset or the stale tick triggers an extra run.
				if !debounce.Stop() {
					select {
					case <-debounceC:
					default:
					}
				}
				debounce.Reset(debounceDelay)
			}

		case <-debounceC:
			debounce = nil
			debounceC = nil

			if err := w.processor.Run(); err != nil {
				slog.Error("Re-filtering failed", "error", err)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			slog.Error("Filesystem watcher error", "error", err)
		}
	}
}

func (w *Watcher) isInputEvent(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != filepath.Base(w.processor.InputPath()) {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Rename)
}
