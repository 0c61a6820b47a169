// Package watch re-runs a callback when watched dataset files change.
package watch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/panbanda/statcalc/pkg/dataset"
)

// DefaultDebounce is used when a non-positive debounce is given.
const DefaultDebounce = 500 * time.Millisecond

// Watcher monitors dataset files for changes and triggers a callback once
// a file has been quiet for the debounce period.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	files     map[string]bool // watched files, by cleaned absolute path
	dirs      map[string]bool // watched directories; any dataset file inside counts
	out       io.Writer
	callback  func(path string)
	runMu     sync.Mutex // serializes callbacks
	mu        sync.Mutex
	pending   map[string]time.Time
}

// NewWatcher creates a watcher for the given files or directories.
func NewWatcher(paths []string, debounce time.Duration) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}

	w := &Watcher{
		debounce: debounce,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		out:      os.Stdout,
		pending:  make(map[string]time.Time),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("invalid path %s: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			w.dirs[abs] = true
		} else {
			w.files[abs] = true
		}
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w.fsWatcher = fsWatcher
	return w, nil
}

// SetCallback sets the function to call when a file changes.
func (w *Watcher) SetCallback(cb func(path string)) {
	w.callback = cb
}

// SetOutput redirects status messages, which go to stdout by default.
func (w *Watcher) SetOutput(out io.Writer) {
	w.out = out
}

// Start begins watching and blocks until ctx is done or the watcher stops.
func (w *Watcher) Start(ctx context.Context) error {
	// Editors often replace files by rename, so the parent directory is
	// watched rather than the file itself.
	added := make(map[string]bool)
	for dir := range w.watchDirs() {
		if added[dir] {
			continue
		}
		if err := w.fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		added[dir] = true
	}

	color.New(color.FgCyan).Fprintf(w.out, "Watching %s for changes...\n", strings.Join(w.Targets(), ", "))
	color.New(color.FgCyan).Fprintln(w.out, "Press Ctrl+C to stop")
	fmt.Fprintln(w.out)

	go w.processDebounced(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			color.New(color.FgRed).Fprintf(w.out, "Watch error: %v\n", err)
		}
	}
}

func (w *Watcher) watchDirs() map[string]bool {
	dirs := make(map[string]bool, len(w.dirs)+len(w.files))
	for d := range w.dirs {
		dirs[d] = true
	}
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	return dirs
}

// Targets returns the watched files and directories, sorted.
func (w *Watcher) Targets() []string {
	targets := make([]string, 0, len(w.files)+len(w.dirs))
	for f := range w.files {
		targets = append(targets, f)
	}
	for d := range w.dirs {
		targets = append(targets, d)
	}
	sort.Strings(targets)
	return targets
}

// matches reports whether a changed path is one we care about.
func (w *Watcher) matches(path string) bool {
	if w.files[path] {
		return true
	}
	if w.dirs[filepath.Dir(path)] {
		_, err := dataset.FormatForPath(path)
		return err == nil
	}
	return false
}

// handleEvent processes a filesystem event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	path := filepath.Clean(event.Name)
	if !w.matches(path) {
		return
	}

	w.mu.Lock()
	w.pending[path] = time.Now()
	w.mu.Unlock()
}

// processDebounced processes pending changes after debounce period.
func (w *Watcher) processDebounced(ctx context.Context) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.processPending()
		}
	}
}

// processPending processes files that have been stable for the debounce period.
func (w *Watcher) processPending() {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	var ready []string

	for path, lastMod := range w.pending {
		if now.Sub(lastMod) >= w.debounce {
			ready = append(ready, path)
		}
	}

	for _, path := range ready {
		delete(w.pending, path)
		if w.callback != nil {
			go w.runCallback(path)
		}
	}
}

// runCallback executes the callback for a changed file.
func (w *Watcher) runCallback(path string) {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	// A rename can leave the path briefly absent.
	if _, err := os.Stat(path); err != nil {
		return
	}

	color.New(color.FgYellow).Fprintf(w.out, "\nFile changed: %s\n", path)
	fmt.Fprintln(w.out, strings.Repeat("-", 40))

	w.callback(path)

	fmt.Fprintln(w.out)
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// WatchedDirs returns the directories registered with the OS watcher.
func (w *Watcher) WatchedDirs() []string {
	return w.fsWatcher.WatchList()
}
