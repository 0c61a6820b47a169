package watch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func newTestWatcher(t *testing.T, paths []string, debounce time.Duration) *Watcher {
	t.Helper()
	w, err := NewWatcher(paths, debounce)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	w.SetOutput(&bytes.Buffer{})
	t.Cleanup(func() { w.Stop() })
	return w
}

func TestNewWatcher(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "data.csv")
	writeFile(t, file, "x\n1\n")

	tests := []struct {
		name     string
		debounce time.Duration
		want     time.Duration
	}{
		{"default debounce", 0, DefaultDebounce},
		{"custom debounce", time.Second, time.Second},
		{"negative debounce defaults", -time.Second, DefaultDebounce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWatcher(t, []string{file, tmpDir}, tt.debounce)

			if w.fsWatcher == nil {
				t.Error("fsWatcher should not be nil")
			}
			if w.debounce != tt.want {
				t.Errorf("debounce = %v, want %v", w.debounce, tt.want)
			}
			if !w.files[file] {
				t.Errorf("file %s should be tracked", file)
			}
			if !w.dirs[tmpDir] {
				t.Errorf("dir %s should be tracked", tmpDir)
			}
		})
	}
}

func TestNewWatcher_Errors(t *testing.T) {
	if _, err := NewWatcher(nil, 0); err == nil {
		t.Error("expected an error with no paths")
	}
	if _, err := NewWatcher([]string{filepath.Join(t.TempDir(), "missing.csv")}, 0); err == nil {
		t.Error("expected an error for a missing path")
	}
}

func TestWatcher_Targets(t *testing.T) {
	tmpDir := t.TempDir()
	a := filepath.Join(tmpDir, "b.csv")
	b := filepath.Join(tmpDir, "a.txt")
	writeFile(t, a, "")
	writeFile(t, b, "")

	w := newTestWatcher(t, []string{a, b}, 0)
	targets := w.Targets()
	if len(targets) != 2 || targets[0] != b || targets[1] != a {
		t.Errorf("Targets() = %v, want sorted [%s %s]", targets, b, a)
	}
}

func TestWatcher_handleEvent(t *testing.T) {
	fileDir := t.TempDir()
	watchedDir := t.TempDir()
	file := filepath.Join(fileDir, "data.csv")
	writeFile(t, file, "x\n1\n")

	w := newTestWatcher(t, []string{file, watchedDir}, time.Second)

	tests := []struct {
		name        string
		event       fsnotify.Event
		wantPending bool
	}{
		{"write to watched file", fsnotify.Event{Name: file, Op: fsnotify.Write}, true},
		{"rename onto watched file", fsnotify.Event{Name: file, Op: fsnotify.Rename}, true},
		{"remove ignored", fsnotify.Event{Name: file, Op: fsnotify.Remove}, false},
		{"chmod ignored", fsnotify.Event{Name: file, Op: fsnotify.Chmod}, false},
		{"sibling of watched file ignored", fsnotify.Event{Name: filepath.Join(fileDir, "other.csv"), Op: fsnotify.Write}, false},
		{"csv in watched dir", fsnotify.Event{Name: filepath.Join(watchedDir, "new.csv"), Op: fsnotify.Create}, true},
		{"txt in watched dir", fsnotify.Event{Name: filepath.Join(watchedDir, "values.txt"), Op: fsnotify.Write}, true},
		{"unsupported extension in watched dir", fsnotify.Event{Name: filepath.Join(watchedDir, "notes.md"), Op: fsnotify.Write}, false},
		{"editor swap file ignored", fsnotify.Event{Name: filepath.Join(watchedDir, ".new.csv.swp"), Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w.mu.Lock()
			w.pending = make(map[string]time.Time)
			w.mu.Unlock()

			w.handleEvent(tt.event)

			w.mu.Lock()
			_, found := w.pending[tt.event.Name]
			w.mu.Unlock()

			if found != tt.wantPending {
				t.Errorf("pending[%v] = %v, want %v", tt.event.Name, found, tt.wantPending)
			}
		})
	}
}

func TestWatcher_processPending(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "data.csv")
	writeFile(t, file, "x\n1\n")

	w := newTestWatcher(t, []string{file}, 50*time.Millisecond)

	done := make(chan string, 1)
	w.SetCallback(func(path string) {
		done <- path
	})

	w.mu.Lock()
	w.pending[file] = time.Now().Add(-100 * time.Millisecond)
	w.mu.Unlock()

	w.processPending()

	select {
	case got := <-done:
		if got != file {
			t.Errorf("callback path = %v, want %v", got, file)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("callback was not called")
	}

	w.mu.Lock()
	_, stillPending := w.pending[file]
	w.mu.Unlock()
	if stillPending {
		t.Error("file should be removed from pending after processing")
	}
}

func TestWatcher_processPending_NotReady(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "data.csv")
	writeFile(t, file, "")

	w := newTestWatcher(t, []string{file}, time.Hour)

	var mu sync.Mutex
	called := false
	w.SetCallback(func(path string) {
		mu.Lock()
		called = true
		mu.Unlock()
	})

	w.mu.Lock()
	w.pending[file] = time.Now()
	w.mu.Unlock()

	w.processPending()
	time.Sleep(10 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if called {
		t.Error("callback should not be called for file not past debounce period")
	}

	w.mu.Lock()
	_, stillPending := w.pending[file]
	w.mu.Unlock()
	if !stillPending {
		t.Error("file should still be in pending")
	}
}

func TestWatcher_processPending_NoCallback(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "data.csv")
	writeFile(t, file, "")

	w := newTestWatcher(t, []string{file}, 50*time.Millisecond)

	w.mu.Lock()
	w.pending[file] = time.Now().Add(-100 * time.Millisecond)
	w.mu.Unlock()

	// Should not panic without callback
	w.processPending()
}

func TestWatcher_StartDetectsChange(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "values.txt")
	writeFile(t, file, "1\n2\n")

	w, err := NewWatcher([]string{file}, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	var out bytes.Buffer
	var outMu sync.Mutex
	w.SetOutput(&lockedWriter{w: &out, mu: &outMu})

	changed := make(chan string, 4)
	w.SetCallback(func(path string) {
		changed <- path
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	// Wait until the directory is registered before writing.
	deadline := time.Now().Add(2 * time.Second)
	for len(w.WatchedDirs()) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	writeFile(t, file, "1\n2\n3\n")

	select {
	case got := <-changed:
		if got != file {
			t.Errorf("callback path = %v, want %v", got, file)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("change was not detected")
	}

	cancel()
	if err := <-errCh; err != context.Canceled {
		t.Errorf("Start() error = %v, want context.Canceled", err)
	}

	outMu.Lock()
	defer outMu.Unlock()
	if !strings.Contains(out.String(), "Watching") {
		t.Errorf("expected a watching banner, got %q", out.String())
	}
}

type lockedWriter struct {
	w  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
