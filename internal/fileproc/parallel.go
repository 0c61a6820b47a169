// Package fileproc provides concurrent file processing utilities.
package fileproc

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// ProcessingError represents an error that occurred while processing a file.
type ProcessingError struct {
	Path string
	Err  error
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e ProcessingError) Unwrap() error {
	return e.Err
}

// ProcessingErrors collects multiple file processing errors.
type ProcessingErrors struct {
	Errors []ProcessingError
	mu     sync.Mutex
}

// Add appends an error to the collection (thread-safe).
func (e *ProcessingErrors) Add(path string, err error) {
	e.mu.Lock()
	e.Errors = append(e.Errors, ProcessingError{Path: path, Err: err})
	e.mu.Unlock()
}

// HasErrors returns true if any errors were collected.
func (e *ProcessingErrors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

// Error implements the error interface.
func (e *ProcessingErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d files failed to process (first: %v)", len(e.Errors), e.Errors[0])
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *ProcessingErrors) Unwrap() []error {
	e.mu.Lock()
	defer e.mu.Unlock()
	errs := make([]error, len(e.Errors))
	for i, pe := range e.Errors {
		errs[i] = pe
	}
	return errs
}

// DefaultWorkerMultiplier is the multiplier applied to NumCPU for worker count.
const DefaultWorkerMultiplier = 2

// ProgressFunc is called after each file is processed.
type ProgressFunc func()

// Outcome is the per-file result of MapFiles, in input order.
type Outcome[T any] struct {
	Path   string
	Result T
	Err    error
}

// MapFiles runs fn for every file on a bounded pool and returns one outcome
// per file in input order. Failures are recorded on the outcome and also
// collected into the returned *ProcessingErrors, which is nil when every
// file succeeded. If maxWorkers is <= 0, defaults to 2x NumCPU. Files not
// yet started when ctx is cancelled fail with ctx.Err().
func MapFiles[T any](ctx context.Context, files []string, maxWorkers int, fn func(context.Context, string) (T, error), onProgress ProgressFunc) ([]Outcome[T], *ProcessingErrors) {
	if len(files) == 0 {
		return nil, nil
	}

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU() * DefaultWorkerMultiplier
	}

	outcomes := make([]Outcome[T], len(files))
	errs := &ProcessingErrors{}

	p := pool.New().WithMaxGoroutines(maxWorkers)
	for i, path := range files {
		p.Go(func() {
			outcomes[i].Path = path

			var (
				result T
				err    error
			)
			if err = ctx.Err(); err == nil {
				result, err = fn(ctx, path)
			}

			if err != nil {
				outcomes[i].Err = err
				errs.Add(path, err)
			} else {
				outcomes[i].Result = result
			}

			if onProgress != nil {
				onProgress()
			}
		})
	}
	p.Wait()

	if !errs.HasErrors() {
		return outcomes, nil
	}
	sort.SliceStable(errs.Errors, func(a, b int) bool {
		return indexOf(files, errs.Errors[a].Path) < indexOf(files, errs.Errors[b].Path)
	})
	return outcomes, errs
}

func indexOf(files []string, path string) int {
	for i, f := range files {
		if f == path {
			return i
		}
	}
	return len(files)
}
