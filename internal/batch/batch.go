// Package batch checks many files concurrently while keeping each file's
// outcome independent of the others.
package batch

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/samcharles93/ggmlcheck/internal/ggml"
	"github.com/samcharles93/ggmlcheck/internal/logger"
	"github.com/samcharles93/ggmlcheck/internal/resolve"
)

// Result is the outcome for one input path. Exactly one of Header and Err
// is set.
type Result struct {
	Path   string
	Header *ggml.Header
	Err    error
}

// Checker resolves and decodes files.
type Checker struct {
	// Jobs bounds concurrent checks. Zero or less means GOMAXPROCS.
	Jobs     int
	Extended bool
	Logger   logger.Logger
}

// FileError is a per-file failure reported against the path as given.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return e.Path + ": " + e.Reason()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Reason describes the failure without naming any path.
func (e *FileError) Reason() string {
	var pe *resolve.PathError
	if errors.As(e.Err, &pe) {
		return pe.Reason
	}
	return e.Err.Error()
}

// Check resolves a single path and decodes its header. The returned header
// and any *FileError report the path as given, not the symlink target.
func (c *Checker) Check(path string) (*ggml.Header, error) {
	target, err := resolve.Path(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	h, err := ggml.CheckFile(target, ggml.Options{Extended: c.Extended})
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	h.Path = path
	return h, nil
}

// Run checks every path and returns results in input order. Per-file
// failures are recorded in Result.Err; the batch always completes unless ctx
// is cancelled, in which case unscheduled paths carry ctx.Err().
func (c *Checker) Run(ctx context.Context, paths []string) []Result {
	log := c.Logger
	if log == nil {
		log = logger.FromContext(ctx)
	}
	jobs := c.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(paths))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, p := range paths {
		results[i].Path = p
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		g.Go(func() error {
			h, err := c.Check(p)
			if err != nil {
				log.Debug("check failed", "path", p, "error", err)
				results[i].Err = err
				return nil
			}
			log.Debug("checked", "path", p, "format", h.Prologue.Format.String())
			results[i].Header = h
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Failed counts results with an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
