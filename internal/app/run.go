package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/specialistvlad/computedgen/internal/fsutil"
	"github.com/specialistvlad/computedgen/internal/watch"
)

var (
	// ErrGeneration is returned when at least one input failed to generate.
	ErrGeneration = errors.New("generation failed")
	// ErrStale is returned in check mode when an output is out of date.
	ErrStale = errors.New("generated files are out of date")
)

const (
	watchWindow   = 150 * time.Millisecond
	watchMaxBatch = 64
)

// Summary counts the outcomes of one generation pass.
type Summary struct {
	Written   int
	Unchanged int
	Removed   int
	Stale     int
	Skipped   int
	Failed    int
	Bytes     int
}

// Err maps the summary to the error Run reports.
func (s Summary) Err() error {
	switch {
	case s.Failed > 0:
		return fmt.Errorf("%w: %d file(s) with errors", ErrGeneration, s.Failed)
	case s.Stale > 0:
		return fmt.Errorf("%w: %d file(s)", ErrStale, s.Stale)
	}
	return nil
}

// Run generates outputs for every input once. In watch mode it then keeps
// regenerating changed inputs until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = a.Context(ctx)
	a.logger.Debug("App.Run method started.", "paths", a.config.Paths)

	files, err := fsutil.FindFiles(a.config.Paths, a.filter)
	if err != nil {
		return fmt.Errorf("failed to discover inputs: %w", err)
	}
	if len(files) == 0 {
		a.logger.Warn("No input files found.", "paths", a.config.Paths)
		return nil
	}
	a.logger.Debug("Inputs discovered.", "count", len(files))

	summary := a.Generate(ctx, files, true)
	if !a.config.Watch {
		return summary.Err()
	}
	if err := summary.Err(); err != nil {
		a.logger.Warn("Initial generation had errors, watching anyway.", "error", err)
	}

	dirs := make([]string, 0, len(files))
	for _, f := range files {
		dirs = append(dirs, filepath.Dir(f))
	}
	return watch.Run(ctx, watch.Config{
		Dirs:     dirs,
		Accept:   a.filter.Accepts,
		Window:   watchWindow,
		MaxBatch: watchMaxBatch,
	}, func(ctx context.Context, paths []string) {
		a.Generate(ctx, paths, false)
	})
}

// Generate runs the pipeline for each file. With allTypes set, every -type
// name must be found in at least one of the files.
func (a *App) Generate(ctx context.Context, files []string, allTypes bool) Summary {
	start := time.Now()
	var summary Summary
	found := make(map[string]bool)
	perFileTypes := allTypes && len(files) == 1

	for _, path := range files {
		res := a.generateFile(ctx, path, found, perFileTypes)
		summary.Bytes += res.size
		switch res.outcome {
		case outcomeWritten:
			summary.Written++
		case outcomeUnchanged:
			summary.Unchanged++
		case outcomeStale:
			summary.Stale++
		case outcomeRemoved:
			summary.Removed++
		case outcomeSkipped:
			summary.Skipped++
		case outcomeFailed:
			summary.Failed++
		}
	}

	if allTypes && !perFileTypes {
		for _, name := range a.config.Types {
			if !found[name] {
				a.logger.Error("Type not found in any input.", "type", name)
				summary.Failed++
			}
		}
	}

	a.logger.Info("Generation finished.",
		"files", len(files),
		"written", summary.Written,
		"unchanged", summary.Unchanged,
		"removed", summary.Removed,
		"stale", summary.Stale,
		"failed", summary.Failed,
		"size", humanize.Bytes(uint64(summary.Bytes)),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return summary
}
