package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/dkoosis/foreport/pkg/mocha"
	"github.com/dkoosis/foreport/pkg/results"
)

// MalformedFileError marks a report file that could not be read or decoded.
type MalformedFileError struct {
	Path string
	Err  error
}

func (e *MalformedFileError) Error() string {
	return fmt.Sprintf("malformed report %s: %v", e.Path, e.Err)
}

func (e *MalformedFileError) Unwrap() error { return e.Err }

type loaded struct {
	file results.FileResult
	err  error
}

// Load reads and normalizes paths with at most parallel files in flight, then
// folds them in the given order. Malformed files are logged once each and
// listed in Model.Skipped. Only context cancellation returns an error.
func Load(ctx context.Context, fs afero.Fs, paths []string, parallel int, logger *log.Logger) (results.Model, error) {
	return load(ctx, fs, paths, parallel, logger, NoopProgressor())
}

func load(ctx context.Context, fs afero.Fs, paths []string, parallel int, logger *log.Logger, progress Progressor) (results.Model, error) {
	if parallel < 1 {
		parallel = 1
	}
	slots := make([]loaded, len(paths))
	total := int64(len(paths))
	var (
		mu   sync.Mutex
		done int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := loadFile(fs, p)
			slots[i] = loaded{file: f, err: err}
			mu.Lock()
			done++
			progress(done, total)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results.Model{}, err
	}

	agg := results.NewAggregator()
	var skipped []string
	for i, s := range slots {
		if s.err != nil {
			logger.Warn("skipping malformed report", "file", paths[i], "err", s.err)
			skipped = append(skipped, paths[i])
			continue
		}
		logger.Debug("loaded report", "file", paths[i], "tests", s.file.Increment.Tests)
		agg.Add(s.file)
	}

	m := agg.Model()
	m.Skipped = skipped
	return m, nil
}

func loadFile(fs afero.Fs, path string) (results.FileResult, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return results.FileResult{}, &MalformedFileError{Path: path, Err: err}
	}
	doc, err := mocha.Decode(data)
	if err != nil {
		return results.FileResult{}, &MalformedFileError{Path: path, Err: err}
	}
	return doc.Normalize(path), nil
}
