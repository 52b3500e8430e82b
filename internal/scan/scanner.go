// Package scan drives the extract, parse, walk pipeline over a candidate
// list and aggregates the classified result.
package scan

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/Sumatoshi-tech/pyimports/internal/notebook"
	"github.com/Sumatoshi-tech/pyimports/internal/pathset"
	"github.com/Sumatoshi-tech/pyimports/internal/pysrc"
	"github.com/Sumatoshi-tech/pyimports/pkg/importmodel"
)

// ExtractionError reports a file whose importable source could not be
// produced: unreadable file or malformed notebook container.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Options configure a Scanner.
type Options struct {
	// Workers is the number of files processed concurrently. Values below
	// one mean sequential processing.
	Workers int
	// ValidateNotebooks enables structural schema validation of notebook
	// containers before extraction.
	ValidateNotebooks bool
	// Logger receives per-file skip diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

// Scanner runs the per-file pipeline and merges the results into a single
// import index. Per-file failures are diagnostics, never fatal.
type Scanner struct {
	parser            *pysrc.Parser
	log               *slog.Logger
	workers           int
	validateNotebooks bool
}

// Stats counts per-file outcomes of a scan.
type Stats struct {
	Scanned int
	Skipped int
}

// New creates a Scanner.
func New(opts Options) *Scanner {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	return &Scanner{
		parser:            pysrc.NewParser(),
		log:               logger,
		workers:           workers,
		validateNotebooks: opts.ValidateNotebooks,
	}
}

// Scan processes every candidate and returns the merged import index. Files
// that fail extraction or parsing are skipped with a diagnostic log entry;
// the index covers the files that parsed. The returned index is complete
// before any classification runs.
func (s *Scanner) Scan(ctx context.Context, candidates []pathset.Candidate) (*importmodel.Index, Stats, error) {
	if s.workers > 1 && len(candidates) > 1 {
		return s.scanParallel(ctx, candidates)
	}

	return s.scanSequential(ctx, candidates)
}

func (s *Scanner) scanSequential(ctx context.Context, candidates []pathset.Candidate) (*importmodel.Index, Stats, error) {
	merged := importmodel.NewIndex()

	var stats Stats

	for _, c := range candidates {
		if ctx.Err() != nil {
			return nil, stats, ctx.Err()
		}

		idx, err := s.scanFile(ctx, c)
		if err != nil {
			s.logSkip(c, err)
			stats.Skipped++

			continue
		}

		stats.Scanned++
		merged.Merge(idx)
	}

	return merged, stats, nil
}

// scanParallel fans candidates out to a worker pool. Each file produces an
// independent partial index; partials are merged in input order afterwards,
// so the result is identical to a sequential scan at any worker count.
func (s *Scanner) scanParallel(ctx context.Context, candidates []pathset.Candidate) (*importmodel.Index, Stats, error) {
	results := make([]*importmodel.Index, len(candidates))
	jobs := make(chan int)

	var wg sync.WaitGroup

	for range s.workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range jobs {
				idx, err := s.scanFile(ctx, candidates[i])
				if err != nil {
					s.logSkip(candidates[i], err)

					continue
				}

				results[i] = idx
			}
		}()
	}

	for i := range candidates {
		jobs <- i
	}

	close(jobs)
	wg.Wait()

	if ctx.Err() != nil {
		return nil, Stats{}, ctx.Err()
	}

	merged := importmodel.NewIndex()

	var stats Stats

	for _, idx := range results {
		if idx == nil {
			stats.Skipped++

			continue
		}

		stats.Scanned++
		merged.Merge(idx)
	}

	return merged, stats, nil
}

// scanFile runs extract -> parse -> walk for one candidate and returns its
// private partial index.
func (s *Scanner) scanFile(ctx context.Context, c pathset.Candidate) (*importmodel.Index, error) {
	src, err := s.extract(c)
	if err != nil {
		return nil, err
	}

	tree, err := s.parser.Parse(ctx, c.Path, src)
	if err != nil {
		return nil, err
	}

	defer tree.Close()

	return pysrc.CollectImports(tree, c.Path), nil
}

// extract produces the importable source for a candidate, applying notebook
// preprocessing when the candidate is a notebook document.
func (s *Scanner) extract(c pathset.Candidate) ([]byte, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, &ExtractionError{Path: c.Path, Err: err}
	}

	if c.Format != pathset.FormatNotebook {
		return data, nil
	}

	if s.validateNotebooks {
		validateErr := notebook.Validate(data)
		if validateErr != nil {
			return nil, &ExtractionError{Path: c.Path, Err: validateErr}
		}
	}

	src, err := notebook.ExtractSource(data)
	if err != nil {
		return nil, &ExtractionError{Path: c.Path, Err: err}
	}

	return []byte(src), nil
}

func (s *Scanner) logSkip(c pathset.Candidate, err error) {
	s.log.Debug("skipping file",
		"path", c.Path,
		"format", c.Format.String(),
		"error", err,
	)
}
