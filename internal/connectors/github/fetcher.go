package github

import (
	"context"
	"sync"

	"github.com/doclane/doclane-cli/internal/core/domain"
	"github.com/doclane/doclane-cli/internal/logger"
)

// DefaultBatchSize bounds how many content fetches run concurrently.
const DefaultBatchSize = 10

// ContentSource is the slice of the GitHub API the fetcher needs.
// *Client implements it; tests provide stubs.
type ContentSource interface {
	ChangedPaths(ctx context.Context, base, head string) ([]string, error)
	Content(ctx context.Context, path, ref string) (string, error)
}

// Fetcher resolves a revision range into file contents, batch by batch.
// Batches run strictly in sequence; fetches within a batch run concurrently.
type Fetcher struct {
	src       ContentSource
	pacer     BatchPacer
	batchSize int
}

// NewFetcher creates a fetcher. Non-positive batchSize and nil pacer select
// the defaults.
func NewFetcher(src ContentSource, batchSize int, pacer BatchPacer) *Fetcher {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if pacer == nil {
		pacer = NewPacer(DefaultBatchInterval)
	}
	return &Fetcher{src: src, pacer: pacer, batchSize: batchSize}
}

// FetchChanged returns one RepositoryFile for every path the comparison
// lists, in listing order. A per-file fetch failure substitutes empty
// content and never aborts the batch; a comparison failure is fatal.
func (f *Fetcher) FetchChanged(ctx context.Context, base, head string) ([]domain.RepositoryFile, error) {
	paths, err := f.src.ChangedPaths(ctx, base, head)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}
	logger.Debug("comparison %s...%s lists %d changed files", base, head, len(paths))

	files := make([]domain.RepositoryFile, len(paths))
	for start := 0; start < len(paths); start += f.batchSize {
		if start > 0 {
			if err := f.pacer.Wait(ctx); err != nil {
				return nil, err
			}
		}

		end := min(start+f.batchSize, len(paths))
		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				content, err := f.src.Content(ctx, paths[i], head)
				if err != nil {
					logger.Warn("could not fetch %s, substituting empty content: %v", paths[i], err)
					content = ""
				}
				// Each goroutine writes only its own index.
				files[i] = domain.RepositoryFile{Path: paths[i], Content: content}
			}(i)
		}
		wg.Wait()
	}

	return files, nil
}
