package pagination

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds batch fetcher configuration
type Config struct {
	// MaxConcurrency is the maximum number of parallel requests
	MaxConcurrency int
	// Timeout per page fetch, zero for none
	Timeout time.Duration
	// PageSize is the number of items requested per page
	PageSize int
	// Logger defaults to the global logger tagged component=pagination
	Logger *zerolog.Logger
}

// DefaultConfig returns a conservative configuration for the public PokeAPI
func DefaultConfig() Config {
	return Config{
		MaxConcurrency: 5,
		Timeout:        15 * time.Second,
		PageSize:       100,
	}
}

// PageFetcher fetches a single limit/offset window of a collection
type PageFetcher[T any] interface {
	// FetchPage returns the items of the window and the collection's total count
	FetchPage(ctx context.Context, limit, offset int) (items []T, total int, err error)
}

// PageFetcherFunc adapts a function to PageFetcher
type PageFetcherFunc[T any] func(ctx context.Context, limit, offset int) ([]T, int, error)

// FetchPage implements PageFetcher
func (f PageFetcherFunc[T]) FetchPage(ctx context.Context, limit, offset int) ([]T, int, error) {
	return f(ctx, limit, offset)
}

// pageResult is the outcome of one page fetch
type pageResult[T any] struct {
	offset int
	items  []T
}

// BatchFetcher walks a whole collection with a pool of workers
type BatchFetcher[T any] struct {
	fetcher PageFetcher[T]
	config  Config
	logger  zerolog.Logger
}

// NewBatchFetcher creates a new batch fetcher
func NewBatchFetcher[T any](fetcher PageFetcher[T], config Config) *BatchFetcher[T] {
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 5
	}
	if config.PageSize <= 0 {
		config.PageSize = 100
	}

	logger := log.With().Str("component", "pagination").Logger()
	if config.Logger != nil {
		logger = *config.Logger
	}

	return &BatchFetcher[T]{
		fetcher: fetcher,
		config:  config,
		logger:  logger,
	}
}

// FetchAll fetches every page and returns the items in collection order.
// The first failing page aborts the walk; no partial result is returned.
func (bf *BatchFetcher[T]) FetchAll(ctx context.Context) ([]T, error) {
	start := time.Now()

	// First page tells us the collection size
	first, total, err := bf.fetchPage(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch first page: %w", err)
	}

	pageSize := bf.config.PageSize
	totalPages := 1
	if total > pageSize {
		totalPages = (total + pageSize - 1) / pageSize
	}

	bf.logger.Debug().
		Int("total", total).
		Int("total_pages", totalPages).
		Msg("Starting parallel page fetch")

	// Single page optimization
	if totalPages == 1 {
		bf.logger.Debug().
			Int("items", len(first)).
			Dur("duration", time.Since(start)).
			Msg("Fetch complete (single page)")
		return first, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pages := make(map[int][]T, totalPages)
	pages[0] = first

	offsetQueue := make(chan int, totalPages-1)
	for page := 1; page < totalPages; page++ {
		offsetQueue <- page * pageSize
	}
	close(offsetQueue)

	pageResults := make(chan pageResult[T], totalPages-1)
	errs := make(chan error, bf.config.MaxConcurrency)

	workers := bf.config.MaxConcurrency
	if workers > totalPages-1 {
		workers = totalPages - 1
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go bf.worker(ctx, offsetQueue, pageResults, errs, &wg, i)
	}

	go func() {
		wg.Wait()
		close(pageResults)
		close(errs)
	}()

	var firstErr error
	for pageResults != nil || errs != nil {
		select {
		case result, ok := <-pageResults:
			if !ok {
				pageResults = nil
				continue
			}
			pages[result.offset] = result.items
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if firstErr == nil {
				firstErr = err
				cancel()
			}
		}
	}

	if firstErr != nil {
		bf.logger.Warn().
			Err(firstErr).
			Int("fetched_pages", len(pages)).
			Int("total_pages", totalPages).
			Msg("Page fetch failed, discarding results")
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil && len(pages) < totalPages {
		return nil, err
	}

	items := make([]T, 0, total)
	for page := 0; page < totalPages; page++ {
		items = append(items, pages[page*pageSize]...)
	}

	bf.logger.Debug().
		Int("pages", totalPages).
		Int("items", len(items)).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")

	return items, nil
}

func (bf *BatchFetcher[T]) fetchPage(ctx context.Context, offset int) ([]T, int, error) {
	if bf.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, bf.config.Timeout)
		defer cancel()
	}
	return bf.fetcher.FetchPage(ctx, bf.config.PageSize, offset)
}

// worker processes offsets from the queue
func (bf *BatchFetcher[T]) worker(ctx context.Context, offsetQueue <-chan int, results chan<- pageResult[T], errs chan<- error, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()
	pagesProcessed := 0

	for offset := range offsetQueue {
		if err := ctx.Err(); err != nil {
			bf.logger.Debug().
				Int("worker_id", workerID).
				Int("pages_processed", pagesProcessed).
				Msg("Worker stopping (context cancelled)")
			select {
			case errs <- fmt.Errorf("page at offset %d: %w", offset, err):
			default:
			}
			return
		}

		items, _, err := bf.fetchPage(ctx, offset)
		if err != nil {
			// Non-blocking error send
			select {
			case errs <- fmt.Errorf("page at offset %d: %w", offset, err):
			default:
			}
			return
		}

		results <- pageResult[T]{offset: offset, items: items}
		pagesProcessed++
	}

	if pagesProcessed > 0 {
		bf.logger.Debug().
			Int("worker_id", workerID).
			Int("pages_processed", pagesProcessed).
			Msg("Worker completed")
	}
}
