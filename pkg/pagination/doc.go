// Package pagination provides parallel walking of limit/offset paginated
// PokeAPI collections.
//
// PokeAPI reports the collection size in the count field of every page, so
// after the first page all remaining offsets are known up front and can be
// fetched concurrently. This package implements a worker pool over those
// offsets.
//
// Example usage:
//
//	fetcher := pagination.PageFetcherFunc[resource.Link[resource.Berry]](
//		func(ctx context.Context, limit, offset int) ([]resource.Link[resource.Berry], int, error) {
//			page, err := client.FetchPage[resource.Berry](ctx, c, &limit, &offset)
//			if err != nil {
//				return nil, 0, err
//			}
//			return page.Results, page.Count, nil
//		})
//	links, err := pagination.NewBatchFetcher(fetcher, pagination.DefaultConfig()).FetchAll(ctx)
//
// The batch fetcher:
//   - Fetches the first page to learn the total count
//   - Spawns a worker pool (default 5 workers)
//   - Distributes the remaining offsets across workers
//   - Returns items in collection order
//   - Fails as a whole on the first page error
package pagination
