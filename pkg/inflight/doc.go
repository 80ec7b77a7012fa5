// Package inflight collapses concurrent requests for the same resource
// identity into a single underlying fetch.
//
// The first caller for a Key starts the fetch. Callers arriving while it is
// pending attach to it and receive the same value or the same error; nothing
// is retried on their behalf. Once the fetch finishes the entry is dropped, so
// the Group never acts as a result cache: the next request for the Key starts
// a new fetch.
//
// # Cancellation
//
// Each caller waits on its own context. A caller whose context ends detaches
// and gets ctx.Err(), while the fetch carries on for the remaining callers.
// When the last caller detaches, the fetch's context is cancelled and the
// entry is dropped.
//
// # Basic Usage
//
//	group := inflight.NewGroup(logger)
//
//	key := inflight.Key{Endpoint: "pokemon", Identity: "25"}
//	v, shared, err := group.Do(ctx, key, func(ctx context.Context) (any, error) {
//		return fetchPokemon(ctx, 25)
//	})
//
// # Metrics
//
//   - pokeapi_inflight_started_total - fetches started
//   - pokeapi_inflight_shared_total - callers attached to a pending fetch
//   - pokeapi_inflight_detached_total - callers that stopped waiting
//   - pokeapi_inflight_aborted_total - fetches cancelled because every caller left
//   - pokeapi_inflight_pending - fetches currently pending
package inflight
