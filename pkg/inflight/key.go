package inflight

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Key identifies one logical resource fetch.
type Key struct {
	// Endpoint is the kind's collection path (e.g. "pokemon")
	Endpoint string

	// Identity is the id or normalized name of a single resource
	Identity string

	// Collection marks a collection page rather than a single resource
	Collection bool

	// QueryParams are the paging parameters of a collection page
	QueryParams url.Values
}

// String generates a deterministic key string.
// Format: pokeapi:endpoint:item=identity or pokeapi:endpoint:list:query1=val1:query2=val2
//
// Example:
//
//	pokeapi:pokemon:item=25
//	pokeapi:pokemon:list:limit=20:offset=40
func (k Key) String() string {
	parts := []string{"pokeapi"}

	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	if !k.Collection {
		parts = append(parts, "item="+k.Identity)
		return strings.Join(parts, ":")
	}

	parts = append(parts, "list")

	// Sorted for determinism
	if len(k.QueryParams) > 0 {
		queryKeys := make([]string, 0, len(k.QueryParams))
		for key := range k.QueryParams {
			queryKeys = append(queryKeys, key)
		}
		sort.Strings(queryKeys)

		for _, key := range queryKeys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, k.QueryParams.Get(key)))
		}
	}

	return strings.Join(parts, ":")
}
