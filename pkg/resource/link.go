package resource

import "github.com/Sternrassler/pokeapi-client/pkg/urlutil"

// Link references a not yet fetched resource of kind T by its absolute URL.
// The API guarantees the last path segment is the target's numeric id.
type Link[T any] struct {
	// The name of the referenced resource, empty for unnamed kinds.
	Name string `json:"name,omitempty"`
	// The URL of the referenced resource.
	URL string `json:"url"`
}

// ID returns the id encoded in the link URL.
func (l Link[T]) ID() (int, bool) {
	return urlutil.TrailingID(l.URL)
}

// IsZero reports whether the link points nowhere.
func (l Link[T]) IsZero() bool {
	return l.URL == ""
}
