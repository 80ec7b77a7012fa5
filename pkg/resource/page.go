package resource

import "github.com/Sternrassler/pokeapi-client/pkg/urlutil"

// Page is one slice of a resource collection. Next and Previous are empty at
// the collection boundaries.
type Page[T any] struct {
	// The total number of resources available from this API.
	Count int `json:"count"`
	// The URL for the next page in the list.
	Next string `json:"next"`
	// The URL for the previous page in the list.
	Previous string `json:"previous"`
	// The resources on this page.
	Results []Link[T] `json:"results"`
}

// HasNext reports whether a following page exists.
func (p *Page[T]) HasNext() bool {
	return p.Next != ""
}

// HasPrevious reports whether a preceding page exists.
func (p *Page[T]) HasPrevious() bool {
	return p.Previous != ""
}

// NextOffset returns the offset encoded in Next.
func (p *Page[T]) NextOffset() (string, bool) {
	return urlutil.ExtractOffset(p.Next)
}

// PreviousOffset returns the offset encoded in Previous.
func (p *Page[T]) PreviousOffset() (string, bool) {
	return urlutil.ExtractOffset(p.Previous)
}
