// Package resource defines the PokeAPI data model and the endpoint registry.
//
// Every resource kind is a Go type that reports its collection path through
// Endpoint and registers itself from its own file:
//
//	type Berry struct {
//		NamedAPIObject
//		GrowthTime int `json:"growth_time"`
//	}
//
//	func (Berry) Endpoint() string { return "berry" }
//
//	func init() { Register[Berry]() }
//
// Related resources are referenced through Link values and collections are
// returned one Page at a time. Values are read-only snapshots; nothing in this
// package mutates them after decoding.
package resource
