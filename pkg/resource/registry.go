package resource

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnregisteredKind indicates a kind without a usable endpoint path. It is a
// configuration error, not something to recover from at runtime.
var ErrUnregisteredKind = errors.New("resource kind has no registered endpoint")

// KindInfo describes a registered kind.
type KindInfo struct {
	// Path is the collection path segment.
	Path string
	// Named reports whether the kind supports lookup by name.
	Named bool
	// New returns a pointer to a fresh zero value of the kind.
	New func() any
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]KindInfo)
)

// Register associates T with its endpoint path. It is meant to be called from
// an init function next to the type definition and panics on an empty,
// malformed or duplicate path.
func Register[T Kind]() {
	var zero T
	path := zero.Endpoint()
	if path == "" || strings.ContainsAny(path, "/?#") {
		panic(fmt.Sprintf("resource: invalid endpoint path %q for %T", path, zero))
	}

	_, named := any(zero).(NamedKind)

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[path]; exists {
		panic(fmt.Sprintf("resource: endpoint path %q registered twice (%T)", path, zero))
	}
	registry[path] = KindInfo{
		Path:  path,
		Named: named,
		New:   func() any { return new(T) },
	}
}

// PathFor returns the endpoint path of T.
func PathFor[T Kind]() (string, error) {
	var zero T
	path := zero.Endpoint()
	if path == "" {
		return "", fmt.Errorf("%w: %T", ErrUnregisteredKind, zero)
	}

	registryMu.RLock()
	_, ok := registry[path]
	registryMu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %T (path %q)", ErrUnregisteredKind, zero, path)
	}
	return path, nil
}

// MustPathFor is like PathFor but panics on error.
func MustPathFor[T Kind]() string {
	path, err := PathFor[T]()
	if err != nil {
		panic(err)
	}
	return path
}

// Lookup returns the kind registered under path.
func Lookup(path string) (KindInfo, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	info, ok := registry[path]
	return info, ok
}

// Kinds returns all registered kinds sorted by path.
func Kinds() []KindInfo {
	registryMu.RLock()
	kinds := make([]KindInfo, 0, len(registry))
	for _, info := range registry {
		kinds = append(kinds, info)
	}
	registryMu.RUnlock()

	sort.Slice(kinds, func(i, j int) bool {
		return kinds[i].Path < kinds[j].Path
	})
	return kinds
}
