package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Sternrassler/pokeapi-client/pkg/inflight"
	"github.com/Sternrassler/pokeapi-client/pkg/pagination"
	"github.com/Sternrassler/pokeapi-client/pkg/resource"
	"github.com/Sternrassler/pokeapi-client/pkg/urlutil"
	"golang.org/x/sync/errgroup"
)

// Values returned by the resolver may be shared between concurrent callers
// of the same resource and must be treated as read-only.

// FetchByID fetches the resource of kind T with the given id. The id is not
// checked locally; a missing resource surfaces as ErrNotFound.
func FetchByID[T resource.Kind](ctx context.Context, c *Client, id int) (*T, error) {
	path, err := pathFor[T]()
	if err != nil {
		return nil, err
	}
	return fetchItem[T](ctx, c, "fetch_by_id", path, strconv.Itoa(id))
}

// FetchByName fetches the resource of kind T by name. The name is normalized
// into the API slug form first, e.g. "Mr. Mime" becomes "mr-mime".
func FetchByName[T resource.NamedKind](ctx context.Context, c *Client, name string) (*T, error) {
	path, err := pathFor[T]()
	if err != nil {
		return nil, err
	}
	return fetchItem[T](ctx, c, "fetch_by_name", path, urlutil.NormalizeName(name))
}

// FetchPage fetches one page of the collection of kind T. Nil limit or offset
// leaves the parameter to the API's default paging.
func FetchPage[T resource.Kind](ctx context.Context, c *Client, limit, offset *int) (*resource.Page[T], error) {
	path, err := pathFor[T]()
	if err != nil {
		return nil, err
	}
	raw, err := fetchPage(ctx, c, "fetch_page", path, limit, offset)
	if err != nil {
		return nil, err
	}
	return convertPage[T](raw), nil
}

// NextPage fetches the page following page, or returns nil at the end of the
// collection.
func NextPage[T resource.Kind](ctx context.Context, c *Client, page *resource.Page[T]) (*resource.Page[T], error) {
	if page == nil || !page.HasNext() {
		return nil, nil
	}
	return followPage[T](ctx, c, "next_page", page.Next)
}

// PreviousPage fetches the page preceding page, or returns nil at the start
// of the collection.
func PreviousPage[T resource.Kind](ctx context.Context, c *Client, page *resource.Page[T]) (*resource.Page[T], error) {
	if page == nil || !page.HasPrevious() {
		return nil, nil
	}
	return followPage[T](ctx, c, "previous_page", page.Previous)
}

// FetchAll walks the whole collection of kind T in parallel and returns its
// links in collection order. Any failing page fails the call.
func FetchAll[T resource.Kind](ctx context.Context, c *Client) ([]resource.Link[T], error) {
	path, err := pathFor[T]()
	if err != nil {
		return nil, err
	}

	raw, err := fetchAllLinks(ctx, c, path)
	if err != nil {
		return nil, err
	}

	links := make([]resource.Link[T], len(raw))
	for i, link := range raw {
		links[i] = resource.Link[T]{Name: link.Name, URL: link.URL}
	}
	return links, nil
}

// Resolve fetches the resource a navigation link points to. Links whose URL
// does not end in a numeric id fail with ErrUnsupportedNavigation before any
// request is made.
func Resolve[T resource.Kind](ctx context.Context, c *Client, link resource.Link[T]) (*T, error) {
	id, ok := link.ID()
	if !ok {
		pokeapiResolverOperations.WithLabelValues("resolve", "error").Inc()
		return nil, &Error{
			Kind:    KindUnsupportedNavigation,
			URL:     link.URL,
			Message: "link does not end in a numeric id",
		}
	}

	path, err := pathFor[T]()
	if err != nil {
		return nil, err
	}
	// Keyed by id so a link and FetchByID share one request
	return fetchItem[T](ctx, c, "resolve", path, strconv.Itoa(id))
}

// ResolveAll resolves links concurrently, bounded by MaxConcurrency. Results
// keep the order of links. The first failure cancels the remaining work and
// fails the call without partial results.
func ResolveAll[T resource.Kind](ctx context.Context, c *Client, links []resource.Link[T]) ([]*T, error) {
	results := make([]*T, len(links))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.MaxConcurrency)

	for i, link := range links {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return asError(err, KindTransport, link.URL)
			}
			v, err := Resolve(gctx, c, link)
			if err != nil {
				return fmt.Errorf("resolve link %d: %w", i, err)
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// FetchKind fetches a resource when the kind is only known at runtime by its
// path. Numeric identities are fetched as ids, anything else as a name.
func FetchKind(ctx context.Context, c *Client, path, idOrName string) (any, error) {
	info, ok := resource.Lookup(path)
	if !ok {
		return nil, &Error{
			Kind:    KindConfiguration,
			Message: fmt.Sprintf("unknown resource kind %q", path),
			Err:     resource.ErrUnregisteredKind,
		}
	}

	op := "fetch_by_id"
	identity := idOrName
	if id, err := strconv.Atoi(idOrName); err == nil {
		identity = strconv.Itoa(id)
	} else {
		if !info.Named {
			return nil, &Error{
				Kind:    KindConfiguration,
				Message: fmt.Sprintf("resource kind %q has no names, use a numeric id", path),
			}
		}
		op = "fetch_by_name"
		identity = urlutil.NormalizeName(idOrName)
	}

	key := inflight.Key{Endpoint: path, Identity: identity}
	return c.fetch(ctx, op, key, c.itemURL(path, identity), info.New)
}

// ResolveURL fetches the resource behind an absolute API URL such as
// https://pokeapi.co/api/v2/pokemon/25/. Like Resolve, it only follows URLs
// whose item segment is the numeric id and the last segment of the path;
// anything else fails with ErrUnsupportedNavigation before any request.
func ResolveURL(ctx context.Context, c *Client, rawURL string) (any, error) {
	path, ok := urlutil.ExtractKindSegment(rawURL)
	if !ok {
		pokeapiResolverOperations.WithLabelValues("resolve_url", "error").Inc()
		return nil, &Error{Kind: KindUnsupportedNavigation, URL: rawURL, Message: "not a resource url"}
	}

	id, ok := urlutil.TrailingID(rawURL)
	segment, _ := urlutil.ExtractIDOrNameSegment(rawURL)
	if n, err := strconv.Atoi(segment); !ok || err != nil || n != id {
		pokeapiResolverOperations.WithLabelValues("resolve_url", "error").Inc()
		return nil, &Error{
			Kind:    KindUnsupportedNavigation,
			URL:     rawURL,
			Message: "link does not end in a numeric id",
		}
	}

	return FetchKind(ctx, c, path, strconv.Itoa(id))
}

// FetchKindPage fetches one page of the collection at path. The links are
// untyped since the kind is only known at runtime.
func FetchKindPage(ctx context.Context, c *Client, path string, limit, offset *int) (*resource.Page[any], error) {
	if _, ok := resource.Lookup(path); !ok {
		return nil, &Error{
			Kind:    KindConfiguration,
			Message: fmt.Sprintf("unknown resource kind %q", path),
			Err:     resource.ErrUnregisteredKind,
		}
	}
	return fetchPage(ctx, c, "fetch_page", path, limit, offset)
}

// FetchKindAll is the runtime-kind variant of FetchAll.
func FetchKindAll(ctx context.Context, c *Client, path string) ([]resource.Link[any], error) {
	if _, ok := resource.Lookup(path); !ok {
		return nil, &Error{
			Kind:    KindConfiguration,
			Message: fmt.Sprintf("unknown resource kind %q", path),
			Err:     resource.ErrUnregisteredKind,
		}
	}
	return fetchAllLinks(ctx, c, path)
}

// ResolveURLs is the runtime-kind variant of ResolveAll. Results keep the
// order of urls.
func ResolveURLs(ctx context.Context, c *Client, urls []string) ([]any, error) {
	results := make([]any, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.MaxConcurrency)

	for i, rawURL := range urls {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return asError(err, KindTransport, rawURL)
			}
			v, err := ResolveURL(gctx, c, rawURL)
			if err != nil {
				return fmt.Errorf("resolve url %d: %w", i, err)
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// pathFor resolves the endpoint of T as a configuration *Error.
func pathFor[T resource.Kind]() (string, error) {
	path, err := resource.PathFor[T]()
	if err != nil {
		return "", &Error{Kind: KindConfiguration, Err: err}
	}
	return path, nil
}

func fetchItem[T any](ctx context.Context, c *Client, op, path, identity string) (*T, error) {
	key := inflight.Key{Endpoint: path, Identity: identity}
	return fetchAs[T](ctx, c, op, key, c.itemURL(path, identity))
}

// fetchPage fetches a page as untyped links. Typed and dynamic callers share
// the same key, so the shared value must not depend on T.
func fetchPage(ctx context.Context, c *Client, op, path string, limit, offset *int) (*resource.Page[any], error) {
	query := url.Values{}
	if limit != nil {
		query.Set("limit", strconv.Itoa(*limit))
	}
	if offset != nil {
		query.Set("offset", strconv.Itoa(*offset))
	}

	rawURL := urlutil.BuildPagedURL(c.baseURL+path+"/", limit, offset)
	key := inflight.Key{Endpoint: path, Collection: true, QueryParams: query}

	page, err := fetchAs[resource.Page[any]](ctx, c, op, key, rawURL)
	if err != nil {
		return nil, err
	}

	if limit != nil && len(page.Results) > *limit {
		return nil, &Error{
			Kind:    KindDecode,
			URL:     rawURL,
			Message: fmt.Sprintf("page has %d results, limit was %d", len(page.Results), *limit),
		}
	}
	return page, nil
}

// fetchAllLinks walks the collection at path with the pagination worker pool.
func fetchAllLinks(ctx context.Context, c *Client, path string) ([]resource.Link[any], error) {
	fetcher := pagination.PageFetcherFunc[resource.Link[any]](
		func(ctx context.Context, limit, offset int) ([]resource.Link[any], int, error) {
			page, err := fetchPage(ctx, c, "fetch_all", path, &limit, &offset)
			if err != nil {
				return nil, 0, err
			}
			return page.Results, page.Count, nil
		})

	bf := pagination.NewBatchFetcher[resource.Link[any]](fetcher, pagination.Config{
		MaxConcurrency: c.config.MaxConcurrency,
		PageSize:       c.config.PageSize,
		Logger:         &c.pagerLogger,
	})
	links, err := bf.FetchAll(ctx)
	if err != nil {
		return nil, asError(err, KindTransport, c.baseURL+path+"/")
	}
	return links, nil
}

// followPage fetches the page a Next or Previous URL points to.
func followPage[T resource.Kind](ctx context.Context, c *Client, op, rawURL string) (*resource.Page[T], error) {
	limit, err := pagingParam(rawURL, "limit")
	if err != nil {
		return nil, err
	}
	offset, err := pagingParam(rawURL, "offset")
	if err != nil {
		return nil, err
	}

	path, err := pathFor[T]()
	if err != nil {
		return nil, err
	}
	raw, err := fetchPage(ctx, c, op, path, limit, offset)
	if err != nil {
		return nil, err
	}
	return convertPage[T](raw), nil
}

func pagingParam(rawURL, name string) (*int, error) {
	value, ok := urlutil.ExtractQueryParam(rawURL, name)
	if !ok || value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, &Error{
			Kind:    KindUnsupportedNavigation,
			URL:     rawURL,
			Message: fmt.Sprintf("%s is not a number", name),
			Err:     err,
		}
	}
	return &n, nil
}

// convertPage copies an untyped page into a page of T links.
func convertPage[T any](raw *resource.Page[any]) *resource.Page[T] {
	page := &resource.Page[T]{
		Count:    raw.Count,
		Next:     raw.Next,
		Previous: raw.Previous,
		Results:  make([]resource.Link[T], len(raw.Results)),
	}
	for i, link := range raw.Results {
		page.Results[i] = resource.Link[T]{Name: link.Name, URL: link.URL}
	}
	return page
}
