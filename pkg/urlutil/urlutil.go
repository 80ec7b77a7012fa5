// Package urlutil provides pure helpers for PokeAPI navigation URLs: reading
// pagination parameters and path segments, building paged collection URLs and
// normalizing resource names into the slug form the API expects.
//
// Parsers never fail loudly. Input that does not have the expected shape yields
// ok == false.
package urlutil

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var segmentPattern = regexp.MustCompile(`api/v2/([^/?#]+)/([^/?#]+)/`)

// ExtractOffset returns the value of the offset query parameter.
//
// Example:
//
//	ExtractOffset("https://pokeapi.co/api/v2/pokemon/?offset=40&limit=20") // "40", true
func ExtractOffset(rawURL string) (string, bool) {
	return ExtractQueryParam(rawURL, "offset")
}

// ExtractQueryParam returns the value following the last "<name>=" marker in
// the part of rawURL after its first '?'. The value ends at the next '&', '#'
// or '?'. An empty value is still reported as present.
func ExtractQueryParam(rawURL, name string) (string, bool) {
	if rawURL == "" || name == "" {
		return "", false
	}

	q := strings.IndexByte(rawURL, '?')
	if q < 0 {
		return "", false
	}

	query := rawURL[q+1:]
	marker := name + "="
	idx := strings.LastIndex(query, marker)
	if idx < 0 {
		return "", false
	}

	value := query[idx+len(marker):]
	if end := strings.IndexAny(value, "&#?"); end >= 0 {
		value = value[:end]
	}
	return value, true
}

// ExtractKindSegment returns <kind> from a URL shaped like
// ".../api/v2/<kind>/<idOrName>/<suffix>".
func ExtractKindSegment(rawURL string) (string, bool) {
	m := matchSegments(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractIDOrNameSegment returns <idOrName> from a URL shaped like
// ".../api/v2/<kind>/<idOrName>/<suffix>".
func ExtractIDOrNameSegment(rawURL string) (string, bool) {
	m := matchSegments(rawURL)
	if m == nil {
		return "", false
	}
	return m[2], true
}

func matchSegments(rawURL string) []string {
	if rawURL == "" {
		return nil
	}
	return segmentPattern.FindStringSubmatch(rawURL)
}

// TrailingID parses the last path segment of a navigation URL as an integer id.
// Trailing slashes are ignored.
func TrailingID(rawURL string) (int, bool) {
	trimmed := strings.TrimRight(rawURL, "/")
	if trimmed == "" {
		return 0, false
	}

	segment := trimmed[strings.LastIndexByte(trimmed, '/')+1:]
	id, err := strconv.Atoi(segment)
	if err != nil {
		return 0, false
	}
	return id, true
}

// BuildPagedURL appends limit and offset query parameters to base, in that
// order, skipping any that are nil. With both nil, base is returned unchanged.
func BuildPagedURL(base string, limit, offset *int) string {
	var params []string
	if limit != nil {
		params = append(params, "limit="+url.QueryEscape(strconv.Itoa(*limit)))
	}
	if offset != nil {
		params = append(params, "offset="+url.QueryEscape(strconv.Itoa(*offset)))
	}
	if len(params) == 0 {
		return base
	}

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + strings.Join(params, "&")
}

// NormalizeName converts a display name into the API slug: lower case, spaces
// become hyphens, apostrophes and periods are dropped.
//
// Names whose slug is not derivable this way (e.g. gendered symbols) are not
// handled.
func NormalizeName(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "'", "")
	slug = strings.ReplaceAll(slug, ".", "")
	return slug
}
