package search

import (
	"net/url"
	"strconv"
)

// Path is the public search page path.
const Path = "/search"

// BuildURL encodes a (query, page) pair into the search page URL.
// The q parameter is omitted when empty and page is omitted when 1, so the
// default state maps to the bare path.
func BuildURL(query string, page int) string {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}
	if len(params) == 0 {
		return Path
	}
	return Path + "?" + params.Encode()
}

// ParseParams decodes q and page from URL query parameters.
// Missing or malformed values fall back to ("", 1).
func ParseParams(params url.Values) (query string, page int) {
	query = params.Get("q")
	page = 1
	if raw := params.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}
	return query, page
}
