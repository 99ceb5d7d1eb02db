package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "/search", BuildURL("", 1))
	assert.Equal(t, "/search?q=upsc", BuildURL("upsc", 1))
	assert.Equal(t, "/search?page=3", BuildURL("", 3))
	assert.Equal(t, "/search?page=2&q=ssc+cgl", BuildURL("ssc cgl", 2))
}

func TestURLRoundTrip(t *testing.T) {
	raw := BuildURL("ssc cgl", 2)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	query, page := ParseParams(parsed.Query())
	assert.Equal(t, "ssc cgl", query)
	assert.Equal(t, 2, page)
}

func TestParseParams_Defaults(t *testing.T) {
	query, page := ParseParams(url.Values{})
	assert.Equal(t, "", query)
	assert.Equal(t, 1, page)

	// Malformed and non-positive pages fall back to 1
	query, page = ParseParams(url.Values{"q": {"upsc"}, "page": {"abc"}})
	assert.Equal(t, "upsc", query)
	assert.Equal(t, 1, page)

	_, page = ParseParams(url.Values{"page": {"0"}})
	assert.Equal(t, 1, page)

	_, page = ParseParams(url.Values{"page": {"-2"}})
	assert.Equal(t, 1, page)
}
