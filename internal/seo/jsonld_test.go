package seo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchResultsPage(t *testing.T) {
	b := NewBuilder("https://examwatch.in", "ExamWatch")

	raw, err := b.SearchResultsPage("ssc cgl", 2)
	require.NoError(t, err)

	var block map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &block))

	assert.Equal(t, "SearchResultsPage", block["@type"])
	assert.Equal(t, `Search results for "ssc cgl"`, block["name"])
	assert.Equal(t, "https://examwatch.in/search?page=2&q=ssc+cgl", block["url"])
}

func TestSearchResultsPage_EmptyQuery(t *testing.T) {
	b := NewBuilder("https://examwatch.in", "ExamWatch")

	raw, err := b.SearchResultsPage("", 1)
	require.NoError(t, err)

	var block map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &block))

	assert.Equal(t, "Latest Exam Notifications", block["name"])
	assert.Equal(t, "https://examwatch.in/search", block["url"])
}
