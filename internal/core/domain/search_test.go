package domain

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSearchQuery_Empty tests the submit guard
func TestSearchQuery_Empty(t *testing.T) {
	assert.True(t, SearchQuery{}.Empty())
	assert.True(t, SearchQuery{Country: CountryUS}.Empty())
	assert.False(t, SearchQuery{Text: "market trends"}.Empty())
	assert.False(t, SearchQuery{Text: " "}.Empty())
}

// TestSearchResult_DisplayTitle tests the url fallback
func TestSearchResult_DisplayTitle(t *testing.T) {
	assert.Equal(t, "A", SearchResult{URL: "a.com", Title: "A"}.DisplayTitle())
	assert.Equal(t, "b.com", SearchResult{URL: "b.com"}.DisplayTitle())
}

func TestSearchResult_HasSummary(t *testing.T) {
	assert.True(t, SearchResult{Summary: "sum"}.HasSummary())
	assert.False(t, SearchResult{}.HasSummary())
}

func TestSearchResponse_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		count int
	}{
		{"results present", `{"results":[{"url":"a.com","title":"A","summary":"sum1"},{"url":"b.com"}]}`, 2},
		{"results missing", `{}`, 0},
		{"results null", `{"results":null}`, 0},
		{"results empty", `{"results":[]}`, 0},
		{"extra fields ignored", `{"results":[{"url":"a.com","score":0.4}],"took":12}`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp SearchResponse
			require.NoError(t, json.Unmarshal([]byte(tt.body), &resp))
			require.NotNil(t, resp.Results)
			assert.Len(t, resp.Results, tt.count)
		})
	}
}

func TestSearchResponse_UnmarshalJSON_Fields(t *testing.T) {
	var resp SearchResponse
	body := `{"results":[{"url":"a.com","title":"A","content":"<p>x</p>","summary":"sum1"}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	assert.Equal(t, SearchResult{URL: "a.com", Title: "A", Content: "<p>x</p>", Summary: "sum1"}, resp.Results[0])
}

func TestSearchResponse_UnmarshalJSON_Malformed(t *testing.T) {
	var resp SearchResponse
	assert.Error(t, json.Unmarshal([]byte(`{"results":`), &resp))
	assert.Error(t, json.Unmarshal([]byte(`{"results":"nope"}`), &resp))
}

func TestPrependRecent_AddsToFront(t *testing.T) {
	now := time.Now()
	log := []RecentSearch{{Query: "old", Time: now.Add(-time.Minute)}}

	got := PrependRecent(log, RecentSearch{Query: "new", Time: now})

	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].Query)
	assert.Equal(t, "old", got[1].Query)
	assert.Len(t, log, 1, "input log must not be modified")
}

func TestPrependRecent_BoundedFIFO(t *testing.T) {
	var log []RecentSearch
	for i := 0; i < 8; i++ {
		log = PrependRecent(log, RecentSearch{Query: fmt.Sprintf("q%d", i)})
		assert.LessOrEqual(t, len(log), MaxRecentSearches)
	}

	require.Len(t, log, MaxRecentSearches)
	assert.Equal(t, "q7", log[0].Query)
	assert.Equal(t, "q3", log[4].Query)
}

func TestPrependRecent_NoDedup(t *testing.T) {
	var log []RecentSearch
	log = PrependRecent(log, RecentSearch{Query: "same"})
	log = PrependRecent(log, RecentSearch{Query: "same"})

	require.Len(t, log, 2)
	assert.Equal(t, "same", log[0].Query)
	assert.Equal(t, "same", log[1].Query)
}

func TestQuickTags(t *testing.T) {
	assert.Equal(t, []string{"Market Research", "Competitor Analysis", "Industry Trends", "User Behavior"}, QuickTags)
}
