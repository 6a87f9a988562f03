package domain

import (
	"encoding/json"
	"time"
)

// MaxRecentSearches bounds the recent search log.
const MaxRecentSearches = 5

// SearchQuery is the set of inputs sent with a single request.
// It is captured by value at submit time, so later edits to the input
// never leak into a request that is already in flight.
type SearchQuery struct {
	// Text is the free-text query as typed by the user.
	Text string

	// Country restricts results to a market.
	Country Country

	// UILanguage is the locale the service should answer in.
	UILanguage UILanguage
}

// Empty reports whether the query has no text to submit.
// Whitespace-only text is not considered empty.
func (q SearchQuery) Empty() bool {
	return q.Text == ""
}

// SearchResult is a single hit returned by the research service.
type SearchResult struct {
	// URL identifies the result within a result set.
	URL string `json:"url"`

	// Title is optional; DisplayTitle falls back to URL.
	Title string `json:"title,omitempty"`

	// Content is an optional HTML or text excerpt from the upstream service.
	// It is untrusted and must be sanitised before rendering.
	Content string `json:"content,omitempty"`

	// Summary is the per-result digest used for the combined summary.
	Summary string `json:"summary,omitempty"`
}

// DisplayTitle returns the title, or the URL when no title is set.
func (r SearchResult) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.URL
}

// HasSummary reports whether the result carries a non-empty summary.
func (r SearchResult) HasSummary() bool {
	return r.Summary != ""
}

// SearchResponse is the body of a /search response.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// UnmarshalJSON decodes a response, treating a missing or null results
// field as an empty result set.
func (r *SearchResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Results []SearchResult `json:"results"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Results == nil {
		raw.Results = []SearchResult{}
	}
	r.Results = raw.Results
	return nil
}

// RecentSearch is one entry in the recent search log.
type RecentSearch struct {
	// Query is the submitted query text.
	Query string `json:"query"`

	// Time is when the search completed.
	Time time.Time `json:"time"`
}

// PrependRecent returns a new log with entry at the front, truncated to
// MaxRecentSearches. Identical queries are not merged.
func PrependRecent(log []RecentSearch, entry RecentSearch) []RecentSearch {
	n := len(log) + 1
	if n > MaxRecentSearches {
		n = MaxRecentSearches
	}
	out := make([]RecentSearch, 0, n)
	out = append(out, entry)
	for _, r := range log {
		if len(out) == n {
			break
		}
		out = append(out, r)
	}
	return out
}

// QuickTags are canned query texts offered alongside the search input.
var QuickTags = []string{
	"Market Research",
	"Competitor Analysis",
	"Industry Trends",
	"User Behavior",
}
