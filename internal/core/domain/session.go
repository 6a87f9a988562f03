package domain

// NoExpansion is the ExpandedIndex value when no result is expanded.
const NoExpansion = -1

// SessionState is a snapshot of one interactive session.
// Snapshots are copies; mutating one never affects the session.
type SessionState struct {
	// Query holds the current input and filter selections.
	Query SearchQuery

	// Results is the result set of the last successful search.
	Results []SearchResult

	// Loading is true while the latest submitted search is in flight.
	Loading bool

	// ErrorMessage is set when the latest search failed.
	ErrorMessage string

	// ExpandedIndex is the index of the expanded result, or NoExpansion.
	ExpandedIndex int

	// RecentSearches is the most-recent-first search log.
	RecentSearches []RecentSearch
}

// NewSessionState returns the empty state a session starts with.
func NewSessionState() SessionState {
	return SessionState{
		Query: SearchQuery{
			Country:    DefaultCountry,
			UILanguage: DefaultUILanguage,
		},
		Results:        []SearchResult{},
		ExpandedIndex:  NoExpansion,
		RecentSearches: []RecentSearch{},
	}
}

// HasError reports whether the last search failed.
func (s SessionState) HasError() bool {
	return s.ErrorMessage != ""
}

// Expanded reports whether the result at index is expanded.
func (s SessionState) Expanded(index int) bool {
	return s.ExpandedIndex != NoExpansion && s.ExpandedIndex == index
}

// CanExport reports whether an export makes sense for the current state.
func (s SessionState) CanExport() bool {
	return !s.Loading && len(s.Results) > 0
}

// Clone returns a deep copy of the state.
func (s SessionState) Clone() SessionState {
	out := s
	out.Results = append([]SearchResult{}, s.Results...)
	out.RecentSearches = append([]RecentSearch{}, s.RecentSearches...)
	return out
}
