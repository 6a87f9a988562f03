package driving

import (
	"context"

	"github.com/custodia-labs/research-agent/internal/core/domain"
)

// ExportResult describes a saved export.
type ExportResult struct {
	// FileName is the deterministic name derived from the query.
	FileName string

	// Path is where the sink wrote the file.
	Path string

	// Size is the number of bytes written.
	Size int
}

// SessionService is the interaction controller for one session.
// All session state changes go through these methods.
type SessionService interface {
	// SetQueryText replaces the text being edited.
	SetQueryText(text string)

	// SetCountry selects the country filter.
	SetCountry(country domain.Country) error

	// SetUILanguage selects the UI language filter.
	SetUILanguage(lang domain.UILanguage) error

	// ApplyQuickTag replaces the query text with the quick tag at index.
	ApplyQuickTag(index int) error

	// SubmitSearch runs a search for the current query.
	// An empty query is ignored and returns nil.
	SubmitSearch(ctx context.Context) error

	// RequestExport fetches a document export for the current query and saves it.
	// An empty query is ignored and returns a zero result and nil.
	RequestExport(ctx context.Context) (ExportResult, error)

	// ToggleExpand expands the result at index, or collapses it if already expanded.
	ToggleExpand(index int)

	// CombinedSummary derives the numbered digest from the current results.
	CombinedSummary() string

	// State returns a snapshot of the session.
	State() domain.SessionState
}
