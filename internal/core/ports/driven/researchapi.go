package driven

import (
	"context"

	"github.com/custodia-labs/research-agent/internal/core/domain"
)

// ResearchAPI is the remote research service.
// Implementations must return errors that match domain.ErrTransport,
// domain.ErrHTTPStatus or domain.ErrDecode via errors.Is.
type ResearchAPI interface {
	// FetchSearchResults runs a search. A response without results decodes
	// to an empty result set, never an error.
	FetchSearchResults(ctx context.Context, query domain.SearchQuery) (*domain.SearchResponse, error)

	// FetchExportBlob requests a document export for the query.
	// The payload is returned untouched.
	FetchExportBlob(ctx context.Context, query domain.SearchQuery) ([]byte, error)
}
