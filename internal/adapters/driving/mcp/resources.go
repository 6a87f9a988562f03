package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for research resources.
	uriScheme = "research://"

	recentURI     = uriScheme + "recent"
	resultsPrefix = uriScheme + "results/"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the recent search log.
	s.server.AddResource(&mcp.Resource{
		URI:         recentURI,
		Name:        "recent-searches",
		Description: "The last five searches, most recent first",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// Template for the text of a result from the last search.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: resultsPrefix + "{index}",
		Name:        "result-content",
		Description: "Text content of a result from the most recent search, by zero-based index",
		MIMEType:    "text/plain",
	}, s.handleResultResource)
}

// recentInfo is the JSON shape of a recent search.
type recentInfo struct {
	Query string `json:"query"`
	Time  string `json:"time"`
}

// handleRecentResource returns the recent search log.
func (s *Server) handleRecentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	recent := s.ports.Session.State().RecentSearches

	infos := make([]recentInfo, len(recent))
	for i, r := range recent {
		infos[i] = recentInfo{Query: r.Query, Time: r.Time.Format(time.RFC3339)}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling recent searches: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleResultResource returns the text of one result.
func (s *Server) handleResultResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	index, ok := extractResultIndex(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	results := s.ports.Session.State().Results
	if index >= len(results) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	r := results[index]
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(r.DisplayTitle())
	b.WriteString("\n")
	b.WriteString(r.URL)
	b.WriteString("\n\n")
	if text := s.plainText(r.Content); text != "" {
		b.WriteString(text)
	} else {
		b.WriteString("No summary available.")
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     b.String(),
		}},
	}, nil
}

// extractResultIndex extracts the index from research://results/{index}.
func extractResultIndex(uri string) (int, bool) {
	if !strings.HasPrefix(uri, resultsPrefix) {
		return 0, false
	}
	index, err := strconv.Atoi(strings.TrimPrefix(uri, resultsPrefix))
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}
