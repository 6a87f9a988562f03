package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/research-agent/internal/core/domain"
)

// QueryInput holds the query and filters shared by search and export.
type QueryInput struct {
	Query   string `json:"query" jsonschema:"the web search query"`
	Country string `json:"country,omitempty" jsonschema:"country filter: US, IN, GB, CA, FR or DE (default from settings)"`
	UILang  string `json:"ui_lang,omitempty" jsonschema:"response language: en-US, en-IN, en-GB, en-CA, fr-FR or de-DE"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	QueryInput
	IncludeContent bool `json:"include_content,omitempty" jsonschema:"include the text content of each result"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Query           string               `json:"query"`
	Country         string               `json:"country"`
	UILang          string               `json:"ui_lang"`
	CombinedSummary string               `json:"combined_summary"`
	Results         []SearchResultOutput `json:"results"`
	Count           int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
	Content string `json:"content,omitempty"`
}

// ExportOutput is the output schema for the export_pdf tool.
type ExportOutput struct {
	FileName string `json:"file_name"`
	Path     string `json:"path"`
	Size     int    `json:"size"`
}

// SummaryInput is the (empty) input schema for the combined_summary tool.
type SummaryInput struct{}

// SummaryOutput is the output schema for the combined_summary tool.
type SummaryOutput struct {
	Query   string `json:"query"`
	Summary string `json:"summary"`
	Count   int    `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the web and return results with a combined summary",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "export_pdf",
		Description: "Export the results for a query as a PDF file and return where it was saved",
	}, s.handleExport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "combined_summary",
		Description: "Return the numbered summary digest of the most recent search",
	}, s.handleCombinedSummary)
}

// applyQuery loads the query and filters into the session.
func (s *Server) applyQuery(in QueryInput) error {
	if in.Query == "" {
		return ErrEmptyQuery
	}
	session := s.ports.Session
	if in.Country != "" {
		c, err := domain.ParseCountry(in.Country)
		if err != nil {
			return err
		}
		if err := session.SetCountry(c); err != nil {
			return err
		}
	}
	if in.UILang != "" {
		l, err := domain.ParseUILanguage(in.UILang)
		if err != nil {
			return err
		}
		if err := session.SetUILanguage(l); err != nil {
			return err
		}
	}
	session.SetQueryText(in.Query)
	return nil
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.applyQuery(input.QueryInput); err != nil {
		return nil, SearchOutput{}, err
	}

	session := s.ports.Session
	if err := session.SubmitSearch(ctx); err != nil {
		if state := session.State(); state.HasError() {
			return nil, SearchOutput{}, fmt.Errorf("%s: %w", state.ErrorMessage, err)
		}
		return nil, SearchOutput{}, err
	}

	state := session.State()
	output := SearchOutput{
		Query:           state.Query.Text,
		Country:         state.Query.Country.String(),
		UILang:          state.Query.UILanguage.String(),
		CombinedSummary: session.CombinedSummary(),
		Results:         make([]SearchResultOutput, len(state.Results)),
		Count:           len(state.Results),
	}

	for i := range state.Results {
		r := state.Results[i]
		output.Results[i] = SearchResultOutput{
			URL:     r.URL,
			Title:   r.DisplayTitle(),
			Summary: r.Summary,
		}
		if input.IncludeContent {
			output.Results[i].Content = s.plainText(r.Content)
		}
	}

	return nil, output, nil
}

// handleExport handles the export_pdf tool invocation.
func (s *Server) handleExport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, ExportOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.applyQuery(input); err != nil {
		return nil, ExportOutput{}, err
	}

	res, err := s.ports.Session.RequestExport(ctx)
	if err != nil {
		return nil, ExportOutput{}, &domain.ExportError{Err: err}
	}

	return nil, ExportOutput{FileName: res.FileName, Path: res.Path, Size: res.Size}, nil
}

// handleCombinedSummary handles the combined_summary tool invocation.
func (s *Server) handleCombinedSummary(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ SummaryInput,
) (*mcp.CallToolResult, SummaryOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.ports.Session.State()
	return nil, SummaryOutput{
		Query:   state.Query.Text,
		Summary: s.ports.Session.CombinedSummary(),
		Count:   len(state.Results),
	}, nil
}

// plainText renders result content as text.
func (s *Server) plainText(content string) string {
	if s.ports.Renderer == nil {
		return content
	}
	return s.ports.Renderer.PlainText(content)
}
