package mcp

import (
	"context"
	"strconv"
	"strings"

	"github.com/custodia-labs/research-agent/internal/core/domain"
	"github.com/custodia-labs/research-agent/internal/core/ports/driving"
)

// mockSessionService is a mock implementation of driving.SessionService.
// Searches return the canned results and append to the recent log.
type mockSessionService struct {
	state     domain.SessionState
	results   []domain.SearchResult
	searchErr error
	export    driving.ExportResult
	exportErr error
	searches  int
	exports   int
}

func newMockSession() *mockSessionService {
	return &mockSessionService{state: domain.NewSessionState()}
}

func (m *mockSessionService) SetQueryText(text string) { m.state.Query.Text = text }

func (m *mockSessionService) SetCountry(c domain.Country) error {
	m.state.Query.Country = c
	return nil
}

func (m *mockSessionService) SetUILanguage(l domain.UILanguage) error {
	m.state.Query.UILanguage = l
	return nil
}

func (m *mockSessionService) ApplyQuickTag(int) error { return nil }

func (m *mockSessionService) SubmitSearch(_ context.Context) error {
	m.searches++
	if m.searchErr != nil {
		m.state.Results = []domain.SearchResult{}
		m.state.ErrorMessage = domain.SearchFailedMessage
		return m.searchErr
	}
	m.state.ErrorMessage = ""
	m.state.Results = m.results
	m.state.RecentSearches = domain.PrependRecent(m.state.RecentSearches,
		domain.RecentSearch{Query: m.state.Query.Text})
	return nil
}

func (m *mockSessionService) RequestExport(_ context.Context) (driving.ExportResult, error) {
	m.exports++
	return m.export, m.exportErr
}

func (m *mockSessionService) ToggleExpand(int) {}

func (m *mockSessionService) CombinedSummary() string {
	parts := []string{}
	for i, r := range m.state.Results {
		if r.Summary != "" {
			parts = append(parts, strconv.Itoa(i+1)+". "+r.Summary)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (m *mockSessionService) State() domain.SessionState { return m.state.Clone() }

// upperRenderer is a TextRenderer that marks its output.
type upperRenderer struct{}

func (upperRenderer) PlainText(html string) string { return strings.ToUpper(html) }

func newTestServer(session *mockSessionService) *Server {
	server, err := NewServer(&Ports{Session: session, Renderer: upperRenderer{}}, "test")
	if err != nil {
		panic(err)
	}
	return server
}
