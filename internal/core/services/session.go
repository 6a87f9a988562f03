package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/research-agent/internal/core/domain"
	"github.com/custodia-labs/research-agent/internal/core/ports/driven"
	"github.com/custodia-labs/research-agent/internal/core/ports/driving"
	"github.com/custodia-labs/research-agent/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService is the interaction controller for one session.
// It is safe for concurrent use. Network waits happen outside the lock,
// so the caller may keep editing or submit again while a request is in
// flight. Only the most recently submitted search may change the results.
type SessionService struct {
	api  driven.ResearchAPI
	sink driven.ExportSink
	now  func() time.Time

	mu    sync.Mutex
	state domain.SessionState
	seq   uint64
}

// NewSessionService creates a session seeded with the given filter defaults.
// The sink is optional; without it exports fail with ErrExportSinkUnavailable.
func NewSessionService(
	api driven.ResearchAPI,
	sink driven.ExportSink,
	defaults domain.SearchSettings,
) *SessionService {
	state := domain.NewSessionState()
	if defaults.Country.IsValid() {
		state.Query.Country = defaults.Country
	}
	if defaults.UILanguage.IsValid() {
		state.Query.UILanguage = defaults.UILanguage
	}

	return &SessionService{
		api:   api,
		sink:  sink,
		now:   time.Now,
		state: state,
	}
}

// WithClock sets the clock used to timestamp recent searches.
func (s *SessionService) WithClock(now func() time.Time) *SessionService {
	s.now = now
	return s
}

// SetQueryText replaces the text being edited.
func (s *SessionService) SetQueryText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Query.Text = text
}

// SetCountry selects the country filter.
func (s *SessionService) SetCountry(country domain.Country) error {
	if !country.IsValid() {
		return fmt.Errorf("%w: country %q", domain.ErrInvalidInput, country)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Query.Country = country
	return nil
}

// SetUILanguage selects the UI language filter.
func (s *SessionService) SetUILanguage(lang domain.UILanguage) error {
	if !lang.IsValid() {
		return fmt.Errorf("%w: ui language %q", domain.ErrInvalidInput, lang)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Query.UILanguage = lang
	return nil
}

// ApplyQuickTag replaces the query text with a quick tag. It does not submit.
func (s *SessionService) ApplyQuickTag(index int) error {
	if index < 0 || index >= len(domain.QuickTags) {
		return fmt.Errorf("%w: quick tag %d", domain.ErrInvalidInput, index)
	}
	s.SetQueryText(domain.QuickTags[index])
	return nil
}

// SubmitSearch runs a search for the current query.
//
// The query is captured before the request is sent. Results, error and
// expansion are cleared and loading is set before the request; the response
// is applied only if no newer search was submitted meanwhile, otherwise
// ErrSuperseded is returned and state is left to the newer search.
func (s *SessionService) SubmitSearch(ctx context.Context) error {
	s.mu.Lock()
	query := s.state.Query
	if query.Empty() {
		s.mu.Unlock()
		logger.Debug("Empty query, search skipped")
		return nil
	}
	if s.api == nil {
		s.mu.Unlock()
		return domain.ErrResearchAPIUnavailable
	}

	s.seq++
	token := s.seq
	s.state.Loading = true
	s.state.ErrorMessage = ""
	s.state.Results = []domain.SearchResult{}
	s.state.ExpandedIndex = domain.NoExpansion
	s.mu.Unlock()

	logger.Section("Search")
	logger.Debug("Query: %q, country=%s, ui_lang=%s, token=%d", query.Text, query.Country, query.UILanguage, token)

	resp, err := s.api.FetchSearchResults(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.seq {
		logger.Debug("Discarding response for token %d, latest is %d", token, s.seq)
		return domain.ErrSuperseded
	}

	s.state.Loading = false

	if err != nil {
		logger.Warn("Search failed: %v", err)
		s.state.ErrorMessage = domain.SearchFailedMessage
		return fmt.Errorf("search %q: %w", query.Text, err)
	}

	results := []domain.SearchResult{}
	if resp != nil && resp.Results != nil {
		results = resp.Results
	}
	s.state.Results = results
	s.state.RecentSearches = domain.PrependRecent(s.state.RecentSearches, domain.RecentSearch{
		Query: query.Text,
		Time:  s.now(),
	})
	logger.Info("Results: %d", len(results))

	return nil
}

// RequestExport fetches a PDF export for the current query and hands it to
// the sink. Search state is never touched.
func (s *SessionService) RequestExport(ctx context.Context) (driving.ExportResult, error) {
	s.mu.Lock()
	query := s.state.Query
	s.mu.Unlock()

	if query.Empty() {
		logger.Debug("Empty query, export skipped")
		return driving.ExportResult{}, nil
	}
	if s.api == nil {
		return driving.ExportResult{}, domain.ErrResearchAPIUnavailable
	}
	if s.sink == nil {
		return driving.ExportResult{}, domain.ErrExportSinkUnavailable
	}

	logger.Section("Export")
	logger.Debug("Query: %q, country=%s, ui_lang=%s", query.Text, query.Country, query.UILanguage)

	data, err := s.api.FetchExportBlob(ctx, query)
	if err != nil {
		logger.Error("export %q: %v", query.Text, err)
		return driving.ExportResult{}, fmt.Errorf("export %q: %w", query.Text, err)
	}

	name := ExportFileName(query.Text)
	path, err := s.sink.Save(ctx, name, data)
	if err != nil {
		logger.Error("save export %s: %v", name, err)
		return driving.ExportResult{}, fmt.Errorf("save export %s: %w", name, err)
	}

	logger.Info("Export saved: %s (%d bytes)", path, len(data))
	return driving.ExportResult{FileName: name, Path: path, Size: len(data)}, nil
}

// ToggleExpand expands the result at index, or collapses it if it is the
// one already expanded.
func (s *SessionService) ToggleExpand(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.ExpandedIndex == index {
		s.state.ExpandedIndex = domain.NoExpansion
		return
	}
	s.state.ExpandedIndex = index
}

// CombinedSummary derives the numbered digest from the current results.
func (s *SessionService) CombinedSummary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CombinedSummary(s.state.Results)
}

// State returns a snapshot of the session.
func (s *SessionService) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// ExportFileName names an export after its query text.
// Path separators are replaced so the name never escapes the export directory.
func ExportFileName(text string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, text)
	return "search_results_" + safe + ".pdf"
}
