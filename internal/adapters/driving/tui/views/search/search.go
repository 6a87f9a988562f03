// Package search provides the main search view for the TUI.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/research-agent/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/research-agent/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/research-agent/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/research-agent/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/research-agent/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/research-agent/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/research-agent/internal/core/domain"
	"github.com/custodia-labs/research-agent/internal/core/ports/driving"
	"github.com/custodia-labs/research-agent/internal/logger"
)

// View is the search screen: filters, query input, combined summary,
// expandable results and a status bar. All session state lives in the
// SessionService; the view keeps a snapshot taken after each transition.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.ResultList
	statusbar *status.Bar

	session driving.SessionService
	ctx     context.Context

	state      domain.SessionState
	width      int
	height     int
	ready      bool
	focusInput bool // true = input mode (typing), false = results mode (navigating)
	nextTag    int
	inFlight   int // submitted searches whose completion has not arrived
	exporting  bool
	modal      string // blocking export failure, empty when hidden
}

// NewView creates a new search view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	session driving.SessionService,
	renderer list.TextRenderer,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQueryInput(s),
		list:       list.NewResultList(s, renderer),
		statusbar:  status.NewBar(s, km),
		session:    session,
		ctx:        context.Background(),
		state:      domain.NewSessionState(),
		width:      80,
		height:     24,
		focusInput: true,
	}
	v.sync()
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.statusbar, cmd = v.statusbar.Update(msg)
		return v, cmd

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.ExportCompleted:
		v.handleExportCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	// Forward everything else (cursor blink) to the input
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
//
//nolint:gocyclo // key dispatch
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// A visible modal swallows everything until dismissed
	if v.modal != "" {
		if keymap.Matches(msg.String(), v.keymap.Dismiss) {
			v.modal = ""
		}
		return v, nil
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Country):
		v.cycleCountry()
		return v, nil
	case keymap.Matches(msg.String(), v.keymap.Language):
		v.cycleLanguage()
		return v, nil
	case keymap.Matches(msg.String(), v.keymap.QuickTag):
		return v, v.applyNextTag()
	case keymap.Matches(msg.String(), v.keymap.Export):
		return v, v.startExport()
	}

	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if msg.Type == tea.KeyTab {
		if v.focusInput && !v.list.IsEmpty() {
			v.focusResults()
		} else {
			v.focusInput = true
			v.input.Focus()
		}
		return v, nil
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			return v, v.startSearch()
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		if v.session != nil {
			v.session.SetQueryText(v.input.Value())
			v.sync()
		}
		return v, cmd
	}

	// Results mode
	switch {
	case keymap.Matches(msg.String(), v.keymap.Toggle):
		if v.session != nil && !v.list.IsEmpty() {
			v.session.ToggleExpand(v.list.Selected())
			v.sync()
		}
		return v, nil
	case keymap.Matches(msg.String(), v.keymap.NewSearch):
		v.SetQuery("")
		return v, nil
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

func (v *View) cycleCountry() {
	if v.session == nil {
		return
	}
	if err := v.session.SetCountry(v.state.Query.Country.Next()); err != nil {
		logger.Warn("Set country: %v", err)
	}
	v.sync()
}

func (v *View) cycleLanguage() {
	if v.session == nil {
		return
	}
	if err := v.session.SetUILanguage(v.state.Query.UILanguage.Next()); err != nil {
		logger.Warn("Set ui language: %v", err)
	}
	v.sync()
}

// applyNextTag puts the next quick tag into the input without submitting.
func (v *View) applyNextTag() tea.Cmd {
	if v.session == nil {
		return nil
	}
	if err := v.session.ApplyQuickTag(v.nextTag); err != nil {
		logger.Warn("Apply quick tag: %v", err)
		return nil
	}
	v.nextTag = (v.nextTag + 1) % len(domain.QuickTags)
	v.sync()
	v.input.SetValue(v.state.Query.Text)
	v.focusInput = true
	return v.input.Focus()
}

// startSearch submits the current query. An empty query does nothing.
func (v *View) startSearch() tea.Cmd {
	query := v.input.Value()
	if query == "" {
		return nil
	}
	if v.session == nil {
		return func() tea.Msg {
			return messages.ErrorOccurred{Err: ErrNoSessionService}
		}
	}

	v.session.SetQueryText(query)
	v.inFlight++
	v.list.Reset()
	v.sync()
	v.statusbar.SetMessage("")
	v.statusbar.SetState(status.StateSearching)

	return tea.Batch(v.performSearch(query), v.statusbar.Tick())
}

// performSearch runs the search off the update loop.
func (v *View) performSearch(query string) tea.Cmd {
	session := v.session
	ctx := v.ctx
	return func() tea.Msg {
		err := session.SubmitSearch(ctx)
		return messages.SearchCompleted{Query: query, Err: err}
	}
}

// handleSearchCompleted applies the session state after a search finishes.
func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	if v.inFlight > 0 {
		v.inFlight--
	}
	if errors.Is(msg.Err, domain.ErrSuperseded) {
		// A newer search owns the state
		return
	}

	v.sync()

	switch {
	case v.state.Loading:
		v.statusbar.SetState(status.StateSearching)
	case v.state.HasError():
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(v.state.ErrorMessage)
	case msg.Err != nil:
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
	default:
		v.statusbar.SetState(status.StateResults)
		v.statusbar.SetResultCount(len(v.state.Results))
		if len(v.state.Results) > 0 {
			v.focusResults()
		}
	}
}

// startExport requests a PDF export of the current query.
// It is ignored while a search or export is running and when there are no results.
func (v *View) startExport() tea.Cmd {
	if v.session == nil || v.exporting || v.inFlight > 0 {
		return nil
	}
	if !v.state.CanExport() || !v.session.State().CanExport() {
		return nil
	}

	v.exporting = true
	v.statusbar.SetMessage("")
	v.statusbar.SetState(status.StateExporting)

	session := v.session
	ctx := v.ctx
	return tea.Batch(func() tea.Msg {
		res, err := session.RequestExport(ctx)
		return messages.ExportCompleted{Result: res, Err: err}
	}, v.statusbar.Tick())
}

// handleExportCompleted shows the saved path or a blocking error.
func (v *View) handleExportCompleted(msg messages.ExportCompleted) {
	v.exporting = false
	v.sync()
	v.restoreStatus()

	if msg.Err != nil {
		v.modal = domain.ExportErrorMessage(msg.Err)
		return
	}
	if msg.Result.Path != "" {
		v.statusbar.SetMessage(fmt.Sprintf("Saved %s (%d bytes)", msg.Result.Path, msg.Result.Size))
	}
}

// restoreStatus puts the status bar back to reflect the session.
func (v *View) restoreStatus() {
	switch {
	case v.state.Loading:
		v.statusbar.SetState(status.StateSearching)
	case v.state.HasError():
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(v.state.ErrorMessage)
	case len(v.state.Results) > 0:
		v.statusbar.SetState(status.StateResults)
		v.statusbar.SetResultCount(len(v.state.Results))
	default:
		v.statusbar.SetState(status.StateReady)
	}
}

func (v *View) focusResults() {
	v.focusInput = false
	v.input.Blur()
}

// sync refreshes the snapshot and the result list from the session.
func (v *View) sync() {
	if v.session == nil {
		return
	}
	v.state = v.session.State()
	if v.inFlight > 0 {
		// The command may not have reached the session yet
		v.state.Loading = true
		v.state.ErrorMessage = ""
		v.state.Results = []domain.SearchResult{}
		v.state.ExpandedIndex = domain.NoExpansion
	}
	v.list.SetResults(v.state.Results)
	v.list.SetExpanded(v.state.ExpandedIndex)
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 16)

	sections = append(sections, v.styles.Title.Render("Research Agent"), "")
	sections = append(sections, v.renderFilters(), v.renderTags(), "")
	sections = append(sections, v.input.View(), "")

	if v.state.HasError() {
		sections = append(sections, v.styles.Error.Render(v.state.ErrorMessage), "")
	}

	if summary := v.CombinedSummary(); summary != "" {
		sections = append(sections,
			v.styles.Subtitle.Render("Combined Summary"),
			v.styles.Panel.Width(v.width-4).Render(summary),
			"",
		)
	}

	sections = append(sections, v.list.View())

	if v.modal != "" {
		sections = append(sections, "", v.renderModal())
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderFilters() string {
	country := v.state.Query.Country
	lang := v.state.Query.UILanguage
	return v.styles.Muted.Render("Country: ") +
		v.styles.Tag.Render(fmt.Sprintf("%s %s", country, country.Label())) +
		v.styles.Muted.Render("  Language: ") +
		v.styles.Tag.Render(lang.Label()) +
		v.styles.Help.Render("  [ctrl+o/ctrl+l] change")
}

func (v *View) renderTags() string {
	tags := make([]string, 0, len(domain.QuickTags))
	for i, tag := range domain.QuickTags {
		if i == v.nextTag {
			tags = append(tags, v.styles.Normal.Render(tag))
		} else {
			tags = append(tags, v.styles.Muted.Render(tag))
		}
	}
	return v.styles.Muted.Render("Tags: ") + strings.Join(tags, v.styles.Muted.Render(" · ")) +
		v.styles.Help.Render("  [ctrl+t] use")
}

func (v *View) renderModal() string {
	body := v.styles.Error.Render("Export failed") + "\n\n" +
		v.styles.Normal.Render(v.modal) + "\n\n" +
		v.styles.Help.Render("[enter/esc] dismiss")
	return v.styles.Modal.Render(body)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-14) // Reserve space for header, filters, input, status
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the text in the input.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery fills the input and the session query, and focuses the input.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
	if v.session != nil {
		v.session.SetQueryText(query)
		v.sync()
	}
	v.focusInput = true
	v.input.Focus()
}

// Results returns the results being displayed.
func (v *View) Results() []domain.SearchResult {
	return v.list.Results()
}

// SelectedIndex returns the index of the selected result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// State returns the last session snapshot the view rendered from.
func (v *View) State() domain.SessionState {
	return v.state
}

// CombinedSummary returns the digest for the displayed results.
func (v *View) CombinedSummary() string {
	if v.session == nil || v.inFlight > 0 {
		return ""
	}
	return v.session.CombinedSummary()
}

// Modal returns the visible export failure message, if any.
func (v *View) Modal() string {
	return v.modal
}

// Exporting reports whether an export is in flight.
func (v *View) Exporting() bool {
	return v.exporting
}

// StatusBar returns the status bar component.
func (v *View) StatusBar() *status.Bar {
	return v.statusbar
}

// Reset prepares the view for display: it reloads the session and puts
// the session query back into a focused input.
func (v *View) Reset() {
	v.sync()
	v.input.SetValue(v.state.Query.Text)
	v.focusInput = true
	v.input.Focus()
	v.modal = ""
	v.restoreStatus()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
