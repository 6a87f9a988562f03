// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/research-agent/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/research-agent/internal/core/domain"
)

// NoContentText is shown for an expanded result without content.
const NoContentText = "No summary available."

// TextRenderer turns result HTML into displayable text.
type TextRenderer interface {
	PlainText(raw string) string
}

// ResultList displays search results in a navigable, expandable list.
// Expansion is owned by the session; the list only renders it.
type ResultList struct {
	results  []domain.SearchResult
	selected int
	expanded int
	renderer TextRenderer
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
// A nil renderer shows content as-is.
func NewResultList(s *styles.Styles, renderer TextRenderer) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		results:  nil,
		selected: 0,
		expanded: domain.NoExpansion,
		renderer: renderer,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return r.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(r.results)+2)

	header := r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.results)))
	lines = append(lines, header, "")

	// Each collapsed result takes two lines; an expanded one takes more,
	// so keep the selection visible and let the tail be cut.
	visibleCount := (r.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.results) {
		end = len(r.results)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderResult(i, &r.results[i]))
	}

	return strings.Join(lines, "\n")
}

// renderResult formats a single search result, with its content when expanded.
func (r *ResultList) renderResult(index int, result *domain.SearchResult) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	marker := "+"
	if index == r.expanded {
		marker = "-"
	}

	title := truncate(result.DisplayTitle(), r.width-8)
	var titleLine string
	if index == r.selected {
		titleLine = r.styles.Selected.Render(fmt.Sprintf("%s%s %s", indicator, marker, title))
	} else {
		titleLine = r.styles.Normal.Render(fmt.Sprintf("%s%s %s", indicator, marker, title))
	}

	urlLine := r.styles.Muted.Render("    " + truncate(result.URL, r.width-6))

	if index != r.expanded {
		return titleLine + "\n" + urlLine
	}

	return titleLine + "\n" + urlLine + "\n" + r.renderContent(result)
}

// renderContent renders the body of an expanded result.
func (r *ResultList) renderContent(result *domain.SearchResult) string {
	text := result.Content
	if r.renderer != nil {
		text = r.renderer.PlainText(text)
	}
	if strings.TrimSpace(text) == "" {
		return r.styles.Muted.Render("    " + NoContentText)
	}

	width := r.width - 6
	if width < 20 {
		width = 20
	}
	return lipgloss.NewStyle().
		Width(width).
		MarginLeft(4).
		Foreground(r.styles.Theme().Foreground).
		Render(text)
}

func truncate(s string, max int) string {
	if max < 10 {
		max = 10
	}
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}

// SetResults updates the result list. The selection is kept when it is
// still in range.
func (r *ResultList) SetResults(results []domain.SearchResult) {
	r.results = results
	if r.selected >= len(results) {
		r.selected = 0
	}
}

// Results returns the current results.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// SetExpanded sets which result is expanded, or domain.NoExpansion.
func (r *ResultList) SetExpanded(index int) {
	r.expanded = index
}

// Expanded returns the expanded index.
func (r *ResultList) Expanded() int {
	return r.expanded
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if len(r.results) == 0 || r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// Reset clears results, selection and expansion.
func (r *ResultList) Reset() {
	r.results = nil
	r.selected = 0
	r.expanded = domain.NoExpansion
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Width returns the current width.
func (r *ResultList) Width() int {
	return r.width
}

// Height returns the current height.
func (r *ResultList) Height() int {
	return r.height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
