// Package recent provides the recent searches view for the TUI.
package recent

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/research-agent/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/research-agent/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/research-agent/internal/core/domain"
	"github.com/custodia-labs/research-agent/internal/core/ports/driving"
)

const timeLayout = "15:04:05"

// View lists the searches submitted in this session, newest first.
type View struct {
	styles   *styles.Styles
	session  driving.SessionService
	entries  []domain.RecentSearch
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new recent searches view.
func NewView(s *styles.Styles, session driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{
		styles:  s,
		session: session,
		width:   80,
		height:  24,
	}
	v.Reset()
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Reset reloads the entries from the session and selects the newest.
func (v *View) Reset() {
	v.selected = 0
	v.entries = nil
	if v.session != nil {
		v.entries = v.session.State().RecentSearches
	}
}

// Update handles messages for the recent view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.entries)-1 {
				v.selected++
			}
		case "enter":
			if len(v.entries) == 0 {
				return v, nil
			}
			query := v.entries[v.selected].Query
			return v, func() tea.Msg {
				return messages.RecentSelected{Query: query}
			}
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
	}
	return v, nil
}

// View renders the recent searches.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Recent Searches"))
	b.WriteString("\n\n")

	if len(v.entries) == 0 {
		b.WriteString(v.styles.Muted.Render("No searches yet"))
	}

	for i, entry := range v.entries {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Selected
		}
		line := fmt.Sprintf("%s%s  %s", cursor,
			v.styles.Muted.Render(entry.Time.Format(timeLayout)),
			style.Render(entry.Query))
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [enter] Search again  [esc] Back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Entries returns the listed searches.
func (v *View) Entries() []domain.RecentSearch {
	return v.entries
}

// Selected returns the selected index.
func (v *View) Selected() int {
	return v.selected
}
