// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/research-agent/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/research-agent/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/research-agent/internal/core/domain"
	"github.com/custodia-labs/research-agent/internal/core/ports/driving"
)

// ErrNoSettingsService is reported when the view has no settings service.
var ErrNoSettingsService = errors.New("settings service not available")

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
)

// fieldKind decides how a field is edited.
type fieldKind int

const (
	kindText  fieldKind = iota // edited in a text input
	kindCycle                  // enter steps to the next value
)

// field is one editable row.
type field struct {
	label string
	key   string
	kind  fieldKind
	value func(*domain.AppSettings) string
	next  func(*domain.AppSettings) string
}

var fields = []field{
	{
		label: "Service URL",
		key:   "api.base_url",
		kind:  kindText,
		value: func(s *domain.AppSettings) string { return s.API.BaseURL },
	},
	{
		label: "Requests per second",
		key:   "api.requests_per_second",
		kind:  kindText,
		value: func(s *domain.AppSettings) string {
			return strconv.FormatFloat(s.API.RequestsPerSecond, 'f', -1, 64)
		},
	},
	{
		label: "Default country",
		key:   "search.country",
		kind:  kindCycle,
		value: func(s *domain.AppSettings) string { return s.Search.Country.String() },
		next:  func(s *domain.AppSettings) string { return s.Search.Country.Next().String() },
	},
	{
		label: "Default language",
		key:   "search.ui_lang",
		kind:  kindCycle,
		value: func(s *domain.AppSettings) string { return s.Search.UILanguage.String() },
		next:  func(s *domain.AppSettings) string { return s.Search.UILanguage.Next().String() },
	},
	{
		label: "Export directory",
		key:   "export.dir",
		kind:  kindText,
		value: func(s *domain.AppSettings) string { return s.Export.Dir },
	},
}

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error

	selected int
	editing  bool
	input    textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	in := textinput.New()
	in.CharLimit = 512

	return &View{
		styles:          s,
		settingsService: settingsService,
		input:           in,
	}
}

// Init loads the current settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// Reset returns the view to the field list.
func (v *View) Reset() {
	v.selected = 0
	v.editing = false
	v.err = nil
	v.input.Blur()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// saveSetting returns a command that writes one key.
func (v *View) saveSetting(key, value string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: ErrNoSettingsService}
		}
		return messages.SettingsSaved{Err: svc.Set(key, value)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.editing = false
		v.input.Blur()
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKeys(msg)
		}
		return v.handleListKeys(msg)
	}

	if v.editing {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleListKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(fields)-1 {
			v.selected++
		}
	case keyEnter:
		if v.settings == nil {
			return v, nil
		}
		f := fields[v.selected]
		if f.kind == kindCycle {
			return v, v.saveSetting(f.key, f.next(v.settings))
		}
		v.editing = true
		v.input.SetValue(f.value(v.settings))
		v.input.CursorEnd()
		return v, v.input.Focus()
	}
	return v, nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		v.editing = false
		v.err = nil
		v.input.Blur()
		return v, nil
	case keyEnter:
		return v, v.saveSetting(fields[v.selected].key, strings.TrimSpace(v.input.Value()))
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	for i, f := range fields {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Selected
		}

		value := f.value(v.settings)
		if value == "" {
			value = "(not set)"
		}
		if v.editing && i == v.selected {
			value = v.input.View()
		}

		b.WriteString(fmt.Sprintf("%s%-22s %s\n", cursor, style.Render(f.label), value))
	}

	b.WriteString("\n")
	if v.settingsService != nil {
		b.WriteString(v.styles.Muted.Render("Stored in " + v.settingsService.Path()))
		b.WriteString("\n")
	}
	if v.editing {
		b.WriteString(v.styles.Help.Render("[enter] Save  [esc] Cancel"))
	} else {
		b.WriteString(v.styles.Help.Render("[j/k] Navigate  [enter] Edit/Next  [esc] Back"))
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.Width = width - 30
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Selected returns the selected field index.
func (v *View) Selected() int {
	return v.selected
}

// Editing reports whether a text field is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Err returns the last load or save error.
func (v *View) Err() error {
	return v.err
}
