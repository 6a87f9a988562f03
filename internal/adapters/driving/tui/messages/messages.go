// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/research-agent/internal/core/domain"
	"github.com/custodia-labs/research-agent/internal/core/ports/driving"
)

// SearchCompleted is sent when a submitted search finishes.
// Results are read from the session; only the outcome travels here.
type SearchCompleted struct {
	Query string
	Err   error
}

// ExportCompleted is sent when an export request finishes.
type ExportCompleted struct {
	Result driving.ExportResult
	Err    error
}

// RecentSelected is sent when a recent search is picked for reuse.
type RecentSelected struct {
	Query string
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSearch is the search input and results view.
	ViewSearch
	// ViewRecent lists the recent searches of the session.
	ViewRecent
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings edits the stored settings.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearch:
		return "search"
	case ViewRecent:
		return "recent"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// SettingsLoaded is sent when settings have been read.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved is sent after a setting has been written.
type SettingsSaved struct {
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
