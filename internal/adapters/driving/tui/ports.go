// Package tui provides an interactive terminal user interface for research.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/research-agent/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/research-agent/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session drives the search screen.
	Session driving.SessionService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService

	// Renderer turns result HTML into terminal text. Optional; raw
	// content is shown without it.
	Renderer list.TextRenderer
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(session driving.SessionService, settings driving.SettingsService) *Ports {
	return &Ports{
		Session:  session,
		Settings: settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Session == nil {
		return ErrMissingSessionService
	}
	return nil
}
