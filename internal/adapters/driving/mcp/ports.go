package mcp

import (
	"github.com/custodia-labs/research-agent/internal/core/ports/driving"
)

// TextRenderer converts untrusted result HTML to plain text.
type TextRenderer interface {
	PlainText(html string) string
}

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session runs searches and exports. Tool calls share it, so the
	// recent searches resource reflects every call.
	Session driving.SessionService

	// Renderer produces the text content of results. Optional.
	Renderer TextRenderer
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil || p.Session == nil {
		return ErrMissingSessionService
	}
	return nil
}
