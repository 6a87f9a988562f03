// Package mcp provides an MCP (Model Context Protocol) server adapter for research.
// It lets AI assistants run web searches and exports through the session service.
package mcp

import "errors"

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("mcp: session service is required")

// ErrEmptyQuery is returned by tools that need query text.
var ErrEmptyQuery = errors.New("mcp: query is required")
