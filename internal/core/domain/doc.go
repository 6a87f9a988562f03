// Package domain defines the core business entities for the research agent.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchQuery: The text and filters captured at submit time
//   - SearchResult: A single hit from the research service
//   - SessionState: A snapshot of one interactive session
//   - RecentSearch: An entry in the bounded recent search log
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
