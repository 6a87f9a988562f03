// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// SessionService is the interaction controller: it owns session state and
// funnels every change through named transitions. Derived values such as
// the combined summary are computed on read and never stored.
package services
