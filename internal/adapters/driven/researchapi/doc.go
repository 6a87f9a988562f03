// Package researchapi provides the HTTP client for the remote research
// service. It implements driven.ResearchAPI over two GET endpoints:
// /search returns JSON results and /generate_pdf returns a PDF blob.
//
// Failures are reported as the domain's typed request errors so callers
// can tell transport, status and decode problems apart with errors.Is.
package researchapi
