package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrResearchAPIUnavailable indicates no research service client is configured.
	ErrResearchAPIUnavailable = errors.New("research service unavailable")

	// ErrExportSinkUnavailable indicates there is nowhere to save exports.
	ErrExportSinkUnavailable = errors.New("export sink unavailable")

	// ErrSuperseded indicates a response arrived after a newer request was
	// submitted and was discarded.
	ErrSuperseded = errors.New("superseded by a newer request")

	// Request Errors.

	// ErrTransport indicates the request could not be sent or the body could not be read.
	ErrTransport = errors.New("transport error")

	// ErrHTTPStatus indicates the service answered outside the 2xx range.
	ErrHTTPStatus = errors.New("unexpected http status")

	// ErrDecode indicates the response body could not be parsed.
	ErrDecode = errors.New("decode error")
)

// TransportError wraps a network-level failure.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is matches ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// HTTPStatusError reports a non-2xx response.
type HTTPStatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
}

// Is matches ErrHTTPStatus.
func (e *HTTPStatusError) Is(target error) bool {
	return target == ErrHTTPStatus
}

// DecodeError reports a response body that could not be parsed.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is matches ErrDecode.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// User-facing failure messages. Transport, status and decode failures all
// surface the same search message.
const (
	SearchFailedMessage = "Failed to fetch results"
	ExportFailedPrefix  = "Error generating PDF: "
	exportStatusMessage = "Failed to generate PDF"
)

// ExportErrorMessage renders an export failure for the user.
// A non-2xx answer gets a fixed message; anything else shows its error text.
func ExportErrorMessage(err error) string {
	if errors.Is(err, ErrHTTPStatus) {
		return ExportFailedPrefix + exportStatusMessage
	}
	return ExportFailedPrefix + err.Error()
}

// ExportError is an export failure as reported to the user.
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string {
	return ExportErrorMessage(e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
