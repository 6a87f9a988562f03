package domain

import (
	"fmt"
	"net/url"
)

const unknownDescription = "Unknown"

// DefaultBaseURL is the research service used when none is configured.
const DefaultBaseURL = "http://localhost:8000"

// APISettings configures the research service client.
type APISettings struct {
	// BaseURL is the research service root, e.g. http://localhost:8000.
	BaseURL string

	// RequestsPerSecond throttles outbound requests. Zero means unlimited.
	RequestsPerSecond float64
}

// SearchSettings holds the filter selections a session starts with.
type SearchSettings struct {
	Country    Country
	UILanguage UILanguage
}

// ExportSettings configures where exported documents are written.
type ExportSettings struct {
	// Dir is the directory exports are saved to. Empty means the working directory.
	Dir string
}

// AppSettings is the complete application configuration.
type AppSettings struct {
	API    APISettings
	Search SearchSettings
	Export ExportSettings
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL: DefaultBaseURL,
		},
		Search: SearchSettings{
			Country:    DefaultCountry,
			UILanguage: DefaultUILanguage,
		},
	}
}

// Validate checks the settings are usable.
func (s AppSettings) Validate() error {
	u, err := url.Parse(s.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base url %q must be absolute", ErrInvalidInput, s.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: base url scheme %q not supported", ErrInvalidInput, u.Scheme)
	}
	if s.API.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: requests per second must not be negative", ErrInvalidInput)
	}
	if !s.Search.Country.IsValid() {
		return fmt.Errorf("%w: country %q", ErrInvalidInput, s.Search.Country)
	}
	if !s.Search.UILanguage.IsValid() {
		return fmt.Errorf("%w: ui language %q", ErrInvalidInput, s.Search.UILanguage)
	}
	return nil
}
