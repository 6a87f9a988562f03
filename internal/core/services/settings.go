package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/research-agent/internal/core/domain"
	"github.com/custodia-labs/research-agent/internal/core/ports/driven"
	"github.com/custodia-labs/research-agent/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyAPIBaseURL    = "api.base_url"
	KeyAPIRate       = "api.requests_per_second"
	KeySearchCountry = "search.country"
	KeySearchUILang  = "search.ui_lang"
	KeyExportDir     = "export.dir"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Missing or invalid stored values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:           s.getString(KeyAPIBaseURL, defaults.API.BaseURL),
			RequestsPerSecond: s.getRate(defaults.API.RequestsPerSecond),
		},
		Search: domain.SearchSettings{
			Country:    s.getCountry(defaults.Search.Country),
			UILanguage: s.getUILanguage(defaults.Search.UILanguage),
		},
		Export: domain.ExportSettings{
			Dir: s.configStore.GetString(KeyExportDir), // No default - empty means working directory
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(KeyAPIBaseURL, settings.API.BaseURL); err != nil {
		return fmt.Errorf("save api base_url: %w", err)
	}
	if err := s.configStore.Set(KeyAPIRate, settings.API.RequestsPerSecond); err != nil {
		return fmt.Errorf("save api requests_per_second: %w", err)
	}
	if err := s.configStore.Set(KeySearchCountry, settings.Search.Country.String()); err != nil {
		return fmt.Errorf("save search country: %w", err)
	}
	if err := s.configStore.Set(KeySearchUILang, settings.Search.UILanguage.String()); err != nil {
		return fmt.Errorf("save search ui_lang: %w", err)
	}
	if err := s.configStore.Set(KeyExportDir, settings.Export.Dir); err != nil {
		return fmt.Errorf("save export dir: %w", err)
	}

	return nil
}

// Set updates a single setting by config key.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case KeyAPIBaseURL:
		settings.API.BaseURL = value
	case KeyAPIRate:
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.API.RequestsPerSecond = rate
	case KeySearchCountry:
		country, err := domain.ParseCountry(value)
		if err != nil {
			return err
		}
		settings.Search.Country = country
	case KeySearchUILang:
		lang, err := domain.ParseUILanguage(value)
		if err != nil {
			return err
		}
		settings.Search.UILanguage = lang
	case KeyExportDir:
		settings.Export.Dir = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys returns the settable config keys.
func (s *SettingsService) Keys() []string {
	return []string{KeyAPIBaseURL, KeyAPIRate, KeySearchCountry, KeySearchUILang, KeyExportDir}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Path returns where settings are stored.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getRate(defaultVal float64) float64 {
	if _, exists := s.configStore.Get(KeyAPIRate); !exists {
		return defaultVal
	}
	rate := s.configStore.GetFloat(KeyAPIRate)
	if rate < 0 {
		return defaultVal
	}
	return rate
}

func (s *SettingsService) getCountry(defaultVal domain.Country) domain.Country {
	val := s.configStore.GetString(KeySearchCountry)
	if val == "" {
		return defaultVal
	}
	country, err := domain.ParseCountry(val)
	if err != nil {
		return defaultVal
	}
	return country
}

func (s *SettingsService) getUILanguage(defaultVal domain.UILanguage) domain.UILanguage {
	val := s.configStore.GetString(KeySearchUILang)
	if val == "" {
		return defaultVal
	}
	lang, err := domain.ParseUILanguage(val)
	if err != nil {
		return defaultVal
	}
	return lang
}
