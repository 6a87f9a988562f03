package domain

import (
	"fmt"
	"strings"
)

// Country is a two-letter market code understood by the research service.
type Country string

// Supported countries.
const (
	CountryUS Country = "US"
	CountryIN Country = "IN"
	CountryGB Country = "GB"
	CountryCA Country = "CA"
	CountryFR Country = "FR"
	CountryDE Country = "DE"
)

// DefaultCountry is selected when a session starts.
const DefaultCountry = CountryUS

// Countries lists the supported countries in display order.
var Countries = []Country{CountryUS, CountryIN, CountryGB, CountryCA, CountryFR, CountryDE}

// ParseCountry parses a country code, ignoring case.
func ParseCountry(s string) (Country, error) {
	c := Country(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: unknown country %q", ErrInvalidInput, s)
	}
	return c, nil
}

// IsValid returns true if the country is supported.
func (c Country) IsValid() bool {
	switch c {
	case CountryUS, CountryIN, CountryGB, CountryCA, CountryFR, CountryDE:
		return true
	default:
		return false
	}
}

// String returns the country code.
func (c Country) String() string {
	return string(c)
}

// Label returns the display label for the country.
func (c Country) Label() string {
	switch c {
	case CountryUS:
		return "US"
	case CountryIN:
		return "India"
	case CountryGB:
		return "UK"
	case CountryCA:
		return "Canada"
	case CountryFR:
		return "France"
	case CountryDE:
		return "Germany"
	default:
		return unknownDescription
	}
}

// Next returns the country after c in display order, wrapping around.
func (c Country) Next() Country {
	for i, v := range Countries {
		if v == c {
			return Countries[(i+1)%len(Countries)]
		}
	}
	return DefaultCountry
}

// UILanguage is a locale tag for the language of the response.
type UILanguage string

// Supported UI languages.
const (
	UILanguageEnUS UILanguage = "en-US"
	UILanguageEnIN UILanguage = "en-IN"
	UILanguageEnGB UILanguage = "en-GB"
	UILanguageEnCA UILanguage = "en-CA"
	UILanguageFrFR UILanguage = "fr-FR"
	UILanguageDeDE UILanguage = "de-DE"
)

// DefaultUILanguage is selected when a session starts.
const DefaultUILanguage = UILanguageEnUS

// UILanguages lists the supported UI languages in display order.
var UILanguages = []UILanguage{
	UILanguageEnUS, UILanguageEnIN, UILanguageEnGB,
	UILanguageEnCA, UILanguageFrFR, UILanguageDeDE,
}

// ParseUILanguage parses a locale tag, ignoring case and accepting "_"
// as the separator.
func ParseUILanguage(s string) (UILanguage, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "-")
	for _, l := range UILanguages {
		if strings.EqualFold(string(l), s) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: unknown ui language %q", ErrInvalidInput, s)
}

// IsValid returns true if the UI language is supported.
func (l UILanguage) IsValid() bool {
	switch l {
	case UILanguageEnUS, UILanguageEnIN, UILanguageEnGB,
		UILanguageEnCA, UILanguageFrFR, UILanguageDeDE:
		return true
	default:
		return false
	}
}

// String returns the locale tag.
func (l UILanguage) String() string {
	return string(l)
}

// Label returns the display label for the UI language.
func (l UILanguage) Label() string {
	switch l {
	case UILanguageEnUS:
		return "English"
	case UILanguageEnIN:
		return "Indian English"
	case UILanguageEnGB:
		return "UK English"
	case UILanguageEnCA:
		return "Canadian English"
	case UILanguageFrFR:
		return "French"
	case UILanguageDeDE:
		return "German"
	default:
		return unknownDescription
	}
}

// Next returns the UI language after l in display order, wrapping around.
func (l UILanguage) Next() UILanguage {
	for i, v := range UILanguages {
		if v == l {
			return UILanguages[(i+1)%len(UILanguages)]
		}
	}
	return DefaultUILanguage
}
