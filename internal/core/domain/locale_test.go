package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCountry(t *testing.T) {
	tests := []struct {
		in      string
		want    Country
		wantErr bool
	}{
		{"US", CountryUS, false},
		{"in", CountryIN, false},
		{" gb ", CountryGB, false},
		{"CA", CountryCA, false},
		{"fr", CountryFR, false},
		{"DE", CountryDE, false},
		{"JP", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCountry(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountry_Labels(t *testing.T) {
	for _, c := range Countries {
		assert.True(t, c.IsValid())
		assert.NotEqual(t, unknownDescription, c.Label())
	}
	assert.Equal(t, "India", CountryIN.Label())
	assert.Equal(t, unknownDescription, Country("XX").Label())
}

func TestCountry_Next(t *testing.T) {
	assert.Equal(t, CountryIN, CountryUS.Next())
	assert.Equal(t, CountryUS, CountryDE.Next())
	assert.Equal(t, DefaultCountry, Country("XX").Next())
}

func TestParseUILanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    UILanguage
		wantErr bool
	}{
		{"en-US", UILanguageEnUS, false},
		{"en_us", UILanguageEnUS, false},
		{"EN-IN", UILanguageEnIN, false},
		{"en-GB", UILanguageEnGB, false},
		{"en-CA", UILanguageEnCA, false},
		{"fr-fr", UILanguageFrFR, false},
		{"de-DE", UILanguageDeDE, false},
		{"en", "", true},
		{"es-ES", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUILanguage(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUILanguage_Next(t *testing.T) {
	seen := map[UILanguage]bool{}
	l := DefaultUILanguage
	for range UILanguages {
		seen[l] = true
		l = l.Next()
	}
	assert.Len(t, seen, len(UILanguages))
	assert.Equal(t, DefaultUILanguage, l)
}

func TestUILanguage_Labels(t *testing.T) {
	assert.Equal(t, "English", UILanguageEnUS.Label())
	assert.Equal(t, "German", UILanguageDeDE.Label())
	assert.Equal(t, unknownDescription, UILanguage("xx").Label())
	assert.False(t, UILanguage("en").IsValid())
}
