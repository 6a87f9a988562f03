package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/research-agent/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
	assert.Equal(t, "Search the web", searchCmd.Short)
}

func TestSearchCmd_Flags(t *testing.T) {
	country := searchCmd.Flags().Lookup("country")
	require.NotNil(t, country)
	assert.Equal(t, "c", country.Shorthand)

	lang := searchCmd.Flags().Lookup("ui-lang")
	require.NotNil(t, lang)
	assert.Equal(t, "l", lang.Shorthand)

	assert.NotNil(t, searchCmd.Flags().Lookup("json"))
	assert.NotNil(t, searchCmd.Flags().Lookup("content"))
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "search")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_NoServices(t *testing.T) {
	defer resetFlags()

	_, err := execute(t, "search", "q")

	assert.ErrorIs(t, err, ErrServicesNotConfigured)
}

func TestSearchCmd_PrintsResultsAndSummary(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "search", "market trends")

	require.NoError(t, err)
	assert.Contains(t, out, "Combined Summary")
	assert.Contains(t, out, "1. sum1")
	assert.Contains(t, out, "Results (2)")
	assert.Contains(t, out, "[1] A")
	assert.Contains(t, out, "https://a.example")
	assert.Contains(t, out, "[2] https://b.example")
	assert.NotContains(t, out, "alpha")

	require.Len(t, env.api.queries, 1)
	assert.Equal(t, domain.SearchQuery{
		Text: "market trends", Country: domain.CountryUS, UILanguage: domain.UILanguageEnUS,
	}, env.api.queries[0])
}

func TestSearchCmd_Filters(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "search", "--country", "fr", "--ui-lang", "fr_FR", "q")

	require.NoError(t, err)
	require.Len(t, env.api.queries, 1)
	assert.Equal(t, domain.CountryFR, env.api.queries[0].Country)
	assert.Equal(t, domain.UILanguageFrFR, env.api.queries[0].UILanguage)
}

func TestSearchCmd_InvalidCountry(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "search", "--country", "XX", "q")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, env.api.queries)
}

func TestSearchCmd_Content(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "search", "--content", "q")

	require.NoError(t, err)
	assert.Contains(t, out, "alpha")
	assert.NotContains(t, out, "<p>")
	assert.Contains(t, out, "No summary available.")
}

func TestSearchCmd_JSON(t *testing.T) {
	_, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "search", "--json", "market trends")
	require.NoError(t, err)

	var got searchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "market trends", got.Query)
	assert.Equal(t, domain.CountryUS, got.Country)
	assert.Equal(t, "1. sum1", got.CombinedSummary)
	assert.Len(t, got.Results, 2)
}

func TestSearchCmd_JSONSanitisesContent(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	env.renderer = tagSanitiser{}
	env.api.results = []domain.SearchResult{
		{URL: "https://a.example", Content: "<p>alpha</p><script>x</script>"},
	}

	out, err := execute(t, "search", "--json", "q")
	require.NoError(t, err)

	var got searchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Results, 1)
	assert.Equal(t, "<p>alpha</p>", got.Results[0].Content)
}

func TestSearchCmd_NoResults(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	env.api.results = nil

	out, err := execute(t, "search", "q")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_Failure(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	env.api.searchErr = &domain.HTTPStatusError{Endpoint: "/search", StatusCode: 500}

	_, err := execute(t, "search", "q")

	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.SearchFailedMessage)
	assert.ErrorIs(t, err, domain.ErrHTTPStatus)
}

func TestSearchCmd_EmptyQuery_Rejected(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "search", "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotContains(t, out, "No results found.")
	assert.Empty(t, env.api.queries)
}

func TestContentText(t *testing.T) {
	textRenderer = stripTags{}
	defer func() { textRenderer = nil }()

	assert.Equal(t, "hi", contentText("<b>hi</b>"))
	assert.Equal(t, "No summary available.", contentText(""))
}
