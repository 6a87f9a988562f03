package researchapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/research-agent/internal/core/domain"
)

func testQuery(text string) domain.SearchQuery {
	return domain.SearchQuery{
		Text:       text,
		Country:    domain.CountryUS,
		UILanguage: domain.UILanguageEnUS,
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{})

	assert.Equal(t, "http://localhost:8000", c.BaseURL())
	assert.True(t, c.limiter.Unlimited())
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://example.com/api/"})
	assert.Equal(t, "http://example.com/api", c.BaseURL())
}

func TestClient_EndpointURL(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://localhost:8000"})

	got := c.EndpointURL(SearchPath, domain.SearchQuery{
		Text:       "market trends & more",
		Country:    domain.CountryIN,
		UILanguage: domain.UILanguageEnIN,
	})

	assert.Equal(t, "http://localhost:8000/search?query=market%20trends%20%26%20more&country=IN&ui_lang=en-IN", got)
}

func TestClient_EndpointURL_EscapesPlusAndUnicode(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://localhost:8000/"})

	got := c.EndpointURL(ExportPath, domain.SearchQuery{
		Text:       "c++ für alle",
		Country:    domain.CountryDE,
		UILanguage: domain.UILanguageDeDE,
	})

	assert.Equal(t, "http://localhost:8000/generate_pdf?query=c%2B%2B%20f%C3%BCr%20alle&country=DE&ui_lang=de-DE", got)

	parsed, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "c++ für alle", parsed.Query().Get("query"))
}

func TestClient_FetchSearchResults_Success(t *testing.T) {
	var gotRequestID, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, SearchPath, r.URL.Path)
		assert.Equal(t, "market trends", r.URL.Query().Get("query"))
		assert.Equal(t, "US", r.URL.Query().Get("country"))
		assert.Equal(t, "en-US", r.URL.Query().Get("ui_lang"))
		gotRequestID = r.Header.Get(HeaderRequestID)
		gotAccept = r.Header.Get("Accept")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"url":"https://a.example","title":"A","content":"<p>a</p>","summary":"sum1"},
			{"url":"https://b.example","title":"B","content":"<p>b</p>","summary":""}
		]}`))
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL})
	resp, err := c.FetchSearchResults(context.Background(), testQuery("market trends"))

	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, domain.SearchResult{
		URL:     "https://a.example",
		Title:   "A",
		Content: "<p>a</p>",
		Summary: "sum1",
	}, resp.Results[0])
	assert.Empty(t, resp.Results[1].Summary)
	assert.Equal(t, "application/json", gotAccept)
	_, parseErr := uuid.Parse(gotRequestID)
	assert.NoError(t, parseErr, "request id should be a uuid")
}

func TestClient_FetchSearchResults_MissingResults(t *testing.T) {
	for _, body := range []string{`{}`, `{"results":null}`} {
		t.Run(body, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer server.Close()

			c := NewClient(Config{BaseURL: server.URL})
			resp, err := c.FetchSearchResults(context.Background(), testQuery("q"))

			require.NoError(t, err)
			assert.NotNil(t, resp.Results)
			assert.Empty(t, resp.Results)
		})
	}
}

func TestClient_FetchSearchResults_HTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL})
	resp, err := c.FetchSearchResults(context.Background(), testQuery("q"))

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrHTTPStatus)

	var statusErr *domain.HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Equal(t, SearchPath, statusErr.Endpoint)
}

func TestClient_FetchSearchResults_Decode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL})
	_, err := c.FetchSearchResults(context.Background(), testQuery("q"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDecode)
	assert.NotErrorIs(t, err, domain.ErrTransport)
}

func TestClient_FetchSearchResults_Transport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	c := NewClient(Config{BaseURL: url})
	_, err := c.FetchSearchResults(context.Background(), testQuery("q"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestClient_CanceledContext(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(Config{BaseURL: server.URL})
	_, err := c.FetchSearchResults(ctx, testQuery("q"))

	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, hits.Load())
}

func TestClient_FetchExportBlob_Success(t *testing.T) {
	pdf := []byte("%PDF-1.7\n\x00\x01binary")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, ExportPath, r.URL.Path)
		assert.Equal(t, "ai tools", r.URL.Query().Get("query"))
		assert.Equal(t, "FR", r.URL.Query().Get("country"))
		assert.Equal(t, "fr-FR", r.URL.Query().Get("ui_lang"))
		assert.Equal(t, "application/pdf", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get(HeaderRequestID))

		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL})
	got, err := c.FetchExportBlob(context.Background(), domain.SearchQuery{
		Text:       "ai tools",
		Country:    domain.CountryFR,
		UILanguage: domain.UILanguageFrFR,
	})

	require.NoError(t, err)
	assert.Equal(t, pdf, got)
}

func TestClient_FetchExportBlob_HTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL})
	got, err := c.FetchExportBlob(context.Background(), testQuery("q"))

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrHTTPStatus)
}

func TestClient_UniqueRequestIDs(t *testing.T) {
	seen := make(chan string, 2)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get(HeaderRequestID)
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	c := NewClient(Config{BaseURL: server.URL})
	_, err := c.FetchSearchResults(context.Background(), testQuery("q"))
	require.NoError(t, err)
	_, err = c.FetchSearchResults(context.Background(), testQuery("q"))
	require.NoError(t, err)

	assert.NotEqual(t, <-seen, <-seen)
}

func TestThrottle(t *testing.T) {
	assert.True(t, NewThrottle(0).Unlimited())
	assert.True(t, NewThrottle(-1).Unlimited())
	assert.False(t, NewThrottle(2).Unlimited())

	th := NewThrottle(1)
	require.NoError(t, th.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, th.Wait(ctx))
}
