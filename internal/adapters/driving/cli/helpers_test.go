package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/custodia-labs/research-agent/internal/adapters/driven/export/file"
	"github.com/custodia-labs/research-agent/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/research-agent/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/research-agent/internal/core/domain"
	"github.com/custodia-labs/research-agent/internal/core/services"
)

// fakeResearchAPI serves canned responses and records queries.
type fakeResearchAPI struct {
	results   []domain.SearchResult
	searchErr error
	pdf       []byte
	exportErr error
	queries   []domain.SearchQuery
}

func (f *fakeResearchAPI) FetchSearchResults(
	_ context.Context, q domain.SearchQuery,
) (*domain.SearchResponse, error) {
	f.queries = append(f.queries, q)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return &domain.SearchResponse{Results: f.results}, nil
}

func (f *fakeResearchAPI) FetchExportBlob(_ context.Context, q domain.SearchQuery) ([]byte, error) {
	f.queries = append(f.queries, q)
	return f.pdf, f.exportErr
}

// stripTags is a TextRenderer that drops angle-bracket markup.
type stripTags struct{}

func (stripTags) PlainText(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// tagSanitiser keeps markup but drops script elements.
type tagSanitiser struct{ stripTags }

func (tagSanitiser) Sanitise(s string) string {
	return strings.ReplaceAll(s, "<script>x</script>", "")
}

// testEnv is what setupTestServices wired.
type testEnv struct {
	api       *fakeResearchAPI
	exportDir string
	renderer  list.TextRenderer
	opts      Options
}

// setupTestServices registers a factory building real services over a
// fake research API, an in-memory config and a temp export directory.
func setupTestServices(t *testing.T) (*testEnv, func()) {
	t.Helper()

	env := &testEnv{
		api: &fakeResearchAPI{
			results: []domain.SearchResult{
				{URL: "https://a.example", Title: "A", Summary: "sum1", Content: "<p>alpha</p>"},
				{URL: "https://b.example"},
			},
			pdf: []byte("%PDF-1.4"),
		},
		exportDir: t.TempDir(),
		renderer:  stripTags{},
	}

	settings := services.NewSettingsService(memory.NewConfigStore())

	SetServiceFactory(func(opts Options) (*Services, error) {
		env.opts = opts
		dir := env.exportDir
		if opts.ExportDir != "" {
			dir = opts.ExportDir
		}
		stored, err := settings.Get()
		if err != nil {
			return nil, err
		}
		return &Services{
			Session:  services.NewSessionService(env.api, file.NewSink(dir), stored.Search),
			Settings: settings,
			Renderer: env.renderer,
		}, nil
	})

	return env, func() {
		SetServiceFactory(nil)
		sessionService = nil
		settingsService = nil
		textRenderer = nil
		resetFlags()
	}
}

// resetFlags puts package flag variables back to their defaults.
func resetFlags() {
	verbose = false
	configDir = ""
	searchCountry = ""
	searchUILang = ""
	searchJSON = false
	searchContent = false
	exportCountry = ""
	exportUILang = ""
	exportOutputDir = ""
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

var errBoom = errors.New("boom")
