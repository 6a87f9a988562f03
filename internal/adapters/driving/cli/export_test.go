package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/research-agent/internal/core/domain"
)

func TestExportCmd_Use(t *testing.T) {
	assert.Equal(t, "export [query]", exportCmd.Use)

	flag := exportCmd.Flags().Lookup("output-dir")
	require.NotNil(t, flag)
	assert.Equal(t, "o", flag.Shorthand)
}

func TestExportCmd_SavesFile(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()

	out, err := execute(t, "export", "market trends")

	require.NoError(t, err)
	path := filepath.Join(env.exportDir, "search_results_market trends.pdf")
	assert.Contains(t, out, "Saved "+path+" (8 bytes)")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestExportCmd_OutputDir(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	dir := filepath.Join(t.TempDir(), "exports")

	_, err := execute(t, "export", "--output-dir", dir, "--country", "DE", "q")

	require.NoError(t, err)
	assert.Equal(t, dir, env.opts.ExportDir)
	assert.FileExists(t, filepath.Join(dir, "search_results_q.pdf"))
	require.Len(t, env.api.queries, 1)
	assert.Equal(t, domain.CountryDE, env.api.queries[0].Country)
}

func TestExportCmd_StatusFailure(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	env.api.exportErr = &domain.HTTPStatusError{Endpoint: "/generate_pdf", StatusCode: 500}

	_, err := execute(t, "export", "q")

	require.Error(t, err)
	assert.Equal(t, "Error generating PDF: Failed to generate PDF", err.Error())
	assert.ErrorIs(t, err, domain.ErrHTTPStatus)
}

func TestExportCmd_TransportFailure(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()
	env.api.exportErr = &domain.TransportError{Op: "generate_pdf", Err: errBoom}

	_, err := execute(t, "export", "q")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error generating PDF: ")
	assert.ErrorIs(t, err, errBoom)
}

func TestExportCmd_EmptyQuery(t *testing.T) {
	env, cleanup := setupTestServices(t)
	defer cleanup()

	_, err := execute(t, "export", "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, env.api.queries)
}
