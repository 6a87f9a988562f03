package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/research-agent/internal/core/domain"
)

var (
	exportCountry   string
	exportUILang    string
	exportOutputDir string
)

var exportCmd = &cobra.Command{
	Use:   "export [query]",
	Short: "Export search results as PDF",
	Long: `Asks the research service to render the results for the query as a PDF
and saves it as search_results_<query>.pdf in the export directory.

The export directory defaults to the stored setting, or the working
directory when none is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	addQueryFlags(exportCmd, &exportCountry, &exportUILang)
	exportCmd.Flags().StringVarP(&exportOutputDir, "output-dir", "o", "", "directory to save the PDF in")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return fmt.Errorf("session service: %w", ErrServicesNotConfigured)
	}
	if args[0] == "" {
		return fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}

	if err := prepareQuery(sessionService, args[0], exportCountry, exportUILang); err != nil {
		return err
	}

	res, err := sessionService.RequestExport(cmd.Context())
	if err != nil {
		return &domain.ExportError{Err: err}
	}

	cmd.Printf("Saved %s (%d bytes)\n", res.Path, res.Size)
	return nil
}
