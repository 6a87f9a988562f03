package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/research-agent/internal/core/domain"
	"github.com/custodia-labs/research-agent/internal/core/ports/driven"
	"github.com/custodia-labs/research-agent/internal/core/ports/driving"
)

var (
	searchCountry string
	searchUILang  string
	searchJSON    bool
	searchContent bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the web",
	Long: `Sends the query to the research service and prints the results with a
combined summary of the per-result summaries.

Country and UI language default to the stored settings.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	addQueryFlags(searchCmd, &searchCountry, &searchUILang)
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchContent, "content", false, "print the text content of each result")
	rootCmd.AddCommand(searchCmd)
}

// addQueryFlags registers the filter flags shared by search and export.
func addQueryFlags(cmd *cobra.Command, country, uiLang *string) {
	cmd.Flags().StringVarP(country, "country", "c", "", "country filter (US, IN, GB, CA, FR, DE)")
	cmd.Flags().StringVarP(uiLang, "ui-lang", "l", "", "response language (en-US, en-IN, en-GB, en-CA, fr-FR, de-DE)")
}

// prepareQuery loads query text and filters into the session.
func prepareQuery(session driving.SessionService, text, country, uiLang string) error {
	if country != "" {
		c, err := domain.ParseCountry(country)
		if err != nil {
			return err
		}
		if err := session.SetCountry(c); err != nil {
			return err
		}
	}
	if uiLang != "" {
		l, err := domain.ParseUILanguage(uiLang)
		if err != nil {
			return err
		}
		if err := session.SetUILanguage(l); err != nil {
			return err
		}
	}
	session.SetQueryText(text)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	if sessionService == nil {
		return fmt.Errorf("session service: %w", ErrServicesNotConfigured)
	}
	if args[0] == "" {
		return fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}

	if err := prepareQuery(sessionService, args[0], searchCountry, searchUILang); err != nil {
		return err
	}

	if err := sessionService.SubmitSearch(cmd.Context()); err != nil {
		state := sessionService.State()
		if state.HasError() {
			return fmt.Errorf("%s: %w", state.ErrorMessage, err)
		}
		return err
	}

	state := sessionService.State()
	summary := sessionService.CombinedSummary()

	if searchJSON {
		return outputSearchJSON(cmd, state, summary)
	}

	return outputSearchText(cmd, state, summary, isTerminal(cmd.OutOrStdout()))
}

// searchOutput is the JSON shape of a search.
type searchOutput struct {
	Query           string                `json:"query"`
	Country         domain.Country        `json:"country"`
	UILanguage      domain.UILanguage     `json:"ui_lang"`
	CombinedSummary string                `json:"combined_summary"`
	Results         []domain.SearchResult `json:"results"`
}

func outputSearchJSON(cmd *cobra.Command, state domain.SessionState, summary string) error {
	results := make([]domain.SearchResult, len(state.Results))
	copy(results, state.Results)

	// JSON consumers may render content as HTML, so it leaves allow-listed.
	if sanitiser, ok := textRenderer.(driven.ContentSanitiser); ok {
		for i := range results {
			results[i].Content = sanitiser.Sanitise(results[i].Content)
		}
	}

	out := searchOutput{
		Query:           state.Query.Text,
		Country:         state.Query.Country,
		UILanguage:      state.Query.UILanguage,
		CombinedSummary: summary,
		Results:         results,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// outputSearchText prints results; styled adds colour for terminals.
func outputSearchText(cmd *cobra.Command, state domain.SessionState, summary string, styled bool) error {
	heading := lipgloss.NewStyle()
	muted := lipgloss.NewStyle()
	if styled {
		heading = heading.Bold(true).Foreground(lipgloss.Color("#2563EB"))
		muted = muted.Foreground(lipgloss.Color("241"))
	}

	if len(state.Results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	if summary != "" {
		cmd.Println(heading.Render("Combined Summary"))
		cmd.Println()
		cmd.Println(summary)
		cmd.Println()
	}

	cmd.Println(heading.Render(fmt.Sprintf("Results (%d)", len(state.Results))))
	cmd.Println()
	for i := range state.Results {
		r := state.Results[i]
		cmd.Printf("  [%d] %s\n", i+1, r.DisplayTitle())
		if r.Title != "" {
			cmd.Printf("      %s\n", muted.Render(r.URL))
		}
		if r.HasSummary() {
			cmd.Printf("      %s\n", r.Summary)
		}
		if searchContent {
			cmd.Printf("      %s\n", contentText(r.Content))
		}
		cmd.Println()
	}

	return nil
}

// contentText returns the printable text of a result body.
func contentText(content string) string {
	if textRenderer != nil {
		content = textRenderer.PlainText(content)
	}
	if content == "" {
		return "No summary available."
	}
	return content
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// errNotTerminal is returned by commands that need an interactive terminal.
var errNotTerminal = errors.New("not running in a terminal")
