package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/research-agent/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the research service URL, request throttle, default
filters and export directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single setting",
	Long: `Set a single setting by its config key.

Keys:
  api.base_url             research service URL
  api.requests_per_second  request throttle, 0 for none
  search.country           default country (US, IN, GB, CA, FR, DE)
  search.ui_lang           default language (en-US, en-IN, en-GB, en-CA, fr-FR, de-DE)
  export.dir               directory PDFs are saved to`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings service: %w", ErrServicesNotConfigured)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
	if settings.API.RequestsPerSecond > 0 {
		cmd.Printf("  Requests per second: %s\n", formatRate(settings.API.RequestsPerSecond))
	} else {
		cmd.Println("  Requests per second: unlimited")
	}
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Country: %s (%s)\n", settings.Search.Country, settings.Search.Country.Label())
	cmd.Printf("  Language: %s (%s)\n", settings.Search.UILanguage, settings.Search.UILanguage.Label())
	cmd.Println()

	cmd.Println("[Export]")
	if settings.Export.Dir != "" {
		cmd.Printf("  Directory: %s\n", settings.Export.Dir)
	} else {
		cmd.Println("  Directory: (working directory)")
	}
	cmd.Println()

	cmd.Printf("Stored in %s\n", settingsService.Path())

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'research settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings service: %w", ErrServicesNotConfigured)
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings service: %w", ErrServicesNotConfigured)
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	settings := *current

	cmd.Println("Research Settings Wizard")
	cmd.Println("========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Service
	cmd.Println("Step 1: Research Service")
	cmd.Println("------------------------")
	cmd.Printf("Base URL [%s]: ", settings.API.BaseURL)
	if input := readLine(reader); input != "" {
		settings.API.BaseURL = input
	}
	cmd.Printf("Requests per second, 0 for unlimited [%s]: ", formatRate(settings.API.RequestsPerSecond))
	if input := readLine(reader); input != "" {
		rate, err := strconv.ParseFloat(input, 64)
		if err != nil {
			return fmt.Errorf("%w: requests per second must be a number", domain.ErrInvalidInput)
		}
		settings.API.RequestsPerSecond = rate
	}
	cmd.Println()

	// Step 2: Default filters
	cmd.Println("Step 2: Default Filters")
	cmd.Println("-----------------------")
	for i, c := range domain.Countries {
		cmd.Printf("  %d. %s (%s)\n", i+1, c.Label(), c)
	}
	cmd.Printf("\nCountry [%d]: ", indexOf(domain.Countries, settings.Search.Country)+1)
	idx := parseChoice(readLine(reader), len(domain.Countries), indexOf(domain.Countries, settings.Search.Country)+1)
	settings.Search.Country = domain.Countries[idx-1]

	for i, l := range domain.UILanguages {
		cmd.Printf("  %d. %s (%s)\n", i+1, l.Label(), l)
	}
	cmd.Printf("\nLanguage [%d]: ", indexOf(domain.UILanguages, settings.Search.UILanguage)+1)
	idx = parseChoice(readLine(reader), len(domain.UILanguages), indexOf(domain.UILanguages, settings.Search.UILanguage)+1)
	settings.Search.UILanguage = domain.UILanguages[idx-1]
	cmd.Println()

	// Step 3: Export
	cmd.Println("Step 3: Export Directory")
	cmd.Println("------------------------")
	dirDefault := settings.Export.Dir
	if dirDefault == "" {
		dirDefault = "working directory"
	}
	cmd.Printf("Directory [%s]: ", dirDefault)
	if input := readLine(reader); input != "" {
		settings.Export.Dir = input
	}
	cmd.Println()

	if err := settingsService.Save(&settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Printf("Settings saved to %s\n", settingsService.Path())

	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func indexOf[T comparable](items []T, item T) int {
	for i, v := range items {
		if v == item {
			return i
		}
	}
	return 0
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}
