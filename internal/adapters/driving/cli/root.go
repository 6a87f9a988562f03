// Package cli provides the command-line interface for research.
// It is a driving adapter: commands call core services through driving ports.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/research-agent/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/research-agent/internal/core/ports/driving"
	"github.com/custodia-labs/research-agent/internal/logger"
)

// version is set at build time.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
)

// ErrServicesNotConfigured is returned when a command needs a service that was not wired.
var ErrServicesNotConfigured = errors.New("services not configured")

// Options are the flag values services are built from.
type Options struct {
	// ConfigDir overrides the config directory. Empty means the default.
	ConfigDir string

	// ExportDir overrides the stored export directory. Empty means the stored value.
	ExportDir string
}

// Services are the driving ports commands operate on.
type Services struct {
	Session  driving.SessionService
	Settings driving.SettingsService
	Renderer list.TextRenderer
}

// ServiceFactory builds services once flags are parsed.
type ServiceFactory func(opts Options) (*Services, error)

var (
	serviceFactory  ServiceFactory
	sessionService  driving.SessionService
	settingsService driving.SettingsService
	textRenderer    list.TextRenderer
)

var rootCmd = &cobra.Command{
	Use:   "research",
	Short: "Web research from the terminal",
	Long: `Research runs web searches against a research service and lets you
browse, summarise and export the results.

Run 'research tui' for the interactive interface or 'research search' for
a one-off query.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.research)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServiceFactory registers how services are built from flags.
func SetServiceFactory(f ServiceFactory) {
	serviceFactory = f
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setupServices applies global flags and builds services before any command runs.
func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	if serviceFactory == nil {
		return nil
	}

	svc, err := serviceFactory(Options{
		ConfigDir: configDir,
		ExportDir: exportOutputDir,
	})
	if err != nil {
		return fmt.Errorf("setting up services: %w", err)
	}

	sessionService = svc.Session
	settingsService = svc.Settings
	textRenderer = svc.Renderer
	return nil
}
