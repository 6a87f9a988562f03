// Command research is a terminal client for a web research service.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/research-agent/internal/adapters/driven/config/file"
	exportfile "github.com/custodia-labs/research-agent/internal/adapters/driven/export/file"
	"github.com/custodia-labs/research-agent/internal/adapters/driven/researchapi"
	"github.com/custodia-labs/research-agent/internal/adapters/driven/sanitiser/html"
	"github.com/custodia-labs/research-agent/internal/adapters/driving/cli"
	"github.com/custodia-labs/research-agent/internal/core/services"
	"github.com/custodia-labs/research-agent/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetServiceFactory(buildServices)

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// buildServices wires driven adapters into the core services.
func buildServices(opts cli.Options) (*cli.Services, error) {
	store, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsSvc := services.NewSettingsService(store)

	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	// Invalid settings must not block the settings commands that fix them.
	if err := settings.Validate(); err != nil {
		logger.Warn("settings: %v", err)
	}

	client := researchapi.NewClient(researchapi.Config{
		BaseURL:           settings.API.BaseURL,
		RequestsPerSecond: settings.API.RequestsPerSecond,
	})

	exportDir := settings.Export.Dir
	if opts.ExportDir != "" {
		exportDir = opts.ExportDir
	}
	logger.Debug("config at %s, exports to %q", settingsSvc.Path(), exportDir)

	return &cli.Services{
		Session:  services.NewSessionService(client, exportfile.NewSink(exportDir), settings.Search),
		Settings: settingsSvc,
		Renderer: html.New(),
	}, nil
}
