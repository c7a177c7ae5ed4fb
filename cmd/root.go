package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/tracker-mcp/internal/config"
	"github.com/nhle/tracker-mcp/internal/credential"
	"github.com/nhle/tracker-mcp/internal/mcpserver"
	"github.com/nhle/tracker-mcp/internal/tracker"
)

const version = "0.1.0"

// rootCmd starts the MCP server on stdin/stdout when called without a
// subcommand.
var rootCmd = &cobra.Command{
	Use:   "tracker-mcp",
	Short: "MCP server exposing Yandex Tracker issue lookup",
	Long: `tracker-mcp serves the Model Context Protocol over stdio and exposes a
single get_issue tool that retrieves an issue from Yandex Tracker by its
key. Credentials are read from YANDEX_TRACKER_TOKEN and
YANDEX_TRACKER_ORG_ID (or the system keyring, see "tracker-mcp auth").`,
	SilenceUsage: true,
	RunE:         runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	client := newClient(cfg)

	logger.Info("starting MCP server",
		"name", "yandex-tracker",
		"version", version,
		"base_url", cfg.BaseURL,
	)
	return mcpserver.New(client, logger, version).ServeStdio()
}

// loadConfig resolves configuration from the environment, an optional
// .env file in the working directory, and the system keyring.
func loadConfig() (*config.Config, error) {
	return config.Loader{Keyring: credential.Get}.Load()
}

func newClient(cfg *config.Config) *tracker.Client {
	return tracker.NewClient(
		cfg.BaseURL, cfg.Token, cfg.OrgID, cfg.HTTPTimeout,
	)
}

// newLogger builds the stderr logger. Stdout is reserved for the MCP
// protocol stream.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
