package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/replybot/internal/catalog"
	"github.com/vijay-prabhu/replybot/internal/config"
	"github.com/vijay-prabhu/replybot/internal/logging"
	"github.com/vijay-prabhu/replybot/internal/output"
)

var (
	// Version info set from main
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"

	// Global flags
	configPath  string
	outputFmt   string
	catalogPath string

	// Loaded by setup before any command runs
	cfg       *config.Config
	logCloser io.Closer
)

// skipSetup marks commands that must work without a valid config
const skipSetup = "skip-setup"

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, c, b string) {
	version = v
	commit = c
	buildTime = b
}

// rootCmd represents the base command. Without a subcommand it starts a chat.
var rootCmd = &cobra.Command{
	Use:   "replybot",
	Short: "A rule-based chat responder",
	Long: `replybot answers free-text messages with canned responses.

Each message is split into words and scored against a table of rules. A rule
scores by the share of its recognized words found in the message, and only
when all of its required words are present. The best rule's response wins;
when nothing scores, the bot falls back to a generic reply.

It provides:
  - An interactive chat (the default command)
  - One-shot answers and score tables for debugging rules
  - Rule catalogs from TOML/YAML files or a SQLite database
  - An HTTP service and an MCP server for AI assistant integration`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	RunE:               runChat,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default: ~/.config/replybot/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", output.FormatTable,
		"output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "",
		"catalog file to use instead of the configured source (.toml, .yaml)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}
		configPath = filepath.Join(home, ".config", "replybot", "config.toml")
	}
}

// setup loads the configuration and installs the logger
func setup(cmd *cobra.Command, args []string) error {
	if _, ok := cmd.Annotations[skipSetup]; ok {
		return nil
	}

	if !output.ValidFormat(outputFmt) {
		return fmt.Errorf("unknown output format: %s", outputFmt)
	}

	loaded, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	if catalogPath != "" {
		loaded.Catalog.Source = config.SourceFile
		loaded.Catalog.Path = catalogPath
	}
	cfg = loaded

	logCloser, err = logging.Setup(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

// openCatalog builds the catalog selected by the configuration
func openCatalog(ctx context.Context) (*catalog.Catalog, error) {
	c, err := catalog.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	logging.ForComponent(logging.CompCatalog).Debug("catalog_loaded",
		slog.String("source", c.Source),
		slog.Int("rules", len(c.Rules)),
		slog.Int("fallbacks", len(c.Fallbacks)),
	)
	return c, nil
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print version information",
	Annotations: map[string]string{skipSetup: ""},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("replybot %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", buildTime)
	},
}
