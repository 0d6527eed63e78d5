package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/replybot/internal/catalog"
	"github.com/vijay-prabhu/replybot/internal/database"
	"github.com/vijay-prabhu/replybot/internal/logging"
	"github.com/vijay-prabhu/replybot/internal/output"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the rule catalog",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load a catalog file into the database",
	Long: `Validate a TOML or YAML catalog file and store it in the catalog database,
replacing whatever was stored before.

Set source = "database" in the [catalog] config section to chat with it.

Examples:
  replybot catalog import rules.toml
  replybot catalog import rules.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogImport,
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the stored catalog as TOML or YAML",
	Long: `Print the catalog stored in the database.

Examples:
  replybot catalog export > rules.toml
  replybot catalog export --format=yaml > rules.yaml
  replybot catalog export --builtin    # start a new catalog from the built-in rules`,
	RunE: runCatalogExport,
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a catalog file without importing it",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogValidate,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one stored rule",
	Long: `Show a rule from the catalog database by name (case-insensitive).

Examples:
  replybot catalog show thanks
  replybot catalog show -o json greeting`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogShow,
}

var catalogStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what is stored in the catalog database",
	RunE:  runCatalogStatus,
}

var (
	exportFormat  string
	exportBuiltin bool
)

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogStatusCmd)

	catalogExportCmd.Flags().StringVar(&exportFormat, "format", "toml", "Export format (toml, yaml)")
	catalogExportCmd.Flags().BoolVar(&exportBuiltin, "builtin", false, "Export the built-in catalog instead of the database")
}

func openDatabase(ctx context.Context) (*database.DB, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Health(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database %s is not usable: %w", cfg.Database.Path, err)
	}
	return db, nil
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	def, err := catalog.LoadFile(path)
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	c, err := catalog.Import(ctx, db, path, *def)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}

	logging.ForComponent(logging.CompCatalog).Info("catalog_imported",
		slog.String("file", path),
		slog.String("database", cfg.Database.Path),
		slog.Int("rules", len(c.Rules)),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rules from %s into %s\n", len(c.Rules), path, cfg.Database.Path)
	return nil
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, err := catalog.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	var def catalog.Definition
	if exportBuiltin {
		def = catalog.BuiltinDefinition()
	} else {
		db, err := openDatabase(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		c, err := catalog.FromDatabase(cmd.Context(), db, catalog.Options{Source: cfg.Database.Path})
		if err != nil {
			return err
		}
		def = c.Definition()
	}

	return catalog.Encode(cmd.OutOrStdout(), format, def)
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	path := args[0]

	def, err := catalog.LoadFile(path)
	if err != nil {
		return err
	}

	c, err := catalog.Build(*def, catalog.Options{Source: path})
	if err != nil {
		return fmt.Errorf("invalid catalog %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules, %d fallback replies\n", path, len(c.Rules), len(c.Fallbacks))
	return nil
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	db, err := openDatabase(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	rule, err := db.GetRuleByName(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get rule: %w", err)
	}
	if rule == nil {
		return fmt.Errorf("no stored rule named %q", args[0])
	}

	return output.OutputTo(cmd.OutOrStdout(), outputFmt, rule)
}

func runCatalogStatus(cmd *cobra.Command, args []string) error {
	db, err := openDatabase(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	state, err := db.GetCatalogState(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get catalog state: %w", err)
	}

	return output.OutputTo(cmd.OutOrStdout(), outputFmt, state)
}
