package cli

import (
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/replybot/internal/output"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the active response rules",
	Long: `List the rules of the active catalog in scoring order.

Rules are scored in this order and the first one with the highest score wins.`,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	c, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}

	if outputFmt == output.FormatJSON {
		return output.OutputTo(cmd.OutOrStdout(), outputFmt, c.Definition())
	}
	return output.OutputTo(cmd.OutOrStdout(), outputFmt, c.Rules)
}
