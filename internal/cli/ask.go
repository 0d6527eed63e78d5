package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/replybot/internal/output"
)

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Reply to a single message",
	Long: `Print the bot's reply to one message and exit.

Examples:
  replybot ask "Hello, how are you?"
  replybot ask thank you for your help
  replybot ask -o json "do you have feelings"`,
	RunE: runAsk,
}

var scoreCmd = &cobra.Command{
	Use:   "score <message>",
	Short: "Show how every rule scores a message",
	Long: `Tokenize a message, score it against every rule and show which rule wins.

Examples:
  replybot score "Hello, how are you?"
  replybot score -o json "hello hello hello hello hello"`,
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(scoreCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	c, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}

	res := c.Responder().Explain(strings.Join(args, " "))
	if outputFmt == output.FormatJSON {
		return output.OutputTo(cmd.OutOrStdout(), outputFmt, res)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Response)
	return err
}

func runScore(cmd *cobra.Command, args []string) error {
	c, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}

	res := c.Responder().Explain(strings.Join(args, " "))
	return output.OutputTo(cmd.OutOrStdout(), outputFmt, res)
}
