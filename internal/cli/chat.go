package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/replybot/internal/logging"
	"github.com/vijay-prabhu/replybot/internal/responder"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the bot",
	Long: `Start an interactive chat. Each line you type gets one reply.

The chat ends at end of input (Ctrl+D) or on interrupt (Ctrl+C). Input can
also be piped in, one message per line:

  printf 'hello\nthank you for your help\n' | replybot chat`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

// errInterrupted is returned by a lineReader when the user presses Ctrl+C
var errInterrupted = errors.New("interrupted")

// lineReader yields one utterance per call and io.EOF at end of input
type lineReader interface {
	ReadLine() (string, error)
	Close() error
}

func runChat(cmd *cobra.Command, args []string) error {
	c, err := openCatalog(cmd.Context())
	if err != nil {
		return err
	}

	t := NewTerminal()
	out := cmd.OutOrStdout()

	var in lineReader
	if t.Interactive() {
		in, err = newReadlineReader(cfg.Chat.Prompt)
		if err != nil {
			return err
		}
	} else {
		in = newPlainReader(os.Stdin, out, cfg.Chat.Prompt)
	}
	defer in.Close()

	prefix := cfg.Chat.BotPrefix
	if cfg.Chat.Color {
		prefix = t.Paint(prefix, color.FgCyan, color.Bold)
	}

	return chatLoop(cmd.Context(), in, out, c.Responder(), prefix)
}

// chatLoop answers every line from in until input ends or is interrupted
func chatLoop(ctx context.Context, in lineReader, out io.Writer, r *responder.Responder, prefix string) error {
	log := logging.ForComponent(logging.CompCLI)

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, errInterrupted) {
				fmt.Fprintln(out)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		res := r.Explain(line)
		log.Debug("respond",
			slog.String("rule", res.Rule),
			slog.Int("score", res.Score),
			slog.Bool("fallback", res.Fallback),
		)

		if _, err := fmt.Fprintln(out, prefix+res.Response); err != nil {
			return fmt.Errorf("failed to write reply: %w", err)
		}
	}
}

// readlineReader reads from a terminal with line editing and in-memory history
type readlineReader struct {
	rl *readline.Instance
}

func newReadlineReader(prompt string) (*readlineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		InterruptPrompt:   "^C",
		EOFPrompt:         "",
		HistoryLimit:      500,
		HistorySearchFold: true,
		Stdin:             readline.NewCancelableStdin(os.Stdin),
		Stdout:            os.Stdout,
		Stderr:            os.Stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %w", err)
	}
	return &readlineReader{rl: rl}, nil
}

func (r *readlineReader) ReadLine() (string, error) {
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", errInterrupted
	}
	return line, err
}

func (r *readlineReader) Close() error {
	return r.rl.Close()
}

// plainReader reads lines of any length, printing the prompt itself
type plainReader struct {
	r      *bufio.Reader
	out    io.Writer
	prompt string
}

func newPlainReader(in io.Reader, out io.Writer, prompt string) *plainReader {
	return &plainReader{r: bufio.NewReader(in), out: out, prompt: prompt}
}

func (p *plainReader) ReadLine() (string, error) {
	fmt.Fprint(p.out, p.prompt)

	line, err := p.r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (p *plainReader) Close() error {
	return nil
}
