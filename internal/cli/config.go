package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Create default configuration file",
	Annotations: map[string]string{skipSetup: ""},
	RunE:        runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Display current configuration",
	Annotations: map[string]string{skipSetup: ""},
	RunE:        runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	dataDir := filepath.Join(home, ".local", "share", "replybot")
	configDir := filepath.Dir(configPath)

	// Create directories
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	out := cmd.OutOrStdout()

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(out, "Config file already exists at %s\n", configPath)
		fmt.Fprintln(out, "Use 'replybot config show' to view current configuration")
		return nil
	}

	// Write default config
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(out, "Created config file at %s\n", configPath)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Run 'replybot' to chat with the built-in rules")
	fmt.Fprintln(out, "  2. Run 'replybot catalog export --builtin > rules.toml' to start your own catalog")
	fmt.Fprintln(out, "  3. Point [catalog] at it, or 'replybot catalog import rules.toml'")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(out, "No config file found. Run 'replybot config init' to create one.")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Fprintf(out, "# Config file: %s\n\n", configPath)
	fmt.Fprintln(out, string(data))
	return nil
}

const defaultConfig = `# replybot configuration

[chat]
prompt = "You: "
bot_prefix = "Bot: "
color = true

[catalog]
# builtin: rules compiled into replybot
# file:    rules from a TOML or YAML file (set path)
# database: rules stored with 'replybot catalog import'
source = "builtin"
# path = "~/.config/replybot/rules.toml"

# Replies used when no rule matches; one is picked at random
# fallback = [
#     "Could you please re-phrase that?",
#     "...",
#     "Sounds about right.",
#     "What does that mean?",
# ]

[database]
path = "~/.local/share/replybot/catalog.db"

[server]
host = "127.0.0.1"
port = 8643
metrics = true

[logging]
level = "info"        # debug, info, warn, error
format = "text"       # text, json
file = ""             # empty logs to stderr
max_size_mb = 10
max_backups = 3
max_age_days = 28

[mcp]
enabled = true
transport = "stdio"
`
