package config

import "fmt"

// Catalog sources
const (
	SourceBuiltin  = "builtin"
	SourceFile     = "file"
	SourceDatabase = "database"
)

// Config represents the application configuration
type Config struct {
	Chat     ChatConfig     `toml:"chat"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Logging  LoggingConfig  `toml:"logging"`
	MCP      MCPConfig      `toml:"mcp"`
}

// ChatConfig contains settings for the interactive prompt
type ChatConfig struct {
	Prompt    string `toml:"prompt"`
	BotPrefix string `toml:"bot_prefix"`
	Color     bool   `toml:"color"`
}

// CatalogConfig selects where response rules come from
type CatalogConfig struct {
	Source string `toml:"source"`
	Path   string `toml:"path"`
	// Fallback overrides the built-in fallback phrasings when non-empty
	Fallback []string `toml:"fallback"`
}

// DatabaseConfig contains catalog database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// ServerConfig contains HTTP service settings
type ServerConfig struct {
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Metrics bool   `toml:"metrics"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig contains log output settings
type LoggingConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	File       string `toml:"file"` // empty logs to stderr
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Chat: ChatConfig{
			Prompt:    "You: ",
			BotPrefix: "Bot: ",
			Color:     true,
		},
		Catalog: CatalogConfig{
			Source: SourceBuiltin,
		},
		Database: DatabaseConfig{
			Path: "~/.local/share/replybot/catalog.db",
		},
		Server: ServerConfig{
			Host:    "127.0.0.1",
			Port:    8643,
			Metrics: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}
