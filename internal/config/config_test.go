package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Chat.Prompt != "You: " {
		t.Errorf("expected Prompt=%q, got %q", "You: ", cfg.Chat.Prompt)
	}

	if cfg.Catalog.Source != SourceBuiltin {
		t.Errorf("expected Source=builtin, got %s", cfg.Catalog.Source)
	}

	if cfg.Server.Port != 8643 {
		t.Errorf("expected Port=8643, got %d", cfg.Server.Port)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected Level=info, got %s", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "unknown catalog source",
			modify: func(c *Config) {
				c.Catalog.Source = "remote"
			},
			wantErr: true,
		},
		{
			name: "file source without path",
			modify: func(c *Config) {
				c.Catalog.Source = SourceFile
			},
			wantErr: true,
		},
		{
			name: "file source with path",
			modify: func(c *Config) {
				c.Catalog.Source = SourceFile
				c.Catalog.Path = "/etc/replybot/rules.toml"
			},
			wantErr: false,
		},
		{
			name: "blank fallback phrasing",
			modify: func(c *Config) {
				c.Catalog.Fallback = []string{"Pardon?", "  "}
			},
			wantErr: true,
		},
		{
			name: "invalid server port",
			modify: func(c *Config) {
				c.Server.Port = 0
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			modify: func(c *Config) {
				c.Logging.Level = "verbose"
			},
			wantErr: true,
		},
		{
			name: "invalid log format",
			modify: func(c *Config) {
				c.Logging.Format = "xml"
			},
			wantErr: true,
		},
		{
			name: "invalid mcp transport",
			modify: func(c *Config) {
				c.MCP.Transport = "http"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input    string
		expected string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"", ""},
	}

	for _, tt := range tests {
		result, err := expandPath(tt.input)
		if err != nil {
			t.Errorf("expandPath(%q) error: %v", tt.input, err)
		}
		if result != tt.expected {
			t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestServerAddr(t *testing.T) {
	cfg := Default()
	expected := "127.0.0.1:8643"

	if got := cfg.Server.Addr(); got != expected {
		t.Errorf("Addr() = %q, want %q", got, expected)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	data := `
[chat]
prompt = "> "

[catalog]
source = "file"
path = "/tmp/rules.yaml"
fallback = ["Pardon?"]

[server]
port = 9000
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Chat.Prompt != "> " {
		t.Errorf("expected Prompt=%q, got %q", "> ", cfg.Chat.Prompt)
	}
	// Unset fields keep their defaults
	if cfg.Chat.BotPrefix != "Bot: " {
		t.Errorf("expected BotPrefix=%q, got %q", "Bot: ", cfg.Chat.BotPrefix)
	}
	if cfg.Catalog.Source != SourceFile || cfg.Catalog.Path != "/tmp/rules.yaml" {
		t.Errorf("unexpected catalog config: %+v", cfg.Catalog)
	}
	if len(cfg.Catalog.Fallback) != 1 || cfg.Catalog.Fallback[0] != "Pardon?" {
		t.Errorf("unexpected fallback: %v", cfg.Catalog.Fallback)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("expected Port=9000, got %d", cfg.Server.Port)
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(path, []byte("[server]\nport = 70000\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for out-of-range port")
	}
}

func TestLoadOrDefault(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	if _, err := Load(missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load() error = %v, want ErrNotFound", err)
	}

	cfg, err := LoadOrDefault(missing)
	if err != nil {
		t.Fatalf("LoadOrDefault() error: %v", err)
	}
	if cfg.Catalog.Source != SourceBuiltin {
		t.Errorf("expected builtin source, got %s", cfg.Catalog.Source)
	}
}
