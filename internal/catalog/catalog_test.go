package catalog

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/replybot/internal/config"
	"github.com/vijay-prabhu/replybot/internal/database"
)

func first(n int) int { return 0 }

func TestBuiltin(t *testing.T) {
	c := Builtin(Options{Pick: first})
	resp := c.Responder()

	tests := []struct {
		input    string
		expected string
	}{
		{"Hello, how are you?", "I am doing fine, and you?"},
		{"thank you for your help", "You are welcome"},
		{"", DefaultFallbacks[0]},
		{"do you have feelings", Feelings},
		{"xyz qwerty", DefaultFallbacks[0]},
		{"Aloha!", "Hello!"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, resp.Respond(tt.input), "Respond(%q)", tt.input)
	}

	names := make([]string, 0, len(c.Rules))
	for _, r := range c.Rules {
		names = append(names, r.Name())
	}
	assert.Equal(t, []string{"greeting", "doing_fine", "thanks", "feelings"}, names)
	assert.Equal(t, "builtin", c.Source)
}

func TestBuiltin_FallbackIsOneOfDefaults(t *testing.T) {
	resp := Builtin(Options{}).Responder()

	for i := 0; i < 20; i++ {
		assert.Contains(t, DefaultFallbacks, resp.Respond("xyz"))
	}
}

func TestBuild_FallbackOverride(t *testing.T) {
	c, err := Build(BuiltinDefinition(), Options{Pick: first, Fallback: []string{"Pardon?"}})
	require.NoError(t, err)

	assert.Equal(t, "Pardon?", c.Responder().Respond("xyz"))
	assert.Equal(t, []string{"Pardon?"}, c.Fallbacks)
}

func TestBuild_Validation(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
		want []string
	}{
		{
			name: "no rules",
			def:  Definition{},
			want: []string{"no rules"},
		},
		{
			name: "empty recognized",
			def: Definition{Rules: []RuleDefinition{
				{Name: "a", Response: "A", Recognized: []string{" ", ""}},
			}},
			want: []string{"no recognized words"},
		},
		{
			name: "missing name and response",
			def: Definition{Rules: []RuleDefinition{
				{Response: "A", Recognized: []string{"a"}},
				{Name: "b", Recognized: []string{"b"}},
			}},
			want: []string{"name is required", "response is required"},
		},
		{
			name: "duplicate names",
			def: Definition{Rules: []RuleDefinition{
				{Name: "a", Response: "A", Recognized: []string{"a"}},
				{Name: "A", Response: "A", Recognized: []string{"a"}},
			}},
			want: []string{"duplicate name"},
		},
		{
			name: "blank fallback",
			def: Definition{
				Fallback: []string{""},
				Rules:    []RuleDefinition{{Name: "a", Response: "A", Recognized: []string{"a"}}},
			},
			want: []string{"fallback 0 is empty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.def, Options{})
			require.Error(t, err)
			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}

func TestBuild_NormalizesWords(t *testing.T) {
	c, err := Build(Definition{Rules: []RuleDefinition{
		{Name: "hi", Response: "Hi!", Recognized: []string{" HELLO ", "Hey"}, Required: []string{"Hey"}},
	}}, Options{Pick: first})
	require.NoError(t, err)

	assert.Equal(t, []string{"hello", "hey"}, c.Rules[0].Recognized())
	assert.Equal(t, "Hi!", c.Responder().Respond("hello hey"))
}

func TestBuild_WordsMatchTokenizerCasing(t *testing.T) {
	c, err := Build(Definition{Rules: []RuleDefinition{
		{Name: "road", Response: "Which road?", Recognized: []string{"ΟΔΟΣ"}},
	}}, Options{Pick: first})
	require.NoError(t, err)

	assert.Equal(t, []string{"οδος"}, c.Rules[0].Recognized())
	assert.Equal(t, "Which road?", c.Responder().Respond("ΟΔΟΣ"))
	assert.Equal(t, "Which road?", c.Responder().Respond("οδος"))
}

func TestBuiltin_UnicodeWhitespace(t *testing.T) {
	r := Builtin(Options{Pick: first}).Responder()

	for _, in := range []string{
		"thank\u00a0you for your help",
		"thank\vyou for your help",
		"thank\u3000you for your help",
	} {
		assert.Equal(t, "You are welcome", r.Respond(in), "Respond(%q)", in)
	}
}

func TestMustBuild_Panics(t *testing.T) {
	assert.Panics(t, func() { MustBuild(Definition{}, Options{}) })
}

const tomlCatalog = `
fallback = ["Pardon?"]

[[rule]]
name = "greeting"
response = "Hi there"
recognized = ["hi", "hello"]
always_score = true

[[rule]]
name = "bye"
response = "Goodbye"
recognized = ["bye", "goodbye", "see", "you"]
required = ["bye"]
`

const yamlCatalog = `
fallback:
  - Pardon?
rules:
  - name: greeting
    response: Hi there
    recognized: [hi, hello]
    always_score: true
  - name: bye
    response: Goodbye
    recognized: [bye, goodbye, see, you]
    required: [bye]
`

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	for name, content := range map[string]string{
		"rules.toml": tomlCatalog,
		"rules.yaml": yamlCatalog,
		"rules.yml":  yamlCatalog,
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			def, err := LoadFile(path)
			require.NoError(t, err)
			require.Len(t, def.Rules, 2)
			assert.Equal(t, []string{"Pardon?"}, def.Fallback)
			assert.True(t, def.Rules[0].AlwaysScore)
			assert.Equal(t, []string{"bye"}, def.Rules[1].Required)

			c, err := Build(*def, Options{Pick: first})
			require.NoError(t, err)
			resp := c.Responder()
			assert.Equal(t, "Goodbye", resp.Respond("Bye, see you!"))
			assert.Equal(t, "Hi there", resp.Respond("hello"))
			assert.Equal(t, "Pardon?", resp.Respond("what"))
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "rules.json"))
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	_, err = LoadFile(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[[rule]]\nnmae = \"typo\"\n"), 0644))
	_, err = LoadFile(bad)
	assert.Error(t, err, "unknown fields are rejected")
}

func TestEncode_RoundTrip(t *testing.T) {
	def := BuiltinDefinition()

	for _, format := range []Format{FormatTOML, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, format, def))

			decoded, err := Decode(format, buf.Bytes())
			require.NoError(t, err)
			assert.Equal(t, def, *decoded)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("json")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestImportAndFromDatabase(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = FromDatabase(ctx, db, Options{})
	assert.True(t, errors.Is(err, ErrCatalogEmpty))

	imported, err := Import(ctx, db, "builtin", BuiltinDefinition())
	require.NoError(t, err)
	assert.Len(t, imported.Rules, 4)

	c, err := FromDatabase(ctx, db, Options{Pick: first})
	require.NoError(t, err)
	assert.Equal(t, BuiltinDefinition(), c.Definition())
	assert.Equal(t, "You are welcome", c.Responder().Respond("thank you for your help"))
	assert.Equal(t, DefaultFallbacks[0], c.Responder().Respond("xyz"))
}

func TestImport_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = Import(ctx, db, "bad", Definition{Rules: []RuleDefinition{{Name: "x", Response: "x"}}})
	require.Error(t, err)

	state, err := db.GetCatalogState(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, state.RuleCount)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("builtin", func(t *testing.T) {
		c, err := Open(ctx, config.Default())
		require.NoError(t, err)
		assert.Len(t, c.Rules, 4)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(dir, "rules.toml")
		require.NoError(t, os.WriteFile(path, []byte(tomlCatalog), 0644))

		cfg := config.Default()
		cfg.Catalog.Source = config.SourceFile
		cfg.Catalog.Path = path

		c, err := Open(ctx, cfg)
		require.NoError(t, err)
		assert.Len(t, c.Rules, 2)
		assert.Equal(t, path, c.Source)
	})

	t.Run("database", func(t *testing.T) {
		cfg := config.Default()
		cfg.Catalog.Source = config.SourceDatabase
		cfg.Database.Path = filepath.Join(dir, "catalog.db")

		_, err := Open(ctx, cfg)
		require.True(t, errors.Is(err, ErrCatalogEmpty))

		db, err := database.Open(cfg.Database.Path)
		require.NoError(t, err)
		_, err = Import(ctx, db, "builtin", BuiltinDefinition())
		require.NoError(t, err)
		db.Close()

		c, err := Open(ctx, cfg)
		require.NoError(t, err)
		assert.Len(t, c.Rules, 4)
	})

	t.Run("config fallback override", func(t *testing.T) {
		cfg := config.Default()
		cfg.Catalog.Fallback = []string{"Say again?"}

		c, err := Open(ctx, cfg)
		require.NoError(t, err)
		assert.Equal(t, "Say again?", c.Responder().Respond("xyz"))
	})
}
