package responder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"Hello, how are you?", []string{"hello", "how", "are", "you", ""}},
		{"thank you for your help", []string{"thank", "you", "for", "your", "help"}},
		{"", []string{""}},
		{"one  two\tthree", []string{"one", "two", "three"}},
		{"well-known; fine!", []string{"well", "known", "fine", ""}},
		{"a.b", []string{"a", "b"}},
		{"ALOHA", []string{"aloha"}},
		{"ÉTÉ chaud", []string{"été", "chaud"}},
		{"you're", []string{"you're"}},
		{"thank\u00a0you for your help", []string{"thank", "you", "for", "your", "help"}},
		{"thank\vyou", []string{"thank", "you"}},
		{"thank\u3000you", []string{"thank", "you"}},
		{"one\u2028two\u2029three", []string{"one", "two", "three"}},
		{"a\x1cb\u0085c", []string{"a", "b", "c"}},
		{"hi,\u00a0there", []string{"hi", "there"}},
		{"zero\u200bwidth", []string{"zero\u200bwidth"}},
		{"ΟΔΟΣ", []string{"οδος"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Tokenize(tt.input), "Tokenize(%q)", tt.input)
	}
}

func TestScore(t *testing.T) {
	greeting := MustRule(RuleConfig{
		Name:        "greeting",
		Response:    Literal("Hello!"),
		Recognized:  []string{"hy", "hello", "hey", "aloha"},
		AlwaysScore: true,
	})
	gated := MustRule(RuleConfig{
		Name:       "gated",
		Response:   Literal("gated"),
		Recognized: []string{"how", "are", "you", "doing"},
		Required:   []string{"how"},
	})
	thirds := MustRule(RuleConfig{
		Name:       "thirds",
		Response:   Literal("thirds"),
		Recognized: []string{"a", "b", "c"},
	})

	tests := []struct {
		name     string
		tokens   []string
		rule     *Rule
		expected int
	}{
		{"one of four", []string{"hello", "there"}, greeting, 25},
		{"no overlap", []string{"xyz"}, greeting, 0},
		{"empty tokens", []string{""}, greeting, 0},
		{"repetition is not capped", Tokenize("hello hello hello hello hello"), greeting, 125},
		{"required missing", []string{"are", "you", "doing"}, gated, 0},
		{"required present", []string{"how", "are", "you"}, gated, 75},
		{"required position does not matter", []string{"you", "are", "how"}, gated, 75},
		{"truncated toward zero", []string{"a"}, thirds, 33},
		{"two thirds", []string{"a", "b"}, thirds, 66},
		{"empty required list", []string{"c"}, thirds, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Score(tt.tokens, tt.rule))
		})
	}
}

func TestScore_AlwaysScoreIgnoresRequired(t *testing.T) {
	cfg := RuleConfig{
		Name:       "r",
		Response:   Literal("r"),
		Recognized: []string{"alpha", "beta"},
		Required:   []string{"gamma"},
	}
	gated := MustRule(cfg)
	cfg.AlwaysScore = true
	always := MustRule(cfg)

	tokens := []string{"alpha", "beta"}
	assert.Equal(t, 0, Score(tokens, gated))
	assert.Equal(t, 100, Score(tokens, always))

	// Coverage still decides: nothing recognized is zero either way
	assert.Equal(t, 0, Score([]string{"gamma"}, always))
}

func TestScore_NeverNegative(t *testing.T) {
	rules := testRules(t)
	inputs := []string{"", "   ", "?", "hello", "how how how", "thank thank you you", "random words here"}

	for _, in := range inputs {
		for _, r := range rules {
			assert.GreaterOrEqual(t, Score(Tokenize(in), r), 0, "rule %s input %q", r.Name(), in)
		}
	}
}

func TestSelect_TieBreakFirstRegistered(t *testing.T) {
	first := MustRule(RuleConfig{Name: "first", Response: Literal("1"), Recognized: []string{"x", "y"}})
	second := MustRule(RuleConfig{Name: "second", Response: Literal("2"), Recognized: []string{"x", "z"}})

	sel := Select([]string{"x"}, []*Rule{first, second})
	require.NotNil(t, sel.Winner)
	assert.Equal(t, "first", sel.Winner.Name())
	assert.Equal(t, 50, sel.Score)

	sel = Select([]string{"x"}, []*Rule{second, first})
	require.NotNil(t, sel.Winner)
	assert.Equal(t, "second", sel.Winner.Name())
}

func TestSelect_NoRules(t *testing.T) {
	sel := Select([]string{"hello"}, nil)

	assert.True(t, sel.Fallback)
	assert.Nil(t, sel.Winner)
	assert.Equal(t, 0, sel.Score)
	assert.Empty(t, sel.Scores)
}

func TestNewRule(t *testing.T) {
	_, err := NewRule(RuleConfig{Name: "empty", Response: Literal("x")})
	assert.True(t, errors.Is(err, ErrEmptyRecognized))

	_, err = NewRule(RuleConfig{Name: "noresp", Recognized: []string{"a"}})
	assert.Error(t, err)

	r, err := NewRule(RuleConfig{
		Name:       "dups",
		Response:   Literal("x"),
		Recognized: []string{"a", "b", "a"},
		Required:   []string{"b"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, r.Recognized())
	assert.Equal(t, []string{"b"}, r.Required())
	assert.False(t, r.AlwaysScore())
	assert.Equal(t, "x", r.Response())

	assert.Panics(t, func() {
		MustRule(RuleConfig{Name: "bad", Response: Literal("x")})
	})
}
