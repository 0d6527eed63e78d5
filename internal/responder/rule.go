package responder

import (
	"errors"
	"fmt"
)

// ErrEmptyRecognized is returned when a rule has no recognized words.
var ErrEmptyRecognized = errors.New("rule has no recognized words")

// Text produces a response string. Most rules use a Literal; a catalog may
// supply text that varies between calls.
type Text func() string

// Literal returns a Text that always yields s
func Literal(s string) Text {
	return func() string { return s }
}

// OneOf returns a Text that picks one of the choices using pick, which must
// return a value in [0, n).
func OneOf(pick func(n int) int, choices ...string) Text {
	if len(choices) == 0 {
		return Literal("")
	}
	if len(choices) == 1 {
		return Literal(choices[0])
	}
	c := append([]string(nil), choices...)
	return func() string {
		return c[pick(len(c))]
	}
}

// RuleConfig describes a response rule
type RuleConfig struct {
	Name        string   // Stable identifier, used in score tables
	Response    Text     // Text returned when the rule wins
	Recognized  []string // Words that contribute to coverage
	Required    []string // Words that must all be present (unless AlwaysScore)
	AlwaysScore bool     // Score on coverage alone, ignoring Required
}

// Rule is an immutable response rule
type Rule struct {
	name        string
	response    Text
	words       []string
	recognized  map[string]struct{}
	required    []string
	alwaysScore bool
}

// NewRule validates cfg and builds a Rule
func NewRule(cfg RuleConfig) (*Rule, error) {
	if cfg.Response == nil {
		return nil, fmt.Errorf("rule %q: response is required", cfg.Name)
	}

	recognized := make(map[string]struct{}, len(cfg.Recognized))
	words := make([]string, 0, len(cfg.Recognized))
	for _, w := range cfg.Recognized {
		if _, dup := recognized[w]; dup {
			continue
		}
		recognized[w] = struct{}{}
		words = append(words, w)
	}
	if len(recognized) == 0 {
		return nil, fmt.Errorf("rule %q: %w", cfg.Name, ErrEmptyRecognized)
	}

	return &Rule{
		name:        cfg.Name,
		response:    cfg.Response,
		words:       words,
		recognized:  recognized,
		required:    append([]string(nil), cfg.Required...),
		alwaysScore: cfg.AlwaysScore,
	}, nil
}

// MustRule is like NewRule but panics on an invalid rule. It is meant for
// rule tables compiled into the program.
func MustRule(cfg RuleConfig) *Rule {
	r, err := NewRule(cfg)
	if err != nil {
		panic(err)
	}
	return r
}

// Name returns the rule identifier
func (r *Rule) Name() string { return r.name }

// Response evaluates the rule's response text
func (r *Rule) Response() string { return r.response() }

// Recognized returns the recognized words in declaration order
func (r *Rule) Recognized() []string { return append([]string(nil), r.words...) }

// Required returns the required words
func (r *Rule) Required() []string { return append([]string(nil), r.required...) }

// AlwaysScore reports whether the rule ignores its required words
func (r *Rule) AlwaysScore() bool { return r.alwaysScore }

func (r *Rule) recognizes(word string) bool {
	_, ok := r.recognized[word]
	return ok
}
