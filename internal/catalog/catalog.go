// Package catalog supplies the response rules a responder scores against.
//
// A catalog is described by a Definition, which can come from the built-in
// table, a TOML or YAML file, or the catalog database. Build validates a
// Definition and turns it into rules; every defect is reported at once so a
// bad catalog never reaches the scorer.
package catalog

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/vijay-prabhu/replybot/internal/responder"
)

// ErrNoRules is returned when a definition contains no rules
var ErrNoRules = errors.New("catalog has no rules")

// Definition is the serializable form of a catalog
type Definition struct {
	Fallback []string         `toml:"fallback" yaml:"fallback" json:"fallback"`
	Rules    []RuleDefinition `toml:"rule" yaml:"rules" json:"rules"`
}

// RuleDefinition is the serializable form of one rule
type RuleDefinition struct {
	Name        string   `toml:"name" yaml:"name" json:"name"`
	Response    string   `toml:"response" yaml:"response" json:"response"`
	Recognized  []string `toml:"recognized" yaml:"recognized" json:"recognized"`
	Required    []string `toml:"required,omitempty" yaml:"required,omitempty" json:"required,omitempty"`
	AlwaysScore bool     `toml:"always_score,omitempty" yaml:"always_score,omitempty" json:"always_score,omitempty"`
}

// Catalog is a validated, ordered rule table with its fallback
type Catalog struct {
	Rules     []*responder.Rule
	Fallback  responder.Text
	Fallbacks []string // phrasings behind Fallback
	Source    string
}

// Responder returns a responder over the catalog's rules
func (c *Catalog) Responder() *responder.Responder {
	return responder.New(c.Rules, c.Fallback)
}

// Definition converts the catalog back to its serializable form
func (c *Catalog) Definition() Definition {
	def := Definition{Fallback: append([]string(nil), c.Fallbacks...)}
	for _, r := range c.Rules {
		def.Rules = append(def.Rules, RuleDefinition{
			Name:        r.Name(),
			Response:    r.Response(),
			Recognized:  r.Recognized(),
			Required:    r.Required(),
			AlwaysScore: r.AlwaysScore(),
		})
	}
	return def
}

// Options tune how a definition is built
type Options struct {
	// Pick chooses a fallback phrasing index in [0, n). Defaults to rand.IntN.
	Pick func(n int) int
	// Fallback overrides the definition's fallback phrasings when non-empty
	Fallback []string
	// Source labels where the definition came from
	Source string
}

// Build validates def and converts it into a Catalog. Words are lowercased
// and trimmed so they line up with tokenizer output.
func Build(def Definition, opts Options) (*Catalog, error) {
	var errs []error

	if len(def.Rules) == 0 {
		errs = append(errs, ErrNoRules)
	}

	seen := make(map[string]bool, len(def.Rules))
	rules := make([]*responder.Rule, 0, len(def.Rules))
	for i, rd := range def.Rules {
		name := strings.TrimSpace(rd.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("rule %d: name is required", i))
			continue
		}
		if seen[strings.ToLower(name)] {
			errs = append(errs, fmt.Errorf("rule %q: duplicate name", name))
			continue
		}
		seen[strings.ToLower(name)] = true

		if strings.TrimSpace(rd.Response) == "" {
			errs = append(errs, fmt.Errorf("rule %q: response is required", name))
			continue
		}

		r, err := responder.NewRule(responder.RuleConfig{
			Name:        name,
			Response:    responder.Literal(rd.Response),
			Recognized:  normalizeWords(rd.Recognized),
			Required:    normalizeWords(rd.Required),
			AlwaysScore: rd.AlwaysScore,
		})
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rules = append(rules, r)
	}

	fallbacks := def.Fallback
	if len(opts.Fallback) > 0 {
		fallbacks = opts.Fallback
	}
	if len(fallbacks) == 0 {
		fallbacks = DefaultFallbacks
	}
	for i, f := range fallbacks {
		if strings.TrimSpace(f) == "" {
			errs = append(errs, fmt.Errorf("fallback %d is empty", i))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	pick := opts.Pick
	if pick == nil {
		pick = rand.Intn
	}

	return &Catalog{
		Rules:     rules,
		Fallback:  responder.OneOf(pick, fallbacks...),
		Fallbacks: append([]string(nil), fallbacks...),
		Source:    opts.Source,
	}, nil
}

// MustBuild is like Build but panics on an invalid definition
func MustBuild(def Definition, opts Options) *Catalog {
	c, err := Build(def, opts)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

// normalizeWords lowercases and trims words the way the tokenizer does,
// dropping blanks
func normalizeWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = responder.Lower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
