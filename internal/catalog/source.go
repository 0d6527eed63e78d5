package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/vijay-prabhu/replybot/internal/config"
	"github.com/vijay-prabhu/replybot/internal/database"
)

// ErrCatalogEmpty is returned when the catalog database holds no rules
var ErrCatalogEmpty = errors.New("catalog database is empty (run 'replybot catalog import <file>')")

// Open builds the catalog selected by cfg.Catalog. The rule table is read
// once; later changes to the file or database are not picked up.
func Open(ctx context.Context, cfg *config.Config) (*Catalog, error) {
	opts := Options{Fallback: cfg.Catalog.Fallback}

	switch cfg.Catalog.Source {
	case config.SourceBuiltin, "":
		opts.Source = config.SourceBuiltin
		return Build(BuiltinDefinition(), opts)

	case config.SourceFile:
		def, err := LoadFile(cfg.Catalog.Path)
		if err != nil {
			return nil, err
		}
		opts.Source = cfg.Catalog.Path
		c, err := Build(*def, opts)
		if err != nil {
			return nil, fmt.Errorf("invalid catalog %s: %w", cfg.Catalog.Path, err)
		}
		return c, nil

	case config.SourceDatabase:
		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		opts.Source = cfg.Database.Path
		return FromDatabase(ctx, db, opts)

	default:
		return nil, fmt.Errorf("unknown catalog source: %s", cfg.Catalog.Source)
	}
}

// FromDatabase builds a catalog from the rules stored in db
func FromDatabase(ctx context.Context, db *database.DB, opts Options) (*Catalog, error) {
	stored, err := db.ListRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	if len(stored) == 0 {
		return nil, ErrCatalogEmpty
	}

	fallbacks, err := db.ListFallbacks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fallbacks: %w", err)
	}

	def := Definition{Fallback: fallbacks}
	for _, r := range stored {
		def.Rules = append(def.Rules, RuleDefinition{
			Name:        r.Name,
			Response:    r.Response,
			Recognized:  r.Recognized,
			Required:    r.Required,
			AlwaysScore: r.AlwaysScore,
		})
	}

	c, err := Build(def, opts)
	if err != nil {
		return nil, fmt.Errorf("invalid stored catalog: %w", err)
	}
	return c, nil
}

// Import validates def and stores it in db, replacing any previous catalog
func Import(ctx context.Context, db *database.DB, source string, def Definition) (*Catalog, error) {
	c, err := Build(def, Options{Source: source})
	if err != nil {
		return nil, err
	}

	// Store the normalized form so the database matches what was validated
	norm := c.Definition()
	rules := make([]database.StoredRule, 0, len(norm.Rules))
	for _, r := range norm.Rules {
		rules = append(rules, database.StoredRule{
			Name:        r.Name,
			Response:    r.Response,
			Recognized:  r.Recognized,
			Required:    r.Required,
			AlwaysScore: r.AlwaysScore,
		})
	}

	if err := db.ReplaceCatalog(ctx, source, rules, def.Fallback); err != nil {
		return nil, fmt.Errorf("failed to store catalog: %w", err)
	}
	return c, nil
}
