package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReplaceCatalog swaps the stored catalog for the given rules and fallback
// phrasings in one transaction. Rule positions follow slice order.
func (db *DB) ReplaceCatalog(ctx context.Context, source string, rules []StoredRule, fallbacks []string) error {
	now := time.Now()

	return db.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM rules`); err != nil {
			return fmt.Errorf("failed to clear rules: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM fallbacks`); err != nil {
			return fmt.Errorf("failed to clear fallbacks: %w", err)
		}

		for i := range rules {
			r := &rules[i]
			if r.ID == "" {
				r.ID = uuid.New().String()
			}
			r.Position = i
			r.CreatedAt = now

			recognized, err := encodeWords(r.Recognized)
			if err != nil {
				return fmt.Errorf("rule %q: %w", r.Name, err)
			}
			required, err := encodeWords(r.Required)
			if err != nil {
				return fmt.Errorf("rule %q: %w", r.Name, err)
			}

			_, err = tx.ExecContext(ctx, `
				INSERT INTO rules (
					id, position, name, response, recognized, required, always_score, created_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`,
				r.ID, r.Position, r.Name, r.Response, recognized, required, r.AlwaysScore, r.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert rule %q: %w", r.Name, err)
			}
		}

		for i, text := range fallbacks {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO fallbacks (id, position, text, created_at) VALUES (?, ?, ?, ?)
			`, uuid.New().String(), i, text, now)
			if err != nil {
				return fmt.Errorf("failed to insert fallback: %w", err)
			}
		}

		_, err := tx.ExecContext(ctx, `
			UPDATE catalog_state SET source = ?, imported_at = ? WHERE id = 1
		`, source, now)
		return err
	})
}

// ListRules returns the stored rules in position order
func (db *DB) ListRules(ctx context.Context) ([]StoredRule, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, position, name, response, recognized, required, always_score, created_at
		FROM rules ORDER BY position ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []StoredRule
	for rows.Next() {
		var r StoredRule
		var recognized, required string

		if err := rows.Scan(
			&r.ID, &r.Position, &r.Name, &r.Response, &recognized, &required, &r.AlwaysScore, &r.CreatedAt,
		); err != nil {
			return nil, err
		}

		if r.Recognized, err = decodeWords(recognized); err != nil {
			return nil, fmt.Errorf("rule %q: bad recognized words: %w", r.Name, err)
		}
		if r.Required, err = decodeWords(required); err != nil {
			return nil, fmt.Errorf("rule %q: bad required words: %w", r.Name, err)
		}
		rules = append(rules, r)
	}

	return rules, rows.Err()
}

// GetRuleByName retrieves a rule by name (case-insensitive)
func (db *DB) GetRuleByName(ctx context.Context, name string) (*StoredRule, error) {
	r := &StoredRule{}
	var recognized, required string

	err := db.QueryRowContext(ctx, `
		SELECT id, position, name, response, recognized, required, always_score, created_at
		FROM rules WHERE LOWER(name) = LOWER(?)
	`, name).Scan(
		&r.ID, &r.Position, &r.Name, &r.Response, &recognized, &required, &r.AlwaysScore, &r.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if r.Recognized, err = decodeWords(recognized); err != nil {
		return nil, err
	}
	if r.Required, err = decodeWords(required); err != nil {
		return nil, err
	}
	return r, nil
}

// ListFallbacks returns the stored fallback phrasings in order
func (db *DB) ListFallbacks(ctx context.Context) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT text FROM fallbacks ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}

	return texts, rows.Err()
}

// GetCatalogState returns information about the last import
func (db *DB) GetCatalogState(ctx context.Context) (*CatalogState, error) {
	state := &CatalogState{}
	var source sql.NullString
	var importedAt sql.NullTime

	err := db.QueryRowContext(ctx, `
		SELECT source, imported_at FROM catalog_state WHERE id = 1
	`).Scan(&source, &importedAt)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	state.Source = StringPtr(source)
	state.ImportedAt = TimePtr(importedAt)

	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rules`).Scan(&state.RuleCount); err != nil {
		return nil, err
	}

	return state, nil
}
