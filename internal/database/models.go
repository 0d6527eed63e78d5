package database

import (
	"database/sql"
	"encoding/json"
	"time"
)

// StoredRule is a response rule as kept in the catalog database
type StoredRule struct {
	ID          string    `json:"id"`
	Position    int       `json:"position"`
	Name        string    `json:"name"`
	Response    string    `json:"response"`
	Recognized  []string  `json:"recognized"`
	Required    []string  `json:"required,omitempty"`
	AlwaysScore bool      `json:"always_score"`
	CreatedAt   time.Time `json:"created_at"`
}

// CatalogState describes the last import
type CatalogState struct {
	Source     *string    `json:"source,omitempty"`
	ImportedAt *time.Time `json:"imported_at,omitempty"`
	RuleCount  int        `json:"rule_count"`
}

// encodeWords serializes a word list for a TEXT column
func encodeWords(words []string) (string, error) {
	if words == nil {
		words = []string{}
	}
	b, err := json.Marshal(words)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeWords parses a word list from a TEXT column
func decodeWords(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var words []string
	if err := json.Unmarshal([]byte(s), &words); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, nil
	}
	return words, nil
}

// StringPtr converts sql.NullString to *string
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// TimePtr converts sql.NullTime to *time.Time
func TimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Time
}
