package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agungalvian/wjg/internal/ledger"
	"github.com/agungalvian/wjg/internal/matching"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRule(s scanner) (*matching.Rule, error) {
	var r matching.Rule

	var fund, category, description sql.NullString

	if err := s.Scan(&r.ID, &r.RawPattern, &fund, &category, &description, &r.CreatedAt); err != nil {
		return nil, err
	}

	r.Fund = ledger.Fund(fund.String)
	r.Category = category.String
	r.Description = description.String

	return &r, nil
}

const selectRuleColumns = `id, raw_pattern, fund, category, description, created_at`

func (s *Store) FindMatch(ctx context.Context, rawDescription string) (*matching.Rule, error) {
	query := `SELECT ` + selectRuleColumns + `
		FROM matching_rules
		WHERE $1 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	r, err := scanRule(s.db.QueryRowContext(ctx, query, rawDescription))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("finding match: %w", err)
	}

	return r, nil
}

func (s *Store) CreateRule(ctx context.Context, rule *matching.Rule) error {
	query := `
		INSERT INTO matching_rules (raw_pattern, fund, category, description, created_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		rule.RawPattern,
		string(rule.Fund),
		rule.Category,
		rule.Description,
	).Scan(&rule.ID, &rule.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating rule: %w", err)
	}

	return nil
}

func (s *Store) ListRules(ctx context.Context) ([]*matching.Rule, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectRuleColumns+` FROM matching_rules ORDER BY raw_pattern`)
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}
	defer rows.Close()

	var rules []*matching.Rule

	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning rule: %w", err)
		}

		rules = append(rules, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rule rows: %w", err)
	}

	return rules, nil
}
