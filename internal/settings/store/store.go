package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/agungalvian/wjg/internal/settings"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) All(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("querying settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scanning setting: %w", err)
		}

		values[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating setting rows: %w", err)
	}

	return values, nil
}

type updateTx struct {
	tx *sql.Tx
}

func (s *Store) BeginUpdate(ctx context.Context) (settings.UpdateTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning settings tx: %w", err)
	}

	return &updateTx{tx: dbTx}, nil
}

func (u *updateTx) Commit() error   { return u.tx.Commit() }
func (u *updateTx) Rollback() error { return u.tx.Rollback() }

func (u *updateTx) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`

	if _, err := u.tx.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("upserting setting: %w", err)
	}

	return nil
}
