package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/agungalvian/wjg/internal/announcement"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnnouncement(s scanner) (*announcement.Announcement, error) {
	var (
		a     announcement.Announcement
		image sql.NullString
	)

	if err := s.Scan(&a.ID, &a.Title, &a.Content, &a.Category, &image, &a.CreatedAt); err != nil {
		return nil, err
	}

	a.Image = image.String

	return &a, nil
}

func (s *Store) List(ctx context.Context, category *announcement.Category) ([]*announcement.Announcement, error) {
	query := `SELECT id, title, content, category, image, created_at FROM announcements`

	var args []any
	if category != nil {
		query += ` WHERE category = $1`
		args = append(args, string(*category))
	}

	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing announcements: %w", err)
	}
	defer rows.Close()

	var list []*announcement.Announcement

	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning announcement: %w", err)
		}

		list = append(list, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating announcement rows: %w", err)
	}

	return list, nil
}

func (s *Store) Create(ctx context.Context, a *announcement.Announcement) error {
	query := `
		INSERT INTO announcements (title, content, category, image, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, a.Title, a.Content, string(a.Category), a.Image).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating announcement: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting announcement: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return announcement.ErrNotFound
	}

	return nil
}
