package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/agungalvian/wjg/internal/user"
)

const uniqueViolation = "23505"

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

// Expected column order: id, username, password_hash, role, full_name, house_number,
// phone, occupancy, created_at
func scanUser(s scanner) (*user.User, error) {
	var u user.User

	var role, occupancy string

	var fullName, houseNumber, phone sql.NullString

	if err := s.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &role, &fullName, &houseNumber,
		&phone, &occupancy, &u.CreatedAt,
	); err != nil {
		return nil, err
	}

	u.Role = user.Role(role)
	u.Occupancy = user.Occupancy(occupancy)
	u.FullName = fullName.String
	u.HouseNumber = houseNumber.String
	u.Phone = phone.String

	return &u, nil
}

const selectUserColumns = `
	id, username, password_hash, role, full_name, house_number, phone, occupancy, created_at
`

func wrapWriteErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return user.ErrUsernameTaken
	}

	return fmt.Errorf("%s: %w", op, err)
}

func (s *Store) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (username, password_hash, role, full_name, house_number, phone, occupancy, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		u.Username,
		u.PasswordHash,
		u.Role,
		u.FullName,
		u.HouseNumber,
		u.Phone,
		u.Occupancy,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return wrapWriteErr("creating user", err)
	}

	return nil
}

func (s *Store) get(ctx context.Context, where string, arg any) (*user.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE ` + where

	u, err := scanUser(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return u, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.get(ctx, "id = $1", id)
}

func (s *Store) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return s.get(ctx, "LOWER(username) = LOWER($1)", username)
}

func (s *Store) List(ctx context.Context, filter user.ListFilter) ([]*user.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Role != nil {
		query += fmt.Sprintf(" AND role = $%d", argIdx)

		args = append(args, *filter.Role)
		argIdx++
	}

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (full_name ILIKE $%d OR house_number ILIKE $%d)", argIdx, argIdx)

		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	query += " ORDER BY LOWER(username) ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*user.User

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}

		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}

	return users, nil
}

func (s *Store) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET username = $1, password_hash = $2, role = $3, full_name = $4, house_number = $5,
			phone = $6, occupancy = $7
		WHERE id = $8
	`

	res, err := s.db.ExecContext(ctx, query,
		u.Username,
		u.PasswordHash,
		u.Role,
		u.FullName,
		u.HouseNumber,
		u.Phone,
		u.Occupancy,
		u.ID,
	)
	if err != nil {
		return wrapWriteErr("updating user", err)
	}

	return expectOne(res)
}

func (s *Store) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	return expectOne(res)
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	return expectOne(res)
}

func (s *Store) CountByRole(ctx context.Context, role user.Role) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}

	return n, nil
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return user.ErrNotFound
	}

	return nil
}
