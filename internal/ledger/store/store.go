package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/agungalvian/wjg/internal/ledger"
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

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanMutation reads a mutation row.
// Expected column order: id, direction, amount, description, date, category, fund,
// proof_image, payment_id, created_at, resident_name
func scanMutation(s scanner) (*ledger.Mutation, error) {
	var m ledger.Mutation

	var direction string

	var description, category, fund, proof, resident sql.NullString

	var paymentID *uuid.UUID

	if err := s.Scan(
		&m.ID, &direction, &m.Amount, &description, &m.Date, &category, &fund,
		&proof, &paymentID, &m.CreatedAt, &resident,
	); err != nil {
		return nil, err
	}

	m.Direction = ledger.Direction(direction)
	m.Description = description.String
	m.Category = category.String
	m.Fund = ledger.Fund(fund.String)
	m.ProofImage = proof.String
	m.PaymentID = paymentID
	m.ResidentName = resident.String

	return &m, nil
}

const selectMutationColumns = `
	m.id, m.direction, m.amount, m.description, m.date, m.category, m.fund,
	m.proof_image, m.payment_id, m.created_at, u.full_name AS resident_name
`

const fromMutations = `
	FROM mutations m
	LEFT JOIN payments p ON m.payment_id = p.id
	LEFT JOIN users u ON p.user_id = u.id
`

// QueryMutations returns the mutations matching filter, newest first. Calendar
// parts are compared in UTC.
func (s *Store) QueryMutations(ctx context.Context, filter ledger.MutationFilter) ([]*ledger.Mutation, error) {
	query := `SELECT ` + selectMutationColumns + fromMutations + ` WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Before != nil {
		query += fmt.Sprintf(" AND m.date < $%d", argIdx)

		args = append(args, *filter.Before)
		argIdx++
	}

	if filter.Year != 0 {
		query += fmt.Sprintf(" AND EXTRACT(YEAR FROM m.date AT TIME ZONE 'UTC') = $%d", argIdx)

		args = append(args, filter.Year)
		argIdx++
	}

	if filter.Month != 0 {
		query += fmt.Sprintf(" AND EXTRACT(MONTH FROM m.date AT TIME ZONE 'UTC') = $%d", argIdx)

		args = append(args, filter.Month)
		argIdx++
	}

	query += " ORDER BY m.date DESC, m.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying mutations: %w", err)
	}
	defer rows.Close()

	var ms []*ledger.Mutation

	for rows.Next() {
		m, err := scanMutation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning mutation: %w", err)
		}

		ms = append(ms, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mutation rows: %w", err)
	}

	return ms, nil
}

func (s *Store) CreateMutation(ctx context.Context, mutation *ledger.Mutation) error {
	return insertMutation(ctx, s.db, mutation)
}

// InsertMutation writes one mutation through q and fills its id and creation time.
// It is shared with the payment store, which inserts inside its approval transaction.
func InsertMutation(ctx context.Context, q Querier, mutation *ledger.Mutation) error {
	return insertMutation(ctx, q, mutation)
}

func insertMutation(ctx context.Context, q Querier, m *ledger.Mutation) error {
	query := `
		INSERT INTO mutations (direction, amount, description, date, category, fund, proof_image, payment_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRowContext(ctx, query,
		m.Direction,
		m.Amount,
		m.Description,
		m.Date,
		m.Category,
		string(m.Fund),
		m.ProofImage,
		m.PaymentID,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating mutation: %w", err)
	}

	return nil
}

type batchTx struct {
	tx *sql.Tx
}

func (s *Store) BeginBatch(ctx context.Context) (ledger.BatchTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning batch tx: %w", err)
	}

	return &batchTx{tx: dbTx}, nil
}

func (b *batchTx) Commit() error   { return b.tx.Commit() }
func (b *batchTx) Rollback() error { return b.tx.Rollback() }

func (b *batchTx) CreateMutations(ctx context.Context, ms []*ledger.Mutation) error {
	for _, m := range ms {
		if err := insertMutation(ctx, b.tx, m); err != nil {
			return err
		}
	}

	return nil
}
