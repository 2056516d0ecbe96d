package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/agungalvian/wjg/internal/ledger"
	ledgerstore "github.com/agungalvian/wjg/internal/ledger/store"
	"github.com/agungalvian/wjg/internal/payment"
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

// scanPayment reads a payment row.
// Expected column order: id, user_id, amount, months, breakdown, status, proof_image,
// payment_date, note, submitted_at, reviewed_at, full_name, house_number
func scanPayment(s scanner) (*payment.Payment, error) {
	var p payment.Payment

	var months, status string

	var breakdown []byte

	var proof, note, houseNumber sql.NullString

	var paymentDate sql.NullTime

	if err := s.Scan(
		&p.ID, &p.UserID, &p.Amount, &months, &breakdown, &status, &proof,
		&paymentDate, &note, &p.SubmittedAt, &p.ReviewedAt, &p.ResidentName, &houseNumber,
	); err != nil {
		return nil, err
	}

	p.Months = payment.ParseMonths(months)
	p.Status = payment.Status(status)
	p.ProofImage = proof.String
	p.PaymentDate = paymentDate.Time
	p.Note = note.String
	p.HouseNumber = houseNumber.String

	if len(breakdown) > 0 {
		if err := json.Unmarshal(breakdown, &p.Breakdown); err != nil {
			slog.Warn("unreadable payment breakdown", "id", p.ID, "error", err)
			p.Breakdown = payment.Breakdown{}
		}
	}

	return &p, nil
}

const selectPaymentColumns = `
	p.id, p.user_id, p.amount, p.months, p.breakdown, p.status, p.proof_image,
	p.payment_date, p.note, p.submitted_at, p.reviewed_at, u.full_name, u.house_number
`

func (s *Store) Create(ctx context.Context, p *payment.Payment) error {
	breakdown, err := json.Marshal(p.Breakdown)
	if err != nil {
		return fmt.Errorf("encoding breakdown: %w", err)
	}

	query := `
		INSERT INTO payments (user_id, amount, months, breakdown, status, proof_image, payment_date, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, submitted_at
	`

	err = s.db.QueryRowContext(ctx, query,
		p.UserID,
		p.Amount,
		payment.FormatMonths(p.Months),
		breakdown,
		p.Status,
		p.ProofImage,
		p.PaymentDate,
	).Scan(&p.ID, &p.SubmittedAt)
	if err != nil {
		return fmt.Errorf("creating payment: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + `
		FROM payments p
		JOIN users u ON p.user_id = u.id
		WHERE p.id = $1`

	p, err := scanPayment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payment.ErrNotFound
		}

		return nil, fmt.Errorf("getting payment: %w", err)
	}

	return p, nil
}

func (s *Store) List(ctx context.Context, filter payment.ListFilter) ([]*payment.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + `
		FROM payments p
		JOIN users u ON p.user_id = u.id
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND p.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND p.user_id = $%d", argIdx)

		args = append(args, *filter.UserID)
		argIdx++
	}

	query += " ORDER BY p.submitted_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var ps []*payment.Payment

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		ps = append(ps, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return ps, nil
}

func (s *Store) CountByStatus(ctx context.Context, status payment.Status) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting payments: %w", err)
	}

	return n, nil
}

// ApprovedMonths matches any covered-months field mentioning year, including
// payments that span a year boundary. Callers filter the individual months.
func (s *Store) ApprovedMonths(ctx context.Context, userID *uuid.UUID, year int) ([]payment.PaidMonths, error) {
	query := `SELECT user_id, months FROM payments WHERE status = 'approved' AND months LIKE $1`
	args := []any{fmt.Sprintf("%%%04d-%%", year)}

	if userID != nil {
		query += " AND user_id = $2"

		args = append(args, *userID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying approved months: %w", err)
	}
	defer rows.Close()

	var out []payment.PaidMonths

	for rows.Next() {
		var pm payment.PaidMonths
		if err := rows.Scan(&pm.UserID, &pm.Months); err != nil {
			return nil, fmt.Errorf("scanning approved months: %w", err)
		}

		out = append(out, pm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating approved months: %w", err)
	}

	return out, nil
}

func (s *Store) ListResidents(ctx context.Context) ([]payment.Resident, error) {
	query := `
		SELECT id, full_name, COALESCE(house_number, '')
		FROM users
		WHERE role = 'resident'
		ORDER BY house_number, full_name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing residents: %w", err)
	}
	defer rows.Close()

	var residents []payment.Resident

	for rows.Next() {
		var r payment.Resident
		if err := rows.Scan(&r.ID, &r.FullName, &r.HouseNumber); err != nil {
			return nil, fmt.Errorf("scanning resident: %w", err)
		}

		residents = append(residents, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resident rows: %w", err)
	}

	return residents, nil
}

type reviewTx struct {
	tx *sql.Tx
}

func (s *Store) BeginReview(ctx context.Context) (payment.ReviewTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning review tx: %w", err)
	}

	return &reviewTx{tx: dbTx}, nil
}

func (r *reviewTx) Commit() error   { return r.tx.Commit() }
func (r *reviewTx) Rollback() error { return r.tx.Rollback() }

// GetForUpdate locks the payment row so two reviewers cannot both approve it.
func (r *reviewTx) GetForUpdate(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	query := `SELECT ` + selectPaymentColumns + `
		FROM payments p
		JOIN users u ON p.user_id = u.id
		WHERE p.id = $1
		FOR UPDATE OF p`

	p, err := scanPayment(r.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payment.ErrNotFound
		}

		return nil, fmt.Errorf("locking payment: %w", err)
	}

	return p, nil
}

func (r *reviewTx) SetStatus(ctx context.Context, id uuid.UUID, status payment.Status, note string) error {
	query := `
		UPDATE payments
		SET status = $1, note = NULLIF($2, ''), reviewed_at = NOW()
		WHERE id = $3
	`

	if _, err := r.tx.ExecContext(ctx, query, status, note, id); err != nil {
		return fmt.Errorf("updating payment status: %w", err)
	}

	return nil
}

func (r *reviewTx) InsertMutations(ctx context.Context, ms []*ledger.Mutation) error {
	for _, m := range ms {
		if err := ledgerstore.InsertMutation(ctx, r.tx, m); err != nil {
			return err
		}
	}

	return nil
}
