package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/agungalvian/wjg/internal/ledger"
	"github.com/agungalvian/wjg/internal/metrics"
	"github.com/agungalvian/wjg/internal/settings"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=payment
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	Get(ctx context.Context, id uuid.UUID) (*Payment, error)
	List(ctx context.Context, filter ListFilter) ([]*Payment, error)
	CountByStatus(ctx context.Context, status Status) (int, error)

	// ApprovedMonths returns the covered months of approved payments that mention
	// year, for one user or for everyone when userID is nil.
	ApprovedMonths(ctx context.Context, userID *uuid.UUID, year int) ([]PaidMonths, error)
	ListResidents(ctx context.Context) ([]Resident, error)

	BeginReview(ctx context.Context) (ReviewTx, error)
}

// ReviewTx holds a payment row locked until Commit or Rollback.
type ReviewTx interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (*Payment, error)
	SetStatus(ctx context.Context, id uuid.UUID, status Status, note string) error
	InsertMutations(ctx context.Context, ms []*ledger.Mutation) error
	Commit() error
	Rollback() error
}

// DuesSource supplies the current dues at submission time.
type DuesSource interface {
	Dues(ctx context.Context) (settings.Dues, error)
}

type Service struct {
	repo Repository
	dues DuesSource
	now  func() time.Time
}

func NewService(repo Repository, dues DuesSource, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{repo: repo, dues: dues, now: now}
}

type SubmitParams struct {
	UserID      uuid.UUID
	Months      []string
	ProofImage  string
	PaymentDate time.Time
}

// Submit prices the months with the current dues and stores a pending payment.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (*Payment, error) {
	if params.ProofImage == "" {
		return nil, ErrProofRequired
	}

	months, err := NormalizeMonths(params.Months)
	if err != nil {
		return nil, err
	}

	dues, err := s.dues.Dues(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading dues: %w", err)
	}

	date := params.PaymentDate
	if date.IsZero() {
		y, m, d := s.now().Date()
		date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	amount, breakdown := Quote(dues, len(months))
	p := &Payment{
		UserID:      params.UserID,
		Amount:      amount,
		Months:      months,
		Breakdown:   breakdown,
		Status:      StatusPending,
		ProofImage:  params.ProofImage,
		PaymentDate: date,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating payment: %w", err)
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return s.repo.Get(ctx, id)
}

// List returns payments with the given status, newest first.
func (s *Service) List(ctx context.Context, status Status) ([]*Payment, error) {
	return s.repo.List(ctx, ListFilter{Status: &status})
}

// ListForUser returns every payment of one resident, newest first.
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]*Payment, error) {
	return s.repo.List(ctx, ListFilter{UserID: &userID})
}

func (s *Service) CountPending(ctx context.Context) (int, error) {
	return s.repo.CountByStatus(ctx, StatusPending)
}

// Approve marks a pending payment approved and records one mutation per funded
// component of its breakdown. Either all of it is stored or nothing is.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, note string) (*Payment, error) {
	return s.review(ctx, id, StatusApproved, note)
}

// Reject marks a pending payment rejected. No mutation is recorded.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, note string) (*Payment, error) {
	return s.review(ctx, id, StatusRejected, note)
}

func (s *Service) review(ctx context.Context, id uuid.UUID, status Status, note string) (*Payment, error) {
	rtx, err := s.repo.BeginReview(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning review: %w", err)
	}
	defer rtx.Rollback()

	p, err := rtx.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Status != StatusPending {
		return nil, fmt.Errorf("%w: payment is %s", ErrAlreadyReviewed, p.Status)
	}

	var ms []*ledger.Mutation

	if status == StatusApproved {
		if err := p.Breakdown.Check(p.Amount); err != nil {
			slog.WarnContext(ctx, "refusing to approve payment", "id", p.ID, "error", err)
			return nil, err
		}

		ms = p.Mutations()
	}

	if err := rtx.SetStatus(ctx, id, status, note); err != nil {
		return nil, fmt.Errorf("updating payment status: %w", err)
	}

	if len(ms) > 0 {
		if err := rtx.InsertMutations(ctx, ms); err != nil {
			return nil, fmt.Errorf("recording payment mutations: %w", err)
		}
	}

	if err := rtx.Commit(); err != nil {
		return nil, fmt.Errorf("committing review: %w", err)
	}

	metrics.PaymentsReviewed.WithLabelValues(string(status)).Inc()
	metrics.MutationsRecorded.WithLabelValues("payment").Add(float64(len(ms)))

	slog.InfoContext(ctx, "payment reviewed", "id", p.ID, "status", status, "mutations", len(ms))

	reviewed := s.now()
	p.Status = status
	p.Note = note
	p.ReviewedAt = &reviewed

	return p, nil
}

// PaidMonths returns the months of year covered by the user's approved payments.
func (s *Service) PaidMonths(ctx context.Context, userID uuid.UUID, year int) (MonthSet, error) {
	rows, err := s.repo.ApprovedMonths(ctx, &userID, year)
	if err != nil {
		return nil, fmt.Errorf("%w: querying approved months: %w", ledger.ErrQueryFailed, err)
	}

	raw := make([]string, len(rows))
	for i, r := range rows {
		raw[i] = r.Months
	}

	return CollectMonths(year, raw), nil
}

// ResidentStatus derives the dues labels of one resident for year.
func (s *Service) ResidentStatus(ctx context.Context, userID uuid.UUID, year int) (*ResidentStatus, error) {
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("%w: year %d out of range", ledger.ErrInvalidWindow, year)
	}

	paid, err := s.PaidMonths(ctx, userID, year)
	if err != nil {
		return nil, err
	}

	metrics.ReportsBuilt.WithLabelValues("status").Inc()

	return DeriveStatus(paid, year, s.now()), nil
}

// Matrix builds the resident by month grid of approved payments for year.
func (s *Service) Matrix(ctx context.Context, year int) (*Matrix, error) {
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("%w: year %d out of range", ledger.ErrInvalidWindow, year)
	}

	residents, err := s.repo.ListResidents(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing residents: %w", ledger.ErrQueryFailed, err)
	}

	approved, err := s.repo.ApprovedMonths(ctx, nil, year)
	if err != nil {
		return nil, fmt.Errorf("%w: querying approved months: %w", ledger.ErrQueryFailed, err)
	}

	metrics.ReportsBuilt.WithLabelValues("matrix").Inc()

	return BuildMatrix(year, residents, approved), nil
}
