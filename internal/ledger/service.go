package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/agungalvian/wjg/internal/metrics"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	QueryMutations(ctx context.Context, filter MutationFilter) ([]*Mutation, error)
	CreateMutation(ctx context.Context, mutation *Mutation) error

	BeginBatch(ctx context.Context) (BatchTx, error)
}

// BatchTx writes several mutations atomically.
type BatchTx interface {
	CreateMutations(ctx context.Context, ms []*Mutation) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds the ledger service. now supplies the clock used to decide
// which months of the current year have happened.
func NewService(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{repo: repo, now: now}
}

// Balances returns the current balance of every fund over the whole history.
func (s *Service) Balances(ctx context.Context) (Balances, error) {
	ms, err := s.repo.QueryMutations(ctx, MutationFilter{})
	if err != nil {
		return Balances{}, queryFailed("querying mutations", err)
	}

	s.logMalformed(ctx, ms)
	metrics.ReportsBuilt.WithLabelValues("balances").Inc()

	return ComputeBalances(ms), nil
}

// Opening returns the balances accumulated strictly before the window starts.
// Windows without a lower boundary open at zero.
func (s *Service) Opening(ctx context.Context, w Window) (Balances, error) {
	start, ok := w.OpeningBoundary()
	if !ok {
		return Balances{}, nil
	}

	ms, err := s.repo.QueryMutations(ctx, MutationFilter{Before: &start})
	if err != nil {
		return Balances{}, queryFailed("querying opening balance", err)
	}

	s.logMalformed(ctx, ms)

	return ComputeBalances(ms), nil
}

// PeriodReport computes opening balances, in-window totals and the grouped entries.
func (s *Service) PeriodReport(ctx context.Context, w Window) (*PeriodReport, error) {
	w, err := NewWindow(w.Month, w.Year)
	if err != nil {
		return nil, err
	}

	opening, err := s.Opening(ctx, w)
	if err != nil {
		return nil, err
	}

	ms, err := s.repo.QueryMutations(ctx, w.Filter())
	if err != nil {
		return nil, queryFailed("querying window mutations", err)
	}

	report := BuildPeriodReport(w, opening, ms)
	if report.Skipped > 0 {
		s.logMalformed(ctx, ms)
	}

	metrics.ReportsBuilt.WithLabelValues("period").Inc()

	return report, nil
}

// YearSeries builds the cumulative month-end balances of year.
func (s *Service) YearSeries(ctx context.Context, year int) (*YearSeries, error) {
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("%w: year %d out of range", ErrInvalidWindow, year)
	}

	opening, err := s.Opening(ctx, Window{Year: year})
	if err != nil {
		return nil, err
	}

	ms, err := s.repo.QueryMutations(ctx, MutationFilter{Year: year})
	if err != nil {
		return nil, queryFailed("querying monthly mutations", err)
	}

	s.logMalformed(ctx, ms)
	metrics.ReportsBuilt.WithLabelValues("series").Inc()

	return BuildYearSeries(year, s.now(), opening, ms), nil
}

// ListMutations returns every mutation, newest first, grouped by payment.
func (s *Service) ListMutations(ctx context.Context) ([]*Entry, error) {
	ms, err := s.repo.QueryMutations(ctx, MutationFilter{})
	if err != nil {
		return nil, queryFailed("listing mutations", err)
	}

	return GroupByPayment(ms), nil
}

// Record stores a single mutation entered by an administrator.
func (s *Service) Record(ctx context.Context, params CreateParams) (*Mutation, error) {
	// Stored dates are bucketed by their UTC calendar day, so today's local date is
	// pinned to UTC midnight.
	if params.Date.IsZero() {
		y, m, d := s.now().Date()
		params.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	m := params.mutation()
	if err := s.repo.CreateMutation(ctx, m); err != nil {
		return nil, queryFailed("creating mutation", err)
	}

	metrics.MutationsRecorded.WithLabelValues("manual").Inc()

	return m, nil
}

// ImportBatch stores all mutations or none of them.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) ([]*Mutation, error) {
	if len(params) == 0 {
		return nil, nil
	}

	ms := make([]*Mutation, len(params))
	for i, p := range params {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		ms[i] = p.mutation()
	}

	btx, err := s.repo.BeginBatch(ctx)
	if err != nil {
		return nil, queryFailed("begin batch", err)
	}
	defer btx.Rollback()

	if err := btx.CreateMutations(ctx, ms); err != nil {
		return nil, queryFailed("create mutations", err)
	}

	if err := btx.Commit(); err != nil {
		return nil, queryFailed("commit batch", err)
	}

	metrics.MutationsRecorded.WithLabelValues("import").Add(float64(len(ms)))

	return ms, nil
}

func (s *Service) logMalformed(ctx context.Context, ms []*Mutation) {
	for _, m := range ms {
		if m == nil || !m.Malformed() {
			continue
		}

		metrics.MalformedSkipped.Inc()
		slog.WarnContext(ctx, "skipping malformed mutation",
			"id", m.ID,
			"fund", m.Fund,
			"direction", m.Direction,
			"amount", m.Amount,
		)
	}
}
