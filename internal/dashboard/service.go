// Package dashboard composes the landing page figures from the domain services.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agungalvian/wjg/internal/ledger"
	"github.com/agungalvian/wjg/internal/payment"
	"github.com/agungalvian/wjg/internal/user"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=dashboard
type Ledger interface {
	Balances(ctx context.Context) (ledger.Balances, error)
	YearSeries(ctx context.Context, year int) (*ledger.YearSeries, error)
}

type Payments interface {
	CountPending(ctx context.Context) (int, error)
	ResidentStatus(ctx context.Context, userID uuid.UUID, year int) (*payment.ResidentStatus, error)
}

type Residents interface {
	CountResidents(ctx context.Context) (int, error)
}

// Viewer is the user the dashboard is rendered for.
type Viewer struct {
	ID   uuid.UUID
	Role user.Role
}

type Summary struct {
	Year            int                     `json:"year"`
	Residents       int                     `json:"residents"`
	PendingPayments int                     `json:"pending_payments"`
	Balances        ledger.Balances         `json:"balances"`
	Total           int64                   `json:"total"`
	Series          *ledger.YearSeries      `json:"series"`
	Status          *payment.ResidentStatus `json:"status,omitempty"`
}

type Service struct {
	ledger    Ledger
	payments  Payments
	residents Residents
	now       func() time.Time
}

func NewService(l Ledger, p Payments, r Residents, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{ledger: l, payments: p, residents: r, now: now}
}

// Summary gathers the dashboard of the current year. Residents see their own
// dues status; the pending count is only shown to administrators.
func (s *Service) Summary(ctx context.Context, viewer Viewer) (*Summary, error) {
	out := &Summary{Year: s.now().Year()}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.residents.CountResidents(gctx)
		if err != nil {
			return fmt.Errorf("counting residents: %w", err)
		}

		out.Residents = n

		return nil
	})

	if viewer.Role.CanRead() {
		g.Go(func() error {
			n, err := s.payments.CountPending(gctx)
			if err != nil {
				return fmt.Errorf("counting pending payments: %w", err)
			}

			out.PendingPayments = n

			return nil
		})
	}

	g.Go(func() error {
		b, err := s.ledger.Balances(gctx)
		if err != nil {
			return fmt.Errorf("computing balances: %w", err)
		}

		out.Balances = b
		out.Total = b.Total()

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	series, err := s.ledger.YearSeries(ctx, out.Year)
	if err != nil {
		return nil, fmt.Errorf("building series: %w", err)
	}

	out.Series = series

	if viewer.Role == user.RoleResident {
		status, err := s.payments.ResidentStatus(ctx, viewer.ID, out.Year)
		if err != nil {
			return nil, fmt.Errorf("deriving resident status: %w", err)
		}

		out.Status = status
	}

	return out, nil
}
