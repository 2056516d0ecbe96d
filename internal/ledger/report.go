package ledger

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// FundSummary is one row of a period report.
type FundSummary struct {
	Opening int64 `json:"opening"`
	In      int64 `json:"in"`
	Out     int64 `json:"out"`
	Balance int64 `json:"balance"`
}

// Summary holds the per-fund rows and their total.
type Summary struct {
	Housing FundSummary `json:"housing"`
	Social  FundSummary `json:"social"`
	RT      FundSummary `json:"rt"`
	Total   FundSummary `json:"total"`
}

// Of returns the row for f. Any untracked fund yields the total row.
func (s Summary) Of(f Fund) FundSummary {
	switch f {
	case FundHousing:
		return s.Housing
	case FundSocial:
		return s.Social
	case FundRT:
		return s.RT
	}

	return s.Total
}

func (s *Summary) row(f Fund) *FundSummary {
	switch f {
	case FundHousing:
		return &s.Housing
	case FundSocial:
		return &s.Social
	case FundRT:
		return &s.RT
	}

	return nil
}

// Entry is a display row. Mutations of one payment collapse into a single entry.
type Entry struct {
	ID           uuid.UUID
	Direction    Direction
	Amount       int64
	Description  string
	Date         time.Time
	Category     string
	Fund         Fund
	PaymentID    *uuid.UUID
	ResidentName string
	ProofImage   string
	// Members counts the mutations folded into this entry.
	Members int
}

// Aggregated reports whether the entry folds several mutations.
func (e *Entry) Aggregated() bool {
	return e.Members > 1
}

// PeriodReport is the result of a window query with carried-forward opening balances.
type PeriodReport struct {
	Window  Window
	Summary Summary
	Entries []*Entry
	// Skipped counts window mutations left out of fund math as malformed.
	Skipped int
}

// BuildPeriodReport combines the opening balances with the mutations inside the window.
// Every tracked fund gets balance = opening + in - out; the total row sums the three.
func BuildPeriodReport(w Window, opening Balances, windowMutations []*Mutation) *PeriodReport {
	r := &PeriodReport{Window: w}

	for _, f := range Funds {
		r.Summary.row(f).Opening = opening.Of(f)
	}

	for _, m := range windowMutations {
		if m == nil {
			continue
		}

		if !m.countable() {
			if m.Malformed() {
				r.Skipped++
			}

			continue
		}

		row := r.Summary.row(m.Fund)
		if m.Direction == DirectionIn {
			row.In += m.Amount
		} else {
			row.Out += m.Amount
		}
	}

	for _, f := range Funds {
		row := r.Summary.row(f)
		row.Balance = row.Opening + row.In - row.Out

		r.Summary.Total.Opening += row.Opening
		r.Summary.Total.In += row.In
		r.Summary.Total.Out += row.Out
		r.Summary.Total.Balance += row.Balance
	}

	r.Entries = GroupByPayment(windowMutations)

	return r
}

// GroupByPayment orders mutations newest first and folds those sharing a payment
// into one entry placed where the first member was met. A folded entry carries the
// summed amount and FundMultiple. Mutations without a payment pass through.
func GroupByPayment(mutations []*Mutation) []*Entry {
	sorted := make([]*Mutation, 0, len(mutations))
	for _, m := range mutations {
		if m != nil {
			sorted = append(sorted, m)
		}
	}

	slices.SortStableFunc(sorted, func(a, b *Mutation) int {
		return b.Date.Compare(a.Date)
	})

	entries := make([]*Entry, 0, len(sorted))
	groups := make(map[uuid.UUID]*Entry)

	for _, m := range sorted {
		if m.PaymentID != nil {
			if e, ok := groups[*m.PaymentID]; ok {
				e.Amount += m.Amount
				e.Members++
				e.Fund = FundMultiple

				continue
			}
		}

		e := &Entry{
			ID:           m.ID,
			Direction:    m.Direction,
			Amount:       m.Amount,
			Description:  m.Description,
			Date:         m.Date,
			Category:     m.Category,
			Fund:         m.Fund,
			PaymentID:    m.PaymentID,
			ResidentName: m.ResidentName,
			ProofImage:   m.ProofImage,
			Members:      1,
		}
		entries = append(entries, e)

		if m.PaymentID != nil {
			groups[*m.PaymentID] = e
		}
	}

	return entries
}
