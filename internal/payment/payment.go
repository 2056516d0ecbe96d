package payment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agungalvian/wjg/internal/ledger"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus reads a status filter; empty means pending.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case "":
		return StatusPending, nil
	case StatusPending, StatusApproved, StatusRejected:
		return st, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Breakdown splits a payment amount across the funds. Count is the number of
// months covered.
type Breakdown struct {
	Housing int64 `json:"housing"`
	Social  int64 `json:"social"`
	RT      int64 `json:"rt"`
	Count   int   `json:"count"`
}

func (b Breakdown) Sum() int64 {
	return b.Housing + b.Social + b.RT
}

// Check verifies the breakdown against the payment amount.
func (b Breakdown) Check(amount int64) error {
	if b.Housing < 0 || b.Social < 0 || b.RT < 0 {
		return fmt.Errorf("%w: negative component", ErrMalformedBreakdown)
	}

	if b.Sum() != amount {
		return fmt.Errorf("%w: components sum to %d, amount is %d", ErrMalformedBreakdown, b.Sum(), amount)
	}

	return nil
}

type Payment struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      int64
	Months      []string
	Breakdown   Breakdown
	Status      Status
	ProofImage  string
	PaymentDate time.Time
	Note        string
	SubmittedAt time.Time
	ReviewedAt  *time.Time

	// Loaded from the submitting user for listings.
	ResidentName string
	HouseNumber  string
}

// Mutations returns one incoming dues mutation per non-zero fund of the breakdown,
// all linked to the payment.
func (p *Payment) Mutations() []*ledger.Mutation {
	date := p.PaymentDate
	if date.IsZero() {
		date = p.SubmittedAt
	}

	id := p.ID
	parts := []struct {
		fund   ledger.Fund
		amount int64
	}{
		{ledger.FundHousing, p.Breakdown.Housing},
		{ledger.FundSocial, p.Breakdown.Social},
		{ledger.FundRT, p.Breakdown.RT},
	}

	var ms []*ledger.Mutation

	for _, part := range parts {
		if part.amount <= 0 {
			continue
		}

		ms = append(ms, &ledger.Mutation{
			Direction:   ledger.DirectionIn,
			Amount:      part.amount,
			Description: "Iuran " + FormatMonths(p.Months),
			Date:        date,
			Category:    ledger.CategoryDues,
			Fund:        part.fund,
			ProofImage:  p.ProofImage,
			PaymentID:   &id,
		})
	}

	return ms
}

// ListFilter restricts a payment listing. Nil fields are unset.
type ListFilter struct {
	Status *Status
	UserID *uuid.UUID
}

// Resident is the part of a user the matrix needs.
type Resident struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	HouseNumber string    `json:"house_number"`
}

// PaidMonths is the covered-months field of one approved payment.
type PaidMonths struct {
	UserID uuid.UUID
	Months string
}
