package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Fund identifies one of the independently balanced cash pools.
type Fund string

const (
	FundHousing Fund = "housing"
	FundSocial  Fund = "social"
	FundRT      Fund = "rt"

	// FundNone marks a general mutation that is not tied to a tracked fund.
	FundNone Fund = ""
	// FundMultiple labels a display row that collapses several funds of one payment.
	FundMultiple Fund = "multiple"
)

// Funds lists the tracked funds in display order.
var Funds = [...]Fund{FundHousing, FundSocial, FundRT}

// Tracked reports whether f is one of the three balanced funds.
func (f Fund) Tracked() bool {
	switch f {
	case FundHousing, FundSocial, FundRT:
		return true
	}

	return false
}

// Label returns the Indonesian name used on reports.
func (f Fund) Label() string {
	switch f {
	case FundHousing:
		return "Kas Perumahan"
	case FundSocial:
		return "Dana Sosial"
	case FundRT:
		return "Kas RT"
	case FundMultiple:
		return "Gabungan"
	}

	return "-"
}

// ParseFund accepts a fund code or its report label, case-insensitively.
// Empty and "-" read as FundNone.
func ParseFund(s string) (Fund, bool) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case "", "-":
		return FundNone, true
	case "housing", "perumahan", "kas perumahan":
		return FundHousing, true
	case "social", "sosial", "dana sosial":
		return FundSocial, true
	case "rt", "kas rt":
		return FundRT, true
	}

	return FundNone, false
}

// Direction tells whether a mutation adds to or takes from a fund.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// CategoryDues is the category of mutations materialized from approved payments.
const CategoryDues = "iuran"

// Mutation is one recorded cash movement. Amount is in whole rupiah.
type Mutation struct {
	ID          uuid.UUID
	Direction   Direction
	Amount      int64
	Description string
	Date        time.Time
	Category    string
	Fund        Fund
	ProofImage  string
	PaymentID   *uuid.UUID
	CreatedAt   time.Time

	// ResidentName is loaded via the linked payment, empty for manual entries.
	ResidentName string
}

// Signed returns the amount with the sign of its direction.
func (m *Mutation) Signed() int64 {
	if m.Direction == DirectionOut {
		return -m.Amount
	}

	return m.Amount
}

// countable reports whether the mutation can take part in fund math.
func (m *Mutation) countable() bool {
	return m.Fund.Tracked() && m.Direction.Valid() && m.Amount >= 0
}

// Malformed reports a mutation that names a fund but cannot be counted.
func (m *Mutation) Malformed() bool {
	return m.Fund != FundNone && !m.countable()
}

// MutationFilter restricts a mutation query. Zero fields are unset.
type MutationFilter struct {
	Before *time.Time
	Year   int
	Month  int
}

// CreateParams describes a mutation to be recorded.
type CreateParams struct {
	Direction   Direction
	Amount      int64
	Description string
	Date        time.Time
	Category    string
	Fund        Fund
	ProofImage  string
	PaymentID   *uuid.UUID
}

// Validate checks the params against the mutation invariants.
func (p CreateParams) Validate() error {
	if !p.Direction.Valid() {
		return invalidMutation("unknown direction %q", p.Direction)
	}

	if p.Amount < 0 {
		return invalidMutation("negative amount %d", p.Amount)
	}

	if p.Fund != FundNone && !p.Fund.Tracked() {
		return invalidMutation("unknown fund %q", p.Fund)
	}

	if p.Date.IsZero() {
		return invalidMutation("missing date")
	}

	return nil
}

func (p CreateParams) mutation() *Mutation {
	return &Mutation{
		Direction:   p.Direction,
		Amount:      p.Amount,
		Description: p.Description,
		Date:        p.Date,
		Category:    p.Category,
		Fund:        p.Fund,
		ProofImage:  p.ProofImage,
		PaymentID:   p.PaymentID,
	}
}
