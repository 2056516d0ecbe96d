package ledger_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agungalvian/wjg/internal/ledger"
)

func TestBuildPeriodReport_FirstYear(t *testing.T) {
	w := ledger.Window{Year: 2023}
	ms := []*ledger.Mutation{
		mutation(ledger.FundRT, ledger.DirectionIn, 10000, day(2023, 5, 1)),
	}

	r := ledger.BuildPeriodReport(w, ledger.Balances{}, ms)

	assert.Equal(t, ledger.FundSummary{Opening: 0, In: 10000, Out: 0, Balance: 10000}, r.Summary.RT)
	assert.Equal(t, ledger.FundSummary{}, r.Summary.Housing)
	assert.Equal(t, ledger.FundSummary{}, r.Summary.Social)
	assert.Equal(t, int64(10000), r.Summary.Total.Balance)
	assert.Len(t, r.Entries, 1)
	assert.Zero(t, r.Skipped)
}

func TestBuildPeriodReport_CarriesOpening(t *testing.T) {
	opening := ledger.Balances{Housing: 100000, Social: 5000, RT: -2000}
	ms := []*ledger.Mutation{
		mutation(ledger.FundHousing, ledger.DirectionIn, 50000, day(2024, 3, 2)),
		mutation(ledger.FundHousing, ledger.DirectionOut, 70000, day(2024, 3, 9)),
		mutation(ledger.FundSocial, ledger.DirectionOut, 1000, day(2024, 3, 12)),
		mutation(ledger.FundNone, ledger.DirectionOut, 3000, day(2024, 3, 13)),
		mutation("kebersihan", ledger.DirectionIn, 3000, day(2024, 3, 14)),
	}

	r := ledger.BuildPeriodReport(ledger.Window{Month: 3, Year: 2024}, opening, ms)

	for _, f := range ledger.Funds {
		row := r.Summary.Of(f)
		assert.Equal(t, opening.Of(f), row.Opening, f)
		assert.Equal(t, row.Opening+row.In-row.Out, row.Balance, f)
	}

	assert.Equal(t, int64(80000), r.Summary.Housing.Balance)
	assert.Equal(t, int64(4000), r.Summary.Social.Balance)
	assert.Equal(t, int64(-2000), r.Summary.RT.Balance)

	total := r.Summary.Total
	assert.Equal(t, opening.Total(), total.Opening)
	assert.Equal(t, int64(50000), total.In)
	assert.Equal(t, int64(71000), total.Out)
	assert.Equal(t, int64(82000), total.Balance)

	assert.Equal(t, 1, r.Skipped)
	assert.Len(t, r.Entries, 5, "listings keep untracked and malformed rows")
}

func TestBuildPeriodReport_BalanceIdentity(t *testing.T) {
	windows := []ledger.Window{{}, {Year: 2024}, {Month: 2}, {Month: 2, Year: 2024}}
	opening := ledger.Balances{Housing: 12, Social: -7, RT: 3}

	ms := []*ledger.Mutation{
		mutation(ledger.FundHousing, ledger.DirectionIn, 900, day(2024, 2, 1)),
		mutation(ledger.FundSocial, ledger.DirectionIn, 400, day(2024, 2, 3)),
		mutation(ledger.FundSocial, ledger.DirectionOut, 50, day(2024, 2, 4)),
		mutation(ledger.FundRT, ledger.DirectionOut, 30, day(2024, 2, 5)),
	}

	for _, w := range windows {
		r := ledger.BuildPeriodReport(w, opening, ms)
		deltas := ledger.ComputeBalances(ms)

		for _, f := range ledger.Funds {
			assert.Equal(t, opening.Of(f)+deltas.Of(f), r.Summary.Of(f).Balance, "%v %s", w, f)
		}
	}
}

func TestGroupByPayment(t *testing.T) {
	paymentA := uuid.New()
	paymentB := uuid.New()

	linked := func(f ledger.Fund, amount int64, date time.Time, pid uuid.UUID) *ledger.Mutation {
		m := mutation(f, ledger.DirectionIn, amount, date)
		m.ID = uuid.New()
		m.PaymentID = &pid

		return m
	}

	manual := mutation(ledger.FundHousing, ledger.DirectionOut, 15000, day(2024, 1, 20))
	manual.ID = uuid.New()

	ms := []*ledger.Mutation{
		linked(ledger.FundHousing, 50000, day(2024, 1, 10), paymentA),
		manual,
		linked(ledger.FundSocial, 10000, day(2024, 1, 10), paymentA),
		linked(ledger.FundRT, 10000, day(2024, 1, 10), paymentA),
		linked(ledger.FundSocial, 10000, day(2024, 1, 25), paymentB),
	}

	entries := ledger.GroupByPayment(ms)
	require.Len(t, entries, 3)

	assert.Equal(t, paymentB, *entries[0].PaymentID)
	assert.Equal(t, ledger.FundSocial, entries[0].Fund)
	assert.False(t, entries[0].Aggregated())

	assert.Equal(t, manual.ID, entries[1].ID)
	assert.Nil(t, entries[1].PaymentID)

	assert.Equal(t, paymentA, *entries[2].PaymentID)
	assert.Equal(t, ledger.FundMultiple, entries[2].Fund)
	assert.Equal(t, int64(70000), entries[2].Amount)
	assert.Equal(t, 3, entries[2].Members)
	assert.True(t, entries[2].Aggregated())
	assert.Equal(t, ms[0].ID, entries[2].ID, "group sits where its first member was met")

	var raw, grouped int64
	for _, m := range ms {
		raw += m.Amount
	}

	for _, e := range entries {
		grouped += e.Amount
	}

	assert.Equal(t, raw, grouped)
}

func TestGroupByPayment_Empty(t *testing.T) {
	assert.Empty(t, ledger.GroupByPayment(nil))
}
