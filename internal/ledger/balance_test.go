package ledger_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agungalvian/wjg/internal/ledger"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mutation(f ledger.Fund, dir ledger.Direction, amount int64, date time.Time) *ledger.Mutation {
	return &ledger.Mutation{Fund: f, Direction: dir, Amount: amount, Date: date}
}

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name      string
		mutations []*ledger.Mutation
		want      ledger.Balances
	}{
		{
			name: "Empty",
			want: ledger.Balances{},
		},
		{
			name: "SignedPerFund",
			mutations: []*ledger.Mutation{
				mutation(ledger.FundHousing, ledger.DirectionIn, 50000, day(2024, 1, 5)),
				mutation(ledger.FundHousing, ledger.DirectionOut, 20000, day(2024, 2, 10)),
				mutation(ledger.FundSocial, ledger.DirectionIn, 10000, day(2024, 1, 5)),
				mutation(ledger.FundRT, ledger.DirectionOut, 5000, day(2024, 3, 1)),
			},
			want: ledger.Balances{Housing: 30000, Social: 10000, RT: -5000},
		},
		{
			name: "SkipsUntrackedAndMalformed",
			mutations: []*ledger.Mutation{
				mutation(ledger.FundNone, ledger.DirectionIn, 99000, day(2024, 1, 1)),
				mutation("parkir", ledger.DirectionIn, 1000, day(2024, 1, 1)),
				mutation(ledger.FundSocial, "sideways", 1000, day(2024, 1, 1)),
				mutation(ledger.FundRT, ledger.DirectionIn, -1000, day(2024, 1, 1)),
				nil,
				mutation(ledger.FundRT, ledger.DirectionIn, 7000, day(2024, 1, 1)),
			},
			want: ledger.Balances{RT: 7000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.ComputeBalances(tt.mutations)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Housing+tt.want.Social+tt.want.RT, got.Total())
		})
	}
}

func TestComputeBalances_OrderIndependent(t *testing.T) {
	funds := []ledger.Fund{ledger.FundHousing, ledger.FundSocial, ledger.FundRT, ledger.FundNone}
	rng := rand.New(rand.NewPCG(1, 2))

	ms := make([]*ledger.Mutation, 200)
	for i := range ms {
		dir := ledger.DirectionIn
		if rng.IntN(2) == 0 {
			dir = ledger.DirectionOut
		}

		ms[i] = mutation(funds[rng.IntN(len(funds))], dir, rng.Int64N(1_000_000), day(2024, time.Month(1+rng.IntN(12)), 1))
	}

	want := ledger.ComputeBalances(ms)

	for range 20 {
		rng.Shuffle(len(ms), func(i, j int) { ms[i], ms[j] = ms[j], ms[i] })
		assert.Equal(t, want, ledger.ComputeBalances(ms))
	}
}

func TestBalances_Of(t *testing.T) {
	b := ledger.Balances{Housing: 1, Social: 2, RT: 3}

	assert.Equal(t, int64(1), b.Of(ledger.FundHousing))
	assert.Equal(t, int64(2), b.Of(ledger.FundSocial))
	assert.Equal(t, int64(3), b.Of(ledger.FundRT))
	assert.Equal(t, int64(0), b.Of(ledger.FundMultiple))
	assert.Equal(t, int64(6), b.Total())
}

func TestParseFund(t *testing.T) {
	tests := []struct {
		in     string
		want   ledger.Fund
		wantOK bool
	}{
		{in: "housing", want: ledger.FundHousing, wantOK: true},
		{in: "Kas Perumahan", want: ledger.FundHousing, wantOK: true},
		{in: " Dana Sosial ", want: ledger.FundSocial, wantOK: true},
		{in: "KAS RT", want: ledger.FundRT, wantOK: true},
		{in: "-", want: ledger.FundNone, wantOK: true},
		{in: "", want: ledger.FundNone, wantOK: true},
		{in: "Gabungan", want: ledger.FundNone},
	}

	for _, tt := range tests {
		got, ok := ledger.ParseFund(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, f := range ledger.Funds {
		got, ok := ledger.ParseFund(f.Label())
		assert.True(t, ok)
		assert.Equal(t, f, got)
	}
}
