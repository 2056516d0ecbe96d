package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agungalvian/wjg/internal/ledger"
)

func values(s [12]*int64) []any {
	out := make([]any, 12)
	for i, v := range s {
		if v != nil {
			out[i] = *v
		}
	}

	return out
}

func TestBuildYearSeries_CurrentYear(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	ms := []*ledger.Mutation{
		mutation(ledger.FundHousing, ledger.DirectionIn, 50000, day(2024, 1, 5)),
		mutation(ledger.FundHousing, ledger.DirectionOut, 20000, day(2024, 2, 10)),
	}

	s := ledger.BuildYearSeries(2024, now, ledger.Balances{}, ms)

	assert.Equal(t, []any{int64(50000), int64(30000), int64(30000), nil, nil, nil, nil, nil, nil, nil, nil, nil}, values(s.Housing))
	assert.Equal(t, []any{int64(0), int64(0), int64(0), nil, nil, nil, nil, nil, nil, nil, nil, nil}, values(s.Social))
	assert.Equal(t, 2, s.LastMonth())
	assert.Equal(t, "Jan", s.Labels[0])
	assert.Equal(t, "Des", s.Labels[11])
}

func TestBuildYearSeries_PastYear(t *testing.T) {
	now := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	opening := ledger.Balances{Housing: 1000, Social: 200, RT: 30}

	ms := []*ledger.Mutation{
		mutation(ledger.FundHousing, ledger.DirectionIn, 500, day(2024, 1, 31)),
		mutation(ledger.FundSocial, ledger.DirectionOut, 100, day(2024, 6, 1)),
		mutation(ledger.FundRT, ledger.DirectionIn, 70, day(2024, 12, 31)),
		mutation(ledger.FundRT, ledger.DirectionIn, 9999, day(2023, 12, 31)),
	}

	s := ledger.BuildYearSeries(2024, now, opening, ms)

	require.Equal(t, 11, s.LastMonth())

	for i := range 12 {
		require.NotNil(t, s.Housing[i])
		require.NotNil(t, s.Social[i])
		require.NotNil(t, s.RT[i])
	}

	assert.Equal(t, int64(1500), *s.Housing[0])
	assert.Equal(t, int64(200), *s.Social[4])
	assert.Equal(t, int64(100), *s.Social[5])
	assert.Equal(t, int64(30), *s.RT[10])
	assert.Equal(t, int64(100), *s.RT[11])

	deltas := ledger.MonthlyDeltas(2024, ms)

	for _, f := range ledger.Funds {
		var sum int64
		for _, d := range deltas {
			sum += d.Of(f)
		}

		series := s.Of(f)
		assert.Equal(t, *series[11]-opening.Of(f), sum, f)
	}
}

func TestMonthlyDeltas_MonthSlots(t *testing.T) {
	ms := []*ledger.Mutation{
		mutation(ledger.FundSocial, ledger.DirectionIn, 1, day(2024, 1, 1)),
		mutation(ledger.FundSocial, ledger.DirectionIn, 12, day(2024, 12, 31)),
	}

	d := ledger.MonthlyDeltas(2024, ms)

	assert.Equal(t, int64(1), d[0].Social)
	assert.Equal(t, int64(12), d[11].Social)

	for i := 1; i < 11; i++ {
		assert.Zero(t, d[i].Social)
	}
}

func TestBuildYearSeries_FutureYear(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	s := ledger.BuildYearSeries(2030, now, ledger.Balances{Housing: 5}, nil)

	require.NotNil(t, s.Housing[11])
	assert.Equal(t, int64(5), *s.Housing[11])
}
