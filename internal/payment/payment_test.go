package payment_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agungalvian/wjg/internal/ledger"
	"github.com/agungalvian/wjg/internal/payment"
	"github.com/agungalvian/wjg/internal/settings"
)

func TestQuote(t *testing.T) {
	dues := settings.Dues{Housing: 50000, Social: 10000, RT: 10000}

	amount, b := payment.Quote(dues, 3)

	assert.Equal(t, int64(210000), amount)
	assert.Equal(t, payment.Breakdown{Housing: 150000, Social: 30000, RT: 30000, Count: 3}, b)
	assert.NoError(t, b.Check(amount))
}

func TestBreakdown_Check(t *testing.T) {
	tests := []struct {
		name    string
		b       payment.Breakdown
		amount  int64
		wantErr bool
	}{
		{name: "Matches", b: payment.Breakdown{Housing: 50000, Social: 10000, RT: 10000, Count: 1}, amount: 70000},
		{name: "SumMismatch", b: payment.Breakdown{Housing: 50000, Count: 1}, amount: 70000, wantErr: true},
		{name: "NegativeComponent", b: payment.Breakdown{Housing: 80000, Social: -10000, Count: 1}, amount: 70000, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.b.Check(tt.amount)
			if tt.wantErr {
				assert.ErrorIs(t, err, payment.ErrMalformedBreakdown)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestPayment_Mutations(t *testing.T) {
	p := &payment.Payment{
		ID:          uuid.New(),
		Amount:      70000,
		Months:      []string{"2024-01"},
		Breakdown:   payment.Breakdown{Housing: 50000, Social: 10000, RT: 10000, Count: 1},
		ProofImage:  "bukti-01.jpg",
		PaymentDate: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
	}

	ms := p.Mutations()
	require.Len(t, ms, 3)

	var sum int64

	for _, m := range ms {
		assert.Equal(t, ledger.DirectionIn, m.Direction)
		assert.Equal(t, ledger.CategoryDues, m.Category)
		assert.Equal(t, "Iuran 2024-01", m.Description)
		assert.Equal(t, "bukti-01.jpg", m.ProofImage)
		assert.True(t, p.PaymentDate.Equal(m.Date))
		require.NotNil(t, m.PaymentID)
		assert.Equal(t, p.ID, *m.PaymentID)

		sum += m.Amount
	}

	assert.Equal(t, int64(70000), sum)
	assert.Equal(t, []ledger.Fund{ledger.FundHousing, ledger.FundSocial, ledger.FundRT},
		[]ledger.Fund{ms[0].Fund, ms[1].Fund, ms[2].Fund})
}

func TestPayment_MutationsSkipsZeroFunds(t *testing.T) {
	p := &payment.Payment{
		ID:          uuid.New(),
		Amount:      100000,
		Months:      []string{"2024-01", "2024-02"},
		Breakdown:   payment.Breakdown{Housing: 100000, Count: 2},
		SubmittedAt: time.Date(2024, 2, 3, 10, 0, 0, 0, time.UTC),
	}

	ms := p.Mutations()
	require.Len(t, ms, 1)
	assert.Equal(t, ledger.FundHousing, ms[0].Fund)
	assert.Equal(t, "Iuran 2024-01, 2024-02", ms[0].Description)
	assert.True(t, p.SubmittedAt.Equal(ms[0].Date), "falls back to submission time")
}

func TestParseStatus(t *testing.T) {
	st, err := payment.ParseStatus("")
	require.NoError(t, err)
	assert.Equal(t, payment.StatusPending, st)

	st, err = payment.ParseStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, payment.StatusApproved, st)

	_, err = payment.ParseStatus("paid")
	assert.ErrorIs(t, err, payment.ErrInvalidStatus)
}
