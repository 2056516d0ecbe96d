package payment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agungalvian/wjg/internal/payment"
)

func months(keys ...string) payment.MonthSet {
	set := make(payment.MonthSet)
	for _, k := range keys {
		set.Add(k)
	}

	return set
}

func TestDeriveStatus(t *testing.T) {
	march := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		paid payment.MonthSet
		year int
		now  time.Time
		want []string
	}{
		{name: "UpToDate", paid: months("2024-01", "2024-02", "2024-03"), year: 2024, now: march, want: []string{payment.LabelPaid}},
		{name: "CurrentUnpaid", paid: months("2024-01", "2024-02"), year: 2024, now: march, want: []string{payment.LabelUnpaid}},
		{name: "ArrearsOnly", paid: months("2024-02", "2024-03"), year: 2024, now: march, want: []string{payment.LabelArrears}},
		{name: "ArrearsAndUnpaid", paid: months(), year: 2024, now: march, want: []string{payment.LabelArrears, payment.LabelUnpaid}},
		{name: "JanuaryHasNoArrears", paid: months(), year: 2024, now: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), want: []string{payment.LabelUnpaid}},
		{name: "PastYearMeasuredAtDecember", paid: months("2023-01", "2023-12"), year: 2023, now: march, want: []string{payment.LabelArrears}},
		{name: "FutureYearNothingDue", paid: months(), year: 2025, now: march, want: []string{payment.LabelPaid}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := payment.DeriveStatus(tt.paid, tt.year, tt.now)
			assert.Equal(t, tt.want, got.Labels)
		})
	}
}

// Paid is emitted exactly when January through the current month are all covered.
func TestDeriveStatus_PaidIffAllMonthsCovered(t *testing.T) {
	for current := 1; current <= 12; current++ {
		now := time.Date(2024, time.Month(current), 15, 0, 0, 0, 0, time.UTC)

		// Every subset of the months up to current, encoded as a bitmask.
		for mask := 0; mask < 1<<current; mask++ {
			paid := make(payment.MonthSet)
			for m := 0; m < current; m++ {
				if mask&(1<<m) != 0 {
					paid.Add(payment.MonthKey(2024, m+1))
				}
			}

			paid.Add("2024-12")

			all := true
			for m := 1; m <= current; m++ {
				all = all && paid.Has(payment.MonthKey(2024, m))
			}

			got := payment.DeriveStatus(paid, 2024, now)
			isPaid := len(got.Labels) == 1 && got.Labels[0] == payment.LabelPaid

			if !assert.Equal(t, all, isPaid, "month %d mask %b", current, mask) {
				return
			}
		}
	}
}
