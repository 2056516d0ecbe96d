package payment

import "time"

const (
	LabelArrears = "MENUNGGAK"
	LabelUnpaid  = "BELUM BAYAR"
	LabelPaid    = "LUNAS"
)

type ResidentStatus struct {
	Year int `json:"year"`
	// ReferenceMonth is the YYYY-MM the labels are measured against, empty when
	// nothing of year is due yet.
	ReferenceMonth   string   `json:"reference_month,omitempty"`
	PaidCurrentMonth bool     `json:"paid_current_month"`
	HasArrears       bool     `json:"has_arrears"`
	Labels           []string `json:"labels"`
	Paid             MonthSet `json:"paid_months"`
}

// DeriveStatus labels a resident's dues for year. The reference month is now's
// month in the current year and December for past years; a future year has
// nothing due. Arrears are unpaid months from January up to, not including, the
// reference month.
func DeriveStatus(paid MonthSet, year int, now time.Time) *ResidentStatus {
	s := &ResidentStatus{Year: year, Paid: paid}

	ref := 0
	switch {
	case year == now.Year():
		ref = int(now.Month())
	case year < now.Year():
		ref = 12
	}

	if ref == 0 {
		s.Labels = []string{LabelPaid}
		return s
	}

	s.ReferenceMonth = MonthKey(year, ref)
	s.PaidCurrentMonth = paid.Has(s.ReferenceMonth)

	for m := 1; m < ref; m++ {
		if !paid.Has(MonthKey(year, m)) {
			s.HasArrears = true
			break
		}
	}

	if s.HasArrears {
		s.Labels = append(s.Labels, LabelArrears)
	}

	if !s.PaidCurrentMonth {
		s.Labels = append(s.Labels, LabelUnpaid)
	}

	if len(s.Labels) == 0 {
		s.Labels = []string{LabelPaid}
	}

	return s
}
