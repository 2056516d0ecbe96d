package payment

import "github.com/google/uuid"

// Matrix maps every resident to the months of one year they have paid for.
type Matrix struct {
	Year      int                    `json:"year"`
	Months    [12]string             `json:"months"`
	Residents []Resident             `json:"residents"`
	Paid      map[uuid.UUID]MonthSet `json:"paid"`
}

// IsPaid reports whether the resident has an approved payment covering month.
func (m *Matrix) IsPaid(residentID uuid.UUID, month string) bool {
	return m.Paid[residentID].Has(month)
}

// BuildMatrix splits the covered months of each approved payment and keeps those
// of year. Every resident gets an entry, paid or not.
func BuildMatrix(year int, residents []Resident, approved []PaidMonths) *Matrix {
	m := &Matrix{
		Year:      year,
		Residents: residents,
		Paid:      make(map[uuid.UUID]MonthSet, len(residents)),
	}

	for i := range 12 {
		m.Months[i] = MonthKey(year, i+1)
	}

	for _, r := range residents {
		m.Paid[r.ID] = make(MonthSet)
	}

	byUser := make(map[uuid.UUID][]string)
	for _, p := range approved {
		byUser[p.UserID] = append(byUser[p.UserID], p.Months)
	}

	for id, rows := range byUser {
		m.Paid[id] = CollectMonths(year, rows)
	}

	return m
}
