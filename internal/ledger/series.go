package ledger

import "time"

// MonthLabels are the chart labels for January through December.
var MonthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agt", "Sep", "Okt", "Nov", "Des"}

// YearSeries holds cumulative month-end balances per fund. A nil slot means the
// month has not happened yet.
type YearSeries struct {
	Year    int        `json:"year"`
	Housing [12]*int64 `json:"housing"`
	Social  [12]*int64 `json:"social"`
	RT      [12]*int64 `json:"rt"`
	Labels  [12]string `json:"labels"`
}

// Of returns the series of a tracked fund.
func (s *YearSeries) Of(f Fund) [12]*int64 {
	switch f {
	case FundSocial:
		return s.Social
	case FundRT:
		return s.RT
	}

	return s.Housing
}

// LastMonth returns the index of the last populated month, or -1.
func (s *YearSeries) LastMonth() int {
	for i := 11; i >= 0; i-- {
		if s.Housing[i] != nil {
			return i
		}
	}

	return -1
}

// MonthlyDeltas buckets the signed amounts of mutations dated in year into
// zero-based month slots by their UTC calendar date. Mutations from other years
// or not countable are ignored.
func MonthlyDeltas(year int, mutations []*Mutation) [12]Balances {
	var deltas [12]Balances

	for _, m := range mutations {
		if m == nil || !m.countable() {
			continue
		}

		d := m.Date.UTC()
		if d.Year() != year {
			continue
		}

		deltas[int(d.Month())-1].add(m.Fund, m.Signed())
	}

	return deltas
}

// BuildYearSeries walks January..December from the opening balance at Jan 1 of year.
// When year is the year of now, months after now's month are left empty; any other
// year is fully populated.
func BuildYearSeries(year int, now time.Time, opening Balances, yearMutations []*Mutation) *YearSeries {
	s := &YearSeries{Year: year, Labels: MonthLabels}

	last := 11
	if year == now.Year() {
		last = int(now.Month()) - 1
	}

	deltas := MonthlyDeltas(year, yearMutations)
	running := opening

	for i := range 12 {
		running.Housing += deltas[i].Housing
		running.Social += deltas[i].Social
		running.RT += deltas[i].RT

		if i > last {
			continue
		}

		housing, social, rt := running.Housing, running.Social, running.RT
		s.Housing[i] = &housing
		s.Social[i] = &social
		s.RT[i] = &rt
	}

	return s
}
