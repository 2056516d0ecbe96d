package payment

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

const monthLayout = "2006-01"

// ParseMonths splits a stored covered-months field such as "2024-01, 2024-02".
func ParseMonths(raw string) []string {
	var months []string

	for _, m := range strings.Split(raw, ",") {
		if m = strings.TrimSpace(m); m != "" {
			months = append(months, m)
		}
	}

	return months
}

// FormatMonths joins months the way they are stored.
func FormatMonths(months []string) string {
	return strings.Join(months, ", ")
}

// NormalizeMonths validates YYYY-MM entries and returns them sorted without duplicates.
func NormalizeMonths(months []string) ([]string, error) {
	set := make(MonthSet, len(months))

	for _, m := range months {
		m = strings.TrimSpace(m)
		if _, err := time.Parse(monthLayout, m); err != nil {
			return nil, fmt.Errorf("%w: %q is not YYYY-MM", ErrInvalidMonths, m)
		}

		set.Add(m)
	}

	if len(set) == 0 {
		return nil, fmt.Errorf("%w: at least one month is required", ErrInvalidMonths)
	}

	return set.Sorted(), nil
}

// MonthKey formats year and month (1..12) as YYYY-MM.
func MonthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// MonthSet is a set of YYYY-MM strings.
type MonthSet map[string]struct{}

func (s MonthSet) Add(month string) {
	s[month] = struct{}{}
}

func (s MonthSet) Has(month string) bool {
	_, ok := s[month]
	return ok
}

func (s MonthSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

func (s MonthSet) MarshalJSON() ([]byte, error) {
	months := s.Sorted()
	if months == nil {
		months = []string{}
	}

	return json.Marshal(months)
}

// CollectMonths merges the covered months of rows, keeping only months of year.
func CollectMonths(year int, rows []string) MonthSet {
	prefix := fmt.Sprintf("%04d-", year)
	set := make(MonthSet)

	for _, raw := range rows {
		for _, m := range ParseMonths(raw) {
			if strings.HasPrefix(m, prefix) {
				set.Add(m)
			}
		}
	}

	return set
}
