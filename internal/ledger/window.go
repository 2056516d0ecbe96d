package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Window is an optional month and/or year reporting period. Zero means unset.
type Window struct {
	Month int `json:"month,omitempty"`
	Year  int `json:"year,omitempty"`
}

// NewWindow validates month (0 or 1..12) and year (0 or 1..9999).
func NewWindow(month, year int) (Window, error) {
	if month < 0 || month > 12 {
		return Window{}, fmt.Errorf("%w: month %d out of range", ErrInvalidWindow, month)
	}

	if year < 0 || year > 9999 {
		return Window{}, fmt.Errorf("%w: year %d out of range", ErrInvalidWindow, year)
	}

	return Window{Month: month, Year: year}, nil
}

// ParseWindow reads month and year from query-string values; empty means unset.
// Month accepts both "3" and "03".
func ParseWindow(month, year string) (Window, error) {
	m, err := parseWindowPart(month)
	if err != nil {
		return Window{}, fmt.Errorf("%w: month %q", ErrInvalidWindow, month)
	}

	y, err := parseWindowPart(year)
	if err != nil {
		return Window{}, fmt.Errorf("%w: year %q", ErrInvalidWindow, year)
	}

	return NewWindow(m, y)
}

func parseWindowPart(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	return strconv.Atoi(s)
}

// OpeningBoundary returns the first instant of the window. ok is false when the
// window has no meaningful "before": no filter at all, or a month without a year.
func (w Window) OpeningBoundary() (start time.Time, ok bool) {
	switch {
	case w.Year != 0 && w.Month != 0:
		return time.Date(w.Year, time.Month(w.Month), 1, 0, 0, 0, 0, time.UTC), true
	case w.Year != 0:
		return time.Date(w.Year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}

// Filter returns the query selecting the mutations inside the window.
func (w Window) Filter() MutationFilter {
	return MutationFilter{Year: w.Year, Month: w.Month}
}

// Title describes the period in Indonesian, as used on exported reports.
func (w Window) Title() string {
	switch {
	case w.Year != 0 && w.Month != 0:
		return fmt.Sprintf("Bulan %02d Tahun %d", w.Month, w.Year)
	case w.Year != 0:
		return fmt.Sprintf("Tahun %d", w.Year)
	case w.Month != 0:
		return fmt.Sprintf("Bulan %02d", w.Month)
	}

	return "Semua Periode"
}
