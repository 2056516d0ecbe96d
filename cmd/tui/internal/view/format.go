package view

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatRupiah formats a whole rupiah amount with Indonesian grouping, "Rp 1.250.000".
func FormatRupiah(v int64) string {
	return printer.Sprintf("Rp %d", v)
}

// FormatOptional renders an empty series slot as a dash.
func FormatOptional(v *int64) string {
	if v == nil {
		return "-"
	}

	return FormatRupiah(*v)
}

// FormatDate formats a time.Time into DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}
