package importer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// parseRupiah parses an Indonesian-formatted amount into whole rupiah.
// Examples: "1.250.000" -> 1250000, "-70.000,00" -> -70000, "Rp 5.000" -> 5000.
// Fractions of a rupiah are rejected.
func parseRupiah(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "Rp")
	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	if !d.IsInteger() {
		return 0, fmt.Errorf("amount %q has a fraction of a rupiah", s)
	}

	return d.IntPart(), nil
}
