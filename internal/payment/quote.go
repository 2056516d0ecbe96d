package payment

import "github.com/agungalvian/wjg/internal/settings"

// Quote prices a submission covering the given number of months.
func Quote(dues settings.Dues, months int) (int64, Breakdown) {
	n := int64(months)
	b := Breakdown{
		Housing: dues.Housing * n,
		Social:  dues.Social * n,
		RT:      dues.RT * n,
		Count:   months,
	}

	return b.Sum(), b
}
