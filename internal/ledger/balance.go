package ledger

// Balances holds a signed total per tracked fund.
type Balances struct {
	Housing int64 `json:"housing"`
	Social  int64 `json:"social"`
	RT      int64 `json:"rt"`
}

// Of returns the balance of f, zero for untracked funds.
func (b Balances) Of(f Fund) int64 {
	switch f {
	case FundHousing:
		return b.Housing
	case FundSocial:
		return b.Social
	case FundRT:
		return b.RT
	}

	return 0
}

// Total sums the three funds.
func (b Balances) Total() int64 {
	return b.Housing + b.Social + b.RT
}

func (b *Balances) add(f Fund, v int64) {
	switch f {
	case FundHousing:
		b.Housing += v
	case FundSocial:
		b.Social += v
	case FundRT:
		b.RT += v
	}
}

// ComputeBalances folds mutations into per-fund signed totals. Mutations without a
// tracked fund, with an unknown direction or a negative amount are ignored. The
// input may be pre-filtered by the caller, order does not matter.
func ComputeBalances(mutations []*Mutation) Balances {
	var b Balances

	for _, m := range mutations {
		if m == nil || !m.countable() {
			continue
		}

		b.add(m.Fund, m.Signed())
	}

	return b
}
