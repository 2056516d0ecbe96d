package importer

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column (e.g. "Jumlah" with value "-10.000").
	amountSingle amountMode = iota
	// amountSplit means separate incoming and outgoing columns ("Masuk"/"Keluar").
	amountSplit
)

// Profile describes the column layout of a supported CSV. Optional columns may be
// missing from the header.
type Profile struct {
	Name       string
	DateCol    string
	DescCol    string
	AmountMode amountMode
	AmountCol  string // used when AmountMode == amountSingle
	InCol      string // used when AmountMode == amountSplit
	OutCol     string // used when AmountMode == amountSplit

	FundCol     string
	CategoryCol string
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.InCol, p.OutCol)
	}

	return cols
}

// profiles is tried in order, more specific layouts first.
var profiles = []Profile{
	{
		// The detail sheet of an exported report, so exports can be re-imported.
		Name:        "rincian",
		DateCol:     "Tanggal",
		DescCol:     "Keterangan",
		AmountMode:  amountSplit,
		InCol:       "Masuk",
		OutCol:      "Keluar",
		FundCol:     "Dana",
		CategoryCol: "Kategori",
	},
	{
		// Internet banking mutation statements.
		Name:       "mutasi",
		DateCol:    "Tanggal Transaksi",
		DescCol:    "Keterangan",
		AmountMode: amountSingle,
		AmountCol:  "Jumlah",
	},
}
