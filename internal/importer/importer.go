// Package importer turns uploaded CSV files into mutations ready to be recorded.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	enc "github.com/agungalvian/wjg/internal/encoding"
	"github.com/agungalvian/wjg/internal/ledger"
)

var ErrUnknownFormat = errors.New("no supported CSV layout found")

var dateLayouts = []string{"02/01/2006", "2006-01-02", "02-01-2006", "2/1/2006"}

// Parser reads mutation CSVs. It accepts ';' or ',' separators and finds the header
// row by matching column names against the known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]ledger.CreateParams, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	for _, comma := range []rune{';', ','} {
		rows, err := readCSV(data, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		slog.Debug("parsing import", "profile", profile.Name, "charset", charset, "separator", string(comma))

		return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
	}

	return nil, fmt.Errorf("%w: expected columns for rincian or mutasi", ErrUnknownFormat)
}

func readCSV(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts mutations. Rows without a parseable date or a non-zero amount
// are footers or blanks and are skipped; a data row with an unknown fund is an error.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]ledger.CreateParams, error) {
	var params []ledger.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2

		date, ok := parseDate(cellValue(row, cols[p.DateCol]))
		if !ok {
			continue
		}

		amount, dir, ok := parseAmount(p, cols, row)
		if !ok {
			continue
		}

		desc := cellValue(row, cols[p.DescCol])
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		fund := ledger.FundNone

		if idx, ok := cols[p.FundCol]; ok && p.FundCol != "" {
			raw := cellValue(row, idx)

			fund, ok = ledger.ParseFund(raw)
			if !ok {
				return nil, fmt.Errorf("row %d: unknown fund %q", rowNum, raw)
			}
		}

		category := ""
		if idx, ok := cols[p.CategoryCol]; ok && p.CategoryCol != "" {
			category = cellValue(row, idx)
		}

		params = append(params, ledger.CreateParams{
			Direction:   dir,
			Amount:      amount,
			Description: desc,
			Date:        date,
			Category:    category,
			Fund:        fund,
		})
	}

	return params, nil
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func parseAmount(p *Profile, cols colIndex, row []string) (int64, ledger.Direction, bool) {
	switch p.AmountMode {
	case amountSingle:
		return parseSingleAmount(cellValue(row, cols[p.AmountCol]))
	case amountSplit:
		return parseSplitAmount(cellValue(row, cols[p.InCol]), cellValue(row, cols[p.OutCol]))
	}

	return 0, "", false
}

func parseSingleAmount(s string) (int64, ledger.Direction, bool) {
	if s == "" {
		return 0, "", false
	}

	v, err := parseRupiah(s)
	if err != nil || v == 0 {
		return 0, "", false
	}

	if v < 0 {
		return -v, ledger.DirectionOut, true
	}

	return v, ledger.DirectionIn, true
}

func parseSplitAmount(in, out string) (int64, ledger.Direction, bool) {
	if in != "" && in != "-" {
		if v, err := parseRupiah(in); err == nil && v != 0 {
			return abs(v), ledger.DirectionIn, true
		}
	}

	if out != "" && out != "-" {
		if v, err := parseRupiah(out); err == nil && v != 0 {
			return abs(v), ledger.DirectionOut, true
		}
	}

	return 0, "", false
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
