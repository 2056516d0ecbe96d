// Package export writes period reports as downloadable spreadsheets.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/agungalvian/wjg/internal/ledger"
)

const (
	SummarySheet = "Ringkasan"
	DetailSheet  = "Rincian"

	// ContentType is the media type of the workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// Excel stores the pattern locale-neutral; an Indonesian locale renders it as Rp 1.250.000.
	rupiahFormat = `"Rp" #,##0;-"Rp" #,##0`
	dateFormat   = "dd/mm/yyyy"
)

// ReportSource builds the period report being exported.
type ReportSource interface {
	PeriodReport(ctx context.Context, w ledger.Window) (*ledger.PeriodReport, error)
}

// Service handles the export of period reports.
type Service struct {
	reports ReportSource
}

func NewService(reports ReportSource) *Service {
	return &Service{reports: reports}
}

// Filename returns the workbook name for w, e.g. Laporan_Keuangan_2024_03.xlsx.
func Filename(w ledger.Window) string {
	name := "Laporan_Keuangan"

	if w.Year != 0 {
		name += fmt.Sprintf("_%d", w.Year)
	}

	if w.Month != 0 {
		name += fmt.Sprintf("_%02d", w.Month)
	}

	return name + ".xlsx"
}

// workbook holds the styles shared by both sheets.
type workbook struct {
	f      *excelize.File
	title  int
	header int
	amount int
	date   int
}

func newWorkbook() (*workbook, error) {
	wb := &workbook{f: excelize.NewFile()}

	styles := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&wb.title, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}},
		{&wb.header, &excelize.Style{
			Font:   &excelize.Font{Bold: true},
			Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
			Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
		}},
		{&wb.amount, &excelize.Style{CustomNumFmt: ptr(rupiahFormat)}},
		{&wb.date, &excelize.Style{CustomNumFmt: ptr(dateFormat)}},
	}

	for _, s := range styles {
		id, err := wb.f.NewStyle(s.style)
		if err != nil {
			wb.f.Close()
			return nil, fmt.Errorf("creating style: %w", err)
		}

		*s.dst = id
	}

	return wb, nil
}

func ptr[T any](v T) *T { return &v }

// Write builds the report of w and streams it to out as an xlsx workbook with a
// summary and a detail sheet. Amounts are numeric cells.
func (s *Service) Write(ctx context.Context, w ledger.Window, out io.Writer) error {
	report, err := s.reports.PeriodReport(ctx, w)
	if err != nil {
		return fmt.Errorf("building report: %w", err)
	}

	wb, err := newWorkbook()
	if err != nil {
		return err
	}
	defer wb.f.Close()

	if err := wb.f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("naming summary sheet: %w", err)
	}

	if _, err := wb.f.NewSheet(DetailSheet); err != nil {
		return fmt.Errorf("adding detail sheet: %w", err)
	}

	if err := wb.writeSummary(report); err != nil {
		return fmt.Errorf("writing %s: %w", SummarySheet, err)
	}

	if err := wb.writeDetail(report); err != nil {
		return fmt.Errorf("writing %s: %w", DetailSheet, err)
	}

	if _, err := wb.f.WriteTo(out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

func (wb *workbook) writeSummary(r *ledger.PeriodReport) error {
	f := wb.f
	sheet := SummarySheet

	if err := f.SetCellValue(sheet, "A1", "Laporan Keuangan: "+r.Window.Title()); err != nil {
		return err
	}

	if err := f.SetCellStyle(sheet, "A1", "A1", wb.title); err != nil {
		return err
	}

	header := []any{"Dana", "Saldo Awal", "Masuk", "Keluar", "Saldo Akhir"}
	if err := wb.row(sheet, 2, header, wb.header); err != nil {
		return err
	}

	row := 3
	for _, fund := range ledger.Funds {
		if err := wb.summaryRow(row, fund.Label(), r.Summary.Of(fund)); err != nil {
			return err
		}

		row++
	}

	if err := wb.summaryRow(row, "TOTAL", r.Summary.Total); err != nil {
		return err
	}

	if err := f.SetCellStyle(sheet, cell(1, row), cell(1, row), wb.header); err != nil {
		return err
	}

	if err := f.SetCellStyle(sheet, "B3", cell(5, row), wb.amount); err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, "A", "A", 18); err != nil {
		return err
	}

	return f.SetColWidth(sheet, "B", "E", 18)
}

func (wb *workbook) summaryRow(row int, label string, fs ledger.FundSummary) error {
	return wb.row(SummarySheet, row, []any{label, fs.Opening, fs.In, fs.Out, fs.Balance}, 0)
}

func (wb *workbook) writeDetail(r *ledger.PeriodReport) error {
	f := wb.f
	sheet := DetailSheet

	if err := f.SetCellValue(sheet, "A1", "Rincian Transaksi: "+r.Window.Title()); err != nil {
		return err
	}

	if err := f.SetCellStyle(sheet, "A1", "A1", wb.title); err != nil {
		return err
	}

	header := []any{"Tanggal", "Keterangan", "Warga", "Dana", "Kategori", "Masuk", "Keluar"}
	if err := wb.row(sheet, 2, header, wb.header); err != nil {
		return err
	}

	for i, e := range r.Entries {
		var in, out any
		if e.Direction == ledger.DirectionOut {
			out = e.Amount
		} else {
			in = e.Amount
		}

		values := []any{e.Date, e.Description, e.ResidentName, e.Fund.Label(), e.Category, in, out}
		if err := wb.row(sheet, i+3, values, 0); err != nil {
			return err
		}
	}

	if last := len(r.Entries) + 2; last >= 3 {
		if err := f.SetCellStyle(sheet, "A3", cell(1, last), wb.date); err != nil {
			return err
		}

		if err := f.SetCellStyle(sheet, "F3", cell(7, last), wb.amount); err != nil {
			return err
		}
	}

	widths := map[string]float64{"A": 12, "B": 40, "C": 20, "D": 16, "E": 14, "F": 16, "G": 16}
	for col, width := range widths {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}

	return nil
}

// row writes values from column A, skipping nil cells, and styles the row when
// style is non-zero.
func (wb *workbook) row(sheet string, row int, values []any, style int) error {
	for i, v := range values {
		if v == nil {
			continue
		}

		if err := wb.f.SetCellValue(sheet, cell(i+1, row), v); err != nil {
			return err
		}
	}

	if style == 0 {
		return nil
	}

	return wb.f.SetCellStyle(sheet, cell(1, row), cell(len(values), row), style)
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// ToDir writes the workbook of w into dir and returns its path.
func (s *Service) ToDir(ctx context.Context, w ledger.Window, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, Filename(w))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := s.Write(ctx, w, f); err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}
