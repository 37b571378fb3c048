// Package export renders ranked results for download.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"resumerank/internal/models"
	"resumerank/internal/util"

	"github.com/xuri/excelize/v2"
)

const (
	CSVFilename  = "resume_ranking_results.csv"
	XLSXFilename = "resume_ranking_results.xlsx"
	SheetName    = "Ranking"
)

var header = []string{"Candidate", "Match Score"}

// WriteCSV writes a Candidate,Match Score header followed by one row per
// result, in the order given.
func WriteCSV(w io.Writer, results []models.RankedResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range results {
		if err := cw.Write([]string{util.SanitizeName(r.Name), formatScore(r.Score)}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func CSV(results []models.RankedResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, results); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// XLSX renders the same two columns as CSV into a single-sheet workbook.
func XLSX(results []models.RankedResult) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}
	row := []interface{}{header[0], header[1]}
	if err := f.SetSheetRow(SheetName, "A1", &row); err != nil {
		return nil, fmt.Errorf("write xlsx header: %w", err)
	}
	for i, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{util.SanitizeName(r.Name), r.Score}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write xlsx row %d: %w", i+2, err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
