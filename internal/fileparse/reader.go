// Package fileparse converts uploaded spreadsheet bytes into raw row
// grids. It is the only place that touches file formats; everything past
// it works on rows and cells.
package fileparse

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"sobordos/internal/domain"
)

// Rows parses the file into a row grid, dispatching on the filename
// extension. csvDelimiter only applies to CSV input; the manifest and
// ticket systems export CSV with different separators.
func Rows(data []byte, filename string, csvDelimiter rune) ([][]domain.Cell, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, filename)
	}

	switch fileType {
	case domain.FileTypeXLSX:
		return xlsxRows(data)
	case domain.FileTypeXLS:
		return xlsRows(data)
	default:
		return csvRows(data, csvDelimiter)
	}
}

func xlsxRows(data []byte) ([][]domain.Cell, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	raw, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}
	return stringGridToCells(raw), nil
}

// xlsRows reads a legacy BIFF workbook. The reader is path-based, so the
// upload is staged in a temp file first.
func xlsRows(data []byte) ([][]domain.Cell, error) {
	tmp, err := os.CreateTemp("", "sobordos-*.xls")
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return nil, err
	}
	if err = tmp.Close(); err != nil {
		return nil, err
	}

	book, err := xls.OpenFile(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}
	sheet, err := book.GetSheet(0)
	if err != nil || sheet == nil {
		return nil, fmt.Errorf("%w: workbook has no sheets", domain.ErrUnreadableFile)
	}

	var rows [][]domain.Cell
	for _, xlsRow := range sheet.GetRows() {
		var row []domain.Cell
		for _, col := range xlsRow.GetCols() {
			row = append(row, col.GetString())
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func csvRows(data []byte, delimiter rune) ([][]domain.Cell, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	raw, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}
	return stringGridToCells(raw), nil
}

func stringGridToCells(raw [][]string) [][]domain.Cell {
	rows := make([][]domain.Cell, len(raw))
	for i, r := range raw {
		row := make([]domain.Cell, len(r))
		for j, v := range r {
			row[j] = v
		}
		rows[i] = row
	}
	return rows
}
