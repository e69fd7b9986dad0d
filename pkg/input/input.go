// Package input loads measurement series from CSV and Excel files.  The first row of a file is a
// header naming the columns.  One selected column gives a flat series; several selected columns
// give one subgroup per row.
package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BTBurke/spc/pkg/stat"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrFormat is returned for files that are neither CSV nor xlsx
	ErrFormat = errors.New("unsupported input format")
	// ErrColumn is returned when a selected column is not in the header
	ErrColumn = errors.New("unknown column")
	// ErrEmpty is returned when a file has a header but no data rows
	ErrEmpty = errors.New("no data rows")
)

// Load reads the file at path, choosing the format from its extension
func Load(path string, columns []string) (stat.Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return stat.Data{}, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		return ReadCSV(f, columns)
	case ".xlsx", ".xlsm":
		return ReadXLSX(f, columns)
	default:
		return stat.Data{}, fmt.Errorf("%w: %q", ErrFormat, ext)
	}
}

// ReadCSV reads comma separated rows from r
func ReadCSV(r io.Reader, columns []string) (stat.Data, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return stat.Data{}, fmt.Errorf("failed to read CSV: %w", err)
	}
	return fromRows(rows, columns)
}

// ReadXLSX reads the rows of the first sheet of a workbook
func ReadXLSX(r io.Reader, columns []string) (stat.Data, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return stat.Data{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return stat.Data{}, fmt.Errorf("%w: workbook has no sheets", ErrEmpty)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return stat.Data{}, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return fromRows(rows, columns)
}

// fromRows converts a header row and data rows.  Without selected columns the first column is
// used.  Blank rows are skipped.
func fromRows(rows [][]string, columns []string) (stat.Data, error) {
	if len(rows) < 2 {
		return stat.Data{}, ErrEmpty
	}
	idx, err := columnIndex(rows[0], columns)
	if err != nil {
		return stat.Data{}, err
	}

	var groups [][]float64
	for n, row := range rows[1:] {
		if blank(row) {
			continue
		}
		group := make([]float64, len(idx))
		for i, c := range idx {
			if c >= len(row) {
				return stat.Data{}, fmt.Errorf("row %d: missing value for column %q", n+2, rows[0][c])
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[c]), 64)
			if err != nil {
				return stat.Data{}, fmt.Errorf("row %d column %q: %w", n+2, rows[0][c], err)
			}
			group[i] = v
		}
		groups = append(groups, group)
	}
	if len(groups) == 0 {
		return stat.Data{}, ErrEmpty
	}

	if len(idx) > 1 {
		return stat.Grouped(groups...), nil
	}
	values := make([]float64, len(groups))
	for i, g := range groups {
		values[i] = g[0]
	}
	return stat.Flat(values...), nil
}

func columnIndex(header []string, columns []string) ([]int, error) {
	if len(columns) == 0 {
		return []int{0}, nil
	}
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(h)] = i
	}
	out := make([]int, len(columns))
	for i, c := range columns {
		p, ok := pos[strings.TrimSpace(c)]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumn, c)
		}
		out[i] = p
	}
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
