package input

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BTBurke/spc/pkg/stat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sample = `week,a,b,defects
1,10.1,10.3,2
2,9.8,10.0,3

3,10.4,9.9,1
`

func TestReadCSV(t *testing.T) {
	tt := []struct {
		name    string
		columns []string
		exp     stat.Data
		err     error
	}{
		{name: "first column", exp: stat.Flat(1, 2, 3)},
		{name: "one column", columns: []string{"defects"}, exp: stat.Flat(2, 3, 1)},
		{name: "subgroups", columns: []string{"a", "b"}, exp: stat.Grouped([]float64{10.1, 10.3}, []float64{9.8, 10.0}, []float64{10.4, 9.9})},
		{name: "unknown column", columns: []string{"c"}, err: ErrColumn},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			d, err := ReadCSV(strings.NewReader(sample), tc.columns)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.exp, d)
		})
	}
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("x\n"), nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = ReadCSV(strings.NewReader("x\n1\nabc\n"), nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"a", "b"},
		{1.5, 2},
		{2.5, 3},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)

	d, err := ReadXLSX(bytes.NewReader(buf.Bytes()), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, stat.Grouped([]float64{1.5, 2}, []float64{2.5, 3}), d)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	d, err := Load(path, []string{"defects"})
	require.NoError(t, err)
	assert.Equal(t, stat.Flat(2, 3, 1), d)

	other := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(other, []byte("{}"), 0o644))
	_, err = Load(other, nil)
	assert.ErrorIs(t, err, ErrFormat)
}
