package salesrace

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// yearColumn is the index column name in the cleaned CSV.
const yearColumn = "Year"

// Table is the pivoted sales table: one row per year, one column per
// sub-category, holding summed sales figures. It is produced once by
// Aggregate (or loaded by ReadTable) and read-only thereafter.
type Table struct {
	Years      []int
	Categories []string
	Values     [][]float64 // Values[i][j] is Years[i] x Categories[j]
}

// NumPeriods returns the number of year rows.
func (t *Table) NumPeriods() int {
	return len(t.Years)
}

// Row returns the values for period i.
func (t *Table) Row(i int) []float64 {
	return t.Values[i]
}

// MaxValue returns the largest cell value, used for the fixed value scale.
func (t *Table) MaxValue() float64 {
	var max float64
	for _, row := range t.Values {
		for _, v := range row {
			if v > max {
				max = v
			}
		}
	}
	return max
}

// isEmpty reports whether the table has no usable data.
func (t *Table) isEmpty() bool {
	return t == nil || len(t.Years) == 0 || len(t.Categories) == 0
}

// WriteCSV writes the cleaned pivot table: a header row with "Year" plus
// the sub-category names, then one row per year.
func (t *Table) WriteCSV(w io.Writer) error {
	if t.isEmpty() {
		return ErrEmptyTable
	}

	cw := csv.NewWriter(w)

	header := make([]string, 0, len(t.Categories)+1)
	header = append(header, yearColumn)
	header = append(header, t.Categories...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := make([]string, len(t.Categories)+1)
	for i, year := range t.Years {
		row[0] = strconv.Itoa(year)
		for j, v := range t.Values[i] {
			row[j+1] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadTable loads a cleaned pivot table written by WriteCSV, re-validating
// that every cell parses as a number.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrEmptyTable
		}
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if len(header) < 2 || header[0] != yearColumn {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, yearColumn)
	}

	t := &Table{Categories: header[1:]}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		year, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("%w: year %q", ErrNotNumeric, row[0])
		}

		values := make([]float64, len(row)-1)
		for j, cell := range row[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q at %d x %q", ErrNotNumeric, cell, year, t.Categories[j])
			}
			values[j] = v
		}

		t.Years = append(t.Years, year)
		t.Values = append(t.Values, values)
	}

	if t.isEmpty() {
		return nil, ErrEmptyTable
	}
	return t, nil
}
