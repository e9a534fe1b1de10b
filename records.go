package salesrace

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jszwec/csvutil"
	"golang.org/x/text/encoding/charmap"
)

// Record is one raw sales row from the source dataset. Only the columns
// needed for aggregation are decoded; the rest of the row is ignored.
type Record struct {
	OrderDate   string  `csv:"Order Date"`
	SubCategory string  `csv:"Sub-Category"`
	Sales       float64 `csv:"Sales"`
}

// requiredColumns must all be present in the source CSV header.
var requiredColumns = []string{"Order Date", "Sub-Category", "Sales"}

// orderDateLayouts are tried in order when parsing order dates. The source
// dataset uses US-style slash dates; ISO and day-first forms are accepted
// for exports that normalized the column.
var orderDateLayouts = []string{
	"1/2/2006",
	"2006-01-02",
	"2/1/2006",
	"1/2/06",
}

// ReadRecords decodes sales records from a CSV stream. The source file is
// Latin-1 encoded, so the reader is wrapped with an ISO 8859-1 decoder
// before parsing.
func ReadRecords(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))

	dec, err := csvutil.NewDecoder(cr)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoRecords
		}
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}

	if err := validateHeader(dec.Header()); err != nil {
		return nil, err
	}

	var records []Record
	for {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decoding row: %w", err)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

// validateHeader checks that every required column is present.
func validateHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	for _, col := range requiredColumns {
		if !present[col] {
			return fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	return nil
}

// parseOrderDate parses an order date value against the known layouts.
func parseOrderDate(value string) (time.Time, error) {
	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadOrderDate, value)
}

// Aggregate groups records by (year, sub-category), sums the sales, and
// pivots the result so sub-categories become columns. Cells with no sales
// in a given year are zero.
func Aggregate(records []Record) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	sums := make(map[int]map[string]float64)
	categorySet := make(map[string]bool)

	for _, rec := range records {
		t, err := parseOrderDate(rec.OrderDate)
		if err != nil {
			return nil, err
		}
		year := t.Year()
		if sums[year] == nil {
			sums[year] = make(map[string]float64)
		}
		sums[year][rec.SubCategory] += rec.Sales
		categorySet[rec.SubCategory] = true
	}

	years := make([]int, 0, len(sums))
	for y := range sums {
		years = append(years, y)
	}
	sort.Ints(years)

	categories := make([]string, 0, len(categorySet))
	for c := range categorySet {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	values := make([][]float64, len(years))
	for i, y := range years {
		row := make([]float64, len(categories))
		for j, c := range categories {
			row[j] = sums[y][c]
		}
		values[i] = row
	}

	return &Table{Years: years, Categories: categories, Values: values}, nil
}
