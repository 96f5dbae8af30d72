package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// missing lists the cell spellings treated as an absent value.
//
//nolint:gochecknoglobals // immutable lookup table.
var missing = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
	"None": {},
}

// Table is an ordered set of named, typed columns with rows in file order.
// A Table is not mutated after construction.
type Table struct {
	names   []string
	columns map[string][]any
	length  int
}

// Columns returns the canonicalized column names in file order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)

	return names
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return t.length
}

// Row returns row i as a column-name-keyed mapping.
func (t *Table) Row(i int) map[string]any {
	row := make(map[string]any, len(t.names))

	for _, name := range t.names {
		row[name] = t.columns[name][i]
	}

	return row
}

// Column returns the values of the named column in row order, and whether
// the column exists.
func (t *Table) Column(name string) ([]any, bool) {
	col, ok := t.columns[name]
	if !ok {
		return nil, false
	}

	values := make([]any, len(col))
	copy(values, col)

	return values, true
}

// Decode parses comma-delimited data with a header row into a Table. Short
// rows are padded with missing cells; rows wider than the header are an
// error.
func Decode(data []byte) (*Table, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrEmptyData
	}

	header := records[0]
	width := len(header)

	rows := make([][]string, 0, len(records)-1)

	for i, record := range records[1:] {
		if len(record) > width {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", i+2, len(record), width)
		}

		for len(record) < width {
			record = append(record, "")
		}

		if allMissing(record) {
			continue
		}

		rows = append(rows, record)
	}

	names := make([]string, 0, width)
	columns := make(map[string][]any, width)

	for col, raw := range header {
		cells := make([]string, len(rows))
		for i, row := range rows {
			cells[i] = row[col]
		}

		if len(rows) == 0 || allMissing(cells) {
			continue
		}

		name := canonical(raw)
		names = append(names, name)
		columns[name] = inferColumn(cells)
	}

	return &Table{names: names, columns: columns, length: len(rows)}, nil
}

// Encode writes rows verbatim as comma-delimited text.
func Encode(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer

	writer := csv.NewWriter(&buf)

	err := writer.WriteAll(rows)
	if err != nil {
		return nil, fmt.Errorf("write error: %w", err)
	}

	return buf.Bytes(), nil
}

// canonical rewrites a header name with spaces replaced by underscores and
// lowercased.
func canonical(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}

func isMissing(cell string) bool {
	_, ok := missing[cell]

	return ok
}

func allMissing(cells []string) bool {
	for _, cell := range cells {
		if !isMissing(cell) {
			return false
		}
	}

	return true
}

// inferColumn types a column from its cells: int when every cell is an
// integer, float64 when every present cell is numeric (missing cells become
// NaN), bool when every cell is true/false, string otherwise (missing cells
// become nil).
func inferColumn(cells []string) []any {
	allInt := true
	allFloat := true
	allBool := true

	for _, cell := range cells {
		if isMissing(cell) {
			allInt = false
			allBool = false

			continue
		}

		if _, err := strconv.Atoi(cell); err != nil {
			allInt = false
		}

		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			allFloat = false
		}

		switch strings.ToLower(cell) {
		case "true", "false":
		default:
			allBool = false
		}
	}

	values := make([]any, len(cells))

	for i, cell := range cells {
		switch {
		case allInt:
			n, _ := strconv.Atoi(cell)
			values[i] = n
		case allFloat:
			if isMissing(cell) {
				values[i] = math.NaN()
			} else {
				f, _ := strconv.ParseFloat(cell, 64)
				values[i] = f
			}
		case allBool:
			values[i] = strings.EqualFold(cell, "true")
		case isMissing(cell):
			values[i] = nil
		default:
			values[i] = cell
		}
	}

	return values
}
