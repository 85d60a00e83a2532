// Package loader reads and writes tables as CSV files.
//
// Reading infers a type per column: if every non-missing cell parses
// as a number the column is numeric, otherwise it stays string.
// Inference is best-effort and never fails the load; unparseable data
// simply remains text.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tabprep/tabprep/pkg/core"
)

// missingTokens are cell texts treated as the missing sentinel.
var missingTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
	"None": {},
}

// ReadCSV parses CSV with a header row into a table.
func ReadCSV(r io.Reader) (*core.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv input has no header row")
	}

	header := records[0]
	rows := records[1:]

	cols := make([]core.Column, len(header))
	for j, name := range header {
		raw := make([]string, len(rows))
		for i, rec := range rows {
			if j < len(rec) {
				raw[i] = rec[j]
			}
		}
		cols[j] = core.Column{Name: name, Values: inferColumn(raw)}
	}

	return core.NewTable(cols...)
}

// ReadFile loads a CSV file into a table.
func ReadFile(path string) (*core.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	tbl, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tbl, nil
}

// inferColumn converts raw cell texts into typed values. The column is
// numeric only if every non-missing cell parses as a float and at
// least one non-missing cell exists.
func inferColumn(raw []string) []core.Value {
	numeric := false
	for _, s := range raw {
		if _, missing := missingTokens[s]; missing {
			continue
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			numeric = false
			break
		}
		numeric = true
	}

	vals := make([]core.Value, len(raw))
	for i, s := range raw {
		if _, missing := missingTokens[s]; missing {
			vals[i] = core.Missing
			continue
		}
		if numeric {
			f, _ := strconv.ParseFloat(s, 64)
			vals[i] = core.Number(f)
		} else {
			vals[i] = core.String(s)
		}
	}
	return vals
}

// WriteCSV renders a table as CSV with a header row. Missing cells are
// written as empty fields.
func WriteCSV(w io.Writer, tbl *core.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(tbl.Names()); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	cols := tbl.Columns()
	record := make([]string, len(cols))
	for row := 0; row < tbl.NumRows(); row++ {
		for j, c := range cols {
			record[j] = c.Values[row].String()
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", row, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes a table to a CSV file.
func WriteFile(path string, tbl *core.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteCSV(f, tbl); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
