// Package resultset turns the resultSets block of a stats.nba.com response
// into tables or ordered records.
package resultset

import (
	"fmt"
	"slices"
	"strings"
)

type Format int

const (
	FormatTable Format = iota
	FormatRecords
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "records":
		return FormatRecords, nil
	default:
		return FormatTable, fmt.Errorf("unknown output format %q (want table or records)", s)
	}
}

// Decode lets envconfig read a Format straight from the environment.
func (f *Format) Decode(value string) error {
	parsed, err := ParseFormat(value)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f Format) String() string {
	if f == FormatRecords {
		return "records"
	}
	return "table"
}

// IndexError reports a result set index outside the response.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("result set index %d out of range (response has %d)", e.Index, e.Len)
}

// SchemaError reports a row whose width does not match the headers.
type SchemaError struct {
	ResultSet string
	Row       int
	Want      int
	Got       int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("result set %q row %d has %d values, headers have %d", e.ResultSet, e.Row, e.Got, e.Want)
}

// Extractor picks one result set out of a response. Format is fixed for the
// life of the process and handed in by the caller.
type Extractor struct {
	Format Format
}

func (x Extractor) Extract(resp *Response, index int) (Data, error) {
	t, err := ExtractTable(resp, index)
	if err != nil {
		return nil, err
	}
	if x.Format == FormatRecords {
		return t.Records(), nil
	}
	return t, nil
}

// ExtractTable validates the result set at index and returns it as a Table.
func ExtractTable(resp *Response, index int) (*Table, error) {
	n := 0
	if resp != nil {
		n = len(resp.ResultSets)
	}
	if index < 0 || index >= n {
		return nil, &IndexError{Index: index, Len: n}
	}

	rs := resp.ResultSets[index]
	for i, row := range rs.RowSet {
		if len(row) != len(rs.Headers) {
			return nil, &SchemaError{ResultSet: rs.Name, Row: i, Want: len(rs.Headers), Got: len(row)}
		}
	}

	rows := make([][]any, len(rs.RowSet))
	for i, row := range rs.RowSet {
		rows[i] = slices.Clone(row)
	}
	return &Table{Name: rs.Name, Headers: slices.Clone(rs.Headers), Rows: rows}, nil
}
