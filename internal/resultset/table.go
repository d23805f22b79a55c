package resultset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Data is an extracted result set in either representation.
type Data interface {
	Columns() []string
	Len() int
	Records() Records
}

// Table keeps headers and rows exactly as the API sent them.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]any
}

func (t *Table) Columns() []string { return t.Headers }

func (t *Table) Len() int { return len(t.Rows) }

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Column returns every value of the named column in row order.
func (t *Table) Column(name string) ([]any, error) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found in %s", name, t.Name)
	}
	values := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

func (t *Table) Records() Records {
	keys := slices.Clone(t.Headers)
	records := make(Records, len(t.Rows))
	for i, row := range t.Rows {
		records[i] = Record{keys: keys, values: slices.Clone(row)}
	}
	return records
}

// Record is one row as an ordered header-to-value mapping.
type Record struct {
	keys   []string
	values []any
}

func NewRecord(keys []string, values []any) Record {
	return Record{keys: keys, values: values}
}

func (r Record) Keys() []string { return slices.Clone(r.keys) }

func (r Record) Values() []any { return slices.Clone(r.values) }

func (r Record) Len() int { return len(r.keys) }

func (r Record) Get(key string) (any, bool) {
	for i, k := range r.keys {
		if k == key {
			return r.values[i], true
		}
	}
	return nil, false
}

// MarshalJSON writes the keys in header order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, fmt.Errorf("marshaling %s: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Records is the mapping-sequence representation of a result set.
type Records []Record

// Columns is taken from the first record; an empty result set has none.
func (rs Records) Columns() []string {
	if len(rs) == 0 {
		return nil
	}
	return rs[0].Keys()
}

func (rs Records) Len() int { return len(rs) }

func (rs Records) Records() Records { return rs }
