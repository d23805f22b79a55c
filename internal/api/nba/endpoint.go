package nba

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strings"

	"github.com/omarshaarawi/nbastats/internal/resultset"
)

// Param is a query parameter an endpoint accepts. An empty Default means the
// caller must supply a value.
type Param struct {
	Name    string
	Default string
}

// Definition describes one stats.nba.com endpoint: its name, its parameters
// and its result sets in the order the API returns them.
type Definition struct {
	Name        string
	Description string
	Params      []Param
	ResultSets  []string
}

// Query merges overrides onto the defaults. Names match without regard to
// case; unknown names, a name given twice and missing required values are
// errors.
func (d Definition) Query(overrides map[string]string) (map[string]string, error) {
	query := make(map[string]string, len(d.Params))
	for _, p := range d.Params {
		query[p.Name] = p.Default
	}

	given := make(map[string]string, len(overrides))
	for key, value := range overrides {
		name, ok := d.paramName(key)
		if !ok {
			return nil, fmt.Errorf("%s does not accept parameter %q", d.Name, key)
		}
		if prev, dup := given[name]; dup {
			a, b := min(prev, key), max(prev, key)
			return nil, fmt.Errorf("%s parameter %s given twice as %q and %q", d.Name, name, a, b)
		}
		given[name] = key
		query[name] = value
	}

	var missing []string
	for _, p := range d.Params {
		if query[p.Name] == "" && p.Default == "" {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%s requires %s", d.Name, strings.Join(missing, ", "))
	}

	return query, nil
}

func (d Definition) paramName(key string) (string, bool) {
	for _, p := range d.Params {
		if strings.EqualFold(p.Name, key) {
			return p.Name, true
		}
	}
	return "", false
}

// ResultSetIndex returns the position of a named result set, or -1.
func (d Definition) ResultSetIndex(name string) int {
	for i, rs := range d.ResultSets {
		if strings.EqualFold(rs, name) {
			return i
		}
	}
	return -1
}

// Endpoint holds one fetched response. It never re-fetches; every accessor
// extracts again from the same response.
type Endpoint struct {
	def       Definition
	params    map[string]string
	response  *resultset.Response
	extractor resultset.Extractor
}

// Load fetches def once with params merged over its defaults.
func (c *Client) Load(ctx context.Context, def Definition, params map[string]string) (*Endpoint, error) {
	query, err := def.Query(params)
	if err != nil {
		return nil, err
	}

	resp, err := c.Fetch(ctx, def.Name, query)
	if err != nil {
		return nil, err
	}

	return &Endpoint{
		def:       def,
		params:    query,
		response:  resp,
		extractor: c.extractor,
	}, nil
}

func (e *Endpoint) Definition() Definition {
	return e.def
}

// Params returns a copy of the query the endpoint was fetched with.
func (e *Endpoint) Params() map[string]string {
	return maps.Clone(e.params)
}

func (e *Endpoint) Response() *resultset.Response {
	return e.response
}

// At extracts the result set at index.
func (e *Endpoint) At(index int) (resultset.Data, error) {
	return e.extractor.Extract(e.response, index)
}

// ResultSet extracts a result set by its documented name.
func (e *Endpoint) ResultSet(name string) (resultset.Data, error) {
	idx := e.def.ResultSetIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("%s has no result set %q", e.def.Name, name)
	}
	return e.At(idx)
}
