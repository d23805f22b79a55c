package resultset

import (
	"encoding/json"
	"strings"
)

// Response is the decoded body of a stats.nba.com call.
type Response struct {
	Resource   string         `json:"resource"`
	Parameters map[string]any `json:"parameters"`
	ResultSets []ResultSet    `json:"resultSets"`
}

type ResultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

// UnmarshalJSON accepts both the usual "resultSets" array and the single
// "resultSet" object a few endpoints return.
func (r *Response) UnmarshalJSON(data []byte) error {
	var raw struct {
		Resource   string         `json:"resource"`
		Parameters map[string]any `json:"parameters"`
		ResultSets []ResultSet    `json:"resultSets"`
		ResultSet  *ResultSet     `json:"resultSet"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Resource = raw.Resource
	r.Parameters = raw.Parameters
	r.ResultSets = raw.ResultSets
	if len(r.ResultSets) == 0 && raw.ResultSet != nil {
		r.ResultSets = []ResultSet{*raw.ResultSet}
	}
	return nil
}

// Lookup returns the index of the result set with the given name, or -1.
func (r *Response) Lookup(name string) int {
	if r == nil {
		return -1
	}
	for i, rs := range r.ResultSets {
		if strings.EqualFold(rs.Name, name) {
			return i
		}
	}
	return -1
}
