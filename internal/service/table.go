package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/nbastats/internal/api/nba"
	"github.com/omarshaarawi/nbastats/internal/resultset"
)

const maxTableRows = 15

// ParseParams turns Key=Value arguments into a query map. Underscores in a
// value stand for spaces. A key given twice, in any case, is an error.
func ParseParams(args []string) (map[string]string, error) {
	params := make(map[string]string, len(args))
	seen := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected Key=Value", arg)
		}
		if prev, dup := seen[strings.ToLower(key)]; dup {
			return nil, fmt.Errorf("parameter %q given more than once (also %q)", key, prev)
		}
		seen[strings.ToLower(key)] = key
		params[key] = strings.ReplaceAll(value, "_", " ")
	}
	return params, nil
}

// ResolveEndpoint finds the registered endpoint closest to name.
func ResolveEndpoint(name string) (nba.Definition, error) {
	defs := nba.Definitions()
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}

	match, ok := bestMatch(name, names, 0.6)
	if !ok {
		return nba.Definition{}, fmt.Errorf("unknown endpoint %q", name)
	}
	def, _ := nba.LookupDefinition(match)
	return def, nil
}

// ResolveResultSet finds the result set of def closest to name.
func ResolveResultSet(def nba.Definition, name string) (string, error) {
	match, ok := bestMatch(name, def.ResultSets, 0.6)
	if !ok {
		return "", fmt.Errorf("%s has no result set like %q (have %s)", def.Name, name, strings.Join(def.ResultSets, ", "))
	}
	return match, nil
}

func (s *StatsService) GetTable(ctx context.Context, endpoint, resultSet string, params map[string]string) (string, error) {
	def, err := ResolveEndpoint(endpoint)
	if err != nil {
		return "", err
	}
	name, err := ResolveResultSet(def, resultSet)
	if err != nil {
		return "", err
	}

	ep, err := s.api.Load(ctx, def, params)
	if err != nil {
		return "", fmt.Errorf("error fetching %s: %w", def.Name, err)
	}

	data, err := ep.ResultSet(name)
	if err != nil {
		return "", fmt.Errorf("error reading %s: %w", name, err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 *%s / %s* (%d rows)\n", def.Name, name, data.Len()))
	sb.WriteString("```\n")
	sb.WriteString(RenderText(data, maxTableRows))
	sb.WriteString("```")
	return sb.String(), nil
}

func (s *StatsService) ListEndpoints() string {
	var sb strings.Builder
	sb.WriteString("*Endpoints*\n\n")
	for _, d := range nba.Definitions() {
		sb.WriteString(fmt.Sprintf("*%s* - %s\n", d.Name, d.Description))
		var params []string
		for _, p := range d.Params {
			if p.Default == "" {
				params = append(params, p.Name)
			} else {
				params = append(params, fmt.Sprintf("%s=%s", p.Name, p.Default))
			}
		}
		sb.WriteString(fmt.Sprintf("   params: %s\n", strings.Join(params, ", ")))
		sb.WriteString(fmt.Sprintf("   sets: %s\n", strings.Join(d.ResultSets, ", ")))
	}
	return sb.String()
}

// RenderText lays data out as aligned columns. limit <= 0 prints every row.
func RenderText(data resultset.Data, limit int) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(data.Columns(), "\t"))

	records := data.Records()
	shown := len(records)
	if limit > 0 && shown > limit {
		shown = limit
	}
	for _, rec := range records[:shown] {
		cells := make([]string, rec.Len())
		for i, v := range rec.Values() {
			cells[i] = formatCell(v)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()

	if shown < len(records) {
		sb.WriteString(fmt.Sprintf("... %d more rows\n", len(records)-shown))
	}
	return sb.String()
}

func formatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%.3f", t)
	default:
		return fmt.Sprint(t)
	}
}

// bestMatch picks the candidate closest to query: exact (case-insensitive)
// first, then fuzzy subsequence matches ranked by distance, then Levenshtein
// similarity above threshold.
func bestMatch(query string, candidates []string, threshold float64) (string, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", false
	}

	for _, c := range candidates {
		if strings.EqualFold(c, query) {
			return c, true
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(query, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target, true
	}

	best := ""
	bestScore := threshold
	for _, c := range candidates {
		distance := fuzzy.LevenshteinDistance(strings.ToLower(query), strings.ToLower(c))
		maxLen := float64(max(len(query), len(c)))
		similarity := 1 - float64(distance)/maxLen
		if similarity > bestScore {
			bestScore = similarity
			best = c
		}
	}
	return best, best != ""
}
