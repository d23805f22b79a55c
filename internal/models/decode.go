package models

import (
	"fmt"
	"math"
	"strconv"

	"github.com/omarshaarawi/nbastats/internal/resultset"
)

func GamesFromData(data resultset.Data) ([]Game, error) {
	if err := requireColumns(data, "GAME_ID", "GAME_STATUS_TEXT", "HOME_TEAM_ID", "VISITOR_TEAM_ID"); err != nil {
		return nil, err
	}

	games := make([]Game, 0, data.Len())
	for _, rec := range data.Records() {
		games = append(games, Game{
			GameID:        str(rec, "GAME_ID"),
			StatusText:    str(rec, "GAME_STATUS_TEXT"),
			HomeTeamID:    num(rec, "HOME_TEAM_ID"),
			VisitorTeamID: num(rec, "VISITOR_TEAM_ID"),
			Broadcaster:   str(rec, "NATL_TV_BROADCASTER_ABBREVIATION"),
		})
	}
	return games, nil
}

func LineScoresFromData(data resultset.Data) ([]TeamLine, error) {
	if err := requireColumns(data, "GAME_ID", "TEAM_ID", "TEAM_ABBREVIATION", "PTS"); err != nil {
		return nil, err
	}

	lines := make([]TeamLine, 0, data.Len())
	for _, rec := range data.Records() {
		pts, _ := rec.Get("PTS")
		lines = append(lines, TeamLine{
			GameID:       str(rec, "GAME_ID"),
			TeamID:       num(rec, "TEAM_ID"),
			Abbreviation: str(rec, "TEAM_ABBREVIATION"),
			City:         str(rec, "TEAM_CITY_NAME"),
			Points:       num(rec, "PTS"),
			HasPoints:    pts != nil,
		})
	}
	return lines, nil
}

func StandingsFromData(data resultset.Data) ([]Standing, error) {
	if err := requireColumns(data, "TEAM_ID", "TEAM", "W", "L"); err != nil {
		return nil, err
	}

	standings := make([]Standing, 0, data.Len())
	for _, rec := range data.Records() {
		standings = append(standings, Standing{
			TeamID:     num(rec, "TEAM_ID"),
			Team:       str(rec, "TEAM"),
			Games:      num(rec, "G"),
			Wins:       num(rec, "W"),
			Losses:     num(rec, "L"),
			WinPct:     float(rec, "W_PCT"),
			HomeRecord: str(rec, "HOME_RECORD"),
			RoadRecord: str(rec, "ROAD_RECORD"),
		})
	}
	return standings, nil
}

// Matchups joins games with their line scores by game and team id. Games
// without lines still appear with empty sides.
func Matchups(games []Game, lines []TeamLine) []Matchup {
	type key struct {
		gameID string
		teamID int
	}
	byTeam := make(map[key]TeamLine, len(lines))
	for _, l := range lines {
		byTeam[key{l.GameID, l.TeamID}] = l
	}

	matchups := make([]Matchup, 0, len(games))
	for _, g := range games {
		matchups = append(matchups, Matchup{
			Game:    g,
			Home:    byTeam[key{g.GameID, g.HomeTeamID}],
			Visitor: byTeam[key{g.GameID, g.VisitorTeamID}],
		})
	}
	return matchups
}

func requireColumns(data resultset.Data, columns ...string) error {
	if data.Len() == 0 {
		return nil
	}
	have := make(map[string]bool)
	for _, c := range data.Columns() {
		have[c] = true
	}
	for _, c := range columns {
		if !have[c] {
			return fmt.Errorf("missing column %s", c)
		}
	}
	return nil
}

func str(rec resultset.Record, key string) string {
	v, _ := rec.Get(key)
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func float(rec resultset.Record, key string) float64 {
	v, _ := rec.Get(key)
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	default:
		return 0
	}
}

func num(rec resultset.Record, key string) int {
	return int(math.Round(float(rec, key)))
}
