package nba

import "strings"

const (
	LeagueNBA     = "00"
	LeagueWNBA    = "10"
	LeagueGLeague = "20"
	LeagueDefault = LeagueNBA
)

const (
	SeasonTypeRegular  = "Regular Season"
	SeasonTypePlayoffs = "Playoffs"
)

var ScoreboardDefinition = Definition{
	Name:        "scoreboard",
	Description: "Games plus conference standings for a given day",
	Params: []Param{
		{Name: "LeagueID", Default: LeagueDefault},
		{Name: "GameDate"},
		{Name: "DayOffset", Default: "0"},
	},
	ResultSets: []string{
		"GameHeader",
		"LineScore",
		"SeriesStandings",
		"LastMeeting",
		"EastConfStandingsByDay",
		"WestConfStandingsByDay",
		"Available",
	},
}

var BoxScoreSummaryDefinition = Definition{
	Name:        "boxscoresummaryv2",
	Description: "Summary, officials and line score for one game",
	Params: []Param{
		{Name: "GameID"},
	},
	ResultSets: []string{
		"GameSummary",
		"OtherStats",
		"Officials",
		"InactivePlayers",
		"GameInfo",
		"LineScore",
		"LastMeeting",
		"SeasonSeries",
		"AvailableVideo",
	},
}

var CommonAllPlayersDefinition = Definition{
	Name:        "commonallplayers",
	Description: "Every player who appeared in a season",
	Params: []Param{
		{Name: "LeagueID", Default: LeagueDefault},
		{Name: "Season"},
		{Name: "IsOnlyCurrentSeason", Default: "1"},
	},
	ResultSets: []string{"CommonAllPlayers"},
}

var CommonTeamRosterDefinition = Definition{
	Name:        "commonteamroster",
	Description: "Roster and coaching staff of one team",
	Params: []Param{
		{Name: "TeamID"},
		{Name: "Season"},
		{Name: "LeagueID", Default: LeagueDefault},
	},
	ResultSets: []string{"CommonTeamRoster", "Coaches"},
}

var PlayerGameLogDefinition = Definition{
	Name:        "playergamelog",
	Description: "Game-by-game log for one player",
	Params: []Param{
		{Name: "PlayerID"},
		{Name: "Season"},
		{Name: "SeasonType", Default: SeasonTypeRegular},
		{Name: "LeagueID", Default: LeagueDefault},
	},
	ResultSets: []string{"PlayerGameLog"},
}

var definitions = []Definition{
	ScoreboardDefinition,
	BoxScoreSummaryDefinition,
	CommonAllPlayersDefinition,
	CommonTeamRosterDefinition,
	PlayerGameLogDefinition,
}

// Definitions lists every known endpoint.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

func LookupDefinition(name string) (Definition, bool) {
	for _, d := range definitions {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Definition{}, false
}
