package models

import "time"

type Game struct {
	GameID        string
	StatusText    string
	HomeTeamID    int
	VisitorTeamID int
	Broadcaster   string
}

type TeamLine struct {
	GameID       string
	TeamID       int
	Abbreviation string
	City         string
	Points       int
	HasPoints    bool
}

type Standing struct {
	TeamID     int
	Team       string
	Games      int
	Wins       int
	Losses     int
	WinPct     float64
	HomeRecord string
	RoadRecord string
}

// Matchup pairs a game with the line of each side.
type Matchup struct {
	Game    Game
	Home    TeamLine
	Visitor TeamLine
}

type ScoreboardSnapshot struct {
	GameDate  string
	Matchups  []Matchup
	FetchedAt time.Time
}
