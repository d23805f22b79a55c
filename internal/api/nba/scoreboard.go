package nba

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/omarshaarawi/nbastats/internal/resultset"
)

// ScoreboardOptions selects the day to load. Zero Month, Day or Year fall
// back to the client clock's current date, each field on its own.
type ScoreboardOptions struct {
	Month     int
	Day       int
	Year      int
	LeagueID  string
	DayOffset int
}

// ScoreboardDate fills options from a date.
func ScoreboardDate(t time.Time) ScoreboardOptions {
	return ScoreboardOptions{Month: int(t.Month()), Day: t.Day(), Year: t.Year()}
}

// Scoreboard is the games and standings for one day.
type Scoreboard struct {
	*Endpoint
	gameDate string
}

func (c *Client) Scoreboard(ctx context.Context, opts ScoreboardOptions) (*Scoreboard, error) {
	now := c.clock.Now()
	if opts.Month == 0 {
		opts.Month = int(now.Month())
	}
	if opts.Day == 0 {
		opts.Day = now.Day()
	}
	if opts.Year == 0 {
		opts.Year = now.Year()
	}
	if opts.LeagueID == "" {
		opts.LeagueID = LeagueDefault
	}

	gameDate := fmt.Sprintf("%02d/%02d/%d", opts.Month, opts.Day, opts.Year)

	endpoint, err := c.Load(ctx, ScoreboardDefinition, map[string]string{
		"LeagueID":  opts.LeagueID,
		"GameDate":  gameDate,
		"DayOffset": strconv.Itoa(opts.DayOffset),
	})
	if err != nil {
		return nil, err
	}

	return &Scoreboard{Endpoint: endpoint, gameDate: gameDate}, nil
}

// GameDate is the MM/DD/YYYY date the scoreboard was requested for.
func (s *Scoreboard) GameDate() string {
	return s.gameDate
}

func (s *Scoreboard) GameHeader() (resultset.Data, error) {
	return s.At(0)
}

func (s *Scoreboard) LineScore() (resultset.Data, error) {
	return s.At(1)
}

func (s *Scoreboard) SeriesStandings() (resultset.Data, error) {
	return s.At(2)
}

func (s *Scoreboard) LastMeeting() (resultset.Data, error) {
	return s.At(3)
}

func (s *Scoreboard) EastConfStandingsByDay() (resultset.Data, error) {
	return s.At(4)
}

func (s *Scoreboard) WestConfStandingsByDay() (resultset.Data, error) {
	return s.At(5)
}

func (s *Scoreboard) Available() (resultset.Data, error) {
	return s.At(6)
}
