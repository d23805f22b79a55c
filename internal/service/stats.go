package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/omarshaarawi/nbastats/internal/api/nba"
	"github.com/omarshaarawi/nbastats/internal/models"
	"github.com/omarshaarawi/nbastats/internal/repository/memory"
)

const dateLayout = "1/2/2006"

type StatsService struct {
	api  *nba.Client
	repo *memory.Repository
}

func NewStatsService(api *nba.Client, repo *memory.Repository) *StatsService {
	return &StatsService{api: api, repo: repo}
}

// ParseDate accepts M/D/YYYY or MM/DD/YYYY. An empty string means today on
// the client clock.
func (s *StatsService) ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	now := s.api.Clock().Now()
	switch strings.ToLower(value) {
	case "", "today":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	}
	t, err := time.ParseInLocation(dateLayout, value, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected MM/DD/YYYY", value)
	}
	return t, nil
}

func (s *StatsService) GetScoreboard(ctx context.Context, date string) (string, error) {
	day, err := s.ParseDate(date)
	if err != nil {
		return "", err
	}
	return s.GetScoreboardFor(ctx, day)
}

func (s *StatsService) GetScoreboardFor(ctx context.Context, day time.Time) (string, error) {
	snapshot, err := s.loadSnapshot(ctx, day)
	if err != nil {
		return "", err
	}
	s.repo.SaveSnapshot(snapshot)

	return formatSnapshot(snapshot), nil
}

func (s *StatsService) loadSnapshot(ctx context.Context, day time.Time) (*models.ScoreboardSnapshot, error) {
	sb, err := s.api.Scoreboard(ctx, nba.ScoreboardDate(day))
	if err != nil {
		return nil, fmt.Errorf("error fetching scoreboard: %w", err)
	}

	header, err := sb.GameHeader()
	if err != nil {
		return nil, fmt.Errorf("error reading game header: %w", err)
	}
	games, err := models.GamesFromData(header)
	if err != nil {
		return nil, fmt.Errorf("error reading game header: %w", err)
	}

	lineScore, err := sb.LineScore()
	if err != nil {
		return nil, fmt.Errorf("error reading line score: %w", err)
	}
	lines, err := models.LineScoresFromData(lineScore)
	if err != nil {
		return nil, fmt.Errorf("error reading line score: %w", err)
	}

	slog.Info("Loaded scoreboard", "date", sb.GameDate(), "games", len(games))

	return &models.ScoreboardSnapshot{
		GameDate:  sb.GameDate(),
		Matchups:  models.Matchups(games, lines),
		FetchedAt: s.api.Clock().Now(),
	}, nil
}

func formatSnapshot(snapshot *models.ScoreboardSnapshot) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏀 *Scoreboard %s*\n\n", snapshot.GameDate))

	if len(snapshot.Matchups) == 0 {
		sb.WriteString("No games scheduled.")
		return sb.String()
	}

	for _, m := range snapshot.Matchups {
		sb.WriteString(fmt.Sprintf("*%s* %s @ *%s* %s\n",
			teamLabel(m.Visitor), points(m.Visitor), teamLabel(m.Home), points(m.Home)))
		sb.WriteString(fmt.Sprintf("   %s", strings.TrimSpace(m.Game.StatusText)))
		if m.Game.Broadcaster != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", m.Game.Broadcaster))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func teamLabel(line models.TeamLine) string {
	if line.Abbreviation == "" {
		return "TBD"
	}
	return line.Abbreviation
}

func points(line models.TeamLine) string {
	if !line.HasPoints {
		return "-"
	}
	return fmt.Sprintf("%d", line.Points)
}

func (s *StatsService) GetLastSnapshot() (string, error) {
	snapshot := s.repo.GetSnapshot()
	if snapshot == nil {
		return "", fmt.Errorf("no scoreboard has been loaded yet")
	}

	var sb strings.Builder
	sb.WriteString(formatSnapshot(snapshot))
	sb.WriteString(fmt.Sprintf("\n_Fetched %s_", snapshot.FetchedAt.Format("Jan 2 15:04 MST")))
	return sb.String(), nil
}

var conferences = []string{"east", "west"}

func (s *StatsService) GetStandings(ctx context.Context, conference string) (string, error) {
	conf, ok := bestMatch(conference, conferences, 0.5)
	if !ok {
		return "", fmt.Errorf("unknown conference %q, use east or west", conference)
	}

	sb, err := s.api.Scoreboard(ctx, nba.ScoreboardOptions{})
	if err != nil {
		return "", fmt.Errorf("error fetching scoreboard: %w", err)
	}

	data, err := sb.EastConfStandingsByDay()
	title := "Eastern"
	if conf == "west" {
		data, err = sb.WestConfStandingsByDay()
		title = "Western"
	}
	if err != nil {
		return "", fmt.Errorf("error reading standings: %w", err)
	}

	standings, err := models.StandingsFromData(data)
	if err != nil {
		return "", fmt.Errorf("error reading standings: %w", err)
	}

	var out strings.Builder
	out.WriteString(fmt.Sprintf("🏆 *%s Conference Standings* (%s)\n\n", title, sb.GameDate()))
	for i, team := range standings {
		out.WriteString(fmt.Sprintf("%d. *%s* %d-%d (%.3f)\n", i+1, team.Team, team.Wins, team.Losses, team.WinPct))
		if team.HomeRecord != "" || team.RoadRecord != "" {
			out.WriteString(fmt.Sprintf("   Home %s, Road %s\n", team.HomeRecord, team.RoadRecord))
		}
	}

	return out.String(), nil
}
