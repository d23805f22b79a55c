package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/omarshaarawi/nbastats/internal/api/nba"
	"github.com/omarshaarawi/nbastats/internal/config"
	"github.com/omarshaarawi/nbastats/internal/repository/memory"
	"github.com/omarshaarawi/nbastats/internal/resultset"
)

const scoreboardBody = `{"resultSets":[
  {"name":"GameHeader","headers":["GAME_ID","GAME_STATUS_TEXT","HOME_TEAM_ID","VISITOR_TEAM_ID","NATL_TV_BROADCASTER_ABBREVIATION"],
   "rowSet":[["0021900498","Final",1610612748,1610612739,null],["0021900499","10:30 pm ET",1610612744,1610612756,"ESPN"]]},
  {"name":"LineScore","headers":["GAME_ID","TEAM_ID","TEAM_ABBREVIATION","TEAM_CITY_NAME","PTS"],
   "rowSet":[["0021900498",1610612739,"CLE","Cleveland",111],["0021900498",1610612748,"MIA","Miami",121],
             ["0021900499",1610612756,"PHX","Phoenix",null],["0021900499",1610612744,"GSW","Golden State",null]]},
  {"name":"SeriesStandings","headers":["GAME_ID"],"rowSet":[]},
  {"name":"LastMeeting","headers":["GAME_ID"],"rowSet":[]},
  {"name":"EastConfStandingsByDay","headers":["TEAM_ID","TEAM","G","W","L","W_PCT","HOME_RECORD","ROAD_RECORD"],
   "rowSet":[[1610612749,"Milwaukee",35,31,4,0.886,"17-1","14-3"],[1610612738,"Boston",33,23,10,0.697,"14-3","9-7"]]},
  {"name":"WestConfStandingsByDay","headers":["TEAM_ID","TEAM","G","W","L","W_PCT","HOME_RECORD","ROAD_RECORD"],
   "rowSet":[[1610612747,"L.A. Lakers",34,27,7,0.794,"14-3","13-4"]]},
  {"name":"Available","headers":["GAME_ID","PT_AVAILABLE"],"rowSet":[["0021900498",1]]}
]}`

type testEnv struct {
	svc     *StatsService
	repo    *memory.Repository
	clock   clockwork.Clock
	queries chan map[string]string
}

func newTestEnv(t *testing.T, format resultset.Format) *testEnv {
	t.Helper()
	queries := make(chan map[string]string, 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := map[string]string{"path": r.URL.Path}
		for k := range r.URL.Query() {
			q[k] = r.URL.Query().Get(k)
		}
		queries <- q
		switch r.URL.Path {
		case "/scoreboard/":
			io.WriteString(w, scoreboardBody)
		case "/commonteamroster/":
			io.WriteString(w, `{"resultSets":[
				{"name":"CommonTeamRoster","headers":["PLAYER","NUM","AGE"],"rowSet":[["Stephen Curry","30",31.0],["Draymond Green","23",29.5]]},
				{"name":"Coaches","headers":["COACH_NAME"],"rowSet":[["Steve Kerr"]]}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	clock := clockwork.NewFakeClockAt(time.Date(2020, time.January, 2, 15, 0, 0, 0, time.UTC))
	client := nba.NewClient(
		config.StatsAPI{BaseURL: srv.URL, Timeout: 5 * time.Second, Output: format},
		nba.WithClock(clock),
		nba.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	repo := memory.NewRepository()

	return &testEnv{
		svc:     NewStatsService(client, repo),
		repo:    repo,
		clock:   clock,
		queries: queries,
	}
}

func TestGetScoreboard(t *testing.T) {
	for _, format := range []resultset.Format{resultset.FormatTable, resultset.FormatRecords} {
		env := newTestEnv(t, format)

		report, err := env.svc.GetScoreboard(context.Background(), "1/1/2020")
		if err != nil {
			t.Fatalf("GetScoreboard(%s) failed: %v", format, err)
		}
		if q := <-env.queries; q["GameDate"] != "01/01/2020" {
			t.Errorf("GameDate = %q", q["GameDate"])
		}

		for _, want := range []string{"Scoreboard 01/01/2020", "*CLE* 111 @ *MIA* 121", "Final", "*PHX* - @ *GSW* -", "(ESPN)"} {
			if !strings.Contains(report, want) {
				t.Errorf("%s report missing %q:\n%s", format, want, report)
			}
		}

		snapshot := env.repo.GetSnapshot()
		if snapshot == nil || len(snapshot.Matchups) != 2 {
			t.Fatalf("snapshot not saved: %+v", snapshot)
		}
		if !snapshot.FetchedAt.Equal(env.clock.Now()) {
			t.Errorf("FetchedAt = %v", snapshot.FetchedAt)
		}
	}
}

func TestGetScoreboard_DefaultsToToday(t *testing.T) {
	env := newTestEnv(t, resultset.FormatTable)

	if _, err := env.svc.GetScoreboard(context.Background(), ""); err != nil {
		t.Fatalf("GetScoreboard failed: %v", err)
	}
	if q := <-env.queries; q["GameDate"] != "01/02/2020" {
		t.Errorf("GameDate = %q, want clock date", q["GameDate"])
	}

	if _, err := env.svc.GetScoreboard(context.Background(), "yesterday"); err != nil {
		t.Fatalf("GetScoreboard failed: %v", err)
	}
	if q := <-env.queries; q["GameDate"] != "01/01/2020" {
		t.Errorf("GameDate = %q, want yesterday", q["GameDate"])
	}
}

func TestGetScoreboard_InvalidDate(t *testing.T) {
	env := newTestEnv(t, resultset.FormatTable)

	if _, err := env.svc.GetScoreboard(context.Background(), "2020-01-01"); err == nil {
		t.Fatal("expected error for invalid date")
	}
	if len(env.queries) != 0 {
		t.Error("invalid date must not reach the API")
	}
}

func TestGetLastSnapshot(t *testing.T) {
	env := newTestEnv(t, resultset.FormatTable)

	if _, err := env.svc.GetLastSnapshot(); err == nil {
		t.Fatal("expected error before any scoreboard was loaded")
	}

	if _, err := env.svc.GetScoreboard(context.Background(), "01/01/2020"); err != nil {
		t.Fatalf("GetScoreboard failed: %v", err)
	}
	last, err := env.svc.GetLastSnapshot()
	if err != nil {
		t.Fatalf("GetLastSnapshot failed: %v", err)
	}
	if !strings.Contains(last, "Scoreboard 01/01/2020") || !strings.Contains(last, "Fetched Jan 2 15:00 UTC") {
		t.Errorf("unexpected report:\n%s", last)
	}
}

func TestGetStandings(t *testing.T) {
	env := newTestEnv(t, resultset.FormatRecords)

	report, err := env.svc.GetStandings(context.Background(), "WEST")
	if err != nil {
		t.Fatalf("GetStandings failed: %v", err)
	}
	if !strings.Contains(report, "Western Conference Standings") || !strings.Contains(report, "1. *L.A. Lakers* 27-7 (0.794)") {
		t.Errorf("unexpected report:\n%s", report)
	}

	report, err = env.svc.GetStandings(context.Background(), "eastern")
	if err != nil {
		t.Fatalf("GetStandings failed: %v", err)
	}
	if !strings.Contains(report, "2. *Boston* 23-10") {
		t.Errorf("unexpected report:\n%s", report)
	}

	if _, err := env.svc.GetStandings(context.Background(), "central"); err == nil {
		t.Error("expected error for unknown conference")
	}
}

func TestGetTable(t *testing.T) {
	env := newTestEnv(t, resultset.FormatTable)

	report, err := env.svc.GetTable(context.Background(), "teamroster", "roster", map[string]string{
		"TeamID": "1610612744",
		"Season": "2019-20",
	})
	if err != nil {
		t.Fatalf("GetTable failed: %v", err)
	}
	q := <-env.queries
	if q["path"] != "/commonteamroster/" || q["TeamID"] != "1610612744" || q["LeagueID"] != nba.LeagueNBA {
		t.Errorf("unexpected query: %v", q)
	}
	for _, want := range []string{"commonteamroster / CommonTeamRoster", "(2 rows)", "Stephen Curry", "29.500"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestGetTable_Errors(t *testing.T) {
	env := newTestEnv(t, resultset.FormatTable)
	ctx := context.Background()

	if _, err := env.svc.GetTable(ctx, "shotchart", "x", nil); err == nil {
		t.Error("expected unknown endpoint error")
	}
	if _, err := env.svc.GetTable(ctx, "scoreboard", "playbyplay", nil); err == nil {
		t.Error("expected unknown result set error")
	}
	if _, err := env.svc.GetTable(ctx, "commonteamroster", "coaches", nil); err == nil {
		t.Error("expected missing parameter error")
	}
}

func TestRenderText_Limit(t *testing.T) {
	rows := make([][]any, 20)
	for i := range rows {
		rows[i] = []any{float64(i), "x"}
	}
	table := &resultset.Table{Headers: []string{"N", "V"}, Rows: rows}

	out := RenderText(table, 5)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected header, 5 rows and a footer, got %d lines:\n%s", len(lines), out)
	}
	if lines[len(lines)-1] != "... 15 more rows" {
		t.Errorf("footer = %q", lines[len(lines)-1])
	}
}

func TestBestMatch(t *testing.T) {
	candidates := []string{"GameHeader", "LineScore", "EastConfStandingsByDay", "WestConfStandingsByDay"}
	tests := []struct {
		query string
		want  string
		ok    bool
	}{
		{"linescore", "LineScore", true},
		{"eastconf", "EastConfStandingsByDay", true},
		{"GameHeadr", "GameHeader", true},
		{"", "", false},
		{"officials", "", false},
	}
	for _, tt := range tests {
		got, ok := bestMatch(tt.query, candidates, 0.6)
		if got != tt.want || ok != tt.ok {
			t.Errorf("bestMatch(%q) = %q, %v; want %q, %v", tt.query, got, ok, tt.want, tt.ok)
		}
	}
}

func TestListEndpoints(t *testing.T) {
	env := newTestEnv(t, resultset.FormatTable)

	out := env.svc.ListEndpoints()
	for _, want := range []string{"*scoreboard*", "GameDate", "DayOffset=0", "PlayerGameLog"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q:\n%s", want, out)
		}
	}
}

func TestParseParams(t *testing.T) {
	params, err := ParseParams([]string{"PlayerID=201939", "SeasonType=Regular_Season"})
	if err != nil {
		t.Fatalf("ParseParams failed: %v", err)
	}
	if params["PlayerID"] != "201939" || params["SeasonType"] != "Regular Season" {
		t.Errorf("params = %v", params)
	}

	for _, args := range [][]string{
		{"=x"},
		{"Season"},
		{"Season=2019-20", "season=2018-19"},
		{"Season=2019-20", "Season=2018-19"},
	} {
		if _, err := ParseParams(args); err == nil {
			t.Errorf("ParseParams(%q) expected error", args)
		}
	}
}
