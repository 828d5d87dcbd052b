package fbref

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"footstats-collector/internal/collector"
	"footstats-collector/internal/testutil"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *testutil.Sleeper) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger, _ := testutil.NewBufferLogger()
	sleeper := &testutil.Sleeper{}
	c := NewClient(Config{
		BaseURL:    srv.URL,
		Timeout:    time.Second,
		HTTPClient: srv.Client(),
		Logger:     logger,
		Sleep:      sleeper.Sleep,
	})
	return c, sleeper
}

func big5Target(variant string) collector.Target {
	return collector.Target{Entity: Big5, Season: "2022-2023", Year: 2022, Variant: variant}
}

func TestCollectTeamSummaryTranslatesColumns(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/en/comps/Big5/2022-2023/stats/squads/2022-2023-Big-5-European-Leagues-Stats" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "Mozilla/5.0") {
			t.Fatalf("expected browser user agent, got %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(squadStatsPage))
	})

	batch, err := c.Collect(context.Background(), TeamSummary(), big5Target("standard"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch.Records) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(batch.Records))
	}
	wantCols := []string{
		"Equipe", "Jogadores Utilizados", "Idade Média", "Partidas", "Minutos Jogados",
		"Gols", "Assistências", "URL", "league", "season",
	}
	if diff := cmp.Diff(wantCols, batch.Records[0].Columns()); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	if v, _ := batch.Records[0].Get("league"); v != Big5 {
		t.Fatalf("expected league context, got %q", v)
	}
}

func TestCollectTeamStatsUsesVariantAsStatType(t *testing.T) {
	var gotPath string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(strings.ReplaceAll(squadStatsPage, "stats_squads_standard_for", "stats_teams_gca_for")))
	})

	batch, err := c.Collect(context.Background(), TeamStats(), big5Target("goal_shot_creation"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/en/comps/Big5/2022-2023/gca/squads/2022-2023-Big-5-European-Leagues-Stats" {
		t.Fatalf("unexpected path %s", gotPath)
	}
	if v, _ := batch.Records[0].Get("Playing Time_MP"); v != "38" {
		t.Fatalf("expected untranslated column, got %q", v)
	}
}

func TestCollectMissingTableIsError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>nothing here</p></body></html>`))
	})
	if _, err := c.Collect(context.Background(), PlayerStats(), big5Target("keeper")); err == nil {
		t.Fatal("expected error for page without table")
	}
}

func TestCollectNotFoundIsNotRetried(t *testing.T) {
	calls := 0
	c, sleeper := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.NotFound(w, r)
	})
	target := collector.Target{Entity: "ITA-Serie A", Season: "2010-2011", Year: 2010, Variant: "schedule"}
	if _, err := c.Collect(context.Background(), LeagueTables(), target); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 || len(sleeper.Waits()) != 0 {
		t.Fatalf("expected a single attempt, got %d calls and waits %v", calls, sleeper.Waits())
	}
}

func TestCollectBig5ScheduleFailsWithoutRequest(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected request %s", r.URL.Path)
	})
	if _, err := c.Collect(context.Background(), LeagueTables(), big5Target("schedule")); err == nil {
		t.Fatal("expected error for Big 5 schedule")
	}
}

func TestCollectUnknownLeague(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected request %s", r.URL.Path)
	})
	target := collector.Target{Entity: "POR-Primeira Liga", Season: "2022-2023", Variant: "team_season"}
	_, err := c.Collect(context.Background(), LeagueTables(), target)
	if err == nil {
		t.Fatal("expected unknown league error")
	}
	if !strings.Contains(err.Error(), "ESP-La Liga, FRA-Ligue 1") {
		t.Fatalf("expected known leagues in error, got %v", err)
	}
}

func TestCollectSendsBrowserUserAgent(t *testing.T) {
	var gotUA, gotPath string
	hc := testutil.ClientFunc(func(r *http.Request) (*http.Response, error) {
		gotUA, gotPath = r.Header.Get("User-Agent"), r.URL.Path
		return testutil.HTMLResponse(http.StatusOK, `<html><body></body></html>`), nil
	})
	sleeper := &testutil.Sleeper{}
	c := NewClient(Config{BaseURL: "http://fbref.test", HTTPClient: hc, Sleep: sleeper.Sleep})
	_, _ = c.Collect(context.Background(), PlayerStats(), big5Target("keeper"))
	if gotUA != defaultUserAgent {
		t.Fatalf("expected default user agent, got %q", gotUA)
	}
	if !strings.Contains(gotPath, "/keepers/players/") {
		t.Fatalf("unexpected path %q", gotPath)
	}
}

const premierLeagueSchedule = `<table id="sched_2022-2023_9_1"><thead><tr>
<th data-stat="date">Date</th><th data-stat="home_team">Home</th><th data-stat="away_team">Away</th><th data-stat="match_report">Match Report</th>
</tr></thead><tbody>
<tr><td>2022-08-05</td><td>Crystal Palace</td><td>Arsenal</td><td data-stat="match_report"><a href="/en/matches/e62f6e78/Crystal-Palace-Arsenal-August-5-2022-Premier-League">Match Report</a></td></tr>
<tr><td>2023-05-28</td><td>Southampton</td><td>Liverpool</td><td data-stat="match_report"><a href="/en/stathead/matchup/teams/33c895d4/822bd0ba">Head-to-Head</a></td></tr>
</tbody></table>`

const crystalPalaceArsenalReport = `<html><body>
<table id="stats_47c64c55_summary"><caption>Crystal Palace Player Stats Table</caption>
<thead><tr class="over_header"><th colspan="1"></th><th colspan="1">Performance</th></tr>
<tr><th data-stat="player">Player</th><th data-stat="goals">Gls</th></tr></thead>
<tbody><tr><th data-stat="player"><a href="/en/players/e0f7a3d2/Wilfried-Zaha">Wilfried Zaha</a></th><td>0</td></tr></tbody></table>
<table id="stats_18bb7c10_summary"><caption>Arsenal Player Stats Table</caption>
<thead><tr class="over_header"><th colspan="1"></th><th colspan="1">Performance</th></tr>
<tr><th data-stat="player">Player</th><th data-stat="goals">Gls</th></tr></thead>
<tbody><tr><th data-stat="player"><a href="/en/players/bc7dc64d/Bukayo-Saka">Bukayo Saka</a></th><td>0</td></tr>
<tr><th data-stat="player"><a href="/en/players/7a2e46a8/Gabriel-Martinelli">Gabriel Martinelli</a></th><td>1</td></tr></tbody></table>
</body></html>`

func TestCollectPlayerMatchReadsEveryPlayedMatch(t *testing.T) {
	var paths []string
	c, sleeper := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/en/comps/9/2022-2023/schedule/2022-2023-Premier-League-Scores-and-Fixtures":
			w.Write([]byte(premierLeagueSchedule))
		case "/en/matches/e62f6e78/Crystal-Palace-Arsenal-August-5-2022-Premier-League":
			w.Write([]byte(crystalPalaceArsenalReport))
		default:
			http.NotFound(w, r)
		}
	})
	target := collector.Target{Entity: "ENG-Premier League", Season: "2022-2023", Year: 2022, Variant: "player_match"}

	batch, err := c.Collect(context.Background(), LeagueTables(), target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected schedule plus one match report, got %v", paths)
	}
	if diff := cmp.Diff([]time.Duration{defaultPageDelay}, sleeper.Waits()); diff != "" {
		t.Fatalf("waits mismatch (-want +got):\n%s", diff)
	}
	if len(batch.Records) != 3 {
		t.Fatalf("expected 3 player rows, got %d", len(batch.Records))
	}
	wantCols := []string{"game", "game_id", "team", "Player", "Performance_Gls", "url", "league", "season"}
	if diff := cmp.Diff(wantCols, batch.Records[0].Columns()); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	last := batch.Records[2].Map()
	if last["team"] != "Arsenal" || last["Player"] != "Gabriel Martinelli" || last["game"] != "2022-08-05 Crystal Palace-Arsenal" {
		t.Fatalf("unexpected row %+v", last)
	}
}

func TestCollectTeamMatchFailsWhenAMatchLogFails(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/en/comps/") {
			w.Write([]byte(squadStatsPage))
			return
		}
		http.NotFound(w, r)
	})
	target := collector.Target{Entity: "ENG-Premier League", Season: "2022-2023", Year: 2022, Variant: "team_match"}
	if _, err := c.Collect(context.Background(), LeagueTables(), target); err == nil {
		t.Fatal("expected error when a match log is missing")
	}
}

func TestCollectTeamMatchAddsTeamColumn(t *testing.T) {
	matchLog := `<table id="matchlogs_for"><thead><tr><th data-stat="date">Date</th><th data-stat="opponent">Opponent</th><th data-stat="result">Result</th></tr></thead>
<tbody><tr><th>2022-08-05</th><td>Crystal Palace</td><td>W</td></tr></tbody></table>`
	c, sleeper := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/en/comps/9/2022-2023/stats/2022-2023-Premier-League-Stats":
			w.Write([]byte(squadStatsPage))
		case strings.Contains(r.URL.Path, "/matchlogs/c9/schedule/"):
			w.Write([]byte(matchLog))
		default:
			http.NotFound(w, r)
		}
	})
	target := collector.Target{Entity: "ENG-Premier League", Season: "2022-2023", Year: 2022, Variant: "team_match"}

	batch, err := c.Collect(context.Background(), LeagueTables(), target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch.Records) != 2 || len(sleeper.Waits()) != 2 {
		t.Fatalf("expected one row and one wait per team, got %d rows and waits %v", len(batch.Records), sleeper.Waits())
	}
	teams := []string{}
	for _, rec := range batch.Records {
		v, _ := rec.Get("team")
		teams = append(teams, v)
	}
	if diff := cmp.Diff([]string{"Arsenal", "Manchester City"}, teams); diff != "" {
		t.Fatalf("teams mismatch (-want +got):\n%s", diff)
	}
}
