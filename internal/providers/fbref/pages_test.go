package fbref

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"footstats-collector/internal/flatten"
)

func TestResolvePage(t *testing.T) {
	standard, _ := LookupStatType("standard")
	keeperAdv, _ := LookupStatType("keeper_adv")
	laLiga, _ := LookupLeague("ESP-La Liga")
	big5, _ := LookupLeague(Big5)

	cases := []struct {
		name   string
		table  Table
		league League
		stat   StatType
		path   string
		id     string
	}{
		{"league teams", TeamSeason, laLiga, standard, "/en/comps/12/2021-2022/stats/2021-2022-La-Liga-Stats", "stats_squads_standard_for"},
		{"league players", PlayerSeason, laLiga, keeperAdv, "/en/comps/12/2021-2022/keepersadv/2021-2022-La-Liga-Stats", "stats_keeper_adv"},
		{"big5 players", PlayerSeason, big5, standard, "/en/comps/Big5/2021-2022/stats/players/2021-2022-Big-5-European-Leagues-Stats", "stats_standard"},
		{"schedule", Schedule, laLiga, standard, "/en/comps/12/2021-2022/schedule/2021-2022-La-Liga-Scores-and-Fixtures", "sched_2021-2022_12_1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pg, err := resolvePage(tc.table, tc.league, "2021-2022", tc.stat)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pg.path != tc.path {
				t.Fatalf("expected %s, got %s", tc.path, pg.path)
			}
			if !pg.match(tc.id) {
				t.Fatalf("expected %s to match", tc.id)
			}
		})
	}
}

func TestResolvePageRejectsUnknownTable(t *testing.T) {
	league, _ := LookupLeague("GER-Bundesliga")
	if _, err := resolvePage(Table("lineups"), league, "2022-2023", StatType{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestLookupStatType(t *testing.T) {
	st, err := LookupStatType("goal_shot_creation")
	if err != nil || st.Page != "gca" || st.Stem != "gca" {
		t.Fatalf("unexpected stat type %+v %v", st, err)
	}
	if _, err := LookupStatType("expected"); err == nil {
		t.Fatal("expected unknown stat type error")
	}
	if len(TeamStatTypes) != len(statTypes) {
		t.Fatalf("team stat types out of sync: %d vs %d", len(TeamStatTypes), len(statTypes))
	}
}

func TestResolveLeagueAndSeasonPages(t *testing.T) {
	standard, _ := LookupStatType("standard")
	league, _ := LookupLeague("ITA-Serie A")

	pg, err := resolvePage(Seasons, league, "2022-2023", standard)
	if err != nil || pg.path != "/en/comps/11/history/Serie-A-Seasons" || !pg.match("seasons") {
		t.Fatalf("unexpected seasons page %+v %v", pg.path, err)
	}

	pg, err = resolvePage(Leagues, league, "2022-2023", standard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pg.path != "/en/comps/" || !pg.all || !pg.match("comps_1_fa_club_league_senior") {
		t.Fatalf("unexpected leagues page %+v", pg.path)
	}
	serieA := flatten.NewRecord("Competition Name", "Serie A", "url", "https://fbref.com/en/comps/11/history/Serie-A-Seasons")
	ligue1 := flatten.NewRecord("Competition Name", "Ligue 1", "url", "https://fbref.com/en/comps/13/history/Ligue-1-Seasons")
	if !pg.keep(serieA) || pg.keep(ligue1) {
		t.Fatal("expected only the Serie A row to be kept")
	}
}

func TestMatchPagesRequireSingleLeague(t *testing.T) {
	big5, _ := LookupLeague(Big5)
	for _, table := range []Table{TeamMatch, PlayerMatch} {
		if _, err := resolvePage(table, big5, "2022-2023", StatType{}); err == nil {
			t.Fatalf("expected %s to fail for %s", table, Big5)
		}
	}
}

func TestTeamMatchPagesFromSquadLinks(t *testing.T) {
	league, _ := LookupLeague("ENG-Premier League")
	rows := []flatten.Record{
		flatten.NewRecord("Squad", "Arsenal", "url", "https://fbref.com/en/squads/18bb7c10/2022-2023/Arsenal-Stats"),
		flatten.NewRecord("Squad", "League Average"),
	}
	subs := teamMatchPages(league, "2022-2023")(rows)
	if len(subs) != 1 {
		t.Fatalf("expected one subpage, got %d", len(subs))
	}
	want := "/en/squads/18bb7c10/2022-2023/matchlogs/c9/schedule/Arsenal-Scores-and-Fixtures-Premier-League"
	if subs[0].path != want || !subs[0].match("matchlogs_for") {
		t.Fatalf("unexpected subpage %s", subs[0].path)
	}
	if diff := cmp.Diff([][2]string{{"team", "Arsenal"}}, subs[0].meta); diff != "" {
		t.Fatalf("meta mismatch (-want +got):\n%s", diff)
	}
}

func TestPlayerMatchPagesSkipUnplayedMatches(t *testing.T) {
	rows := []flatten.Record{
		flatten.NewRecord("Date", "2022-08-05", "Home", "Crystal Palace", "Away", "Arsenal",
			"url", "https://fbref.com/en/matches/e62f6e78/Crystal-Palace-Arsenal-August-5-2022-Premier-League"),
		flatten.NewRecord("Date", "2023-05-28", "Home", "Southampton", "Away", "Liverpool",
			"url", "https://fbref.com/en/stathead/matchup/teams/33c895d4/822bd0ba"),
	}
	subs := playerMatchPages(rows)
	if len(subs) != 1 {
		t.Fatalf("expected one subpage, got %d", len(subs))
	}
	sp := subs[0]
	if sp.path != "/en/matches/e62f6e78/Crystal-Palace-Arsenal-August-5-2022-Premier-League" {
		t.Fatalf("unexpected path %s", sp.path)
	}
	if !sp.all || !sp.match("stats_18bb7c10_summary") || sp.match("stats_18bb7c10_passing") {
		t.Fatal("unexpected table matcher")
	}
	want := [][2]string{{"game", "2022-08-05 Crystal Palace-Arsenal"}, {"game_id", "e62f6e78"}}
	if diff := cmp.Diff(want, sp.meta); diff != "" {
		t.Fatalf("meta mismatch (-want +got):\n%s", diff)
	}
	if teamFromCaption("Arsenal Player Stats Table") != "Arsenal" {
		t.Fatal("expected caption to name the team")
	}
}
