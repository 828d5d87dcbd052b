package fbref

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"footstats-collector/internal/flatten"
)

// Table selects a family of FBref pages.
type Table string

const (
	TeamSeason   Table = "team_season"
	PlayerSeason Table = "player_season"
	Schedule     Table = "schedule"
	Leagues      Table = "leagues"
	Seasons      Table = "seasons"
	// TeamMatch and PlayerMatch are read from one page per team or match.
	TeamMatch   Table = "team_match"
	PlayerMatch Table = "player_match"
)

// page is a resolved document location plus how to find the table in it.
type page struct {
	path  string
	match func(id string) bool
	// all concatenates every matching table instead of taking the first.
	all bool
	// keep filters rows; nil keeps all of them.
	keep func(flatten.Record) bool
	// expand turns the rows of an index page into the pages holding the data.
	expand func(rows []flatten.Record) []subpage
}

// subpage is a page reached from an index row.
type subpage struct {
	page
	// meta columns lead every row read from the subpage.
	meta [][2]string
	// captionColumn, when set, receives the team named by each table caption.
	captionColumn string
}

func resolvePage(table Table, league League, season string, stat StatType) (page, error) {
	switch table {
	case TeamSeason:
		ids := []string{
			"stats_squads_" + stat.Stem + "_for",
			"stats_teams_" + stat.Stem + "_for",
		}
		path := fmt.Sprintf("/en/comps/%s/%s/%s/%s-%s-Stats", league.ID, season, stat.Page, season, league.Slug)
		if league.combined() {
			path = fmt.Sprintf("/en/comps/%s/%s/%s/squads/%s-%s-Stats", league.ID, season, stat.Page, season, league.Slug)
		}
		return page{path: path, match: idIn(ids...)}, nil
	case PlayerSeason:
		path := fmt.Sprintf("/en/comps/%s/%s/%s/%s-%s-Stats", league.ID, season, stat.Page, season, league.Slug)
		if league.combined() {
			path = fmt.Sprintf("/en/comps/%s/%s/%s/players/%s-%s-Stats", league.ID, season, stat.Page, season, league.Slug)
		}
		return page{path: path, match: idIn("stats_" + stat.Stem)}, nil
	case Schedule:
		if league.combined() {
			return page{}, fmt.Errorf("fbref: %s has no schedule page", league.Name)
		}
		path := fmt.Sprintf("/en/comps/%s/%s/schedule/%s-%s-Scores-and-Fixtures", league.ID, season, season, league.Slug)
		return page{path: path, match: scheduleTable}, nil
	case Leagues:
		prefix := "/en/comps/" + league.ID + "/"
		return page{
			path:  "/en/comps/",
			match: func(id string) bool { return strings.HasPrefix(id, "comps_") },
			all:   true,
			keep: func(rec flatten.Record) bool {
				link, _ := rec.Get("url")
				return strings.Contains(link, prefix)
			},
		}, nil
	case Seasons:
		path := fmt.Sprintf("/en/comps/%s/history/%s-Seasons", league.ID, league.Slug)
		return page{path: path, match: idIn("seasons")}, nil
	case TeamMatch:
		if league.combined() {
			return page{}, fmt.Errorf("fbref: %s has no per-league match logs", league.Name)
		}
		index, err := resolvePage(TeamSeason, league, season, stat)
		if err != nil {
			return page{}, err
		}
		index.expand = teamMatchPages(league, season)
		return index, nil
	case PlayerMatch:
		index, err := resolvePage(Schedule, league, season, stat)
		if err != nil {
			return page{}, err
		}
		index.expand = playerMatchPages
		return index, nil
	default:
		return page{}, fmt.Errorf("unknown fbref table %q", table)
	}
}

// teamMatchPages maps squad rows to each team's match log for the league.
func teamMatchPages(league League, season string) func([]flatten.Record) []subpage {
	return func(rows []flatten.Record) []subpage {
		var out []subpage
		for _, row := range rows {
			link, _ := row.Get("url")
			id, name, ok := squadRef(link)
			if !ok {
				continue
			}
			team, _ := row.Get("Squad")
			path := fmt.Sprintf("/en/squads/%s/%s/matchlogs/c%s/schedule/%s-Scores-and-Fixtures-%s",
				id, season, league.ID, name, league.Slug)
			out = append(out, subpage{
				page: page{path: path, match: idIn("matchlogs_for")},
				meta: [][2]string{{"team", team}},
			})
		}
		return out
	}
}

// playerMatchPages maps played schedule rows to their match reports.
func playerMatchPages(rows []flatten.Record) []subpage {
	var out []subpage
	for _, row := range rows {
		link, _ := row.Get("url")
		path, id, ok := matchRef(link)
		if !ok {
			continue
		}
		date, _ := row.Get("Date")
		home, _ := row.Get("Home")
		away, _ := row.Get("Away")
		out = append(out, subpage{
			page: page{path: path, match: playerSummaryTable, all: true},
			meta: [][2]string{
				{"game", date + " " + home + "-" + away},
				{"game_id", id},
			},
			captionColumn: "team",
		})
	}
	return out
}

// squadRef reads the team id and URL name from a squad link such as
// /en/squads/b8fd03ef/2022-2023/Manchester-City-Stats.
func squadRef(link string) (id, name string, ok bool) {
	segs := pathSegments(link)
	if len(segs) < 4 || segs[0] != "en" || segs[1] != "squads" {
		return "", "", false
	}
	last := segs[len(segs)-1]
	if !strings.HasSuffix(last, "-Stats") {
		return "", "", false
	}
	return segs[2], strings.TrimSuffix(last, "-Stats"), true
}

// matchRef accepts match report links (/en/matches/<id>/...) only.
func matchRef(link string) (path, id string, ok bool) {
	segs := pathSegments(link)
	if len(segs) < 3 || segs[0] != "en" || segs[1] != "matches" {
		return "", "", false
	}
	return "/" + strings.Join(segs, "/"), segs[2], true
}

func pathSegments(link string) []string {
	if link == "" {
		return nil
	}
	u, err := url.Parse(link)
	if err != nil {
		return nil
	}
	return strings.Split(strings.Trim(u.Path, "/"), "/")
}

var playerSummaryID = regexp.MustCompile(`^stats_[0-9a-f]{8}_summary$`)

func playerSummaryTable(id string) bool {
	return playerSummaryID.MatchString(id)
}

// teamFromCaption turns "Arsenal Player Stats Table" into "Arsenal".
func teamFromCaption(caption string) string {
	return strings.TrimSpace(strings.TrimSuffix(caption, "Player Stats Table"))
}

func scheduleTable(id string) bool {
	return strings.HasPrefix(id, "sched")
}

func idIn(ids ...string) func(string) bool {
	return func(id string) bool {
		for _, want := range ids {
			if id == want {
				return true
			}
		}
		return false
	}
}
