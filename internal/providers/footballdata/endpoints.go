package footballdata

import (
	"net/url"
	"strconv"

	"footstats-collector/internal/collector"
	"footstats-collector/internal/flatten"
)

// competitionContext tags every row with the competition and season the
// response describes, falling back to the requested code.
var competitionContext = []flatten.ContextColumn{
	{Name: "competition_code", Path: "competition.code", Var: flatten.VarEntity},
	{Name: "competition_name", Path: "competition.name"},
	{Name: "season_start_year", Path: "season.startDate", Transform: flatten.SeasonYear},
}

// Scorers lists a competition's top scorers for one season.
func Scorers() Endpoint {
	return Endpoint{
		Name:     "scorers",
		Kind:     KindScorers,
		Resource: "scorers",
		Query: func(t collector.Target) url.Values {
			return url.Values{
				"season": {strconv.Itoa(t.Year)},
				"limit":  {strconv.Itoa(scorersLimit)},
			}
		},
		Schema: flatten.Schema{
			Candidates:  []string{"scorers"},
			RequireList: true,
			Separator:   ".",
			Context:     competitionContext,
		},
	}
}

// Matches lists a season's finished matches with nested details unfolded.
// The unfolded lists stay out of the row, one row per match.
func Matches() Endpoint {
	return Endpoint{
		Name:     "matches",
		Kind:     KindMatches,
		Resource: "matches",
		Query: func(t collector.Target) url.Values {
			return url.Values{
				"season": {strconv.Itoa(t.Year)},
				"status": {"FINISHED"},
			}
		},
		Headers: unfoldHeaders,
		Schema: flatten.Schema{
			Candidates:  []string{"matches"},
			RequireList: true,
			Separator:   "_",
			Fields: []flatten.FieldRule{
				flatten.Drop("goals"),
				flatten.Drop("bookings"),
				flatten.Drop("substitutions"),
				flatten.Drop("homeTeam_lineup"),
				flatten.Drop("homeTeam_bench"),
				flatten.Drop("awayTeam_lineup"),
				flatten.Drop("awayTeam_bench"),
				flatten.Drop("referees"),
			},
			Context: []flatten.ContextColumn{
				{Name: "competition_id_api", Path: "competition.id"},
				{Name: "competition_code_api", Path: "competition.code"},
				{Name: "competition_name_api", Path: "competition.name"},
				{Name: "season_filter_year", Var: flatten.VarYear},
			},
		},
	}
}

// Standings explodes every standings table (total, home, away) into rows
// carrying the table's stage, type and group.
func Standings() Endpoint {
	return Endpoint{
		Name:     "standings",
		Kind:     KindStandings,
		Resource: "standings",
		Query:    seasonQuery,
		Schema: flatten.Schema{
			Candidates:  []string{"standings.table"},
			RequireList: true,
			Separator:   "_",
			Context:     competitionContext,
		},
	}
}

// Teams lists the teams registered for a competition season.
func Teams() Endpoint {
	return Endpoint{
		Name:     "teams",
		Kind:     KindTeams,
		Resource: "teams",
		Query:    seasonQuery,
		Schema: flatten.Schema{
			Candidates:  []string{"teams"},
			RequireList: true,
			Separator:   "_",
			Context:     competitionContext,
		},
	}
}

func seasonQuery(t collector.Target) url.Values {
	return url.Values{"season": {strconv.Itoa(t.Year)}}
}

// FileName renders "<prefix>_<code>_<season>.csv".
func FileName(prefix string) func(collector.Target) string {
	return func(t collector.Target) string {
		return prefix + "_" + t.Entity + "_" + t.Season + ".csv"
	}
}
