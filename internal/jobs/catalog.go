// Package jobs defines the built-in collection jobs.
package jobs

import (
	"fmt"
	"sort"
	"strings"

	"footstats-collector/internal/collector"
	"footstats-collector/internal/config"
	"footstats-collector/internal/providers/fbref"
	"footstats-collector/internal/providers/footballdata"
	"footstats-collector/internal/providers/sofifa"
	"footstats-collector/internal/timeutil"
)

// Clients are the upstream clients jobs are bound to.
type Clients struct {
	FootballData *footballdata.Client
	FBref        *fbref.Client
	SoFIFA       *sofifa.Client
}

var (
	scorerCompetitions = []string{"BSA", "MLS", "PPL", "BL1", "DED", "ELC"}
	matchCompetitions  = []string{"BSA", "PPL", "BL1", "DED", "ELC"}
	fbrefLeagues       = []string{"ENG-Premier League", "ESP-La Liga", "FRA-Ligue 1", "GER-Bundesliga", "ITA-Serie A"}
	playerStatTypes    = []string{
		"keeper", "keeper_adv", "shooting", "passing", "passing_types",
		"goal_shot_creation", "defense", "possession", "playing_time", "misc",
	}
	leagueTables = []string{
		string(fbref.Leagues), string(fbref.Seasons), string(fbref.TeamSeason),
		string(fbref.TeamMatch), string(fbref.PlayerSeason), string(fbref.Schedule),
	}
)

// Catalog returns every job in run order.
func Catalog(cfg config.Config, c Clients) []collector.Job {
	fd := func(job collector.Job, ep footballdata.Endpoint, prefix string) collector.Job {
		job.Upstream = footballdata.ProviderName
		job.Kind = ep.Kind
		job.Source = c.FootballData.Source(ep)
		job.FileName = footballdata.FileName(prefix)
		job.RequestDelay = cfg.FootballData.RequestDelay
		job.EntityDelay = cfg.FootballData.EntityDelay
		return job
	}
	fb := func(job collector.Job, ep fbref.Endpoint) collector.Job {
		job.Upstream = fbref.ProviderName
		job.Source = c.FBref.Source(ep)
		job.Seasons.Format = timeutil.SeasonSpan
		job.RequestDelay = cfg.FBref.RequestDelay
		job.EntityDelay = cfg.FBref.EntityDelay
		return job
	}

	return []collector.Job{
		fd(collector.Job{
			Name:        "scorers",
			Description: "Top scorers per competition season",
			Entities:    scorerCompetitions,
			Seasons:     timeutil.SeasonRange{Start: 2016},
		}, footballdata.Scorers(), "scorers"),
		fd(collector.Job{
			Name:        "matches",
			Description: "Finished matches with unfolded details",
			Entities:    matchCompetitions,
			Seasons:     timeutil.SeasonRange{Start: 2022},
		}, footballdata.Matches(), "matches"),
		fd(collector.Job{
			Name:        "standings",
			Description: "League tables per competition season",
			Entities:    matchCompetitions,
			Seasons:     timeutil.SeasonRange{Start: 2022},
		}, footballdata.Standings(), "standings"),
		fd(collector.Job{
			Name:        "teams",
			Description: "Teams registered per competition season",
			Entities:    matchCompetitions,
			Seasons:     timeutil.SeasonRange{Start: 2022},
		}, footballdata.Teams(), "teams"),
		fb(collector.Job{
			Name:        "fbref-team-stats",
			Description: "Big 5 team season stats, one file per stat type",
			Kind:        fbref.KindTeamSeasonStats,
			Entities:    []string{fbref.Big5},
			Seasons:     timeutil.SeasonRange{Start: 2016},
			Variants:    fbref.TeamStatTypes,
		}, fbref.TeamStats()),
		fb(collector.Job{
			Name:        "fbref-player-stats",
			Description: "Big 5 player season stats, one file per stat type",
			Kind:        fbref.KindPlayerSeasonStats,
			Entities:    []string{fbref.Big5},
			Seasons:     timeutil.SeasonRange{Start: 2016},
			Variants:    playerStatTypes,
		}, fbref.PlayerStats()),
		fb(collector.Job{
			Name:        "fbref-leagues",
			Description: "League, season, team, team match, player and schedule tables per league",
			Kind:        fbref.KindLeagues,
			Entities:    fbrefLeagues,
			Seasons:     timeutil.SeasonRange{Start: 2010},
			Variants:    leagueTables,
		}, fbref.LeagueTables()),
		fb(collector.Job{
			Name:        "fbref-player-match",
			Description: "Per-match player stats from every match report",
			Kind:        fbref.KindPlayerMatch,
			Entities:    fbrefLeagues,
			Seasons:     timeutil.SeasonRange{Start: 2022, End: 2022},
			Variants:    []string{string(fbref.PlayerMatch)},
		}, fbref.LeagueTables()),
		fb(collector.Job{
			Name:        "fbref-team-summary",
			Description: "Big 5 team summary with translated columns",
			Kind:        fbref.KindTeamSummary,
			Entities:    []string{fbref.Big5},
			Seasons:     timeutil.SeasonRange{Start: 2016},
			FileName:    func(t collector.Target) string { return t.Season + ".csv" },
		}, fbref.TeamSummary()),
		{
			Name:         "sofifa-players",
			Description:  "SoFIFA players from the latest updates, one file per nationality",
			Upstream:     sofifa.ProviderName,
			Kind:         sofifa.KindPlayers,
			Entities:     []string{sofifa.Big5},
			Seasons:      timeutil.SeasonRange{Start: 2023},
			Source:       c.SoFIFA.Source(),
			SplitBy:      sofifa.SplitColumn,
			FileName:     nationalityFile,
			RequestDelay: cfg.SoFIFA.RequestDelay,
			EntityDelay:  cfg.SoFIFA.EntityDelay,
		},
	}
}

// nationalityFile names split SoFIFA files, e.g. jogadores_Ivory_Coast.csv.
func nationalityFile(t collector.Target) string {
	return "jogadores_" + strings.ReplaceAll(t.Entity, " ", "_") + ".csv"
}

// ApplyOverrides returns jobs with file overrides applied and disabled jobs removed.
func ApplyOverrides(jobs []collector.Job, overrides map[string]config.JobOverride) ([]collector.Job, error) {
	known := make(map[string]bool, len(jobs))
	for _, j := range jobs {
		known[j.Name] = true
	}
	var unknown []string
	for name := range overrides {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("jobs file names unknown jobs: %s", strings.Join(unknown, ", "))
	}

	out := make([]collector.Job, 0, len(jobs))
	for _, j := range jobs {
		o, ok := overrides[j.Name]
		if !ok {
			out = append(out, j)
			continue
		}
		if o.Disabled {
			continue
		}
		if len(o.Entities) > 0 {
			j.Entities = o.Entities
		}
		if o.StartYear != 0 {
			j.Seasons.Start = o.StartYear
		}
		if o.EndYear != 0 {
			j.Seasons.End = o.EndYear
		}
		if len(o.Variants) > 0 {
			j.Variants = o.Variants
		}
		// Split jobs name their files after the split value, so a second
		// entity would overwrite the first one's files.
		if j.SplitBy != "" && len(j.Entities) > 1 {
			return nil, fmt.Errorf("job %s splits by %s and takes a single entity, got %d", j.Name, j.SplitBy, len(j.Entities))
		}
		out = append(out, j)
	}
	return out, nil
}

// Lookup finds a job by name.
func Lookup(jobs []collector.Job, name string) (collector.Job, bool) {
	for _, j := range jobs {
		if j.Name == name {
			return j, true
		}
	}
	return collector.Job{}, false
}

// Select resolves the jobs to run. Named jobs keep the order given; an empty
// name list selects every job. upstream, when set, filters by source.
func Select(jobs []collector.Job, names []string, upstream string) ([]collector.Job, error) {
	var picked []collector.Job
	if len(names) == 0 {
		picked = append(picked, jobs...)
	} else {
		for _, name := range names {
			j, ok := Lookup(jobs, name)
			if !ok {
				return nil, fmt.Errorf("unknown job %q", name)
			}
			picked = append(picked, j)
		}
	}
	if upstream == "" {
		return picked, nil
	}

	out := picked[:0]
	for _, j := range picked {
		if j.Upstream == upstream {
			out = append(out, j)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no jobs for source %q", upstream)
	}
	return out, nil
}

// NeedsToken reports whether any job calls football-data.org.
func NeedsToken(jobs []collector.Job) bool {
	for _, j := range jobs {
		if j.Upstream == footballdata.ProviderName {
			return true
		}
	}
	return false
}
