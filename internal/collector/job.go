// Package collector drives collection jobs: it enumerates targets, paces
// requests and hands each batch to the output writer.
package collector

import (
	"context"
	"strconv"
	"time"

	"footstats-collector/internal/flatten"
	"footstats-collector/internal/timeutil"
)

// Target is one (entity, season, variant) unit of work.
type Target struct {
	Entity  string
	Season  string
	Year    int
	Variant string
}

// Vars exposes the target to schema context columns.
func (t Target) Vars() flatten.Vars {
	return flatten.Vars{
		flatten.VarEntity:  t.Entity,
		flatten.VarSeason:  t.Season,
		flatten.VarYear:    strconv.Itoa(t.Year),
		flatten.VarVariant: t.Variant,
	}
}

// Batch is what a source produced for a target. Message carries any
// upstream note explaining an empty batch.
type Batch struct {
	Records []flatten.Record
	Message string
}

// Source fetches and flattens a single target.
type Source interface {
	Collect(ctx context.Context, target Target) (Batch, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, target Target) (Batch, error)

func (f SourceFunc) Collect(ctx context.Context, target Target) (Batch, error) {
	return f(ctx, target)
}

// Job describes one collection batch.
type Job struct {
	Name        string
	Description string
	// Upstream names the data source: "football-data", "fbref" or "sofifa".
	Upstream string
	// Kind is the endpoint folder under the output root.
	Kind     string
	Entities []string
	Seasons  timeutil.SeasonRange
	Variants []string
	Source   Source
	// SplitBy, when set, names the column whose values partition each batch
	// into one file apiece. The value stands in for the entity in the path
	// and file name.
	SplitBy  string
	FileName func(Target) string
	// RequestDelay precedes every Collect call.
	RequestDelay time.Duration
	// EntityDelay separates entities, skipped after the last one.
	EntityDelay time.Duration
}

// Targets expands the job for the given clock.
func (j Job) Targets(now time.Time) [][]Target {
	variants := j.Variants
	if len(variants) == 0 {
		variants = []string{""}
	}
	seasons := j.Seasons.Seasons(now)

	out := make([][]Target, 0, len(j.Entities))
	for _, entity := range j.Entities {
		group := make([]Target, 0, len(seasons)*len(variants))
		for _, season := range seasons {
			for _, variant := range variants {
				group = append(group, Target{
					Entity:  entity,
					Season:  season.Label,
					Year:    season.Year,
					Variant: variant,
				})
			}
		}
		out = append(out, group)
	}
	return out
}
