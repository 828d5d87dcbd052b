package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"footstats-collector/internal/fetch"
	"footstats-collector/internal/flatten"
	"footstats-collector/internal/logging"
	"footstats-collector/internal/metrics"
	"footstats-collector/internal/output"
	"footstats-collector/internal/timeutil"
)

// Writer persists a batch at a path.
type Writer interface {
	Write(records []flatten.Record, path string) error
	Layout() output.Layout
}

// Stats summarizes a job run.
type Stats struct {
	Targets int
	Written int
	Empty   int
	Failed  int
}

// Runner executes jobs sequentially.
type Runner struct {
	writer  Writer
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
	sleep   func(context.Context, time.Duration) error
}

// NewRunner constructs a runner writing through w.
func NewRunner(w Writer, logger *slog.Logger, recorder *metrics.Recorder) *Runner {
	return &Runner{
		writer:  w,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
		sleep:   timeutil.Sleep,
	}
}

// Run enumerates every target of job. Per-target failures are logged and
// skipped; only context cancellation stops the loop early.
func (r *Runner) Run(ctx context.Context, job Job) (Stats, error) {
	var stats Stats
	if r == nil || r.writer == nil {
		return stats, errors.New("collector runner not configured")
	}
	if job.Source == nil {
		return stats, fmt.Errorf("job %s has no source", job.Name)
	}

	logger := logging.FromContext(ctx, r.logger)
	if logger != nil {
		logger = logger.With(slog.String(logging.FieldJob, job.Name))
	}
	ctx = logging.WithContext(ctx, logger)

	groups := job.Targets(r.now())
	logging.Info(logger, "job starting",
		slog.Int("entities", len(job.Entities)),
		slog.String("seasons", job.Seasons.String()),
		slog.Int("variants", len(job.Variants)),
	)

	for i, group := range groups {
		for _, target := range group {
			if err := r.sleep(ctx, job.RequestDelay); err != nil {
				return stats, err
			}
			stats.Targets++
			switch r.runTarget(ctx, logger, job, target) {
			case metrics.OutcomeWritten:
				stats.Written++
			case metrics.OutcomeEmpty:
				stats.Empty++
			default:
				stats.Failed++
			}
		}
		if i < len(groups)-1 {
			if err := r.sleep(ctx, job.EntityDelay); err != nil {
				return stats, err
			}
		}
	}

	logging.Info(logger, "job finished", slog.Int("files_written", stats.Written))
	return stats, nil
}

func (r *Runner) runTarget(ctx context.Context, logger *slog.Logger, job Job, target Target) string {
	start := r.now()
	args := []any{
		slog.String(logging.FieldEntity, target.Entity),
		slog.String(logging.FieldSeason, target.Season),
	}
	if target.Variant != "" {
		args = append(args, slog.String(logging.FieldVariant, target.Variant))
	}

	outcome := metrics.OutcomeFailed
	defer func() {
		r.metrics.RecordTarget(job.Name, outcome, r.now().Sub(start))
	}()

	batch, err := job.Source.Collect(ctx, target)
	if err != nil {
		logging.Error(logger, "collect failed", err,
			append(args, slog.Bool("permanent", fetch.IsPermanent(fetch.DefaultPolicy(), err)))...)
		return outcome
	}
	if len(batch.Records) == 0 {
		outcome = metrics.OutcomeEmpty
		if batch.Message != "" {
			args = append(args, slog.String("message", batch.Message))
		}
		logging.Warn(logger, "no records", args...)
		return outcome
	}

	parts := []part{{entity: target.Entity, records: batch.Records}}
	if job.SplitBy != "" {
		parts = splitRecords(batch.Records, job.SplitBy)
		if len(parts) == 0 {
			logging.Error(logger, "split failed", fmt.Errorf("no record has column %q", job.SplitBy), args...)
			return outcome
		}
	}

	failed := false
	for _, p := range parts {
		t := target
		t.Entity = p.entity
		path := r.writer.Layout().Path(job.Kind, t.Entity, t.Season, job.fileName(t))
		if err := r.writer.Write(p.records, path); err != nil {
			logging.Error(logger, "write failed", err, append(args, slog.String(logging.FieldPath, path))...)
			failed = true
			continue
		}
		r.metrics.RecordFileWritten(job.Name, len(p.records))
		logging.Info(logger, "file written", append(args,
			slog.String(logging.FieldPath, path),
			slog.Int(logging.FieldCount, len(p.records)),
			slog.Int64(logging.FieldDurationMS, r.now().Sub(start).Milliseconds()),
		)...)
	}
	if !failed {
		outcome = metrics.OutcomeWritten
	}
	return outcome
}

// part is the slice of a batch that goes to one file.
type part struct {
	entity  string
	records []flatten.Record
}

// splitRecords groups records by the value of column in first-seen order.
// Records with an empty or missing value are left out.
func splitRecords(records []flatten.Record, column string) []part {
	index := make(map[string]int)
	var parts []part
	for _, rec := range records {
		v, _ := rec.Get(column)
		if v == "" {
			continue
		}
		i, ok := index[v]
		if !ok {
			i = len(parts)
			index[v] = i
			parts = append(parts, part{entity: v})
		}
		parts[i].records = append(parts[i].records, rec)
	}
	return parts
}

func (j Job) fileName(t Target) string {
	if j.FileName != nil {
		return j.FileName(t)
	}
	if t.Variant != "" {
		return t.Variant + ".csv"
	}
	return fmt.Sprintf("%s_%s_%s.csv", j.Kind, t.Entity, t.Season)
}
