package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type jobStats struct {
	outcomes     map[string]int
	filesWritten int
	rowsWritten  int
}

// Recorder captures lightweight, in-memory metrics about upstream calls and
// job progress, mirrored into OTel instruments when configured.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*providerStats
	jobs  map[string]*jobStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		jobs:  make(map[string]*jobStats),
		otel:  otel,
	}
}

// RecordFetchAttempt increments counters for one HTTP attempt and stores the last observed latency.
func (r *Recorder) RecordFetchAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFetchAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks a 429 response and stores the advertised wait.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordTarget counts the outcome of one collection target.
func (r *Recorder) RecordTarget(job, outcome string, duration time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureJob(job)
	stats.outcomes[outcome]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordTarget(job, outcome, duration)
	}
}

// RecordFileWritten counts a written output file and its rows.
func (r *Recorder) RecordFileWritten(job string, rows int) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureJob(job)
	stats.filesWritten++
	stats.rowsWritten += rows
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFileWritten(job, rows)
	}
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// JobSnapshot is a copy of a job's counters.
type JobSnapshot struct {
	Outcomes     map[string]int
	FilesWritten int
	RowsWritten  int
}

func (r *Recorder) JobSnapshot(job string) JobSnapshot {
	if r == nil {
		return JobSnapshot{Outcomes: map[string]int{}}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := JobSnapshot{Outcomes: map[string]int{}}
	stats, ok := r.jobs[job]
	if !ok {
		return snap
	}
	for k, v := range stats.outcomes {
		snap.Outcomes[k] = v
	}
	snap.FilesWritten = stats.filesWritten
	snap.RowsWritten = stats.rowsWritten
	return snap
}

// ensureStats and ensureJob expect r.mu to be held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}

func (r *Recorder) ensureJob(job string) *jobStats {
	stats, ok := r.jobs[job]
	if !ok {
		stats = &jobStats{outcomes: make(map[string]int)}
		r.jobs[job] = stats
	}
	return stats
}
