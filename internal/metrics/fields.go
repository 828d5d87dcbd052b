package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrProvider = "provider"
	AttrJob      = "job"
	AttrOutcome  = "outcome"
)

// Target outcomes recorded per job.
const (
	OutcomeWritten = "written"
	OutcomeEmpty   = "empty"
	OutcomeFailed  = "failed"
)
