package logging

import "log/slog"

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldRunID      = "run_id"
	FieldJob        = "job"
	FieldProvider   = "provider"
	FieldEntity     = "entity"
	FieldSeason     = "season"
	FieldVariant    = "variant"
	FieldURL        = "url"
	FieldPath       = "path"
	FieldAttempt    = "attempt"
	FieldStatusCode = "status_code"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
)

// WithCommon appends service/version fields when provided.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}
