package metrics

// Set is the group of metrics recorded by the HTTP API.
type Set struct {
	Registry *Registry

	// RequestsTotal counts API requests. Labels: method, route, status.
	RequestsTotal *Counter
	// RequestDuration is API request latency in seconds. Labels: method, route.
	RequestDuration *Histogram
	// RowsGenerated counts generated rows. Labels: endpoint (generate, export).
	RowsGenerated *Counter
	// ExportsTotal counts export attempts. Labels: format, outcome.
	ExportsTotal *Counter
	// SchemaFields is the number of fields in the stored schema.
	SchemaFields *Gauge
	// RateLimited counts requests refused by the rate limiter. Labels: route.
	RateLimited *Counter
}

// Export outcomes.
const (
	OutcomeOK           = "ok"
	OutcomeUnauthorized = "unauthorized"
	OutcomeError        = "error"
)

// NewSet creates a Set on a fresh Registry.
func NewSet() *Set {
	r := NewRegistry()
	return &Set{
		Registry: r,
		RequestsTotal: r.NewCounter(
			"mockmaster_http_requests_total",
			"Total number of API requests",
			"method", "route", "status",
		),
		RequestDuration: r.NewHistogram(
			"mockmaster_http_request_duration_seconds",
			"Duration of API requests in seconds",
			DefaultBuckets,
			"method", "route",
		),
		RowsGenerated: r.NewCounter(
			"mockmaster_rows_generated_total",
			"Total number of generated rows",
			"endpoint",
		),
		ExportsTotal: r.NewCounter(
			"mockmaster_exports_total",
			"Export requests by format and outcome",
			"format", "outcome",
		),
		SchemaFields: r.NewGauge(
			"mockmaster_schema_fields",
			"Number of fields in the stored schema",
		),
		RateLimited: r.NewCounter(
			"mockmaster_rate_limited_total",
			"Requests refused by the rate limiter",
			"route",
		),
	}
}
