package telemetry

// SLI metric names used for instrumentation.
const (
	// Latency
	MetricAPILatencyP50 = "api.latency.p50"
	MetricAPILatencyP95 = "api.latency.p95"
	MetricAPILatencyP99 = "api.latency.p99"

	// Throughput
	MetricRequestsPerSec = "api.requests_per_second"

	// Crew channel
	MetricCrewShareLatency = "crew.share_latency"
	MetricArchiveLag       = "crew.archive_lag_seconds"

	// Availability
	MetricUptime = "service.uptime_percentage"

	// Business
	MetricCalculations = "business.calculations_performed"
	MetricJobsSaved    = "business.jobs_saved"
)
