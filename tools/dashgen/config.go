package main

import "errors"

// KnownMetrics is the set of metric names exported by vitam-chat plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"vchat_http_request_duration_seconds": true,
	"vchat_http_requests_total":           true,

	// Health metrics.
	"vchat_healthz_up": true,
	"vchat_readyz_up":  true,

	// Upstream webhook metrics.
	"vchat_upstream_request_duration_seconds": true,
	"vchat_upstream_requests_total":           true,
	"vchat_upstream_failures_total":           true,
	"vchat_upstream_daily_usage":              true,
	"vchat_upstream_daily_limit_hits_total":   true,

	// Normalization metrics.
	"vchat_replies_total":           true,
	"vchat_enveloped_replies_total": true,
	"vchat_fallback_replies_total":  true,
	"vchat_products_mapped_total":   true,

	// Session and cart metrics.
	"vchat_active_sessions":        true,
	"vchat_sessions_created_total": true,
	"vchat_sessions_expired_total": true,
	"vchat_cart_adds_total":        true,
	"vchat_cart_removes_total":     true,

	// Exchange log metrics.
	"vchat_exchanges_recorded_total": true,
	"vchat_exchanges_purged_total":   true,
	"vchat_store_errors_total":       true,

	// Scheduler and notification metrics.
	"vchat_scheduler_next_run_timestamp": true,
	"vchat_scheduler_job_runs_total":     true,
	"vchat_notification_failures_total":  true,

	// Recording rules.
	"vchat:http_requests:rate5m":     true,
	"vchat:http_errors:rate5m":       true,
	"vchat:upstream_requests:rate5m": true,
	"vchat:upstream_failures:rate5m": true,
	"vchat:replies:rate5m":           true,
	"vchat:store_errors:rate5m":      true,

	// Standard Prometheus metrics referenced in alerts.
	"up": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
