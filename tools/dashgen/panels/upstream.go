package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// UpstreamCallsRate returns a timeseries panel showing the webhook call rate.
func UpstreamCallsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Webhook Calls Rate").
		Description("Upstream webhook calls per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`vchat:upstream_requests:rate5m`, "calls/s", "A")).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// UpstreamLatency returns a timeseries panel showing webhook latency
// percentiles. The conversational flow is slow, so p95 sits in seconds.
func UpstreamLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Webhook Latency").
		Description("Upstream webhook call duration percentiles").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(HistogramQuantile(0.50, "vchat_upstream_request_duration_seconds"), "p50", "A")).
		WithTarget(PromQuery(HistogramQuantile(0.95, "vchat_upstream_request_duration_seconds"), "p95", "B")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(15, 30)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// UpstreamFailures returns a timeseries panel showing failed webhook calls
// by reason.
func UpstreamFailures() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Webhook Failures").
		Description("Failed upstream calls per second by reason (timeout, status, transport, rate_limited, not_configured)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum(rate(vchat_upstream_failures_total{`+job+`}[5m])) by (reason)`,
			"{{reason}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// DailyUsage returns a timeseries panel showing the daily webhook
// usage against the daily limit.
func DailyUsage() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Daily Usage vs Limit").
		Description(fmt.Sprintf("Rolling 24h upstream call count (default limit: %d)", UpstreamDailyLimit)).
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`vchat_upstream_daily_usage{`+job+`}`, "usage", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(float64(UpstreamDailyLimit)*0.8, float64(UpstreamDailyLimit))).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// LimitHits returns a stat panel showing daily limit hits in the past 24 hours.
func LimitHits() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Limit Hits (24h)").
		Description("Times the upstream daily limit was reached in the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`increase(vchat_upstream_daily_limit_hits_total{`+job+`}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
