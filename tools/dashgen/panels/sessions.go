package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// SessionChurn returns a timeseries panel comparing created and swept
// sessions per minute.
func SessionChurn() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Session Churn").
		Description("Sessions created and swept as idle, per minute").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(vchat_sessions_created_total{`+job+`}[5m])) * 60`,
			"created", "A",
		)).
		WithTarget(PromQuery(
			`sum(rate(vchat_sessions_expired_total{`+job+`}[5m])) * 60`,
			"expired", "B",
		)).
		Unit("short").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// CartActivity returns a timeseries panel showing cart adds and removes.
func CartActivity() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Cart Activity").
		Description("Products added to and removed from carts, per minute").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`sum(rate(vchat_cart_adds_total{`+job+`}[5m])) * 60`, "adds", "A")).
		WithTarget(PromQuery(`sum(rate(vchat_cart_removes_total{`+job+`}[5m])) * 60`, "removes", "B")).
		Unit("short").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// NextSweep returns a stat panel showing time until the next idle session sweep.
func NextSweep() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Next Session Sweep").
		Description("Time until the next scheduled idle session sweep").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`vchat_scheduler_next_run_timestamp{`+job+`, task="session_sweep"} - time()`,
			"", "A",
		)).
		Unit("s").
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeNone)
}
