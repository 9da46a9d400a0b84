package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ExchangesRecorded returns a timeseries panel showing exchange log writes.
func ExchangesRecorded() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Exchanges Recorded").
		Description("Upstream round trips written to the exchange log per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum(rate(vchat_exchanges_recorded_total{`+job+`}[5m]))`,
			"rows/s", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// StoreErrors returns a timeseries panel showing exchange log errors by
// operation.
func StoreErrors() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Store Errors").
		Description("Exchange log store errors per second by operation").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`vchat:store_errors:rate5m`, "{{op}}", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.01, 0.1)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ExchangesPurged returns a stat panel showing rows removed by retention
// in the past 24 hours.
func ExchangesPurged() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Purged (24h)").
		Description("Exchange log rows removed by the retention job in the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`increase(vchat_exchanges_purged_total{`+job+`}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}
