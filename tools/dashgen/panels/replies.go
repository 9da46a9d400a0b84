package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ReplyShapes returns a timeseries panel showing normalized replies per
// second by resolved payload shape.
func ReplyShapes() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Reply Shapes").
		Description("Normalized replies per second by payload shape (direct, embedded, plain, fallback)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`vchat:replies:rate5m`, "{{shape}}", "A")).
		Unit("reqps").
		FillOpacity(20).
		LineWidth(1).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// FallbackRatio returns a stat panel showing the share of replies that
// carried no usable text.
func FallbackRatio() *stat.PanelBuilder {
	expr := `sum(rate(vchat_fallback_replies_total{` + job + `}[1h])) / sum(rate(vchat_replies_total{` + job + `}[1h])) * 100`
	return stat.NewPanelBuilder().
		Title("Fallback Replies %").
		Description("Share of replies over the last hour that fell back to the default text").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(6).
		WithTarget(PromQuery(expr, "", "A")).
		Unit("percent").
		Thresholds(ThresholdsGreenYellowRed(5, 20)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// ShapeBreakdown returns a bar gauge panel showing the reply shape mix over
// the last 24 hours, including enveloped payloads.
func ShapeBreakdown() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Shape Mix (24h)").
		Description("Replies per payload shape, plus array-enveloped payloads").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(6).
		WithTarget(PromQuery(
			`sum(increase(vchat_replies_total{`+job+`}[24h])) by (shape)`,
			"{{shape}}", "A",
		)).
		WithTarget(PromQuery(
			`sum(increase(vchat_enveloped_replies_total{`+job+`}[24h]))`,
			"enveloped", "B",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// ProductsMapped returns a timeseries panel showing product cards mapped
// per second.
func ProductsMapped() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Products Recommended").
		Description("Product cards mapped from replies per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(vchat_products_mapped_total{`+job+`}[5m]))`,
			"products/s", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
