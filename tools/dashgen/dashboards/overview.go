// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/vitam-chat/tools/dashgen/panels"
)

// Overview dashboard identity.
const (
	OverviewUID   = "vchat-overview"
	OverviewTitle = "Vitam Chat Overview"
)

// BuildOverview constructs the gateway overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder(OverviewTitle).
		Uid(OverviewUID).
		Tags([]string{"vchat", "vitam-chat"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.QuotaGauge()).
		WithPanel(panels.ActiveSessionsStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 3: Upstream webhook.
	b.WithRow(dashboard.NewRowBuilder("Upstream Webhook").
		WithPanel(panels.UpstreamCallsRate()).
		WithPanel(panels.UpstreamLatency()).
		WithPanel(panels.UpstreamFailures()).
		WithPanel(panels.DailyUsage()).
		WithPanel(panels.LimitHits()))

	// Row 4: Replies.
	b.WithRow(dashboard.NewRowBuilder("Replies").
		WithPanel(panels.ReplyShapes()).
		WithPanel(panels.FallbackRatio()).
		WithPanel(panels.ShapeBreakdown()).
		WithPanel(panels.ProductsMapped()))

	// Row 5: Sessions and cart.
	b.WithRow(dashboard.NewRowBuilder("Sessions & Cart").
		WithPanel(panels.SessionChurn()).
		WithPanel(panels.CartActivity()).
		WithPanel(panels.NextSweep()))

	// Row 6: Exchange log.
	b.WithRow(dashboard.NewRowBuilder("Exchange Log").
		WithPanel(panels.ExchangesRecorded()).
		WithPanel(panels.StoreErrors()).
		WithPanel(panels.ExchangesPurged()))

	// Row 7: Scheduler and notifications.
	b.WithRow(dashboard.NewRowBuilder("Scheduler & Notifications").
		WithPanel(panels.SchedulerRuns()).
		WithPanel(panels.NotificationFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
