package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/vitam-chat/tools/dashgen/dashboards"
	"github.com/donaldgifford/vitam-chat/tools/dashgen/rules"
	"github.com/donaldgifford/vitam-chat/tools/dashgen/validate"
)

func TestDefaultConfigValid(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate_EmptyOutputDir(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "", DashboardEnabled: true}
	assert.Error(t, cfg.Validate())
}

func TestConfigValidate_NothingEnabled(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "/tmp", DashboardEnabled: false, RulesEnabled: false}
	assert.Error(t, cfg.Validate())
}

func TestBuildOverviewDashboard(t *testing.T) {
	t.Parallel()

	builder := dashboards.BuildOverview()
	dash, err := builder.Build()
	require.NoError(t, err)

	// Verify dashboard metadata.
	require.NotNil(t, dash.Uid)
	assert.Equal(t, "vchat-overview", *dash.Uid)

	require.NotNil(t, dash.Title)
	assert.Equal(t, "Vitam Chat Overview", *dash.Title)

	// Verify template variable.
	require.NotNil(t, dash.Templating)
	assert.Len(t, dash.Templating.List, 1)
	assert.Equal(t, "datasource", dash.Templating.List[0].Name)

	// Verify we have 7 rows.
	assert.Len(t, dash.Panels, 7)

	// Count total inner panels.
	totalPanels := 0
	for _, p := range dash.Panels {
		if p.RowPanel != nil {
			totalPanels += len(p.RowPanel.Panels)
		}
	}
	assert.Equal(t, 24, totalPanels)

	// Validate PromQL and metrics.
	result := validate.Dashboard(dash, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
	assert.Empty(t, result.Warnings, "unexpected warnings: %v", result.Warnings)
}

func TestRecordingRules(t *testing.T) {
	t.Parallel()

	cr := rules.RecordingRules()
	assert.Equal(t, "monitoring.coreos.com/v1", cr.APIVersion)
	assert.Equal(t, "PrometheusRule", cr.Kind)
	assert.Equal(t, "vchat-recording-rules", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	assert.Equal(t, "vchat-recording", group.Name)
	require.Len(t, group.Rules, 6)

	expectedRecords := []string{
		"vchat:http_requests:rate5m",
		"vchat:http_errors:rate5m",
		"vchat:upstream_requests:rate5m",
		"vchat:upstream_failures:rate5m",
		"vchat:replies:rate5m",
		"vchat:store_errors:rate5m",
	}
	for i, rule := range group.Rules {
		assert.Equal(t, expectedRecords[i], rule.Record)
		assert.NotEmpty(t, rule.Expr)
		assert.True(t, KnownMetrics[rule.Record], "recording rule %s missing from KnownMetrics", rule.Record)
	}

	result := validate.Rules(cr, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)

	// Verify YAML marshaling works.
	data, err := yaml.Marshal(cr)
	require.NoError(t, err)
	assert.Contains(t, string(data), "apiVersion: monitoring.coreos.com/v1")
}

func TestAlertRules(t *testing.T) {
	t.Parallel()

	cr := rules.AlertRules()
	assert.Equal(t, "monitoring.coreos.com/v1", cr.APIVersion)
	assert.Equal(t, "PrometheusRule", cr.Kind)
	assert.Equal(t, "vchat-alerts", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	assert.Equal(t, "vchat-alerts", group.Name)
	require.Len(t, group.Rules, 9)

	expectedAlerts := []string{
		"VchatDown",
		"VchatReadinessDown",
		"VchatHighErrorRate",
		"VchatUpstreamFailures",
		"VchatFallbackRateHigh",
		"VchatUpstreamQuotaHigh",
		"VchatUpstreamLimitReached",
		"VchatStoreErrors",
		"VchatNotificationFailures",
	}
	for i, rule := range group.Rules {
		assert.Equal(t, expectedAlerts[i], rule.Alert)
		assert.NotEmpty(t, rule.Expr)
		assert.NotEmpty(t, rule.Labels["severity"], "alert %s missing severity", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["summary"], "alert %s missing summary", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["description"], "alert %s missing description", rule.Alert)
	}

	result := validate.Rules(cr, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateExpr(t *testing.T) {
	t.Parallel()

	known := map[string]bool{"vchat_replies_total": true, "vchat_http_request_duration_seconds": true}

	tests := []struct {
		name     string
		expr     string
		problems int
	}{
		{name: "known counter", expr: `rate(vchat_replies_total[5m])`},
		{name: "histogram bucket", expr: `histogram_quantile(0.95, sum(rate(vchat_http_request_duration_seconds_bucket[5m])) by (le))`},
		{name: "name matcher", expr: `{__name__="vchat_replies_total"}`},
		{name: "unknown metric", expr: `rate(vchat_missing_total[5m])`, problems: 1},
		{name: "parse error", expr: `rate(vchat_replies_total[5m]`, problems: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Len(t, validate.Expr(tt.expr, known), tt.problems)
		})
	}
}

func TestRun_WritesArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.OutputDir = dir

	require.NoError(t, run(cfg, false))

	for _, rel := range []string{dashboardPath, recordingPath, alertsPath} {
		data, err := os.ReadFile(filepath.Join(dir, rel))
		require.NoError(t, err, "missing artifact %s", rel)
		assert.NotEmpty(t, data)
		if strings.HasSuffix(rel, ".yaml") {
			assert.True(t, strings.HasPrefix(string(data), generatedHeader), "%s lacks generated header", rel)
		}
	}
}

func TestRun_ValidateOnlyWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.OutputDir = dir

	require.NoError(t, run(cfg, true))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
