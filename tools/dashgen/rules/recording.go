package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "vchat-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "vchat-recording",
					Rules: []Rule{
						{
							Record: "vchat:http_requests:rate5m",
							Expr:   `sum(rate(vchat_http_requests_total[5m]))`,
						},
						{
							Record: "vchat:http_errors:rate5m",
							Expr:   `sum(rate(vchat_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "vchat:upstream_requests:rate5m",
							Expr:   `sum(rate(vchat_upstream_requests_total[5m]))`,
						},
						{
							Record: "vchat:upstream_failures:rate5m",
							Expr:   `sum(rate(vchat_upstream_failures_total{reason!="canceled"}[5m]))`,
						},
						{
							Record: "vchat:replies:rate5m",
							Expr:   `sum(rate(vchat_replies_total[5m])) by (shape)`,
						},
						{
							Record: "vchat:store_errors:rate5m",
							Expr:   `sum(rate(vchat_store_errors_total[5m])) by (op)`,
						},
					},
				},
			},
		},
	}
}
