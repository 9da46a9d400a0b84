package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// vitam-chat operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "vchat-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "vchat-alerts",
					Rules: []Rule{
						{
							Alert: "VchatDown",
							Expr:  `absent(up{job="vitam-chat"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Vitam chat gateway is down",
								"description": "The vitam-chat job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "VchatReadinessDown",
							Expr:  `vchat_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Vitam chat readiness check is failing",
								"description": "The exchange log database has been unreachable for more than 2 minutes.",
							},
						},
						{
							Alert: "VchatHighErrorRate",
							Expr:  `vchat:http_errors:rate5m / vchat:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on the chat gateway",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "VchatUpstreamFailures",
							Expr:  `vchat:upstream_failures:rate5m / vchat:upstream_requests:rate5m > 0.2`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Conversational webhook is failing",
								"description": "More than 20% of upstream webhook calls failed over the last 5 minutes; shoppers see the error message.",
							},
						},
						{
							Alert: "VchatFallbackRateHigh",
							Expr:  `sum(rate(vchat_fallback_replies_total[15m])) / sum(rate(vchat_replies_total[15m])) > 0.25`,
							For:   "15m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Many replies carry no usable text",
								"description": "Over 25% of upstream replies fell back to the default text; the flow's output format may have changed.",
							},
						},
						{
							Alert: "VchatUpstreamQuotaHigh",
							Expr:  `vchat_upstream_daily_usage > 8000`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Upstream daily usage is above 80% of the default quota",
								"description": "Daily upstream webhook usage has exceeded 8000 calls (default limit is 10000).",
							},
						},
						{
							Alert: "VchatUpstreamLimitReached",
							Expr:  `increase(vchat_upstream_daily_limit_hits_total[5m]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Upstream daily limit has been reached",
								"description": "The daily webhook quota is exhausted. Chat sends fail until the rolling window frees capacity.",
							},
						},
						{
							Alert: "VchatStoreErrors",
							Expr:  `sum(vchat:store_errors:rate5m) > 0`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Exchange log store errors detected",
								"description": "Writes or purges against the exchange log have been failing for more than 10 minutes.",
							},
						},
						{
							Alert: "VchatNotificationFailures",
							Expr:  `increase(vchat_notification_failures_total[5m]) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Notification delivery failures detected",
								"description": "One or more upstream-failure notifications (Discord webhooks) have failed to send.",
							},
						},
					},
				},
			},
		},
	}
}
