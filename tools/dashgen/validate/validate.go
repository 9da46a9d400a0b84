// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and reference only known metrics.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/model/labels"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/vitam-chat/tools/dashgen/rules"
)

// Result collects validation findings. Errors fail generation; warnings
// are reported only.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// histogramSuffixes are series suffixes derived from a histogram metric.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Expr parses expr and checks its metric references against known.
func Expr(expr string, known map[string]bool) []string {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return []string{fmt.Sprintf("parse error: %v", err)}
	}

	var problems []string
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		name := metricName(vs)
		if name != "" && !isKnown(name, known) {
			problems = append(problems, fmt.Sprintf("unknown metric %q", name))
		}
		return nil
	})
	return problems
}

func metricName(vs *parser.VectorSelector) string {
	if vs.Name != "" {
		return vs.Name
	}
	for _, m := range vs.LabelMatchers {
		if m.Name == labels.MetricName && m.Type == labels.MatchEqual {
			return m.Value
		}
	}
	return ""
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// Dashboard validates every panel target of dash.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	// Walk the JSON model so every panel kind is covered the same way.
	data, err := json.Marshal(dash)
	if err != nil {
		res.errorf("marshaling dashboard: %v", err)
		return res
	}
	var model map[string]any
	if err := json.Unmarshal(data, &model); err != nil {
		res.errorf("decoding dashboard: %v", err)
		return res
	}

	walkPanels(model["panels"], func(panel map[string]any) {
		title, _ := panel["title"].(string)
		if panel["type"] == "row" {
			return
		}
		targets, _ := panel["targets"].([]any)
		if len(targets) == 0 {
			res.warnf("panel %q has no targets", title)
		}
		for _, t := range targets {
			target, _ := t.(map[string]any)
			expr, _ := target["expr"].(string)
			if expr == "" {
				res.errorf("panel %q: target without expr", title)
				continue
			}
			for _, p := range Expr(expr, known) {
				res.errorf("panel %q: %s", title, p)
			}
		}
	})

	return res
}

func walkPanels(v any, fn func(map[string]any)) {
	list, _ := v.([]any)
	for _, item := range list {
		panel, ok := item.(map[string]any)
		if !ok {
			continue
		}
		fn(panel)
		walkPanels(panel["panels"], fn)
	}
}

// Rules validates the expressions of every rule in pr. Alert rules must
// carry a severity label.
func Rules(pr rules.PrometheusRule, known map[string]bool) Result {
	var res Result
	for _, g := range pr.Spec.Groups {
		for _, r := range g.Rules {
			name := r.Record
			if name == "" {
				name = r.Alert
			}
			for _, p := range Expr(r.Expr, known) {
				res.errorf("%s/%s: %s", g.Name, name, p)
			}
			if r.Alert != "" && r.Labels["severity"] == "" {
				res.warnf("%s/%s: alert has no severity label", g.Name, name)
			}
		}
	}
	return res
}
