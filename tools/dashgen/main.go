package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/vitam-chat/tools/dashgen/dashboards"
	"github.com/donaldgifford/vitam-chat/tools/dashgen/rules"
	"github.com/donaldgifford/vitam-chat/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by dashgen. DO NOT EDIT.\n"

// Artifact paths relative to the output directory.
var (
	dashboardPath = filepath.Join("grafana", "data", "vchat-overview.json")
	recordingPath = filepath.Join("prometheus", "vchat-recording-rules.yaml")
	alertsPath    = filepath.Join("prometheus", "vchat-alerts.yaml")
)

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// artifact is one generated file.
type artifact struct {
	path string
	data []byte
}

func run(cfg Config, validateOnly bool) error {
	artifacts, err := generate(cfg)
	if err != nil {
		return err
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	for _, a := range artifacts {
		path := filepath.Join(cfg.OutputDir, a.path)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf("creating directory for %s: %w", a.path, err)
		}
		if err := os.WriteFile(path, a.data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", a.path, err)
		}
		fmt.Printf("dashgen: wrote %s\n", path)
	}
	return nil
}

// generate builds and validates every enabled artifact.
func generate(cfg Config) ([]artifact, error) {
	var (
		out      []artifact
		problems []string
	)

	if cfg.DashboardEnabled {
		dash, err := dashboards.BuildOverview().Build()
		if err != nil {
			return nil, fmt.Errorf("building dashboard: %w", err)
		}
		res := validate.Dashboard(dash, KnownMetrics)
		problems = append(problems, res.Errors...)
		warn(res.Warnings)

		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling dashboard: %w", err)
		}
		out = append(out, artifact{path: dashboardPath, data: append(data, '\n')})
	}

	if cfg.RulesEnabled {
		for _, r := range []struct {
			path string
			rule rules.PrometheusRule
		}{
			{path: recordingPath, rule: rules.RecordingRules()},
			{path: alertsPath, rule: rules.AlertRules()},
		} {
			res := validate.Rules(r.rule, KnownMetrics)
			problems = append(problems, res.Errors...)
			warn(res.Warnings)

			data, err := yaml.Marshal(r.rule)
			if err != nil {
				return nil, fmt.Errorf("marshaling %s: %w", r.path, err)
			}
			out = append(out, artifact{path: r.path, data: append([]byte(generatedHeader), data...)})
		}
	}

	if len(problems) > 0 {
		return nil, errors.New("validation failed:\n  " + strings.Join(problems, "\n  "))
	}
	return out, nil
}

func warn(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
}
