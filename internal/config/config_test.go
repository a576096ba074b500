package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("RWC_TEST_JOBS", "3")
	src := "jobs: ${RWC_TEST_JOBS}\nformat: ${RWC_TEST_FORMAT:-csv}\n"
	got, err := expandEnv(src)
	if err != nil {
		t.Fatalf("expand env failed: %v", err)
	}
	if got != "jobs: 3\nformat: csv\n" {
		t.Fatalf("unexpected expansion: %q", got)
	}
	if _, err := expandEnv("jobs: ${RWC_TEST_UNSET_VAR}"); err == nil {
		t.Fatalf("expected unset variable error")
	}
}

func TestLoad(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "rwc.yaml")
	body := "metrics: [bytes, lines]\nshow_totals: true\nformat: csv\njobs: 2\nexclude_patterns:\n  - \"**/*.log\"\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	sel := cfg.Selection()
	if !sel.Bytes || !sel.Lines || sel.Words || sel.Chars {
		t.Fatalf("unexpected selection: %+v", sel)
	}
	if cfg.ShowTotals == nil || !*cfg.ShowTotals {
		t.Fatalf("unexpected show_totals: %#v", cfg.ShowTotals)
	}
	if cfg.Format != "csv" || cfg.Jobs == nil || *cfg.Jobs != 2 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.ExcludePatterns) != 1 {
		t.Fatalf("unexpected patterns: %#v", cfg.ExcludePatterns)
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	tmp := t.TempDir()
	cases := map[string]string{
		"unknown.yaml": "unknown_field: 1\n",
		"metric.yaml":  "metrics: [bytes, pages]\n",
		"jobs.yaml":    "jobs: -1\n",
		"glob.yaml":    "exclude_patterns: [\"a/[b\"]\n",
	}
	for name, body := range cases {
		p := filepath.Join(tmp, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(p); err == nil {
			t.Fatalf("%s: expected load error", name)
		}
	}
	if _, err := Load(""); err == nil {
		t.Fatalf("expected empty path error")
	}
	if _, err := Load(filepath.Join(tmp, "missing.yaml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestMerge(t *testing.T) {
	yes := true
	two := 2
	base := Config{Metrics: []string{"bytes"}, Format: "table", Jobs: &two}
	got := base.Merge(Config{ShowTotals: &yes, Format: "csv"})
	if got.Format != "csv" || got.ShowTotals == nil || !*got.ShowTotals {
		t.Fatalf("override not applied: %+v", got)
	}
	if len(got.Metrics) != 1 || got.Jobs == nil || *got.Jobs != 2 {
		t.Fatalf("unset fields should be kept: %+v", got)
	}
}

func TestParseMetrics(t *testing.T) {
	sel, err := ParseMetrics([]string{"Chars", " w "})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !sel.Chars || !sel.Words || sel.Bytes || sel.Lines {
		t.Fatalf("unexpected selection: %+v", sel)
	}
	sel, err = ParseMetrics(nil)
	if err != nil || !sel.IsZero() {
		t.Fatalf("empty metrics should select nothing: %+v %v", sel, err)
	}
	if _, err := ParseMetrics([]string{"pages"}); err == nil {
		t.Fatalf("expected unknown metric error")
	}
}
