package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
	"rwc/internal/count"
	"rwc/internal/scan"
)

// Config holds defaults that command-line flags may override. Pointer fields
// are nil when unset so a later layer can tell "false" from "not given".
type Config struct {
	Metrics         []string `yaml:"metrics"`
	ShowTotals      *bool    `yaml:"show_totals"`
	Format          string   `yaml:"format"`
	Jobs            *int     `yaml:"jobs"`
	ExcludePatterns []string `yaml:"exclude_patterns"`
}

func Load(path string) (Config, error) {
	var cfg Config
	if strings.TrimSpace(path) == "" {
		return cfg, fmt.Errorf("config path is empty")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	expanded, err := expandEnv(string(b))
	if err != nil {
		return cfg, err
	}
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Resolve loads the config file when path is set and applies RWC_* variables
// on top of it.
func Resolve(path string) (Config, error) {
	var cfg Config
	if strings.TrimSpace(path) != "" {
		loaded, err := Load(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	env, ok, err := LoadFromEnv(EnvPrefix)
	if err != nil {
		return Config{}, err
	}
	if ok {
		cfg = cfg.Merge(env)
	}
	return cfg, cfg.Validate()
}

// Merge returns c with every field set in o replacing the value in c.
func (c Config) Merge(o Config) Config {
	if o.Metrics != nil {
		c.Metrics = o.Metrics
	}
	if o.ShowTotals != nil {
		c.ShowTotals = o.ShowTotals
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.Jobs != nil {
		c.Jobs = o.Jobs
	}
	if o.ExcludePatterns != nil {
		c.ExcludePatterns = o.ExcludePatterns
	}
	return c
}

func (c Config) Validate() error {
	if _, err := ParseMetrics(c.Metrics); err != nil {
		return err
	}
	if c.Jobs != nil && *c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative: %d", *c.Jobs)
	}
	return scan.ValidatePatterns(c.ExcludePatterns)
}

// Selection returns the configured metrics. An empty list selects nothing,
// leaving the caller to apply the defaults.
func (c Config) Selection() count.Selection {
	sel, _ := ParseMetrics(c.Metrics)
	return sel
}

func ParseMetrics(names []string) (count.Selection, error) {
	var sel count.Selection
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "bytes", "b":
			sel.Bytes = true
		case "chars", "c":
			sel.Chars = true
		case "words", "w":
			sel.Words = true
		case "lines", "l":
			sel.Lines = true
		default:
			return count.Selection{}, fmt.Errorf("unknown metric: %s (expected bytes/chars/words/lines)", n)
		}
	}
	return sel, nil
}

var envExpr = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

func expandEnv(src string) (string, error) {
	var out strings.Builder
	last := 0
	for _, idx := range envExpr.FindAllStringSubmatchIndex(src, -1) {
		out.WriteString(src[last:idx[0]])
		name := src[idx[2]:idx[3]]
		hasDefault := idx[4] >= 0 && idx[5] >= 0
		defVal := ""
		if hasDefault && idx[6] >= 0 && idx[7] >= 0 {
			defVal = src[idx[6]:idx[7]]
		}
		if v, ok := os.LookupEnv(name); ok {
			out.WriteString(v)
		} else if hasDefault {
			out.WriteString(defVal)
		} else {
			return "", fmt.Errorf("config references unset environment variable: %s", name)
		}
		last = idx[1]
	}
	out.WriteString(src[last:])
	return out.String(), nil
}
