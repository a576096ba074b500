package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const EnvPrefix = "RWC_"

// LoadFromEnv reads overrides from the environment, e.g. RWC_METRICS=bytes,lines
// or RWC_SHOW_TOTALS=true. The bool result reports whether any variable was set.
func LoadFromEnv(prefix string) (Config, bool, error) {
	c := Config{}
	has := false

	if v, ok := os.LookupEnv(prefix + "METRICS"); ok {
		has = true
		c.Metrics = splitCSV(v)
	}
	if v, ok := os.LookupEnv(prefix + "SHOW_TOTALS"); ok {
		has = true
		b, err := parseBool(v)
		if err != nil {
			return Config{}, false, fmt.Errorf("environment variable %sSHOW_TOTALS is not a valid boolean", prefix)
		}
		c.ShowTotals = &b
	}
	if v, ok := os.LookupEnv(prefix + "FORMAT"); ok {
		has = true
		c.Format = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(prefix + "JOBS"); ok {
		has = true
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, false, fmt.Errorf("environment variable %sJOBS is not a valid integer", prefix)
		}
		c.Jobs = &n
	}
	if v, ok := os.LookupEnv(prefix + "EXCLUDE_PATTERNS"); ok {
		has = true
		c.ExcludePatterns = splitCSV(v)
	}
	return c, has, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func parseBool(v string) (bool, error) {
	s := strings.ToLower(strings.TrimSpace(v))
	switch s {
	case "1", "true", "yes", "y", "on":
		return true, nil
	case "0", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool")
	}
}
