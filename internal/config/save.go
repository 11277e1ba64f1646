package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	if cfg.API.RatePerSec <= 0 {
		errs = append(errs, "api.rate_per_sec must be > 0")
	}
	if cfg.API.Burst <= 0 {
		errs = append(errs, "api.burst must be > 0")
	}
	if cfg.Stats.TopN <= 0 {
		errs = append(errs, "stats.top_n must be > 0")
	}
	if cfg.Stats.NewWindowDays <= 0 {
		errs = append(errs, "stats.new_window_days must be > 0")
	}
	if len(cfg.Stats.SalaryBuckets) == 0 {
		errs = append(errs, "stats.salary_buckets must have at least 1 boundary")
	} else {
		if cfg.Stats.SalaryBuckets[0] < 0 {
			errs = append(errs, "stats.salary_buckets must start at >= 0")
		}
		if !sort.IntsAreSorted(cfg.Stats.SalaryBuckets) {
			errs = append(errs, "stats.salary_buckets must be ascending")
		}
		for i := 1; i < len(cfg.Stats.SalaryBuckets); i++ {
			if cfg.Stats.SalaryBuckets[i] == cfg.Stats.SalaryBuckets[i-1] {
				errs = append(errs, fmt.Sprintf("stats.salary_buckets[%d] duplicates the previous boundary", i))
			}
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

// SaveAtomic validates, then writes via tmp+rename, keeping the previous
// file as .bak so a bad write never clobbers the only copy.
func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		bak := path + ".bak"
		_ = os.Remove(bak)
		_ = os.Rename(path, bak)
	}
	return os.Rename(tmp, path)
}
