package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	API struct {
		RatePerSec float64 `yaml:"rate_per_sec"`
		Burst      int     `yaml:"burst"`
	} `yaml:"api"`

	Stats struct {
		TopN          int   `yaml:"top_n"`
		NewWindowDays int   `yaml:"new_window_days"`
		SalaryBuckets []int `yaml:"salary_buckets"` // ascending lower bounds
	} `yaml:"stats"`

	Catalog struct {
		SeedPath string `yaml:"seed_path"` // yaml demo catalog, loaded when the db is empty
	} `yaml:"catalog"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Port == 0 {
		c.App.Port = 38520
	}
	if c.API.RatePerSec == 0 {
		c.API.RatePerSec = 20
	}
	if c.API.Burst == 0 {
		c.API.Burst = 40
	}
	if c.Stats.TopN == 0 {
		c.Stats.TopN = 10
	}
	if c.Stats.NewWindowDays == 0 {
		c.Stats.NewWindowDays = 7
	}
	if len(c.Stats.SalaryBuckets) == 0 {
		c.Stats.SalaryBuckets = []int{0, 3000, 5000, 8000, 10000}
	}
}
