package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds runtime settings. Environment variables (IVPULL_*) take
// precedence over the optional config file.
type Config struct {
	OutputDir    string        `mapstructure:"output_dir"`
	LogFile      string        `mapstructure:"log_file"`
	Workers      int           `mapstructure:"workers"` // 0 means one per CPU
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`

	// Endpoint overrides, mainly for tests.
	QuoteSummaryURL string `mapstructure:"quote_summary_url"`
	TimeseriesURL   string `mapstructure:"timeseries_url"`
	ChartURL        string `mapstructure:"chart_url"`
}

// Load reads configuration from environment and an optional ivpull.yaml.
// The file is searched in dirs when given, otherwise in the working
// directory and $HOME/.ivpull.
func Load(dirs ...string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("ivpull")
	v.AutomaticEnv()

	v.SetDefault("output_dir", "./output_reports")
	v.SetDefault("log_file", "financials_log.txt")
	v.SetDefault("workers", 0)
	v.SetDefault("fetch_timeout", 30*time.Second)

	// Registered empty so env overrides are picked up by Unmarshal.
	v.SetDefault("quote_summary_url", "")
	v.SetDefault("timeseries_url", "")
	v.SetDefault("chart_url", "")

	v.SetConfigName("ivpull")
	v.SetConfigType("yaml")
	if len(dirs) == 0 {
		dirs = []string{".", "$HOME/.ivpull"}
	}
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
