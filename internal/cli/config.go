package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/rpgo/financial-planner/internal/calculation"
	"github.com/rpgo/financial-planner/internal/output"
	"github.com/rpgo/financial-planner/internal/server"
)

// Config holds settings read from the environment. Command flags override
// individual fields when given.
type Config struct {
	Addr             string `env:"PLANNER_ADDR"              envDefault:":8000"`
	DBPath           string `env:"PLANNER_DB_PATH"`
	ReportPath       string `env:"PLANNER_REPORT_PATH"`
	AllowedOrigin    string `env:"PLANNER_ALLOWED_ORIGIN"    envDefault:"http://localhost:3000"`
	BatchConcurrency int    `env:"PLANNER_BATCH_CONCURRENCY" envDefault:"4"`
	LogFormat        string `env:"PLANNER_LOG_FORMAT"        envDefault:"text"`
}

// LoadConfig parses the environment into a Config.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = calculation.DefaultBatchConcurrency
	}
	return cfg, nil
}

// serverOptions maps Config onto the HTTP server's options.
func (c Config) serverOptions() server.Options {
	report := c.ReportPath
	if report == "-" {
		report = ""
	} else if report == "" {
		report = output.DefaultReportFilename
	}
	return server.Options{AllowedOrigin: c.AllowedOrigin, ReportPath: report}
}
