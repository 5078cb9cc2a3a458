// Package config loads server configuration from the environment and an
// optional YAML tuning file for the economy balance.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/RDelgadoM/RatNewsNetwork/server/internal/sim"
)

// Config holds high-level settings required across the application.
type Config struct {
	Addr           string        `env:"RNN_ADDR" envDefault:":8080"`
	DBPath         string        `env:"RNN_DB_PATH" envDefault:"newsroom.db"`
	ArticleAPIBase string        `env:"ARTICLE_API_BASE" envDefault:"http://localhost:8000"`
	RedisURL       string        `env:"REDIS_URL"`
	TuningPath     string        `env:"RNN_TUNING_CONFIG"`
	TickInterval   time.Duration `env:"RNN_TICK_INTERVAL" envDefault:"1s"`
	BackupInterval time.Duration `env:"RNN_BACKUP_INTERVAL" envDefault:"5s"`
	EnrichTimeout  time.Duration `env:"RNN_ENRICH_TIMEOUT" envDefault:"30s"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadTuning reads the economy balance, starting from the shipped defaults
// and applying overrides from the YAML file at path, if set. A missing or
// malformed file falls back to defaults with an error for the caller to log.
func LoadTuning(path string) (sim.Tuning, error) {
	tuning := sim.DefaultTuning()
	if path == "" {
		return tuning, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return tuning, fmt.Errorf("read tuning file %s: %w", path, err)
	}

	var override tuningFile
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return tuning, fmt.Errorf("parse tuning file %s: %w", path, err)
	}

	override.apply(&tuning)
	return tuning, nil
}

// tuningFile mirrors sim.Tuning with pointer fields so absent keys keep
// their defaults.
type tuningFile struct {
	CostWriterMonthly  *float64 `yaml:"costWriterMonthly"`
	CostWriterHire     *float64 `yaml:"costWriterHire"`
	CostArticlePublish *float64 `yaml:"costArticlePublish"`

	BaseAudience             *float64 `yaml:"baseAudience"`
	AudienceMultiplier       *float64 `yaml:"audienceMultiplier"`
	BaseSubscriberReadRatio  *float64 `yaml:"baseSubscriberReadRatio"`
	BonusSubscriberReadRatio *float64 `yaml:"bonusSubscriberReadRatio"`
	MaxConversionRate        *float64 `yaml:"maxConversionRate"`
	JitterHalfWidth          *float64 `yaml:"jitterHalfWidth"`

	RevenuePerSubscriber *float64 `yaml:"revenuePerSubscriber"`
	RevenuePerView       *float64 `yaml:"revenuePerView"`

	DecayMax            *float64 `yaml:"decayMax"`
	DecayDampingDivisor *float64 `yaml:"decayDampingDivisor"`

	StartingCash *float64 `yaml:"startingCash"`
}

func (f tuningFile) apply(t *sim.Tuning) {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&t.CostWriterMonthly, f.CostWriterMonthly)
	set(&t.CostWriterHire, f.CostWriterHire)
	set(&t.CostArticlePublish, f.CostArticlePublish)
	set(&t.BaseAudience, f.BaseAudience)
	set(&t.AudienceMultiplier, f.AudienceMultiplier)
	set(&t.BaseSubscriberReadRatio, f.BaseSubscriberReadRatio)
	set(&t.BonusSubscriberReadRatio, f.BonusSubscriberReadRatio)
	set(&t.MaxConversionRate, f.MaxConversionRate)
	set(&t.JitterHalfWidth, f.JitterHalfWidth)
	set(&t.RevenuePerSubscriber, f.RevenuePerSubscriber)
	set(&t.RevenuePerView, f.RevenuePerView)
	set(&t.DecayMax, f.DecayMax)
	set(&t.DecayDampingDivisor, f.DecayDampingDivisor)
	set(&t.StartingCash, f.StartingCash)
}
