package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ReportingConfig controls the portfolio report rankings.
type ReportingConfig struct {
	RankingSize      int   `mapstructure:"rankingSize"`
	PercentPrecision int32 `mapstructure:"percentPrecision"`
}

func DefaultReportingConfig() ReportingConfig {
	return ReportingConfig{
		RankingSize:      5,
		PercentPrecision: 1,
	}
}

// ReportingConfigHolder exposes the current reporting config and hot-reloads
// it when the underlying file changes.
type ReportingConfigHolder struct {
	current atomic.Value // holds ReportingConfig
}

func NewReportingConfigHolder() (*ReportingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("reporting")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/tenderbase/config") // Volume-mounted config
	v.AddConfigPath("/etc/tenderbase")            // System config
	v.AddConfigPath(".")                          // Current directory (dev mode)

	v.SetEnvPrefix("TENDERBASE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultReportingConfig()
	v.SetDefault("reporting.rankingSize", defaults.RankingSize)
	v.SetDefault("reporting.percentPrecision", defaults.PercentPrecision)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg ReportingConfig
	if err := v.UnmarshalKey("reporting", &cfg); err != nil {
		return nil, err
	}
	if err := validateReportingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ReportingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ReportingConfig
		if err := v.UnmarshalKey("reporting", &updated); err != nil {
			log.Printf("[reporting-config] reload failed: %v", err)
			return
		}
		if err := validateReportingConfig(updated); err != nil {
			log.Printf("[reporting-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[reporting-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticReportingConfigHolder wraps a fixed config, with no file watching.
func NewStaticReportingConfigHolder(cfg ReportingConfig) *ReportingConfigHolder {
	holder := &ReportingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *ReportingConfigHolder) Get() ReportingConfig {
	return h.current.Load().(ReportingConfig)
}

func validateReportingConfig(cfg ReportingConfig) error {
	if cfg.RankingSize <= 0 {
		return errors.New("reporting.rankingSize must be positive")
	}
	if cfg.PercentPrecision < 0 {
		return errors.New("reporting.percentPrecision cannot be negative")
	}
	return nil
}
