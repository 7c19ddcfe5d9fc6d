// Package config holds the tunable thresholds for the fulfillment and
// triage engine.
//
// Every numeric boundary the engine compares against (stability bands,
// burn-rate lookback windows, priority score weights) lives here as a
// named value with a documented default. Nothing in the engine packages
// hard-codes these numbers.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values. Tests assert against these names directly.
const (
	// DefaultCriticalDays is the exclusive upper bound of the "critical"
	// stability band and of the expiring-soon priority boost.
	DefaultCriticalDays = 7

	// DefaultStableDays is the inclusive lower bound of the "stable"
	// stability band. Everything between critical and stable is "watch".
	DefaultStableDays = 15

	// DefaultBurnWindowDays is the sales-history lookback used for the
	// aggregate burn-rate forecast.
	DefaultBurnWindowDays = 90

	// DefaultSimWindowDays is the shorter lookback used when running
	// against seeded simulation data.
	DefaultSimWindowDays = 15

	// DefaultSentinelDays stands in for "effectively never runs out" when
	// a SKU has stock but no sales. Finite so downstream comparisons stay
	// well-defined.
	DefaultSentinelDays = 9999

	// DefaultDaysRemaining is assumed for an order whose SKU has no
	// forecast at all.
	DefaultDaysRemaining = 30

	// DefaultExpiringBoost is added to the priority score when an order's
	// stock is inside the critical window (FEFO dominates everything).
	DefaultExpiringBoost = 500

	// DefaultPremiumBonus and DefaultVIPBonus are the customer-tier
	// additions to the priority score.
	DefaultPremiumBonus = 50
	DefaultVIPBonus     = 30

	// DefaultUrgencyCeiling caps the days-remaining contribution: the
	// score gains (ceiling - clamp(days, 0, ceiling)).
	DefaultUrgencyCeiling = 100
)

// Config carries all engine thresholds. Zero fields are filled from the
// defaults by Load; construct via Default() in code.
type Config struct {
	// Stability bands.
	CriticalDays int `yaml:"critical_days"`
	StableDays   int `yaml:"stable_days"`

	// Burn-rate forecast.
	BurnWindowDays int `yaml:"burn_window_days"`
	SimWindowDays  int `yaml:"sim_window_days"`
	SentinelDays   int `yaml:"sentinel_days"`

	// Order defaults.
	DaysRemainingDefault int `yaml:"days_remaining_default"`

	// Priority scoring weights.
	ExpiringBoost  int `yaml:"expiring_boost"`
	PremiumBonus   int `yaml:"premium_bonus"`
	VIPBonus       int `yaml:"vip_bonus"`
	UrgencyCeiling int `yaml:"urgency_ceiling"`
}

// Default returns a Config populated with the package defaults.
func Default() Config {
	return Config{
		CriticalDays:         DefaultCriticalDays,
		StableDays:           DefaultStableDays,
		BurnWindowDays:       DefaultBurnWindowDays,
		SimWindowDays:        DefaultSimWindowDays,
		SentinelDays:         DefaultSentinelDays,
		DaysRemainingDefault: DefaultDaysRemaining,
		ExpiringBoost:        DefaultExpiringBoost,
		PremiumBonus:         DefaultPremiumBonus,
		VIPBonus:             DefaultVIPBonus,
		UrgencyCeiling:       DefaultUrgencyCeiling,
	}
}

// Load reads a YAML config file and merges it over the defaults.
// Fields absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks internal consistency of the thresholds.
func (c Config) Validate() error {
	if c.CriticalDays <= 0 {
		return fmt.Errorf("critical_days must be positive, got %d", c.CriticalDays)
	}
	if c.StableDays <= c.CriticalDays {
		return fmt.Errorf("stable_days (%d) must exceed critical_days (%d)", c.StableDays, c.CriticalDays)
	}
	if c.BurnWindowDays <= 0 || c.SimWindowDays <= 0 {
		return fmt.Errorf("burn-rate windows must be positive (burn=%d, sim=%d)", c.BurnWindowDays, c.SimWindowDays)
	}
	if c.SentinelDays <= c.StableDays {
		return fmt.Errorf("sentinel_days (%d) must exceed stable_days (%d)", c.SentinelDays, c.StableDays)
	}
	if c.UrgencyCeiling <= 0 {
		return fmt.Errorf("urgency_ceiling must be positive, got %d", c.UrgencyCeiling)
	}
	return nil
}
