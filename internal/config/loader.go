// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	// In production (Docker/K8s), environment variables are injected directly
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("no .env file found or error loading it: %v (this is normal in production)", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	return cfg, nil
}

// Validate performs custom validation on the configuration. It is called
// before any computation so bad configuration fails fast at startup.
func (c *Config) Validate() error {
	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid METRICS_PORT: %d (must be 1-65535)", c.MetricsPort)
	}

	if c.LookupPort < 1 || c.LookupPort > 65535 {
		return fmt.Errorf("invalid LOOKUP_PORT: %d (must be 1-65535)", c.LookupPort)
	}

	if c.ChurnThresholdDays <= 0 {
		return fmt.Errorf("invalid CHURN_THRESHOLD_DAYS: %d (must be positive)", c.ChurnThresholdDays)
	}

	if c.FeatureWorkers < 1 {
		return fmt.Errorf("invalid FEATURE_WORKERS: %d (must be at least 1)", c.FeatureWorkers)
	}

	if c.RawDataDir == "" {
		return fmt.Errorf("RAW_DATA_DIR is required")
	}

	if c.FeaturesDBPath == "" {
		return fmt.Errorf("FEATURES_DB_PATH is required")
	}

	if c.SyntheticMode {
		if c.SyntheticPlayers < 1 {
			return fmt.Errorf("invalid SYNTHETIC_PLAYERS: %d (must be at least 1)", c.SyntheticPlayers)
		}
		if c.SyntheticChurnRate < 0 || c.SyntheticChurnRate > 1 {
			return fmt.Errorf("invalid SYNTHETIC_CHURN_RATE: %v (must be within [0, 1])", c.SyntheticChurnRate)
		}
	}

	if _, err := c.Reference(); err != nil {
		return err
	}

	return nil
}

// Reference returns the build reference instant: the configured override, or
// the current time when none is set.
func (c *Config) Reference() (time.Time, error) {
	if c.ReferenceTime == "" {
		return time.Now().UTC(), nil
	}

	ref, err := time.Parse(time.RFC3339, c.ReferenceTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid REFERENCE_TIME %q: %w", c.ReferenceTime, err)
	}

	return ref.UTC(), nil
}
