// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
type Config struct {
	// ============================================================
	// Service configuration
	// ============================================================
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	LookupPort  int    `env:"LOOKUP_PORT" envDefault:"8090"`
	ServeLookup bool   `env:"SERVE_LOOKUP" envDefault:"false"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"GameChurnFeatures"`

	// ============================================================
	// Data locations
	// ============================================================
	RawDataDir          string `env:"RAW_DATA_DIR" envDefault:"data/01_raw"`
	FeaturesDBPath      string `env:"FEATURES_DB_PATH" envDefault:"data/03_features/player_features.db"`
	PlatformsConfigPath string `env:"PLATFORMS_CONFIG_PATH" envDefault:"config/platforms.yaml"`

	// ============================================================
	// Feature engine configuration
	// ============================================================
	// ChurnThresholdDays is the inactivity threshold for the churn label.
	ChurnThresholdDays int `env:"CHURN_THRESHOLD_DAYS" envDefault:"14"`
	// ReferenceTime pins the build's reference instant (RFC3339) for
	// reproducible runs. Empty means "now".
	ReferenceTime  string `env:"REFERENCE_TIME"`
	FeatureWorkers int    `env:"FEATURE_WORKERS" envDefault:"4"`

	// ============================================================
	// Synthetic data configuration
	// ============================================================
	// SyntheticMode replaces the raw-data load with a seeded synthetic
	// snapshot set, for model development without collector output.
	SyntheticMode      bool    `env:"SYNTHETIC_MODE" envDefault:"false"`
	SyntheticPlayers   int     `env:"SYNTHETIC_PLAYERS" envDefault:"2000"`
	SyntheticChurnRate float64 `env:"SYNTHETIC_CHURN_RATE" envDefault:"0.3"`
	SyntheticSeed      int64   `env:"SYNTHETIC_SEED" envDefault:"42"`

	// ============================================================
	// Redis configuration (snapshot cache for the lookup service)
	// ============================================================
	RedisHost       string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort       string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisMaxRetries int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	CacheSnapshots  bool   `env:"CACHE_SNAPSHOTS" envDefault:"true"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	OtelEnabled bool `env:"OTEL_ENABLED" envDefault:"true"`
}
