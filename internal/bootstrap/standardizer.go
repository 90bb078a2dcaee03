// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/AccelByte/game-churn-features/pkg/standardize"
	"github.com/AccelByte/game-churn-features/pkg/standardize/builtin"
	"github.com/sirupsen/logrus"
)

// InitStandardizers loads the platform configuration and builds the
// standardizer registry.
//
// ============================================================
// DEVELOPER: Register custom platform standardizers here.
// ============================================================
// Standardizers convert raw per-platform exports into the unified
// activity schema. Each platform type defines how to read its raw
// files and map games to activities.
//
// Steps to add a new platform:
// 1. Create your standardizer in pkg/standardize/builtin/ (see examples)
// 2. Implement the Standardizer interface
// 3. Register the platform type in pkg/standardize/builtin/init.go
// 4. Add a platform entry to config/platforms.yaml
//
// The builtin platforms:
// - chess_com  → Chess.com monthly game archives
// - opendota   → OpenDota match history plus peer graph
// - riot_lol   → Riot League of Legends match-v5 exports
// ============================================================
func InitStandardizers(configPath string) (*standardize.Registry, error) {
	platformConfig, err := standardize.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load platform config: %w", err)
	}
	if err := platformConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid platform config: %w", err)
	}

	// ============================================================
	// DEVELOPER: Platform registration
	// ============================================================
	// This registers all platform factories defined in
	// pkg/standardize/builtin/init.go. To add new platform types,
	// modify pkg/standardize/builtin/init.go
	// ============================================================
	builtin.RegisterBuiltinStandardizers()

	registry := standardize.NewRegistry()
	if err := standardize.RegisterStandardizers(registry, platformConfig.Platforms); err != nil {
		return nil, fmt.Errorf("failed to register standardizers: %w", err)
	}

	logrus.Infof("registered %d platform standardizers", registry.Count())

	return registry, nil
}
