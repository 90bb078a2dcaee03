// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package synthetic generates feature snapshots with realistic churned and
// active distributions. Model development needs more labeled rows than the
// collectors can gather, so training runs mix real snapshots with a seeded
// synthetic dataset whose feature distributions differ meaningfully between
// the two classes.
package synthetic

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/AccelByte/game-churn-features/pkg/schema"
)

// Config controls generation.
type Config struct {
	Players   int
	ChurnRate float64
	Seed      int64
}

// DefaultConfig returns the standard generation parameters.
func DefaultConfig() Config {
	return Config{
		Players:   2000,
		ChurnRate: 0.3,
		Seed:      42,
	}
}

// Generate produces a deterministic synthetic snapshot set: same config,
// same rows. Window counters are generated monotone (7d <= 14d <= 30d) and
// trends are derived from them the same way the engine derives real ones.
func Generate(cfg Config) []schema.FeatureSnapshot {
	if cfg.Players <= 0 {
		cfg.Players = DefaultConfig().Players
	}
	if cfg.ChurnRate < 0 || cfg.ChurnRate > 1 {
		cfg.ChurnRate = DefaultConfig().ChurnRate
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	platforms := schema.Platforms()

	churned := int(float64(cfg.Players) * cfg.ChurnRate)
	active := cfg.Players - churned

	snapshots := make([]schema.FeatureSnapshot, 0, cfg.Players)
	for _, class := range []struct {
		churned bool
		count   int
	}{
		{false, active},
		{true, churned},
	} {
		for i := 0; i < class.count; i++ {
			platform := platforms[rng.Intn(len(platforms))]
			snap := generateOne(rng, platform, class.churned)
			snap.PlayerID = fmt.Sprintf("synthetic_%d", len(snapshots))
			snapshots = append(snapshots, snap)
		}
	}

	return snapshots
}

func generateOne(rng *rand.Rand, platform schema.Platform, isChurned bool) schema.FeatureSnapshot {
	var snap schema.FeatureSnapshot
	snap.Platform = platform
	snap.Churned = isChurned

	if isChurned {
		// Churned players: low recent activity, declining trends.
		snap.Games30d = poisson(rng, 3)
		snap.Games14d = min(poisson(rng, 1), snap.Games30d)
		snap.Games7d = min(poisson(rng, 0.5), snap.Games14d)
		snap.Playtime30dHours = round2(positive(rng.NormFloat64()*1.5 + 2))
		snap.Playtime14dHours = round2(positive(rng.NormFloat64()*0.5 + 0.5))
		snap.Playtime7dHours = round2(positive(rng.NormFloat64()*0.2 + 0.1))
		snap.AvgDailySessions30d = round3(positive(rng.NormFloat64()*0.08 + 0.1))
		snap.AvgDailySessions14d = round3(positive(rng.NormFloat64()*0.05 + 0.05))
		snap.AvgDailySessions7d = round3(positive(rng.NormFloat64()*0.03 + 0.02))
		snap.MaxGapDays30d = round2(uniform(rng, 10, 30))
		snap.WinRate7d = round3(clamp01(rng.NormFloat64()*0.15 + 0.35))
		snap.WinRate30d = round3(clamp01(rng.NormFloat64()*0.12 + 0.4))
		snap.RatingChange30d = int(rng.NormFloat64()*30 - 50)
		snap.UniquePeers30d = poisson(rng, 2)
		snap.PeerGames30d = poisson(rng, 3)
		snap.DaysSinceLastGame = round2(uniform(rng, 14, 90))
		snap.EngagementScore = round2(math.Min(positive(rng.NormFloat64()*10+15), 100))
	} else {
		// Active players: high recent activity, stable or increasing trends.
		snap.Games30d = poisson(rng, 25)
		snap.Games14d = min(poisson(rng, 15), snap.Games30d)
		snap.Games7d = min(poisson(rng, 8), snap.Games14d)
		snap.Playtime30dHours = round2(positive(rng.NormFloat64()*8 + 20))
		snap.Playtime14dHours = round2(positive(rng.NormFloat64()*5 + 12))
		snap.Playtime7dHours = round2(positive(rng.NormFloat64()*3 + 6))
		snap.AvgDailySessions30d = round3(positive(rng.NormFloat64()*0.2 + 0.6))
		snap.AvgDailySessions14d = round3(positive(rng.NormFloat64()*0.2 + 0.65))
		snap.AvgDailySessions7d = round3(positive(rng.NormFloat64()*0.2 + 0.7))
		snap.MaxGapDays30d = round2(uniform(rng, 0.5, 5))
		snap.WinRate7d = round3(clamp01(rng.NormFloat64()*0.1 + 0.52))
		snap.WinRate30d = round3(clamp01(rng.NormFloat64()*0.08 + 0.51))
		snap.RatingChange30d = int(rng.NormFloat64()*25 + 10)
		snap.UniquePeers30d = poisson(rng, 8)
		snap.PeerGames30d = poisson(rng, 15)
		snap.DaysSinceLastGame = round2(uniform(rng, 0, 5))
		snap.EngagementScore = round2(clamp(rng.NormFloat64()*15+55, 0, 100))
	}

	rating := int(rng.NormFloat64()*300 + 1500)
	snap.RatingCurrent = &rating

	if snap.Games14d > 0 {
		snap.GamesTrend7dVs14d = round3(float64(snap.Games7d) / float64(snap.Games14d))
	}
	if snap.Playtime14dHours > 0 {
		snap.PlaytimeTrend7dVs14d = round3(snap.Playtime7dHours / snap.Playtime14dHours)
	}

	return snap
}

// poisson draws from a Poisson distribution via Knuth's method. The lambdas
// used here are small, so the multiplication loop stays short.
func poisson(rng *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}

	limit := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		p *= rng.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func positive(v float64) float64 {
	return math.Max(v, 0)
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
