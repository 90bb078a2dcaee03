// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package features

// Trends holds the ratio-based trajectory signals derived from window stats.
type Trends struct {
	GamesTrend7dVs14d    float64
	PlaytimeTrend7dVs14d float64
}

// ComputeTrends derives the 7d-over-14d ratios from already-computed window
// counters. A zero denominator yields 0.0, never NaN or Inf. The ratio uses
// raw window counts, not per-day rates, so values above 1.0 are possible
// when recent activity is bursty.
func ComputeTrends(stats WindowStats) Trends {
	trends := Trends{}

	if stats.Games14d > 0 {
		trends.GamesTrend7dVs14d = round3(float64(stats.Games7d) / float64(stats.Games14d))
	}

	if stats.Playtime14dHours > 0 {
		trends.PlaytimeTrend7dVs14d = round3(stats.Playtime7dHours / stats.Playtime14dHours)
	}

	return trends
}
