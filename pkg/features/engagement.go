// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package features

import "math"

// Engagement score term caps. Each term saturates independently before
// summing; the caps total 100 so the final clamp only matters when terms
// interact at full saturation.
const (
	activityVolumeCap   = 30.0
	sessionFrequencyCap = 20.0
	trendCap            = 20.0
	winRateWeight       = 15.0
	socialCap           = 15.0

	engagementScoreCap = 100.0
)

// EngagementScore computes the composite 0-100 engagement score from the
// already-derived metric groups. The score is a deterministic weighted sum
// with each term capped before summing:
//
//	activity volume:   min(games_30d/2, 30)
//	session frequency: min(avg_daily_sessions_30d*30, 20)
//	trend:             min(games_trend_7d_vs_14d*20, 20)
//	win-rate boost:    win_rate_30d*15
//	social:            min(unique_peers_30d/3, 15)
func EngagementScore(stats WindowStats, trends Trends, perf Performance, social Social) float64 {
	score := 0.0

	score += math.Min(float64(stats.Games30d)/2.0, activityVolumeCap)
	score += math.Min(stats.AvgDailySessions30d*30.0, sessionFrequencyCap)
	score += math.Min(trends.GamesTrend7dVs14d*20.0, trendCap)
	score += perf.WinRate30d * winRateWeight
	score += math.Min(float64(social.UniquePeers30d)/3.0, socialCap)

	return round2(math.Min(score, engagementScoreCap))
}
