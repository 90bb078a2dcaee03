// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package schema

// Sentinel values baked into the feature-table contract. Downstream model
// training and the lookup service rely on these exact constants, so they are
// plain magic numbers rather than nullable columns.
const (
	// NoActivityDays is reported as days_since_last_game for a player with
	// zero standardized activities.
	NoActivityDays = 999.0

	// NoGapDataDays is reported as max_gap_days_30d when fewer than two
	// activities fall inside the 30-day window.
	NoGapDataDays = 30.0
)

// FeatureSnapshot is one row of engine output: the complete derived metric
// set for a (player, platform) pair at one reference instant. Snapshots are
// recomputed from scratch on every build run, never updated incrementally.
type FeatureSnapshot struct {
	PlayerID string   `json:"player_id"`
	Platform Platform `json:"platform"`

	// Activity counts per lookback window.
	Games7d  int `json:"games_7d"`
	Games14d int `json:"games_14d"`
	Games30d int `json:"games_30d"`

	// Playtime per lookback window.
	Playtime7dHours  float64 `json:"playtime_7d_hours"`
	Playtime14dHours float64 `json:"playtime_14d_hours"`
	Playtime30dHours float64 `json:"playtime_30d_hours"`

	// Session patterns.
	AvgDailySessions7d  float64 `json:"avg_daily_sessions_7d"`
	AvgDailySessions14d float64 `json:"avg_daily_sessions_14d"`
	AvgDailySessions30d float64 `json:"avg_daily_sessions_30d"`
	MaxGapDays30d       float64 `json:"max_gap_days_30d"`

	// Trend: ratio of the 7d raw count/measure over the 14d one. Values
	// above 1.0 are possible under bursty recent activity and intentional.
	GamesTrend7dVs14d    float64 `json:"games_trend_7d_vs_14d"`
	PlaytimeTrend7dVs14d float64 `json:"playtime_trend_7d_vs_14d"`

	// Performance.
	WinRate7d       float64 `json:"win_rate_7d"`
	WinRate30d      float64 `json:"win_rate_30d"`
	RatingCurrent   *int    `json:"rating_current"`
	RatingChange30d int     `json:"rating_change_30d"`

	// Social, populated only for platforms with a peer graph.
	UniquePeers30d int `json:"unique_peers_30d"`
	PeerGames30d   int `json:"peer_games_30d"`

	// Composite engagement score in [0, 100].
	EngagementScore float64 `json:"engagement_score"`

	// Churn label.
	DaysSinceLastGame float64 `json:"days_since_last_game"`
	Churned           bool    `json:"churned"`
}

// Key returns the identity of this snapshot.
func (s *FeatureSnapshot) Key() PlayerKey {
	return PlayerKey{PlayerID: s.PlayerID, Platform: s.Platform}
}
