// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package features computes the windowed, trend, performance, social, and
// composite engagement metrics plus the churn label for every player, and
// assembles them into feature snapshots. All calculators are total functions
// over their inputs, so per-player computation can never fail.
package features

import (
	"time"

	"github.com/AccelByte/game-churn-features/pkg/schema"
)

// Lookback window widths in days.
const (
	Window7d  = 7
	Window14d = 14
	Window30d = 30
)

const (
	hoursPerDay    = 24.0
	secondsPerHour = 3600.0
)

// WindowStats holds the per-window activity counters of a snapshot.
type WindowStats struct {
	Games7d  int
	Games14d int
	Games30d int

	Playtime7dHours  float64
	Playtime14dHours float64
	Playtime30dHours float64

	AvgDailySessions7d  float64
	AvgDailySessions14d float64
	AvgDailySessions30d float64

	MaxGapDays30d float64
}

// ComputeWindowStats aggregates one player's activities over the 7/14/30 day
// windows ending at the reference instant. Activities must be in ascending
// timestamp order, as produced by the collection.
//
// A player with zero activities in total gets the explicit empty variant:
// all counters zero and the no-gap-data sentinel, regardless of windows.
func ComputeWindowStats(activities []schema.Activity, reference time.Time) WindowStats {
	if len(activities) == 0 {
		return emptyWindowStats()
	}

	stats := WindowStats{}

	for _, w := range []int{Window7d, Window14d, Window30d} {
		cutoff := reference.Add(-time.Duration(w) * hoursPerDay * time.Hour)

		games := 0
		durationSeconds := 0
		activeDays := make(map[string]struct{})

		for _, a := range activities {
			if a.Timestamp.Before(cutoff) {
				continue
			}
			games++
			durationSeconds += a.DurationSeconds
			activeDays[a.Timestamp.UTC().Format("2006-01-02")] = struct{}{}
		}

		playtime := round2(float64(durationSeconds) / secondsPerHour)

		sessions := 0.0
		if games > 0 {
			sessions = round3(float64(len(activeDays)) / float64(w))
		}

		switch w {
		case Window7d:
			stats.Games7d = games
			stats.Playtime7dHours = playtime
			stats.AvgDailySessions7d = sessions
		case Window14d:
			stats.Games14d = games
			stats.Playtime14dHours = playtime
			stats.AvgDailySessions14d = sessions
		case Window30d:
			stats.Games30d = games
			stats.Playtime30dHours = playtime
			stats.AvgDailySessions30d = sessions
		}
	}

	stats.MaxGapDays30d = maxGapDays(activities, reference)

	return stats
}

// maxGapDays finds the largest gap between consecutive activities inside the
// 30-day window. With fewer than two qualifying activities there is no gap
// data and the sentinel is reported.
func maxGapDays(activities []schema.Activity, reference time.Time) float64 {
	cutoff := reference.Add(-Window30d * hoursPerDay * time.Hour)

	var recent []time.Time
	for _, a := range activities {
		if !a.Timestamp.Before(cutoff) {
			recent = append(recent, a.Timestamp)
		}
	}

	if len(recent) < 2 {
		return schema.NoGapDataDays
	}

	maxGap := 0.0
	for i := 1; i < len(recent); i++ {
		gap := recent[i].Sub(recent[i-1]).Hours() / hoursPerDay
		if gap > maxGap {
			maxGap = gap
		}
	}

	return round2(maxGap)
}

func emptyWindowStats() WindowStats {
	return WindowStats{MaxGapDays30d: schema.NoGapDataDays}
}
