// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package features

import (
	"time"

	"github.com/AccelByte/game-churn-features/pkg/schema"
)

// Performance holds win-rate and rating statistics.
type Performance struct {
	WinRate7d       float64
	WinRate30d      float64
	RatingCurrent   *int
	RatingChange30d int
}

// ComputePerformance derives win rates over the 7/30 day windows and the
// rating trajectory. Draws and unknown results count toward the denominator
// but not the numerator. Activities must be in ascending timestamp order.
func ComputePerformance(activities []schema.Activity, reference time.Time) Performance {
	perf := Performance{}

	perf.WinRate7d = winRate(activities, reference, Window7d)
	perf.WinRate30d = winRate(activities, reference, Window30d)

	// Rating trajectory over all rated activities, not just the window:
	// rating_current is the last known rating, and the 30d change is taken
	// against the latest rating at or before the 30d cutoff.
	var rated []schema.Activity
	for _, a := range activities {
		if a.Rating != nil {
			rated = append(rated, a)
		}
	}

	if len(rated) == 0 {
		return perf
	}

	current := *rated[len(rated)-1].Rating
	perf.RatingCurrent = &current

	cutoff := reference.Add(-Window30d * hoursPerDay * time.Hour)
	for i := len(rated) - 1; i >= 0; i-- {
		if !rated[i].Timestamp.After(cutoff) {
			perf.RatingChange30d = current - *rated[i].Rating
			break
		}
	}

	return perf
}

func winRate(activities []schema.Activity, reference time.Time, windowDays int) float64 {
	cutoff := reference.Add(-time.Duration(windowDays) * hoursPerDay * time.Hour)

	total := 0
	wins := 0
	for _, a := range activities {
		if a.Timestamp.Before(cutoff) {
			continue
		}
		total++
		if a.Result == schema.ResultWin {
			wins++
		}
	}

	if total == 0 {
		return 0.0
	}

	return round3(float64(wins) / float64(total))
}
