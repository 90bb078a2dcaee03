// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package features

import (
	"testing"

	"github.com/AccelByte/game-churn-features/pkg/schema"
)

func ratedGameAt(daysAgo float64, result schema.Result, rating int) schema.Activity {
	a := gameAt(daysAgo, 1800, result)
	a.Rating = &rating
	return a
}

func TestComputePerformanceWinRates(t *testing.T) {
	tests := []struct {
		name           string
		activities     []schema.Activity
		wantWinRate7d  float64
		wantWinRate30d float64
	}{
		{
			name:           "no activity",
			activities:     nil,
			wantWinRate7d:  0.0,
			wantWinRate30d: 0.0,
		},
		{
			name: "draws count toward the denominator only",
			activities: []schema.Activity{
				gameAt(3, 1800, schema.ResultWin),
				gameAt(2, 1800, schema.ResultDraw),
				gameAt(1, 1800, schema.ResultLoss),
			},
			wantWinRate7d:  0.333,
			wantWinRate30d: 0.333,
		},
		{
			name: "windows diverge for an improving player",
			activities: []schema.Activity{
				gameAt(20, 1800, schema.ResultLoss),
				gameAt(15, 1800, schema.ResultLoss),
				gameAt(3, 1800, schema.ResultWin),
				gameAt(1, 1800, schema.ResultWin),
			},
			wantWinRate7d:  1.0,
			wantWinRate30d: 0.5,
		},
		{
			name: "all wins",
			activities: []schema.Activity{
				gameAt(5, 1800, schema.ResultWin),
				gameAt(2, 1800, schema.ResultWin),
			},
			wantWinRate7d:  1.0,
			wantWinRate30d: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perf := ComputePerformance(tt.activities, testReference)
			if perf.WinRate7d != tt.wantWinRate7d {
				t.Errorf("WinRate7d = %v, expected %v", perf.WinRate7d, tt.wantWinRate7d)
			}
			if perf.WinRate30d != tt.wantWinRate30d {
				t.Errorf("WinRate30d = %v, expected %v", perf.WinRate30d, tt.wantWinRate30d)
			}
		})
	}
}

func TestComputePerformanceRating(t *testing.T) {
	t.Run("no rated games leaves rating nil", func(t *testing.T) {
		perf := ComputePerformance([]schema.Activity{gameAt(1, 1800, schema.ResultWin)}, testReference)
		if perf.RatingCurrent != nil {
			t.Errorf("RatingCurrent = %v, expected nil", *perf.RatingCurrent)
		}
		if perf.RatingChange30d != 0 {
			t.Errorf("RatingChange30d = %d, expected 0", perf.RatingChange30d)
		}
	})

	t.Run("change measured against latest rating at or before the cutoff", func(t *testing.T) {
		activities := []schema.Activity{
			ratedGameAt(45, schema.ResultLoss, 1480),
			ratedGameAt(31, schema.ResultWin, 1500),
			ratedGameAt(10, schema.ResultWin, 1540),
			ratedGameAt(1, schema.ResultWin, 1560),
		}

		perf := ComputePerformance(activities, testReference)
		if perf.RatingCurrent == nil || *perf.RatingCurrent != 1560 {
			t.Fatalf("RatingCurrent = %v, expected 1560", perf.RatingCurrent)
		}
		// Baseline is the 31-day-old rating, not the 45-day-old one.
		if perf.RatingChange30d != 60 {
			t.Errorf("RatingChange30d = %d, expected 60", perf.RatingChange30d)
		}
	})

	t.Run("no rating at or before the cutoff leaves change zero", func(t *testing.T) {
		activities := []schema.Activity{
			ratedGameAt(10, schema.ResultWin, 1500),
			ratedGameAt(1, schema.ResultWin, 1525),
		}

		perf := ComputePerformance(activities, testReference)
		if perf.RatingChange30d != 0 {
			t.Errorf("RatingChange30d = %d, expected 0", perf.RatingChange30d)
		}
	})

	t.Run("unrated games between rated ones are skipped", func(t *testing.T) {
		activities := []schema.Activity{
			ratedGameAt(35, schema.ResultLoss, 1400),
			gameAt(5, 1800, schema.ResultWin),
			ratedGameAt(2, schema.ResultWin, 1450),
			gameAt(1, 1800, schema.ResultLoss),
		}

		perf := ComputePerformance(activities, testReference)
		if perf.RatingCurrent == nil || *perf.RatingCurrent != 1450 {
			t.Fatalf("RatingCurrent = %v, expected 1450", perf.RatingCurrent)
		}
		if perf.RatingChange30d != 50 {
			t.Errorf("RatingChange30d = %d, expected 50", perf.RatingChange30d)
		}
	})
}
