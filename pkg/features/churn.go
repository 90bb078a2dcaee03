// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package features

import (
	"time"

	"github.com/AccelByte/game-churn-features/pkg/schema"
)

// DefaultChurnThresholdDays is the inactivity threshold used when no
// configured value is supplied.
const DefaultChurnThresholdDays = 14

// ChurnLabel derives the churn label for one player: the days since their
// latest activity and whether that meets the configured threshold. A player
// with no activity at all is always churned, with the no-activity sentinel
// as days_since_last_game. Activities must be in ascending timestamp order.
func ChurnLabel(activities []schema.Activity, reference time.Time, thresholdDays int) (daysSinceLastGame float64, churned bool) {
	if len(activities) == 0 {
		return schema.NoActivityDays, true
	}

	last := activities[len(activities)-1].Timestamp
	days := reference.Sub(last).Hours() / hoursPerDay

	// The threshold comparison uses the unrounded value; only the reported
	// number is rounded.
	return round2(days), days >= float64(thresholdDays)
}
