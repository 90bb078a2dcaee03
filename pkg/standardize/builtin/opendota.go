// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/AccelByte/game-churn-features/pkg/metrics"
	"github.com/AccelByte/game-churn-features/pkg/rawstore"
	"github.com/AccelByte/game-churn-features/pkg/schema"
	"github.com/AccelByte/game-churn-features/pkg/standardize"
	"github.com/sirupsen/logrus"
)

const (
	// TypeOpenDota is the platform type for the OpenDota standardizer.
	TypeOpenDota = "opendota"

	dotaMatchesSuffix = "_matches.json"

	// Player slots below this value are on the radiant side.
	radiantSlotLimit = 128
)

// dotaMatch mirrors one entry of the collector's <account_id>_matches.json.
type dotaMatch struct {
	StartTime  int64 `json:"start_time"`
	Duration   int   `json:"duration"`
	PlayerSlot int   `json:"player_slot"`
	RadiantWin bool  `json:"radiant_win"`
	GameMode   int   `json:"game_mode"`
}

// OpenDotaStandardizer converts OpenDota raw match data into activities.
// OpenDota reports a match-level "did radiant win" flag; the subject's
// outcome is derived from which side their player slot is on. The collector
// also persists a peer-graph snapshot consumed by the social calculator.
type OpenDotaStandardizer struct {
	config standardize.PlatformConfig
	subdir string
}

// NewOpenDotaStandardizer creates an OpenDota standardizer.
func NewOpenDotaStandardizer(config standardize.PlatformConfig) *OpenDotaStandardizer {
	return &OpenDotaStandardizer{
		config: config,
		subdir: config.GetString("raw_subdir", string(schema.PlatformOpenDota)),
	}
}

// Platform returns the platform identifier.
func (s *OpenDotaStandardizer) Platform() schema.Platform {
	return schema.PlatformOpenDota
}

// SocialGraph reports peer-graph capability.
func (s *OpenDotaStandardizer) SocialGraph() bool {
	return true
}

// Config returns the standardizer configuration.
func (s *OpenDotaStandardizer) Config() standardize.PlatformConfig {
	return s.config
}

// PeersSubdir returns the subdirectory holding peer-graph snapshots.
func (s *OpenDotaStandardizer) PeersSubdir() string {
	return s.subdir
}

// Discover lists account IDs with raw match data present.
func (s *OpenDotaStandardizer) Discover(store *rawstore.Store) ([]string, error) {
	return store.ListIdentifiers(s.subdir, dotaMatchesSuffix)
}

// Standardize converts one player's raw matches into activities.
func (s *OpenDotaStandardizer) Standardize(store *rawstore.Store, accountID string) ([]schema.Activity, error) {
	var matches []dotaMatch
	err := store.ReadJSON(s.subdir, fmt.Sprintf("%s%s", accountID, dotaMatchesSuffix), &matches)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		logrus.Warnf("skipping unreadable opendota raw file for %s: %v", accountID, err)
		metrics.RawRecordsSkipped.WithLabelValues(TypeOpenDota, "malformed_file").Inc()
		return nil, nil
	}

	activities := make([]schema.Activity, 0, len(matches))
	for _, match := range matches {
		ts := time.Unix(match.StartTime, 0).UTC()
		if match.StartTime == 0 {
			ts = time.Now().UTC()
		}

		isRadiant := match.PlayerSlot < radiantSlotLimit
		result := schema.ResultLoss
		if isRadiant == match.RadiantWin {
			result = schema.ResultWin
		}

		activities = append(activities, schema.Activity{
			PlayerID:        accountID,
			Platform:        schema.PlatformOpenDota,
			Timestamp:       ts,
			DurationSeconds: match.Duration,
			Result:          result,
			// Dota has no per-game rating in the match payload.
			Rating:   nil,
			GameMode: strconv.Itoa(match.GameMode),
		})
	}

	metrics.ActivitiesStandardized.WithLabelValues(TypeOpenDota).Add(float64(len(activities)))
	return activities, nil
}
