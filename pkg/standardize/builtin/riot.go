// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AccelByte/game-churn-features/pkg/metrics"
	"github.com/AccelByte/game-churn-features/pkg/rawstore"
	"github.com/AccelByte/game-churn-features/pkg/schema"
	"github.com/AccelByte/game-churn-features/pkg/standardize"
	"github.com/sirupsen/logrus"
)

const (
	// TypeRiotLoL is the platform type for the Riot League of Legends
	// standardizer.
	TypeRiotLoL = "riot_lol"

	riotMatchesSuffix = "_matches.json"
	riotAccountSuffix = "_account.json"
)

// riotAccount mirrors the collector's <name>_<tag>_account.json.
type riotAccount struct {
	PUUID string `json:"puuid"`
}

// riotMatch mirrors one entry of the collector's <name>_<tag>_matches.json.
type riotMatch struct {
	Info riotMatchInfo `json:"info"`
}

type riotMatchInfo struct {
	GameCreation int64             `json:"gameCreation"` // unix millis
	GameDuration int               `json:"gameDuration"`
	GameMode     string            `json:"gameMode"`
	Participants []riotParticipant `json:"participants"`
}

type riotParticipant struct {
	PUUID string `json:"puuid"`
	Win   bool   `json:"win"`
}

// RiotLoLStandardizer converts Riot LoL raw match data into activities.
// Matches carry all ten participants; the subject's row is joined via the
// puuid from the companion account file. Matches where the join fails are
// silently skipped.
type RiotLoLStandardizer struct {
	config standardize.PlatformConfig
	subdir string
}

// NewRiotLoLStandardizer creates a Riot LoL standardizer.
func NewRiotLoLStandardizer(config standardize.PlatformConfig) *RiotLoLStandardizer {
	return &RiotLoLStandardizer{
		config: config,
		subdir: config.GetString("raw_subdir", string(schema.PlatformRiotLoL)),
	}
}

// Platform returns the platform identifier.
func (s *RiotLoLStandardizer) Platform() schema.Platform {
	return schema.PlatformRiotLoL
}

// SocialGraph reports peer-graph capability. The Riot collector does not
// persist one.
func (s *RiotLoLStandardizer) SocialGraph() bool {
	return false
}

// Config returns the standardizer configuration.
func (s *RiotLoLStandardizer) Config() standardize.PlatformConfig {
	return s.config
}

// Discover lists riot identifiers (name_tag) with an account file present.
func (s *RiotLoLStandardizer) Discover(store *rawstore.Store) ([]string, error) {
	return store.ListIdentifiers(s.subdir, riotAccountSuffix)
}

// Standardize converts one player's raw matches into activities. Both the
// account file and the matches file must be present; otherwise the player
// has no usable raw data and an empty set is returned.
func (s *RiotLoLStandardizer) Standardize(store *rawstore.Store, riotID string) ([]schema.Activity, error) {
	riotID = strings.ToLower(riotID)

	var account riotAccount
	err := store.ReadJSON(s.subdir, fmt.Sprintf("%s%s", riotID, riotAccountSuffix), &account)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		logrus.Warnf("skipping unreadable riot account file for %s: %v", riotID, err)
		metrics.RawRecordsSkipped.WithLabelValues(TypeRiotLoL, "malformed_file").Inc()
		return nil, nil
	}

	var matches []riotMatch
	err = store.ReadJSON(s.subdir, fmt.Sprintf("%s%s", riotID, riotMatchesSuffix), &matches)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		logrus.Warnf("skipping unreadable riot matches file for %s: %v", riotID, err)
		metrics.RawRecordsSkipped.WithLabelValues(TypeRiotLoL, "malformed_file").Inc()
		return nil, nil
	}

	activities := make([]schema.Activity, 0, len(matches))
	for _, match := range matches {
		// Join the subject's participant row by puuid.
		var player *riotParticipant
		for i := range match.Info.Participants {
			if match.Info.Participants[i].PUUID == account.PUUID {
				player = &match.Info.Participants[i]
				break
			}
		}
		if player == nil {
			metrics.RawRecordsSkipped.WithLabelValues(TypeRiotLoL, "participant_not_found").Inc()
			continue
		}

		result := schema.ResultLoss
		if player.Win {
			result = schema.ResultWin
		}

		gameMode := match.Info.GameMode
		if gameMode == "" {
			gameMode = "unknown"
		}

		activities = append(activities, schema.Activity{
			PlayerID:        riotID,
			Platform:        schema.PlatformRiotLoL,
			Timestamp:       time.UnixMilli(match.Info.GameCreation).UTC(),
			DurationSeconds: match.Info.GameDuration,
			Result:          result,
			// LoL match payloads carry no rating.
			Rating:   nil,
			GameMode: gameMode,
		})
	}

	metrics.ActivitiesStandardized.WithLabelValues(TypeRiotLoL).Add(float64(len(activities)))
	return activities, nil
}
