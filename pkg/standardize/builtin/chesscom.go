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
	// TypeChessCom is the platform type for the chess.com standardizer.
	TypeChessCom = "chess_com"

	chessGamesSuffix = "_games.json"
)

// chessGame mirrors one entry of the collector's <username>_games.json.
type chessGame struct {
	EndTime   int64     `json:"end_time"`
	TimeClass string    `json:"time_class"`
	White     chessSide `json:"white"`
	Black     chessSide `json:"black"`
}

type chessSide struct {
	Username string `json:"username"`
	Result   string `json:"result"`
	Rating   *int   `json:"rating"`
}

// chessLossResults are the chess.com result strings that count as a loss for
// the reporting side. Anything that is neither "win" nor one of these is
// resolved to draw (stalemate, agreed, repetition, insufficient, etc.).
var chessLossResults = map[string]bool{
	"checkmated": true,
	"timeout":    true,
	"resigned":   true,
	"abandoned":  true,
}

// ChessComStandardizer converts chess.com raw game data into activities.
// chess.com reports an explicit per-side result string and a per-side rating;
// it does not report game duration.
type ChessComStandardizer struct {
	config standardize.PlatformConfig
	subdir string
}

// NewChessComStandardizer creates a chess.com standardizer.
func NewChessComStandardizer(config standardize.PlatformConfig) *ChessComStandardizer {
	return &ChessComStandardizer{
		config: config,
		subdir: config.GetString("raw_subdir", string(schema.PlatformChessCom)),
	}
}

// Platform returns the platform identifier.
func (s *ChessComStandardizer) Platform() schema.Platform {
	return schema.PlatformChessCom
}

// SocialGraph reports peer-graph capability. chess.com's collector does not
// persist one.
func (s *ChessComStandardizer) SocialGraph() bool {
	return false
}

// Config returns the standardizer configuration.
func (s *ChessComStandardizer) Config() standardize.PlatformConfig {
	return s.config
}

// Discover lists usernames with raw game data present.
func (s *ChessComStandardizer) Discover(store *rawstore.Store) ([]string, error) {
	return store.ListIdentifiers(s.subdir, chessGamesSuffix)
}

// Standardize converts one player's raw games into activities.
func (s *ChessComStandardizer) Standardize(store *rawstore.Store, username string) ([]schema.Activity, error) {
	username = strings.ToLower(username)

	var games []chessGame
	err := store.ReadJSON(s.subdir, fmt.Sprintf("%s%s", username, chessGamesSuffix), &games)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		logrus.Warnf("skipping unreadable chess.com raw file for %s: %v", username, err)
		metrics.RawRecordsSkipped.WithLabelValues(TypeChessCom, "malformed_file").Inc()
		return nil, nil
	}

	activities := make([]schema.Activity, 0, len(games))
	for _, game := range games {
		ts := time.Unix(game.EndTime, 0).UTC()
		if game.EndTime == 0 {
			ts = time.Now().UTC()
		}

		// Pick the subject player's side; the raw data keys results per side.
		side := game.Black
		if strings.ToLower(game.White.Username) == username {
			side = game.White
		}

		result := schema.ResultDraw
		switch {
		case side.Result == "win":
			result = schema.ResultWin
		case chessLossResults[side.Result]:
			result = schema.ResultLoss
		}

		gameMode := game.TimeClass
		if gameMode == "" {
			gameMode = "unknown"
		}

		activities = append(activities, schema.Activity{
			PlayerID:  username,
			Platform:  schema.PlatformChessCom,
			Timestamp: ts,
			// chess.com does not report duration.
			DurationSeconds: 0,
			Result:          result,
			Rating:          side.Rating,
			GameMode:        gameMode,
		})
	}

	metrics.ActivitiesStandardized.WithLabelValues(TypeChessCom).Add(float64(len(activities)))
	return activities, nil
}
