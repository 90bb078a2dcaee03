// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package schema defines the canonical activity and feature types shared by
// the standardizers, the feature engine, and the output stores. It is the
// single coupling point between platforms: a new platform only needs a
// standardizer that emits Activity values.
package schema

import "time"

// Platform identifies a supported game platform.
type Platform string

const (
	PlatformChessCom Platform = "chess_com"
	PlatformOpenDota Platform = "opendota"
	PlatformRiotLoL  Platform = "riot_lol"
)

// Platforms returns the closed set of supported platforms.
func Platforms() []Platform {
	return []Platform{PlatformChessCom, PlatformOpenDota, PlatformRiotLoL}
}

// Valid reports whether p is one of the supported platforms.
func (p Platform) Valid() bool {
	switch p {
	case PlatformChessCom, PlatformOpenDota, PlatformRiotLoL:
		return true
	}
	return false
}

// Result is the outcome of a single game from the subject player's side.
type Result string

const (
	ResultWin     Result = "win"
	ResultLoss    Result = "loss"
	ResultDraw    Result = "draw"
	ResultUnknown Result = "unknown"
)

// Activity is one standardized game/match event for a player on a platform.
// Activities are immutable once produced by a standardizer.
type Activity struct {
	PlayerID        string    `json:"player_id"`
	Platform        Platform  `json:"platform"`
	Timestamp       time.Time `json:"game_timestamp"`
	DurationSeconds int       `json:"duration_seconds"`
	Result          Result    `json:"result"`
	Rating          *int      `json:"rating,omitempty"`
	GameMode        string    `json:"game_mode"`
}

// PlayerKey identifies one (player, platform) pair, the unit every feature
// snapshot is computed for.
type PlayerKey struct {
	PlayerID string
	Platform Platform
}

// Less orders keys by platform then player ID, used to keep build output
// deterministic regardless of worker scheduling.
func (k PlayerKey) Less(other PlayerKey) bool {
	if k.Platform != other.Platform {
		return k.Platform < other.Platform
	}
	return k.PlayerID < other.PlayerID
}
