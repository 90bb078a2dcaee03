// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/AccelByte/game-churn-features/pkg/rawstore"
	"github.com/AccelByte/game-churn-features/pkg/schema"
	"github.com/AccelByte/game-churn-features/pkg/standardize"
)

func writeRaw(t *testing.T, root, subdir, name, content string) {
	t.Helper()
	dir := filepath.Join(root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func chessStandardizer() *ChessComStandardizer {
	return NewChessComStandardizer(standardize.PlatformConfig{
		ID:      "chess-com",
		Type:    TypeChessCom,
		Enabled: true,
	})
}

func TestChessComDiscover(t *testing.T) {
	root := t.TempDir()
	writeRaw(t, root, "chess_com", "magnus_games.json", "[]")
	writeRaw(t, root, "chess_com", "hikaru_games.json", "[]")

	ids, err := chessStandardizer().Discover(rawstore.New(root))
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"hikaru", "magnus"}) {
		t.Errorf("Discover() = %v, expected [hikaru magnus]", ids)
	}
}

func TestChessComStandardize(t *testing.T) {
	root := t.TempDir()
	writeRaw(t, root, "chess_com", "magnus_games.json", `[
		{
			"end_time": 1700000000,
			"time_class": "blitz",
			"white": {"username": "Magnus", "result": "win", "rating": 2850},
			"black": {"username": "rival", "result": "checkmated", "rating": 2700}
		},
		{
			"end_time": 1700001000,
			"time_class": "rapid",
			"white": {"username": "rival", "result": "timeout", "rating": 2710},
			"black": {"username": "magnus", "result": "win", "rating": 2855}
		},
		{
			"end_time": 1700002000,
			"time_class": "blitz",
			"white": {"username": "magnus", "result": "resigned", "rating": 2848},
			"black": {"username": "rival", "result": "win", "rating": 2712}
		},
		{
			"end_time": 1700003000,
			"time_class": "",
			"white": {"username": "magnus", "result": "stalemate", "rating": 2848},
			"black": {"username": "rival", "result": "stalemate", "rating": 2712}
		}
	]`)

	activities, err := chessStandardizer().Standardize(rawstore.New(root), "Magnus")
	if err != nil {
		t.Fatalf("Standardize() error: %v", err)
	}
	if len(activities) != 4 {
		t.Fatalf("Standardize() produced %d activities, expected 4", len(activities))
	}

	// Side selection is case-insensitive; the subject can be on either side.
	wantResults := []schema.Result{
		schema.ResultWin,  // white, win
		schema.ResultWin,  // black, win
		schema.ResultLoss, // white, resigned
		schema.ResultDraw, // stalemate resolves to draw
	}
	wantRatings := []int{2850, 2855, 2848, 2848}

	for i, a := range activities {
		if a.PlayerID != "magnus" {
			t.Errorf("activity %d PlayerID = %q, expected magnus", i, a.PlayerID)
		}
		if a.Platform != schema.PlatformChessCom {
			t.Errorf("activity %d Platform = %q", i, a.Platform)
		}
		if a.Result != wantResults[i] {
			t.Errorf("activity %d Result = %q, expected %q", i, a.Result, wantResults[i])
		}
		if a.Rating == nil || *a.Rating != wantRatings[i] {
			t.Errorf("activity %d Rating = %v, expected %d", i, a.Rating, wantRatings[i])
		}
		if a.DurationSeconds != 0 {
			t.Errorf("activity %d DurationSeconds = %d, expected 0", i, a.DurationSeconds)
		}
	}

	if got := activities[0].Timestamp; !got.Equal(time.Unix(1700000000, 0).UTC()) {
		t.Errorf("activity 0 Timestamp = %v", got)
	}
	if activities[3].GameMode != "unknown" {
		t.Errorf("activity 3 GameMode = %q, expected unknown", activities[3].GameMode)
	}
}

func TestChessComStandardizeZeroEndTime(t *testing.T) {
	root := t.TempDir()
	writeRaw(t, root, "chess_com", "p1_games.json", `[
		{"end_time": 0, "time_class": "bullet",
		 "white": {"username": "p1", "result": "win", "rating": 1200},
		 "black": {"username": "p2", "result": "checkmated", "rating": 1180}}
	]`)

	before := time.Now().UTC().Add(-time.Minute)
	activities, err := chessStandardizer().Standardize(rawstore.New(root), "p1")
	if err != nil {
		t.Fatalf("Standardize() error: %v", err)
	}
	if len(activities) != 1 {
		t.Fatalf("Standardize() produced %d activities, expected 1", len(activities))
	}
	if activities[0].Timestamp.Before(before) {
		t.Errorf("zero end_time Timestamp = %v, expected a current fallback", activities[0].Timestamp)
	}
}

func TestChessComStandardizeBadInput(t *testing.T) {
	root := t.TempDir()
	writeRaw(t, root, "chess_com", "broken_games.json", `{not json`)

	s := chessStandardizer()
	store := rawstore.New(root)

	// Malformed raw data is skipped, not fatal.
	activities, err := s.Standardize(store, "broken")
	if err != nil {
		t.Fatalf("Standardize() on malformed file error: %v", err)
	}
	if activities != nil {
		t.Errorf("Standardize() on malformed file = %v, expected nil", activities)
	}

	// A missing file is an empty state.
	activities, err = s.Standardize(store, "missing")
	if err != nil {
		t.Fatalf("Standardize() on missing file error: %v", err)
	}
	if activities != nil {
		t.Errorf("Standardize() on missing file = %v, expected nil", activities)
	}
}
