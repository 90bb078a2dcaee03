// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package features

import (
	"context"
	"reflect"
	"testing"

	"github.com/AccelByte/game-churn-features/pkg/activity"
	"github.com/AccelByte/game-churn-features/pkg/schema"
)

// fixedSocialSource returns canned peer stats for specific keys.
type fixedSocialSource map[schema.PlayerKey]Social

func (s fixedSocialSource) Social(key schema.PlayerKey) Social {
	return s[key]
}

func TestBuildSteadyPlayer(t *testing.T) {
	// 20 games over 25 days, 1800 seconds each, all wins.
	collection := activity.NewCollection(gamesEvery(20, 1, 1.25, 1800, schema.ResultWin))

	builder := NewBuilder(collection, nil, BuilderConfig{
		Reference:          testReference,
		ChurnThresholdDays: 14,
	})

	snapshots, err := builder.Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("Build() produced %d snapshots, expected 1", len(snapshots))
	}

	snap := snapshots[0]
	if snap.Games30d != 20 {
		t.Errorf("Games30d = %d, expected 20", snap.Games30d)
	}
	if snap.Playtime30dHours != 10.0 {
		t.Errorf("Playtime30dHours = %v, expected 10.0", snap.Playtime30dHours)
	}
	if snap.WinRate30d != 1.0 {
		t.Errorf("WinRate30d = %v, expected 1.0", snap.WinRate30d)
	}
	if snap.Churned {
		t.Error("Churned = true, expected false for a player active 1 day ago")
	}
	if snap.DaysSinceLastGame != 1.0 {
		t.Errorf("DaysSinceLastGame = %v, expected 1.0", snap.DaysSinceLastGame)
	}
}

func TestBuildEmptyCollection(t *testing.T) {
	builder := NewBuilder(activity.NewCollection(nil), nil, BuilderConfig{Reference: testReference})

	if _, err := builder.Build(context.Background()); err == nil {
		t.Error("Build() over an empty collection succeeded, expected an error")
	}
}

func TestBuildSnapshotNoActivity(t *testing.T) {
	// A key that exists in no collection yields the documented empty
	// snapshot: sentinels plus churned.
	builder := NewBuilder(activity.NewCollection(nil), nil, BuilderConfig{Reference: testReference})

	snap := builder.BuildSnapshot(schema.PlayerKey{PlayerID: "ghost", Platform: schema.PlatformRiotLoL})

	if snap.DaysSinceLastGame != schema.NoActivityDays {
		t.Errorf("DaysSinceLastGame = %v, expected %v", snap.DaysSinceLastGame, schema.NoActivityDays)
	}
	if snap.MaxGapDays30d != schema.NoGapDataDays {
		t.Errorf("MaxGapDays30d = %v, expected %v", snap.MaxGapDays30d, schema.NoGapDataDays)
	}
	if !snap.Churned {
		t.Error("Churned = false, expected true for a player with no activity")
	}
	if snap.EngagementScore != 0.0 {
		t.Errorf("EngagementScore = %v, expected 0.0", snap.EngagementScore)
	}
	if snap.RatingCurrent != nil {
		t.Errorf("RatingCurrent = %v, expected nil", *snap.RatingCurrent)
	}
}

func TestBuildDeterministicAndSorted(t *testing.T) {
	var all []schema.Activity
	for _, p := range []struct {
		player   string
		platform schema.Platform
	}{
		{"zoe", schema.PlatformRiotLoL},
		{"anna", schema.PlatformChessCom},
		{"7000", schema.PlatformOpenDota},
		{"bob", schema.PlatformChessCom},
	} {
		for i := 0; i < 5; i++ {
			a := gameAt(float64(i)+1, 1800, schema.ResultWin)
			a.PlayerID = p.player
			a.Platform = p.platform
			all = append(all, a)
		}
	}

	collection := activity.NewCollection(all)
	social := fixedSocialSource{
		{PlayerID: "7000", Platform: schema.PlatformOpenDota}: {UniquePeers30d: 4, PeerGames30d: 12},
	}

	build := func(workers int) []schema.FeatureSnapshot {
		builder := NewBuilder(collection, social, BuilderConfig{
			Reference: testReference,
			Workers:   workers,
		})
		snapshots, err := builder.Build(context.Background())
		if err != nil {
			t.Fatalf("Build() error: %v", err)
		}
		return snapshots
	}

	first := build(1)
	second := build(8)

	if !reflect.DeepEqual(first, second) {
		t.Error("builds with different worker counts diverged")
	}

	wantOrder := []schema.PlayerKey{
		{PlayerID: "anna", Platform: schema.PlatformChessCom},
		{PlayerID: "bob", Platform: schema.PlatformChessCom},
		{PlayerID: "7000", Platform: schema.PlatformOpenDota},
		{PlayerID: "zoe", Platform: schema.PlatformRiotLoL},
	}
	for i, want := range wantOrder {
		if first[i].Key() != want {
			t.Errorf("snapshot %d key = %v, expected %v", i, first[i].Key(), want)
		}
	}

	// Social stats only flow into the capable key.
	if first[2].UniquePeers30d != 4 || first[2].PeerGames30d != 12 {
		t.Errorf("opendota social = (%d, %d), expected (4, 12)",
			first[2].UniquePeers30d, first[2].PeerGames30d)
	}
	if first[0].UniquePeers30d != 0 {
		t.Errorf("chess social = %d, expected 0", first[0].UniquePeers30d)
	}
}

func TestBuildCanceledContext(t *testing.T) {
	collection := activity.NewCollection(gamesEvery(5, 1, 1, 1800, schema.ResultWin))
	builder := NewBuilder(collection, nil, BuilderConfig{Reference: testReference})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := builder.Build(ctx); err == nil {
		t.Error("Build() with canceled context succeeded, expected an error")
	}
}
