// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/AccelByte/game-churn-features/pkg/features/featurestore"
	"github.com/AccelByte/game-churn-features/pkg/schema"
	"github.com/AccelByte/game-churn-features/pkg/snapshotcache"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newTestLookup(t *testing.T, cache *redis.Client) (*LookupServer, *featurestore.Store) {
	t.Helper()

	store, err := featurestore.Open(filepath.Join(t.TempDir(), "features.db"))
	if err != nil {
		t.Fatalf("failed to open feature store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	l := NewLookupServer(8090, store, cache)
	if err := l.Setup(); err != nil {
		t.Fatalf("Setup() error: %v", err)
	}

	return l, store
}

func seedStore(t *testing.T, store *featurestore.Store) {
	t.Helper()

	rating := 1500
	snapshots := []schema.FeatureSnapshot{
		{PlayerID: "anna", Platform: schema.PlatformChessCom, Games30d: 20, WinRate30d: 0.55,
			RatingCurrent: &rating, EngagementScore: 48.5, DaysSinceLastGame: 1.5},
		{PlayerID: "7000", Platform: schema.PlatformOpenDota, Games30d: 3,
			DaysSinceLastGame: 30.0, Churned: true},
	}
	if err := store.ReplaceAll(context.Background(), snapshots); err != nil {
		t.Fatalf("failed to seed feature store: %v", err)
	}
}

func doRequest(t *testing.T, l *LookupServer, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	l.server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestLookupGet(t *testing.T) {
	l, store := newTestLookup(t, nil)
	seedStore(t, store)

	rec := doRequest(t, l, http.MethodGet, "/v1/players/chess_com/anna")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var snap schema.FeatureSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if snap.PlayerID != "anna" || snap.Games30d != 20 {
		t.Errorf("response = %+v, unexpected values", snap)
	}
	if snap.RatingCurrent == nil || *snap.RatingCurrent != 1500 {
		t.Errorf("rating_current = %v, expected 1500", snap.RatingCurrent)
	}
}

func TestLookupGetErrors(t *testing.T) {
	l, store := newTestLookup(t, nil)
	seedStore(t, store)

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"unknown player", http.MethodGet, "/v1/players/chess_com/nobody", http.StatusNotFound},
		{"unknown platform", http.MethodGet, "/v1/players/steam/anna", http.StatusBadRequest},
		{"missing player segment", http.MethodGet, "/v1/players/chess_com", http.StatusBadRequest},
		{"wrong method", http.MethodPost, "/v1/players/chess_com/anna", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, l, tt.method, tt.path)
			if rec.Code != tt.status {
				t.Errorf("status = %d, expected %d", rec.Code, tt.status)
			}
		})
	}
}

func TestLookupList(t *testing.T) {
	l, store := newTestLookup(t, nil)
	seedStore(t, store)

	t.Run("all players", func(t *testing.T) {
		rec := doRequest(t, l, http.MethodGet, "/v1/players")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, expected 200", rec.Code)
		}

		var body struct {
			Players []schema.FeatureSnapshot `json:"players"`
			Count   int                      `json:"count"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.Count != 2 || len(body.Players) != 2 {
			t.Errorf("count = %d with %d players, expected 2", body.Count, len(body.Players))
		}
	})

	t.Run("platform filter", func(t *testing.T) {
		rec := doRequest(t, l, http.MethodGet, "/v1/players?platform=opendota")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, expected 200", rec.Code)
		}

		var body struct {
			Players []schema.FeatureSnapshot `json:"players"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatal(err)
		}
		if len(body.Players) != 1 || body.Players[0].PlayerID != "7000" {
			t.Errorf("players = %+v, expected only 7000", body.Players)
		}
	})

	t.Run("bad platform", func(t *testing.T) {
		rec := doRequest(t, l, http.MethodGet, "/v1/players?platform=steam")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, expected 400", rec.Code)
		}
	})

	t.Run("bad limit", func(t *testing.T) {
		rec := doRequest(t, l, http.MethodGet, "/v1/players?limit=zero")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, expected 400", rec.Code)
		}
	})
}

func TestLookupHealth(t *testing.T) {
	l, _ := newTestLookup(t, nil)

	rec := doRequest(t, l, http.MethodGet, "/healthz")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, expected 200", rec.Code)
	}
}

func TestLookupCachePopulation(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	l, store := newTestLookup(t, cache)
	seedStore(t, store)

	// First read misses the cache and populates it.
	rec := doRequest(t, l, http.MethodGet, "/v1/players/chess_com/anna")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}

	cached, err := snapshotcache.GetSnapshot(context.Background(), cache, schema.PlatformChessCom, "anna")
	if err != nil {
		t.Fatalf("cache read error: %v", err)
	}
	if cached == nil {
		t.Fatal("cache not populated after a database-backed read")
	}

	// Subsequent reads are served from the cache even after the table
	// changes underneath.
	if err := store.ReplaceAll(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	rec = doRequest(t, l, http.MethodGet, "/v1/players/chess_com/anna")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, expected a cache hit 200", rec.Code)
	}
}
