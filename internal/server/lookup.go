// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/AccelByte/game-churn-features/pkg/common"
	"github.com/AccelByte/game-churn-features/pkg/features/featurestore"
	"github.com/AccelByte/game-churn-features/pkg/metrics"
	"github.com/AccelByte/game-churn-features/pkg/schema"
	"github.com/AccelByte/game-churn-features/pkg/snapshotcache"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const defaultListLimit = 100

// LookupServer serves feature snapshots over HTTP. Reads go through the
// Redis cache when one is configured and fall back to the SQLite feature
// table on a miss.
type LookupServer struct {
	server *http.Server
	store  *featurestore.Store
	cache  *redis.Client
	port   int
}

// NewLookupServer creates a lookup server. The cache client may be nil, in
// which case every read hits the feature table directly.
func NewLookupServer(port int, store *featurestore.Store, cache *redis.Client) *LookupServer {
	return &LookupServer{
		store: store,
		cache: cache,
		port:  port,
	}
}

// Setup configures the HTTP routes.
func (l *LookupServer) Setup() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", l.handleHealth)
	mux.HandleFunc("/v1/players", l.handleList)
	mux.HandleFunc("/v1/players/", l.handleGet)

	l.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", l.port),
		Handler: mux,
	}

	return nil
}

// Start begins serving lookups on the configured port.
func (l *LookupServer) Start(ctx context.Context) error {
	go func() {
		logrus.Infof("lookup server listening on port %d", l.port)
		if err := l.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("lookup server failed: %v", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the lookup server.
func (l *LookupServer) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down lookup server...")
	if err := l.server.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("lookup server stopped")
	return nil
}

func (l *LookupServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGet serves GET /v1/players/{platform}/{player_id}.
func (l *LookupServer) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		l.writeError(w, "get", http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/v1/players/")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		l.writeError(w, "get", http.StatusBadRequest, "expected /v1/players/{platform}/{player_id}")
		return
	}

	platform := schema.Platform(parts[0])
	if !platform.Valid() {
		l.writeError(w, "get", http.StatusBadRequest, fmt.Sprintf("unknown platform: %s", parts[0]))
		return
	}
	playerID := parts[1]

	scope := common.NewScope(r.Context(), "LookupServer.Get")
	defer scope.Finish()

	if l.cache != nil {
		snap, err := snapshotcache.GetSnapshot(scope.Ctx, l.cache, platform, playerID)
		if err != nil {
			scope.Log.Warnf("snapshot cache read failed: %v", err)
		} else if snap != nil {
			metrics.LookupRequests.WithLabelValues("get", "hit").Inc()
			writeJSON(w, http.StatusOK, snap)
			return
		}
	}

	snap, err := l.store.Get(scope.Ctx, playerID, string(platform))
	if errors.Is(err, featurestore.ErrNotFound) {
		l.writeError(w, "get", http.StatusNotFound, "player not found")
		return
	}
	if err != nil {
		scope.TraceError(err)
		scope.Log.Errorf("feature table read failed: %v", err)
		l.writeError(w, "get", http.StatusInternalServerError, "internal error")
		return
	}

	if l.cache != nil {
		if err := snapshotcache.PutSnapshot(scope.Ctx, l.cache, snap); err != nil {
			scope.Log.Warnf("snapshot cache write failed: %v", err)
		}
	}

	metrics.LookupRequests.WithLabelValues("get", "ok").Inc()
	writeJSON(w, http.StatusOK, snap)
}

// handleList serves GET /v1/players?platform=&limit=.
func (l *LookupServer) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		l.writeError(w, "list", http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	platform := r.URL.Query().Get("platform")
	if platform != "" && !schema.Platform(platform).Valid() {
		l.writeError(w, "list", http.StatusBadRequest, fmt.Sprintf("unknown platform: %s", platform))
		return
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			l.writeError(w, "list", http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	scope := common.NewScope(r.Context(), "LookupServer.List")
	defer scope.Finish()

	snapshots, err := l.store.List(scope.Ctx, platform, limit)
	if err != nil {
		scope.TraceError(err)
		scope.Log.Errorf("feature table list failed: %v", err)
		l.writeError(w, "list", http.StatusInternalServerError, "internal error")
		return
	}

	metrics.LookupRequests.WithLabelValues("list", "ok").Inc()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"players": snapshots,
		"count":   len(snapshots),
	})
}

func (l *LookupServer) writeError(w http.ResponseWriter, endpoint string, status int, msg string) {
	metrics.LookupRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Warnf("failed to encode response: %v", err)
	}
}
