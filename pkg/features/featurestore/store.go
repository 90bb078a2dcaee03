// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package featurestore persists the feature table to SQLite. The column set
// is the engine's compatibility surface: consumers (model training, the
// lookup service) read it by name, and adding a platform must never change
// it.
package featurestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AccelByte/game-churn-features/pkg/schema"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no snapshot exists for a key.
var ErrNotFound = errors.New("snapshot not found")

const createTableStmt = `
CREATE TABLE IF NOT EXISTS player_features (
	player_id              TEXT    NOT NULL,
	platform               TEXT    NOT NULL,
	games_7d               INTEGER NOT NULL,
	games_14d              INTEGER NOT NULL,
	games_30d              INTEGER NOT NULL,
	playtime_7d_hours      REAL    NOT NULL,
	playtime_14d_hours     REAL    NOT NULL,
	playtime_30d_hours     REAL    NOT NULL,
	avg_daily_sessions_7d  REAL    NOT NULL,
	avg_daily_sessions_14d REAL    NOT NULL,
	avg_daily_sessions_30d REAL    NOT NULL,
	max_gap_days_30d       REAL    NOT NULL,
	games_trend_7d_vs_14d  REAL    NOT NULL,
	playtime_trend_7d_vs_14d REAL  NOT NULL,
	win_rate_7d            REAL    NOT NULL,
	win_rate_30d           REAL    NOT NULL,
	rating_current         INTEGER,
	rating_change_30d      INTEGER NOT NULL,
	unique_peers_30d       INTEGER NOT NULL,
	peer_games_30d         INTEGER NOT NULL,
	engagement_score       REAL    NOT NULL,
	days_since_last_game   REAL    NOT NULL,
	churned                INTEGER NOT NULL,
	built_at               INTEGER NOT NULL,
	PRIMARY KEY (player_id, platform)
)`

// Store persists feature snapshots in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) a SQLite feature store at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create feature store dir: %w", err)
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(createTableStmt); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to create player_features table: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// ReplaceAll atomically replaces the whole feature table with the given
// snapshots. Each build run recomputes from scratch, so the previous table
// contents are dropped rather than merged.
func (s *Store) ReplaceAll(ctx context.Context, snapshots []schema.FeatureSnapshot) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM player_features`); err != nil {
		return fmt.Errorf("failed to clear player_features: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO player_features (
		player_id, platform,
		games_7d, games_14d, games_30d,
		playtime_7d_hours, playtime_14d_hours, playtime_30d_hours,
		avg_daily_sessions_7d, avg_daily_sessions_14d, avg_daily_sessions_30d,
		max_gap_days_30d,
		games_trend_7d_vs_14d, playtime_trend_7d_vs_14d,
		win_rate_7d, win_rate_30d,
		rating_current, rating_change_30d,
		unique_peers_30d, peer_games_30d,
		engagement_score, days_since_last_game, churned,
		built_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	builtAt := time.Now().UTC().UnixMilli()
	for _, snap := range snapshots {
		var rating sql.NullInt64
		if snap.RatingCurrent != nil {
			rating = sql.NullInt64{Int64: int64(*snap.RatingCurrent), Valid: true}
		}

		if _, err := stmt.ExecContext(ctx,
			snap.PlayerID, string(snap.Platform),
			snap.Games7d, snap.Games14d, snap.Games30d,
			snap.Playtime7dHours, snap.Playtime14dHours, snap.Playtime30dHours,
			snap.AvgDailySessions7d, snap.AvgDailySessions14d, snap.AvgDailySessions30d,
			snap.MaxGapDays30d,
			snap.GamesTrend7dVs14d, snap.PlaytimeTrend7dVs14d,
			snap.WinRate7d, snap.WinRate30d,
			rating, snap.RatingChange30d,
			snap.UniquePeers30d, snap.PeerGames30d,
			snap.EngagementScore, snap.DaysSinceLastGame, boolToInt(snap.Churned),
			builtAt,
		); err != nil {
			return fmt.Errorf("failed to insert snapshot %s/%s: %w", snap.Platform, snap.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit feature table: %w", err)
	}

	return nil
}

const selectColumns = `
	player_id, platform,
	games_7d, games_14d, games_30d,
	playtime_7d_hours, playtime_14d_hours, playtime_30d_hours,
	avg_daily_sessions_7d, avg_daily_sessions_14d, avg_daily_sessions_30d,
	max_gap_days_30d,
	games_trend_7d_vs_14d, playtime_trend_7d_vs_14d,
	win_rate_7d, win_rate_30d,
	rating_current, rating_change_30d,
	unique_peers_30d, peer_games_30d,
	engagement_score, days_since_last_game, churned`

// Get returns the snapshot for one (player, platform) pair, or ErrNotFound.
func (s *Store) Get(ctx context.Context, playerID, platform string) (*schema.FeatureSnapshot, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM player_features WHERE player_id = ? AND platform = ?`,
		playerID, platform)

	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s/%s: %w", platform, playerID, err)
	}

	return snap, nil
}

// List returns snapshots ordered by platform then player ID, optionally
// filtered by platform. limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, platform string, limit int) ([]schema.FeatureSnapshot, error) {
	query := `SELECT ` + selectColumns + ` FROM player_features`
	args := []interface{}{}
	if platform != "" {
		query += ` WHERE platform = ?`
		args = append(args, platform)
	}
	query += ` ORDER BY platform, player_id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []schema.FeatureSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		snapshots = append(snapshots, *snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshot rows: %w", err)
	}

	return snapshots, nil
}

// Count returns the number of rows in the feature table.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM player_features`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSnapshot(row scanner) (*schema.FeatureSnapshot, error) {
	var snap schema.FeatureSnapshot
	var platform string
	var rating sql.NullInt64
	var churned int

	err := row.Scan(
		&snap.PlayerID, &platform,
		&snap.Games7d, &snap.Games14d, &snap.Games30d,
		&snap.Playtime7dHours, &snap.Playtime14dHours, &snap.Playtime30dHours,
		&snap.AvgDailySessions7d, &snap.AvgDailySessions14d, &snap.AvgDailySessions30d,
		&snap.MaxGapDays30d,
		&snap.GamesTrend7dVs14d, &snap.PlaytimeTrend7dVs14d,
		&snap.WinRate7d, &snap.WinRate30d,
		&rating, &snap.RatingChange30d,
		&snap.UniquePeers30d, &snap.PeerGames30d,
		&snap.EngagementScore, &snap.DaysSinceLastGame, &churned,
	)
	if err != nil {
		return nil, err
	}

	snap.Platform = schema.Platform(platform)
	if rating.Valid {
		value := int(rating.Int64)
		snap.RatingCurrent = &value
	}
	snap.Churned = churned != 0

	return &snap, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
