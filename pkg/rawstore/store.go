// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package rawstore reads the raw per-platform data files written by the
// external collector family. The layout is one subdirectory per platform
// containing JSON files keyed by player identifier, e.g.
//
//	<root>/chess_com/<username>_games.json
//	<root>/opendota/<account_id>_matches.json
//	<root>/opendota/<account_id>_peers.json
//	<root>/riot_lol/<name>_<tag>_account.json
//
// Absence of a directory or file is a normal state, not an error: collectors
// may simply not have run for a platform yet.
package rawstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store provides read access to the raw collector output on disk.
type Store struct {
	root string
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// Available reports whether the raw-data root exists at all. A missing root
// means no collector has ever run, which the loader treats as fatal.
func (s *Store) Available() bool {
	info, err := os.Stat(s.root)
	return err == nil && info.IsDir()
}

// PlatformAvailable reports whether a platform subdirectory exists.
func (s *Store) PlatformAvailable(subdir string) bool {
	info, err := os.Stat(filepath.Join(s.root, subdir))
	return err == nil && info.IsDir()
}

// ListIdentifiers scans a platform subdirectory for files ending in suffix
// and returns the identifier part of each filename, sorted. A missing
// directory yields an empty list.
func (s *Store) ListIdentifiers(subdir, suffix string) ([]string, error) {
	dir := filepath.Join(s.root, subdir)

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan raw data dir %s: %w", dir, err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, suffix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, suffix))
	}

	sort.Strings(ids)
	return ids, nil
}

// FileExists reports whether a raw file exists under a platform subdirectory.
func (s *Store) FileExists(subdir, name string) bool {
	info, err := os.Stat(filepath.Join(s.root, subdir, name))
	return err == nil && !info.IsDir()
}

// ReadJSON decodes a raw JSON file into v. A missing file is reported via
// os.IsNotExist on the returned error so callers can treat absence as empty.
func (s *Store) ReadJSON(subdir, name string, v interface{}) error {
	path := filepath.Join(s.root, subdir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse raw file %s: %w", path, err)
	}

	return nil
}
