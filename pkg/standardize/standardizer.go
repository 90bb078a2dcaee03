// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package standardize turns platform-specific raw collector output into
// canonical schema.Activity records. Each platform is handled by one
// Standardizer registered in a Registry; the unified schema is the only
// coupling point, so adding a platform means adding one standardizer and a
// config entry, nothing else.
package standardize

import (
	"github.com/AccelByte/game-churn-features/pkg/rawstore"
	"github.com/AccelByte/game-churn-features/pkg/schema"
)

// Standardizer maps one platform's raw record collections into canonical
// activities. Implementations must be total: missing or malformed raw data
// yields an empty set, never an error that aborts the whole load.
type Standardizer interface {
	// Platform returns the platform this standardizer handles.
	Platform() schema.Platform

	// SocialGraph reports whether the platform's collector persists a
	// peer-graph snapshot usable by the social calculator.
	SocialGraph() bool

	// Discover returns the identifiers that have raw data present in the
	// store, in sorted order. An absent platform directory yields an empty
	// list.
	Discover(store *rawstore.Store) ([]string, error)

	// Standardize converts the raw record collection for one identifier
	// into activities. Records that cannot be resolved for the subject
	// player are skipped; missing files yield an empty set.
	Standardize(store *rawstore.Store, playerID string) ([]schema.Activity, error)

	// Config returns the standardizer's configuration.
	Config() PlatformConfig
}
