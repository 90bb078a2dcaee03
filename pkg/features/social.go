// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package features

import (
	"github.com/AccelByte/game-churn-features/pkg/rawstore"
	"github.com/AccelByte/game-churn-features/pkg/schema"
	"github.com/sirupsen/logrus"
)

// Social holds peer-relationship statistics for one player.
type Social struct {
	UniquePeers30d int
	PeerGames30d   int
}

// SocialSource provides peer statistics for a player key. The zero Social
// value is the correct answer for platforms without a peer graph and for
// players with no peer data.
type SocialSource interface {
	Social(key schema.PlayerKey) Social
}

// PeerGraphSource reads peer-graph snapshots from the raw store for the
// platforms whose collectors persist one. All other platforms report zero.
type PeerGraphSource struct {
	store   *rawstore.Store
	capable map[schema.Platform]bool
}

// NewPeerGraphSource creates a source over the raw store. capable is the set
// of platforms with peer-graph snapshots, typically taken from the
// standardizer registry.
func NewPeerGraphSource(store *rawstore.Store, capable map[schema.Platform]bool) *PeerGraphSource {
	return &PeerGraphSource{
		store:   store,
		capable: capable,
	}
}

// Social returns peer statistics for one player. Missing peer data on a
// capable platform is a normal state and yields zero, not an error.
func (s *PeerGraphSource) Social(key schema.PlayerKey) Social {
	if !s.capable[key.Platform] {
		return Social{}
	}

	peers, err := s.store.LoadPeers(string(key.Platform), key.PlayerID)
	if err != nil {
		logrus.Warnf("failed to load peer snapshot for %s/%s, treating as empty: %v",
			key.Platform, key.PlayerID, err)
		return Social{}
	}

	social := Social{UniquePeers30d: len(peers)}
	for _, p := range peers {
		social.PeerGames30d += p.Games
	}

	return social
}

// NoSocialSource reports zero peer statistics for every player. Used when
// the raw store carries no peer graphs at all, e.g. in synthetic runs.
type NoSocialSource struct{}

// Social implements SocialSource.
func (NoSocialSource) Social(schema.PlayerKey) Social {
	return Social{}
}
