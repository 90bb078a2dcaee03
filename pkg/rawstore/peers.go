// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rawstore

import (
	"fmt"
	"os"
)

// Peer is one entry of a collector-persisted peer-graph snapshot: a player
// the subject frequently played with, and how many shared games they have.
// The collector keeps the top peers by shared game count.
type Peer struct {
	AccountID   int64  `json:"account_id"`
	Personaname string `json:"personaname"`
	Games       int    `json:"games"`
	Win         int    `json:"win"`
}

// LoadPeers reads the peer-graph snapshot for one player. The snapshot is
// keyed by player identifier, not time-windowed: it reflects whatever the
// collector last persisted. A missing file yields an empty list.
func (s *Store) LoadPeers(subdir, playerID string) ([]Peer, error) {
	var peers []Peer

	err := s.ReadJSON(subdir, fmt.Sprintf("%s_peers.json", playerID), &peers)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return peers, nil
}
