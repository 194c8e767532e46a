// Copyright 2025 Redpanda Data, Inc.
//
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package backend

import (
	"encoding/hex"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/zeebo/blake3"
)

const documentVersion = 1

type document struct {
	Version int             `json:"version"`
	Digest  string          `json:"digest"`
	State   json.RawMessage `json:"state"`
}

func digest(payload []byte) string {
	sum := blake3.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// encode serialises state into a versioned document carrying the BLAKE3
// digest of the state payload.
func encode(state *State) ([]byte, error) {
	if state == nil {
		state = NewState(nil, nil)
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode cluster state")
	}
	// The payload is embedded compact so the digest survives a round trip.
	return json.Marshal(document{
		Version: documentVersion,
		Digest:  digest(payload),
		State:   payload,
	})
}

// decode parses a document written by encode. Empty input is an empty state.
func decode(raw []byte) (*State, error) {
	if len(raw) == 0 {
		return NewState(nil, nil), nil
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "unable to decode cluster state document")
	}
	if doc.Version != documentVersion {
		return nil, errors.Errorf("unsupported cluster state version %d", doc.Version)
	}
	if got := digest(doc.State); got != doc.Digest {
		return nil, errors.Errorf("cluster state digest mismatch: stored %s, computed %s", doc.Digest, got)
	}
	state := NewState(nil, nil)
	if err := json.Unmarshal(doc.State, state); err != nil {
		return nil, errors.Wrap(err, "unable to decode cluster state")
	}
	return state, nil
}
