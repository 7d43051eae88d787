// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"github.com/poiesic/verity/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalAnswer serializes a VerifiedAnswer to bytes.
func MarshalAnswer(answer *core.VerifiedAnswer) []byte {
	buf := make([]byte, core.VerifiedAnswerMUS.Size(*answer))
	core.VerifiedAnswerMUS.Marshal(*answer, buf)
	return buf
}

// UnmarshalAnswer deserializes a VerifiedAnswer from bytes.
func UnmarshalAnswer(data []byte) (*core.VerifiedAnswer, error) {
	answer, _, err := core.VerifiedAnswerMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// MarshalViews serializes a view counter to bytes.
func MarshalViews(views uint64) []byte {
	buf := make([]byte, core.ViewsMUS.Size(views))
	core.ViewsMUS.Marshal(views, buf)
	return buf
}

// UnmarshalViews deserializes a view counter from bytes.
func UnmarshalViews(data []byte) (uint64, error) {
	views, _, err := core.ViewsMUS.Unmarshal(data)
	return views, err
}
