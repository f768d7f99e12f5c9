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
	"github.com/poiesic/corpus/core"
)

// MarshalRecord serializes a Record to bytes.
func MarshalRecord(record *core.Record) []byte {
	buf := make([]byte, core.RecordMUS.Size(*record))
	core.RecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalRecord deserializes a Record from bytes.
func UnmarshalRecord(data []byte) (*core.Record, error) {
	record, _, err := core.RecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// MarshalIndexSpec serializes an IndexSpec to bytes.
func MarshalIndexSpec(spec *core.IndexSpec) []byte {
	buf := make([]byte, core.IndexSpecMUS.Size(*spec))
	core.IndexSpecMUS.Marshal(*spec, buf)
	return buf
}

// UnmarshalIndexSpec deserializes an IndexSpec from bytes.
func UnmarshalIndexSpec(data []byte) (*core.IndexSpec, error) {
	spec, _, err := core.IndexSpecMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
