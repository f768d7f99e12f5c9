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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidRecord indicates a Record failed validation.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrInvalidIndexSpec indicates an IndexSpec failed validation.
	ErrInvalidIndexSpec = errors.New("invalid index spec")

	// ErrEmptyID indicates the Id field is empty.
	ErrEmptyID = errors.New("id cannot be empty")

	// ErrEmptyContent indicates the Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyIndexName indicates the index Name field is empty.
	ErrEmptyIndexName = errors.New("index name cannot be empty")

	// ErrEmptyIndexField indicates the index Field field is empty.
	ErrEmptyIndexField = errors.New("index field cannot be empty")

	// ErrInvalidIndexKind indicates an invalid IndexKind value.
	ErrInvalidIndexKind = errors.New("invalid index kind")

	// ErrInvalidMetric indicates an invalid SimilarityMetric value.
	ErrInvalidMetric = errors.New("invalid similarity metric")

	// ErrInvalidDimensions indicates a vector index spec without a positive dimension.
	ErrInvalidDimensions = errors.New("vector index dimensions must be positive")
)
