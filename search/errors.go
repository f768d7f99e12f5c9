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


package search

import (
	"errors"
	"fmt"

	"github.com/poiesic/corpus/core"
)

var (
	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")

	// ErrProviderRequired is returned when an AI provider is not provided.
	ErrProviderRequired = errors.New("AI provider required")

	// ErrEmptyQuery is returned when the query text is empty.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrInvalidLimit is returned when the result limit is not positive.
	ErrInvalidLimit = errors.New("limit must be positive")

	// ErrSearchFailed is returned when every strategy in the chain failed.
	ErrSearchFailed = errors.New("all search strategies failed")
)

// StrategyError records the failure of a single strategy in the chain.
type StrategyError struct {
	// Strategy is the strategy that failed.
	Strategy core.Strategy

	// Err is the underlying failure.
	Err error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("%s strategy failed: %v", e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() error {
	return e.Err
}
