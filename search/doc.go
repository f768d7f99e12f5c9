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


// Package search provides layered retrieval over document records.
//
// The Engine runs a fixed chain of strategies in relevance order:
//
//   - semantic: vector similarity against the query embedding
//   - pattern: case-insensitive substring/regex match on title and content
//   - keyword-or: documents whose title or content contains any query token
//
// The first strategy that returns results wins and later strategies never
// run. A strategy that fails is logged and skipped, so a degraded embedding
// service falls back to text matching instead of failing the query. Only
// when every strategy fails does Search return ErrSearchFailed. An empty
// result set from a healthy chain is not an error.
//
// Each result carries the strategy that produced it, so callers can tell
// a semantic hit from a keyword fallback.
package search
