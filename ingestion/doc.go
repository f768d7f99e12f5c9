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


// Package ingestion loads documents into storage, embedding each one at
// most once.
//
// The Pipeline checks whether a document is already stored before paying
// for an embedding. The existence check fails open: when storage cannot
// answer, the document is treated as new and ingested, since a duplicate
// write is cheaper than a silently dropped document.
//
// A batch never stops at the first bad document. Each failure is recorded
// in the returned Report and processing continues; cancellation stops the
// batch and returns the partial Report alongside the context error.
package ingestion
