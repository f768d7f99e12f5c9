// Package index manages the index definitions that back search.
//
// The Manager registers text, keyword and vector index definitions with
// storage before ingestion begins. Registration is idempotent: an index
// that already exists with an equivalent definition is treated as success,
// so EnsureIndexes can run on every startup.
package index
