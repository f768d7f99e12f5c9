// Package reembed regenerates the vectors of stored documents with a new
// or updated embedding model.
//
// This package supports batch processing of document records, progress
// reporting, retry logic with exponential backoff, and vector
// normalization to keep cosine similarity search valid after the switch.
package reembed
