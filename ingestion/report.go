package ingestion

// Failure records a single document that could not be ingested.
type Failure struct {
	// Id is the document id, empty if the document had none.
	Id string

	// Err is what went wrong.
	Err error
}

// Report summarizes an ingestion batch.
type Report struct {
	// Inserted counts documents embedded and written.
	Inserted int

	// Skipped counts documents already stored, left untouched.
	Skipped int

	// Failed lists documents that could not be ingested.
	Failed []Failure
}

// Total returns the number of documents accounted for.
func (r *Report) Total() int {
	return r.Inserted + r.Skipped + len(r.Failed)
}

// HasFailures reports whether any document failed.
func (r *Report) HasFailures() bool {
	return len(r.Failed) > 0
}
