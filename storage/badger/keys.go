package badger

// Key prefixes for different data types
const (
	recordPrefix   = "docrec"
	tokenPrefix    = "doctok"
	categoryPrefix = "doccat"
	indexPrefix    = "idxspec"
)

// keySeparator terminates the variable-length middle component of composite
// keys. Tokens and categories are produced by core.Tokenize and never
// contain a NUL byte.
const keySeparator = byte(0)

// makeRecordKey generates a key for a record by id.
func makeRecordKey(id string) []byte {
	buf := make([]byte, 0, len(recordPrefix)+1+len(id))
	buf = append(buf, recordPrefix...)
	buf = append(buf, ':')
	buf = append(buf, id...)
	return buf
}

// makeTokenKey generates a composite key for the inverted token index.
// Format: prefix:token<NUL>id
func makeTokenKey(token, id string) []byte {
	buf := makePartialTokenKey(token)
	buf = append(buf, id...)
	return buf
}

// makePartialTokenKey generates a partial key for token prefix scans.
func makePartialTokenKey(token string) []byte {
	buf := make([]byte, 0, len(tokenPrefix)+2+len(token)+1)
	buf = append(buf, tokenPrefix...)
	buf = append(buf, ':')
	buf = append(buf, token...)
	buf = append(buf, keySeparator)
	return buf
}

// makeCategoryKey generates a composite key for the category index.
// Format: prefix:category<NUL>id
func makeCategoryKey(category, id string) []byte {
	buf := makePartialCategoryKey(category)
	buf = append(buf, id...)
	return buf
}

// makePartialCategoryKey generates a partial key for category prefix scans.
func makePartialCategoryKey(category string) []byte {
	buf := make([]byte, 0, len(categoryPrefix)+2+len(category)+1)
	buf = append(buf, categoryPrefix...)
	buf = append(buf, ':')
	buf = append(buf, category...)
	buf = append(buf, keySeparator)
	return buf
}

// makeIndexKey generates a key for an index definition by name.
func makeIndexKey(name string) []byte {
	buf := make([]byte, 0, len(indexPrefix)+1+len(name))
	buf = append(buf, indexPrefix...)
	buf = append(buf, ':')
	buf = append(buf, name...)
	return buf
}

// idFromCompositeKey extracts the record id from a composite index key,
// given the partial key it was built from.
func idFromCompositeKey(key, partial []byte) string {
	return string(key[len(partial):])
}
