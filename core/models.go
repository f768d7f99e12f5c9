package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// Fingerprint is a 64-bit content hash used to detect changed record content.
// Two records with the same Content always carry the same Fingerprint.
type Fingerprint uint64

// FingerprintContent computes a deterministic Fingerprint from text using
// BLAKE2b hashing. It is the basis for the at-most-once embedding guarantee:
// a record is only re-embedded when its fingerprint changes.
func FingerprintContent(text string) Fingerprint {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return Fingerprint(binary.LittleEndian.Uint64(sum))
}

// IndexKind identifies the kind of index maintained over a record field.
type IndexKind int

const (
	// IndexKindText is an inverted token index over free text.
	IndexKindText IndexKind = iota + 1
	// IndexKindKeyword is an exact-value index over a short field.
	IndexKindKeyword
	// IndexKindVector is a similarity index over embedding vectors.
	IndexKindVector
)

func (k IndexKind) String() string {
	switch k {
	case IndexKindText:
		return "text"
	case IndexKindKeyword:
		return "keyword"
	case IndexKindVector:
		return "vector"
	default:
		return "unknown"
	}
}

// SimilarityMetric selects the distance function for a vector index.
type SimilarityMetric int

const (
	// MetricCosine ranks by cosine similarity. The default; vectors are
	// normalized on ingest so the dot product is equivalent.
	MetricCosine SimilarityMetric = iota + 1
	// MetricDotProduct ranks by raw inner product.
	MetricDotProduct
	// MetricEuclidean ranks by negated L2 distance.
	MetricEuclidean
)

func (m SimilarityMetric) String() string {
	switch m {
	case MetricCosine:
		return "cosine"
	case MetricDotProduct:
		return "dotproduct"
	case MetricEuclidean:
		return "euclidean"
	default:
		return "unknown"
	}
}

// Record is a single content record in the corpus. Identity is the external
// Id; records are created by ingestion and mutated only by re-ingestion or
// re-embedding under the same Id.
type Record struct {
	Id          string
	Title       string
	Content     string
	Category    string
	Vector      []float32 // Embedding vector for semantic search (populated on ingest)
	ContentHash Fingerprint
	InsertedAt  time.Time // When the record was first stored
	UpdatedAt   time.Time // When the record was last rewritten
}

// IndexSpec declares an index required over the corpus. The ANN parameters
// (Lists, M, EfConstruction, EfSearch) only apply to vector indexes and are
// recorded so a backend that supports approximate search can honor them.
type IndexSpec struct {
	Name           string
	Field          string
	Kind           IndexKind
	Dimensions     int
	Metric         SimilarityMetric
	Lists          int
	M              int
	EfConstruction int
	EfSearch       int
}

// Strategy identifies which search strategy produced a result.
type Strategy int

const (
	// StrategySemantic is vector similarity search over embeddings.
	StrategySemantic Strategy = iota + 1
	// StrategyPattern is case-insensitive substring/regex matching.
	StrategyPattern
	// StrategyKeywordOr matches records containing any query token.
	StrategyKeywordOr
)

func (s Strategy) String() string {
	switch s {
	case StrategySemantic:
		return "semantic"
	case StrategyPattern:
		return "pattern"
	case StrategyKeywordOr:
		return "keyword-or"
	default:
		return "unknown"
	}
}

// SimilarityMatch is a record matched by vector similarity search.
type SimilarityMatch struct {
	Record *Record
	Score  float32
}

// SearchResult is a search hit with its relevance score and the strategy
// that produced it. Results from different strategies are never merged.
type SearchResult struct {
	Record   *Record
	Score    float32
	Strategy Strategy
}
