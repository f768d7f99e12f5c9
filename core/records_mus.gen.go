// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	slice8M5EN442cPXwkrojF9oHyQΞΞ = ord.NewSliceSer[float32](varint.Float32)
)

var FingerprintMUS = fingerprintMUS{}

type fingerprintMUS struct{}

func (s fingerprintMUS) Marshal(v Fingerprint, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s fingerprintMUS) Unmarshal(bs []byte) (v Fingerprint, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = Fingerprint(tmp)
	return
}

func (s fingerprintMUS) Size(v Fingerprint) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s fingerprintMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var IndexKindMUS = indexKindMUS{}

type indexKindMUS struct{}

func (s indexKindMUS) Marshal(v IndexKind, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s indexKindMUS) Unmarshal(bs []byte) (v IndexKind, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = IndexKind(tmp)
	return
}

func (s indexKindMUS) Size(v IndexKind) (size int) {
	return varint.Int.Size(int(v))
}

func (s indexKindMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var SimilarityMetricMUS = similarityMetricMUS{}

type similarityMetricMUS struct{}

func (s similarityMetricMUS) Marshal(v SimilarityMetric, bs []byte) (n int) {
	return varint.Int.Marshal(int(v), bs)
}

func (s similarityMetricMUS) Unmarshal(bs []byte) (v SimilarityMetric, n int, err error) {
	tmp, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	v = SimilarityMetric(tmp)
	return
}

func (s similarityMetricMUS) Size(v SimilarityMetric) (size int) {
	return varint.Int.Size(int(v))
}

func (s similarityMetricMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int.Skip(bs)
}

var RecordMUS = recordMUS{}

type recordMUS struct{}

func (s recordMUS) Marshal(v Record, bs []byte) (n int) {
	n = ord.String.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	n += ord.String.Marshal(v.Category, bs[n:])
	n += slice8M5EN442cPXwkrojF9oHyQΞΞ.Marshal(v.Vector, bs[n:])
	n += FingerprintMUS.Marshal(v.ContentHash, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.UpdatedAt, bs[n:])
}

func (s recordMUS) Unmarshal(bs []byte) (v Record, n int, err error) {
	v.Id, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Category, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = slice8M5EN442cPXwkrojF9oHyQΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ContentHash, n1, err = FingerprintMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s recordMUS) Size(v Record) (size int) {
	size = ord.String.Size(v.Id)
	size += ord.String.Size(v.Title)
	size += ord.String.Size(v.Content)
	size += ord.String.Size(v.Category)
	size += slice8M5EN442cPXwkrojF9oHyQΞΞ.Size(v.Vector)
	size += FingerprintMUS.Size(v.ContentHash)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	return size + raw.TimeUnixMicro.Size(v.UpdatedAt)
}

func (s recordMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slice8M5EN442cPXwkrojF9oHyQΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = FingerprintMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var IndexSpecMUS = indexSpecMUS{}

type indexSpecMUS struct{}

func (s indexSpecMUS) Marshal(v IndexSpec, bs []byte) (n int) {
	n = ord.String.Marshal(v.Name, bs)
	n += ord.String.Marshal(v.Field, bs[n:])
	n += IndexKindMUS.Marshal(v.Kind, bs[n:])
	n += varint.Int.Marshal(v.Dimensions, bs[n:])
	n += SimilarityMetricMUS.Marshal(v.Metric, bs[n:])
	n += varint.Int.Marshal(v.Lists, bs[n:])
	n += varint.Int.Marshal(v.M, bs[n:])
	n += varint.Int.Marshal(v.EfConstruction, bs[n:])
	return n + varint.Int.Marshal(v.EfSearch, bs[n:])
}

func (s indexSpecMUS) Unmarshal(bs []byte) (v IndexSpec, n int, err error) {
	v.Name, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Field, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Kind, n1, err = IndexKindMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Dimensions, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metric, n1, err = SimilarityMetricMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Lists, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.M, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.EfConstruction, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.EfSearch, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (s indexSpecMUS) Size(v IndexSpec) (size int) {
	size = ord.String.Size(v.Name)
	size += ord.String.Size(v.Field)
	size += IndexKindMUS.Size(v.Kind)
	size += varint.Int.Size(v.Dimensions)
	size += SimilarityMetricMUS.Size(v.Metric)
	size += varint.Int.Size(v.Lists)
	size += varint.Int.Size(v.M)
	size += varint.Int.Size(v.EfConstruction)
	return size + varint.Int.Size(v.EfSearch)
}

func (s indexSpecMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = IndexKindMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = SimilarityMetricMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	return
}
