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

import "fmt"

// ValidateRecord validates a Record according to domain rules.
//
// Validation rules:
//   - Id must not be empty (identity is the external id)
//   - Content must not be empty
//
// NOT validated (populated by the pipeline):
//   - Vector (can be empty until embedded)
//   - ContentHash (computed on ingest)
//   - Timestamps (set by storage)
func ValidateRecord(record *Record) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	if record.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyID)
	}

	if record.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyContent)
	}

	return nil
}

// ValidateIndexSpec validates an IndexSpec according to domain rules.
//
// Validation rules:
//   - Name and Field must not be empty
//   - Kind must be a known IndexKind
//   - Vector specs need positive Dimensions and a known metric
func ValidateIndexSpec(spec *IndexSpec) error {
	if spec == nil {
		return fmt.Errorf("%w: spec is nil", ErrInvalidIndexSpec)
	}

	if spec.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidIndexSpec, ErrEmptyIndexName)
	}

	if spec.Field == "" {
		return fmt.Errorf("%w: %w", ErrInvalidIndexSpec, ErrEmptyIndexField)
	}

	if err := ValidateIndexKind(spec.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidIndexSpec, err)
	}

	if spec.Kind == IndexKindVector {
		if spec.Dimensions <= 0 {
			return fmt.Errorf("%w: %w", ErrInvalidIndexSpec, ErrInvalidDimensions)
		}
		if err := ValidateMetric(spec.Metric); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidIndexSpec, err)
		}
	}

	return nil
}

// ValidateIndexKind validates that an IndexKind has a valid value.
func ValidateIndexKind(kind IndexKind) error {
	if kind != IndexKindText && kind != IndexKindKeyword && kind != IndexKindVector {
		return fmt.Errorf("%w: value %d", ErrInvalidIndexKind, kind)
	}
	return nil
}

// ValidateMetric validates that a SimilarityMetric has a valid value.
func ValidateMetric(metric SimilarityMetric) error {
	if metric != MetricCosine && metric != MetricDotProduct && metric != MetricEuclidean {
		return fmt.Errorf("%w: value %d", ErrInvalidMetric, metric)
	}
	return nil
}
