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

import (
	"fmt"
	"strings"
	"time"
)

// ValidateSymptomRecord validates a SymptomRecord before it is stored.
//
// Validation rules:
//   - Name must not be empty
//   - Name must already be lowercase and trimmed
//
// NOT validated:
//   - Vector (empty until the indexer embeds it)
//   - Diseases (a symptom may be known only from the severity table)
func ValidateSymptomRecord(record *SymptomRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidSymptomRecord)
	}

	if record.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSymptomRecord, ErrEmptyName)
	}

	if record.Name != strings.ToLower(strings.TrimSpace(record.Name)) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidSymptomRecord, ErrUnnormalizedName, record.Name)
	}

	return nil
}

// ValidateFAQRecord validates an FAQRecord before it is stored.
func ValidateFAQRecord(record *FAQRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidFAQRecord)
	}

	if strings.TrimSpace(record.Question) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFAQRecord, ErrEmptyQuestion)
	}

	if strings.TrimSpace(record.Answer) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFAQRecord, ErrEmptyAnswer)
	}

	return nil
}

// ValidateIndexStamp validates an IndexStamp before it is saved.
func ValidateIndexStamp(stamp *IndexStamp) error {
	if stamp == nil {
		return fmt.Errorf("%w: stamp is nil", ErrInvalidIndexStamp)
	}

	if stamp.Corpus == "" {
		return fmt.Errorf("%w: %w", ErrInvalidIndexStamp, ErrEmptyCorpus)
	}

	if !IsValidTimestamp(stamp.UpdatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidIndexStamp, ErrInvalidTimestamp)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
