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

import "errors"

// Domain validation errors
var (
	// ErrInvalidSymptomRecord indicates a SymptomRecord failed validation.
	ErrInvalidSymptomRecord = errors.New("invalid symptom record")

	// ErrInvalidFAQRecord indicates an FAQRecord failed validation.
	ErrInvalidFAQRecord = errors.New("invalid faq record")

	// ErrInvalidIndexStamp indicates an IndexStamp failed validation.
	ErrInvalidIndexStamp = errors.New("invalid index stamp")

	// ErrEmptyName indicates the symptom Name field is empty.
	ErrEmptyName = errors.New("symptom name cannot be empty")

	// ErrUnnormalizedName indicates a symptom name is not lowercase and trimmed.
	ErrUnnormalizedName = errors.New("symptom name must be lowercase and trimmed")

	// ErrEmptyQuestion indicates the FAQ Question field is empty.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrEmptyAnswer indicates the FAQ Answer field is empty.
	ErrEmptyAnswer = errors.New("answer cannot be empty")

	// ErrEmptyCorpus indicates the stamp Corpus field is empty.
	ErrEmptyCorpus = errors.New("corpus cannot be empty")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
