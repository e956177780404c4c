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


// Package symptom turns free text into canonical symptom terms.
//
// Extraction runs in four stages:
//
//   - Normalization: lowercase the text, rewrite known synonyms to their
//     canonical term and split the result into clauses on . ; , : ! ?
//   - Negation: drop every clause containing a negation token such as
//     "no", "not" or "didn't". Scoping is per clause, never partial.
//   - Matching: compare each remaining token against the single-word
//     vocabulary terms with a fuzzy ratio, and accept underscore-joined
//     phrases whose every part is matched by some token of the clause.
//   - Resolution: drop single words that are parts of a matched phrase and
//     deduplicate, keeping first-seen order.
//
// # Usage
//
//	vocab := symptom.NewVocabulary([]string{"fever", "headache", "chest_pain"})
//	extractor, err := symptom.NewExtractor(vocab)
//	if err != nil {
//	    return err
//	}
//	terms := extractor.Extract("I have a fever and some chest pain, but no headache")
//	// terms == []string{"fever", "chest_pain"}
//
// All types in this package are immutable after construction and safe for
// concurrent use.
package symptom
