// Package dataset loads the files a wellwise data directory holds: the
// symptom/disease table, symptom severities, the FAQ, and the optional
// follow-up questions, synonyms and vocabulary.
package dataset
