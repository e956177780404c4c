package badger

import (
	"fmt"

	"github.com/poiesic/wellwise/core"
)

// Key prefixes for different data types
const (
	symptomRecordPrefix = "symrec"
	faqRecordPrefix     = "faqrec"
	indexStampPrefix    = "stamp"
)

// makeSymptomKey generates a key for a symptom record by ID.
func makeSymptomKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", symptomRecordPrefix, id))
}

// makeFAQKey generates a key for an FAQ record by ID.
func makeFAQKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", faqRecordPrefix, id))
}

// makeStampKey generates a key for a corpus stamp.
func makeStampKey(corpus string) []byte {
	return []byte(indexStampPrefix + ":" + corpus)
}

// prefixOf returns the scan prefix for a record type, including the separator
// so that one prefix never matches another that extends it.
func prefixOf(recordPrefix string) []byte {
	return []byte(recordPrefix + ":")
}
