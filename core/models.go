package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored records.
// It is derived from record content so the same name always maps to the same key.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// SeverityLevel is the severity bucket assigned to a symptom.
type SeverityLevel string

const (
	SeverityMild     SeverityLevel = "mild"
	SeverityModerate SeverityLevel = "moderate"
	SeveritySevere   SeverityLevel = "severe"
	SeverityUnknown  SeverityLevel = "unknown"
)

// Alert returns the user-facing advice attached to a severity level.
func (l SeverityLevel) Alert() string {
	switch l {
	case SeveritySevere:
		return "Seek immediate medical attention."
	case SeverityModerate, SeverityMild:
		return "Take precautions and monitor."
	default:
		return "Unknown severity."
	}
}

// ParseSeverityLevel maps a bucket name to a SeverityLevel.
// Unrecognized names map to SeverityUnknown.
func ParseSeverityLevel(s string) SeverityLevel {
	switch SeverityLevel(s) {
	case SeverityMild, SeverityModerate, SeveritySevere:
		return SeverityLevel(s)
	}
	return SeverityUnknown
}

// SeverityFromWeight maps a numeric severity weight (1-7 in the usual
// datasets) onto a bucket: 2 and below is mild, 3 is moderate, anything
// higher is severe.
func SeverityFromWeight(weight int) SeverityLevel {
	switch {
	case weight <= 2:
		return SeverityMild
	case weight == 3:
		return SeverityModerate
	default:
		return SeveritySevere
	}
}

// ConfidenceBucket is the discretized label for a diagnosis confidence.
type ConfidenceBucket string

const (
	ConfidenceLow      ConfidenceBucket = "Low"
	ConfidenceModerate ConfidenceBucket = "Moderate"
	ConfidenceHigh     ConfidenceBucket = "High"
	ConfidenceVeryHigh ConfidenceBucket = "Very High"
)

// BucketFor returns the bucket for a 0-100 confidence value.
func BucketFor(confidence int) ConfidenceBucket {
	switch {
	case confidence >= 95:
		return ConfidenceVeryHigh
	case confidence >= 85:
		return ConfidenceHigh
	case confidence >= 70:
		return ConfidenceModerate
	default:
		return ConfidenceLow
	}
}

// Diagnosis is a single ranked disease candidate.
type Diagnosis struct {
	Disease        string           `json:"disease"`
	MatchedSymptom string           `json:"matched_symptom"`
	Score          float32          `json:"score"`      // Raw cosine similarity, 0-1
	Confidence     int              `json:"confidence"` // round(Score*100)
	Bucket         ConfidenceBucket `json:"bucket"`
}

// Severity is the severity classification of one symptom.
type Severity struct {
	Symptom string        `json:"symptom"`
	Level   SeverityLevel `json:"level"`
	Alert   string        `json:"alert"`
}

// FAQMatch is a question/answer pair ranked against a user query.
type FAQMatch struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float32 `json:"score"`
}

// SymptomRecord is a known symptom with its embedding and the diseases it
// is associated with.
type SymptomRecord struct {
	Id         ID
	Name       string
	Diseases   []string
	Vector     []float32 // Unit-length embedding (populated by the indexer)
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// FAQRecord is a stored question/answer pair. The vector embeds the question.
type FAQRecord struct {
	Id         ID
	Question   string
	Answer     string
	Vector     []float32
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// IndexStamp records which embedding model and corpus digest produced the
// vectors currently stored for a corpus.
type IndexStamp struct {
	Corpus    string
	Model     string
	Digest    string
	Count     int
	UpdatedAt time.Time
}

// SymptomMatch is a symptom record ranked by vector similarity.
type SymptomMatch struct {
	Record *SymptomRecord
	Score  float32
}

// FAQHit is an FAQ record ranked by vector similarity.
type FAQHit struct {
	Record *FAQRecord
	Score  float32
}
