package core

import (
	"cmp"
	"math"
	"slices"
)

// NewDiagnosis builds a Diagnosis from a raw similarity score.
// Confidence is round(score*100) and the bucket follows from it.
func NewDiagnosis(disease, symptom string, score float32) Diagnosis {
	confidence := int(math.Round(float64(score) * 100))
	return Diagnosis{
		Disease:        disease,
		MatchedSymptom: symptom,
		Score:          score,
		Confidence:     confidence,
		Bucket:         BucketFor(confidence),
	}
}

// RankDiagnoses keeps the highest-scoring entry per disease, sorts by score
// descending and caps the list at topK (no cap when topK <= 0). Equal scores
// keep input order.
func RankDiagnoses(results []Diagnosis, topK int) []Diagnosis {
	best := make(map[string]int, len(results))
	ranked := make([]Diagnosis, 0, len(results))
	for _, d := range results {
		if i, ok := best[d.Disease]; ok {
			if d.Score > ranked[i].Score {
				ranked[i] = d
			}
			continue
		}
		best[d.Disease] = len(ranked)
		ranked = append(ranked, d)
	}
	slices.SortStableFunc(ranked, func(a, b Diagnosis) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}
