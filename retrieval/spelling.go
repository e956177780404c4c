package retrieval

import (
	"slices"
	"strings"

	"github.com/poiesic/wellwise/symptom"
)

// Corrector maps free-form symptom text onto the closest known name.
type Corrector struct {
	names     []string
	known     map[string]struct{}
	threshold float64
}

// NewCorrector builds a corrector over names. Names are matched in sorted
// order so ties resolve the same way on every run.
func NewCorrector(names []string, threshold float64) *Corrector {
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	known := make(map[string]struct{}, len(sorted))
	for _, n := range sorted {
		known[n] = struct{}{}
	}
	return &Corrector{names: sorted, known: known, threshold: threshold}
}

// Canonical lowercases, trims and joins inner spaces with underscores.
func Canonical(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), symptom.PhraseSeparator)
}

// Correct returns the known name closest to s by token-sort ratio, if it
// reaches the threshold. Exact matches skip the scan.
func (c *Corrector) Correct(s string) (string, bool) {
	key := Canonical(s)
	if key == "" {
		return "", false
	}
	if _, ok := c.known[key]; ok {
		return key, true
	}
	m, ok := symptom.BestMatch(key, c.names, symptom.TokenSortRatio, c.threshold)
	if !ok {
		return "", false
	}
	return m.Term, true
}

// Names returns the known names in sorted order.
func (c *Corrector) Names() []string {
	return slices.Clone(c.names)
}

// SplitSymptoms splits comma or newline separated text into trimmed,
// non-empty parts.
func SplitSymptoms(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
