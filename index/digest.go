package index

import (
	"encoding/hex"
	"slices"
	"strings"

	"github.com/go-crypt/x/blake2b"
	"github.com/poiesic/wellwise/core"
)

const (
	fieldSep = "\x1f"
	listSep  = "\x1e"
)

// SymptomDigest fingerprints a symptom corpus: names and their diseases.
// Record order and disease order do not matter.
func SymptomDigest(records []*core.SymptomRecord) string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		diseases := slices.Clone(r.Diseases)
		slices.Sort(diseases)
		lines = append(lines, r.Name+fieldSep+strings.Join(diseases, listSep))
	}
	return digestLines(lines)
}

// FAQDigest fingerprints an FAQ corpus. Record order does not matter.
func FAQDigest(records []*core.FAQRecord) string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, r.Question+fieldSep+r.Answer)
	}
	return digestLines(lines)
}

func digestLines(lines []string) string {
	slices.Sort(lines)
	h, _ := blake2b.New(32, nil)
	for _, line := range lines {
		h.Write([]byte(line))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
