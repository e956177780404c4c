package retrieval

import (
	"log/slog"
	"strings"

	"github.com/poiesic/wellwise/core"
)

// SeverityTable classifies symptoms by a static lookup table.
// Lookups never fail: unmatched symptoms are SeverityUnknown.
type SeverityTable struct {
	levels    map[string]core.SeverityLevel
	corrector *Corrector
	logger    *slog.Logger
}

// NewSeverityTable builds a table from symptom name to level. Names are
// canonicalized (lowercase, spaces to underscores).
func NewSeverityTable(levels map[string]core.SeverityLevel, opts ...Option) (*SeverityTable, error) {
	cfg, err := newConfig("severity", opts)
	if err != nil {
		return nil, err
	}

	table := make(map[string]core.SeverityLevel, len(levels))
	names := make([]string, 0, len(levels))
	for name, level := range levels {
		key := Canonical(name)
		if key == "" {
			continue
		}
		table[key] = level
		names = append(names, key)
	}

	return &SeverityTable{
		levels:    table,
		corrector: NewCorrector(names, cfg.spellThreshold),
		logger:    cfg.logger,
	}, nil
}

// Lookup classifies one symptom. The returned Symptom is the input as given.
func (s *SeverityTable) Lookup(symptom string) core.Severity {
	level := core.SeverityUnknown
	if name, ok := s.corrector.Correct(symptom); ok {
		level = s.levels[name]
	} else {
		s.logger.Debug("no severity entry", "symptom", symptom)
	}
	return core.Severity{
		Symptom: strings.TrimSpace(symptom),
		Level:   level,
		Alert:   level.Alert(),
	}
}

// Classify returns exactly one Severity per input symptom, in order.
func (s *SeverityTable) Classify(symptoms []string) []core.Severity {
	out := make([]core.Severity, 0, len(symptoms))
	for _, sym := range symptoms {
		out = append(out, s.Lookup(sym))
	}
	return out
}

// Covers reports whether symptom resolves to a table entry.
func (s *SeverityTable) Covers(symptom string) bool {
	_, ok := s.corrector.Correct(symptom)
	return ok
}

// Len returns the number of table entries.
func (s *SeverityTable) Len() int {
	return len(s.levels)
}
