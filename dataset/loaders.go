package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/poiesic/wellwise/core"
	"github.com/poiesic/wellwise/symptom"
	"gopkg.in/yaml.v3"
)

// LoadSymptomDiseases reads the symptom/disease table. The header needs a
// Disease column and one or more columns starting with "symptom": a single
// Symptom column (long form) or Symptom_1..Symptom_N (wide form).
//
// Symptom names become canonical terms, diseases are lowercased. Each
// symptom appears once, in first-seen order, with its diseases deduplicated
// in first-seen order.
func LoadSymptomDiseases(r io.Reader) ([]*core.SymptomRecord, error) {
	const file = SymptomDiseaseFile
	t, err := readTable(r, file)
	if err != nil {
		return nil, err
	}
	diseaseCol, err := t.column(file, "disease")
	if err != nil {
		return nil, err
	}
	symptomCols := t.columnsWithPrefix("symptom")
	if len(symptomCols) == 0 {
		return nil, fmt.Errorf("%w: %s needs %q", ErrMissingColumn, file, "symptom")
	}

	var records []*core.SymptomRecord
	byName := make(map[string]*core.SymptomRecord)
	for _, row := range t.rows {
		disease := strings.ToLower(cell(row, diseaseCol))
		if disease == "" {
			continue
		}
		for _, col := range symptomCols {
			name := symptom.CanonicalTerm(cell(row, col))
			if name == "" {
				continue
			}
			rec, ok := byName[name]
			if !ok {
				rec = &core.SymptomRecord{Name: name}
				byName[name] = rec
				records = append(records, rec)
			}
			if !slices.Contains(rec.Diseases, disease) {
				rec.Diseases = append(rec.Diseases, disease)
			}
		}
	}
	return records, nil
}

// LoadSeverities reads the severity table. Severity is a bucket name
// (mild, moderate, severe) or a numeric weight mapped by
// core.SeverityFromWeight. The column may be called severity,
// severitylevel or weight.
func LoadSeverities(r io.Reader) (map[string]core.SeverityLevel, error) {
	const file = SeverityFile
	t, err := readTable(r, file)
	if err != nil {
		return nil, err
	}
	symptomCol, err := t.column(file, "symptom")
	if err != nil {
		return nil, err
	}
	levelCol, err := t.column(file, "severity", "severitylevel", "weight")
	if err != nil {
		return nil, err
	}

	levels := make(map[string]core.SeverityLevel, len(t.rows))
	for i, row := range t.rows {
		name := symptom.CanonicalTerm(cell(row, symptomCol))
		raw := strings.ToLower(cell(row, levelCol))
		if name == "" || raw == "" {
			continue
		}
		level, err := parseSeverity(raw)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", file, i+2, err)
		}
		if _, seen := levels[name]; !seen {
			levels[name] = level
		}
	}
	return levels, nil
}

func parseSeverity(raw string) (core.SeverityLevel, error) {
	if weight, err := strconv.Atoi(raw); err == nil {
		return core.SeverityFromWeight(weight), nil
	}
	level := core.ParseSeverityLevel(raw)
	if level == core.SeverityUnknown && raw != string(core.SeverityUnknown) {
		return level, fmt.Errorf("%w: %q", ErrInvalidSeverity, raw)
	}
	return level, nil
}

// LoadFAQs reads Question,Answer pairs. Rows missing either side are
// dropped and repeated questions keep their first answer.
func LoadFAQs(r io.Reader) ([]*core.FAQRecord, error) {
	const file = FAQFile
	t, err := readTable(r, file)
	if err != nil {
		return nil, err
	}
	qCol, err := t.column(file, "question")
	if err != nil {
		return nil, err
	}
	aCol, err := t.column(file, "answer")
	if err != nil {
		return nil, err
	}

	var records []*core.FAQRecord
	seen := make(map[string]bool)
	for _, row := range t.rows {
		q, a := cell(row, qCol), cell(row, aCol)
		if q == "" || a == "" || seen[q] {
			continue
		}
		seen[q] = true
		records = append(records, &core.FAQRecord{Question: q, Answer: a})
	}
	return records, nil
}

// LoadFollowups reads a JSON object mapping symptoms to question lists.
func LoadFollowups(r io.Reader) (map[string][]string, error) {
	var questions map[string][]string
	if err := json.NewDecoder(r).Decode(&questions); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, FollowupFile, err)
	}
	if questions == nil {
		questions = map[string][]string{}
	}
	return questions, nil
}

// synonymFile is the YAML layout of the synonyms file:
//
//	synonyms:
//	  - canonical: vomiting
//	    variants: [vomited, throwing up]
type synonymFile struct {
	Synonyms []struct {
		Canonical string   `yaml:"canonical"`
		Variants  []string `yaml:"variants"`
	} `yaml:"synonyms"`
}

// LoadSynonyms reads the synonyms YAML into a surface form to canonical
// term map. Everything is lowercased; blank entries are skipped.
func LoadSynonyms(r io.Reader) (symptom.SynonymMap, error) {
	var f synonymFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, SynonymsFile, err)
	}

	synonyms := make(symptom.SynonymMap)
	for _, entry := range f.Synonyms {
		canonical := strings.ToLower(strings.TrimSpace(entry.Canonical))
		if canonical == "" {
			continue
		}
		for _, v := range entry.Variants {
			if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
				synonyms[v] = canonical
			}
		}
	}
	return synonyms, nil
}

// LoadVocabulary reads one symptom term per line. Blank lines and lines
// starting with # are skipped.
func LoadVocabulary(r io.Reader) ([]string, error) {
	var terms []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, VocabularyFile, err)
	}
	return terms, nil
}
