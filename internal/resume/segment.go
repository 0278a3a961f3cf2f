// Package resume turns a raw resume document into text and structured
// experience records.
package resume

import (
	"strings"
	"unicode"
)

const (
	separatorAt   = " at "
	separatorDash = " - "
	durationOpen  = " ("
)

var professionalHeaders = []string{
	"professional experience",
	"work experience",
	"employment history",
}

var otherHeaders = []string{
	"other experience",
	"additional experience",
	"volunteer experience",
}

// ExperienceRecord is one position parsed out of the resume. Once appended
// to its bucket it is never mutated.
type ExperienceRecord struct {
	Position     string   `json:"position"`
	Organization string   `json:"organization"`
	Duration     string   `json:"duration,omitempty"`
	Description  string   `json:"description"`
	Skills       []string `json:"skills"`
}

// Extractor produces skill labels for a record's accumulated description.
type Extractor interface {
	Extract(text string) []string
}

// Segmenter splits raw resume text into professional and other experience
// records.
type Segmenter struct {
	extractor Extractor
}

func NewSegmenter(extractor Extractor) *Segmenter {
	return &Segmenter{extractor: extractor}
}

type bucket int

const (
	bucketNone bucket = iota
	bucketProfessional
	bucketOther
)

// machine is the two-state record scanner: either no record is open, or one
// is open and collecting description lines. Each line feeds step exactly
// once; close flushes a still-open record at end of input.
type machine struct {
	extractor Extractor

	professional []ExperienceRecord
	other        []ExperienceRecord

	open       *ExperienceRecord
	openBucket bucket
}

// Segment scans the text top to bottom. Only blocks whose first non-empty
// line names an experience section are considered; everything else is
// skipped without being merged into any bucket.
func (s *Segmenter) Segment(rawText string) (professional, other []ExperienceRecord) {
	m := &machine{extractor: s.extractor}

	for _, block := range strings.Split(rawText, "\n\n") {
		b := headerBucket(block)
		if b == bucketNone {
			continue
		}
		for _, line := range strings.Split(block, "\n") {
			m.step(strings.TrimSpace(line), b)
		}
	}
	m.close()

	return m.professional, m.other
}

// headerBucket matches the block's first non-empty line against the two
// header families.
func headerBucket(block string) bucket {
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		for _, header := range professionalHeaders {
			if strings.HasPrefix(lower, header) {
				return bucketProfessional
			}
		}
		for _, header := range otherHeaders {
			if strings.HasPrefix(lower, header) {
				return bucketOther
			}
		}
		return bucketNone
	}
	return bucketNone
}

func (m *machine) step(line string, b bucket) {
	if line == "" {
		return
	}

	if isRecordStart(line) {
		m.close()
		record := parseRecordHeader(line)
		m.open = &record
		m.openBucket = b
		return
	}

	// Description lines before any record has opened are discarded.
	if m.open != nil {
		m.open.Description += line + " "
	}
}

// close flushes the open record: the skill extractor runs over the
// accumulated description and the record joins the bucket of the block in
// which it was opened.
func (m *machine) close() {
	if m.open == nil {
		return
	}

	record := *m.open
	if m.extractor != nil && strings.TrimSpace(record.Description) != "" {
		record.Skills = m.extractor.Extract(record.Description)
	}

	switch m.openBucket {
	case bucketOther:
		m.other = append(m.other, record)
	default:
		m.professional = append(m.professional, record)
	}

	m.open = nil
	m.openBucket = bucketNone
}

// isRecordStart reports whether the line opens a new experience record: it
// begins with an upper-case letter and carries one of the two recognized
// separators. Lines that superficially resemble a header but lack a
// separator are treated as description text, not as an error.
func isRecordStart(line string) bool {
	runes := []rune(line)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return false
	}
	return strings.Contains(line, separatorAt) || strings.Contains(line, separatorDash)
}

func parseRecordHeader(line string) ExperienceRecord {
	var position, rest string
	if strings.Contains(line, separatorAt) {
		parts := strings.SplitN(line, separatorAt, 2)
		position, rest = parts[0], parts[1]
	} else {
		parts := strings.SplitN(line, separatorDash, 2)
		position, rest = parts[0], parts[1]
	}

	record := ExperienceRecord{Position: strings.TrimSpace(position)}

	if strings.Contains(rest, durationOpen) {
		parts := strings.SplitN(rest, durationOpen, 2)
		record.Organization = strings.TrimSpace(parts[0])
		record.Duration = strings.TrimRight(parts[1], ")")
	} else {
		record.Organization = strings.TrimSpace(rest)
	}

	return record
}
