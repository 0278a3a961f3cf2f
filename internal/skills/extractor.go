// Package skills provides lexical skill extraction and the static skill
// relation graph used for one-hop inference.
package skills

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Token is a single token produced by an external part-of-speech tagger.
type Token struct {
	Text         string
	PartOfSpeech string
	StopWord     bool
}

// Tagger annotates free text with part-of-speech information. It is an
// optional collaborator: without one the extractor falls back to lexical
// pattern matching only.
type Tagger interface {
	TagTokens(text string) []Token
}

// skillPatterns is the fixed catalogue of case-insensitive word-boundary
// patterns, grouped the way the underlying skill families group.
var skillPatterns = []*regexp.Regexp{
	// languages and frameworks
	regexp.MustCompile(`(?i)\b(python|java|c\+\+|javascript|typescript|react|angular|vue|node\.js|express|django|flask|spring|ruby|php|swift|kotlin)\b`),
	// data stores
	regexp.MustCompile(`(?i)\b(sql|mysql|postgresql|mongodb|redis|oracle|sqlite)\b`),
	// cloud and devops tooling
	regexp.MustCompile(`(?i)\b(aws|azure|gcp|docker|kubernetes|terraform|ansible|jenkins|git|github|gitlab)\b`),
	// AI / ML
	regexp.MustCompile(`(?i)\b(machine learning|deep learning|nlp|computer vision|data science|ai|artificial intelligence)\b`),
	// web front-end
	regexp.MustCompile(`(?i)\b(html|css|sass|less|bootstrap|tailwind|material-ui|jquery)\b`),
	// APIs and architecture
	regexp.MustCompile(`(?i)\b(rest|graphql|api|microservices|soa|websocket|grpc)\b`),
	// operating systems
	regexp.MustCompile(`(?i)\b(linux|unix|windows|macos|ios|android)\b`),
	// process methodologies
	regexp.MustCompile(`(?i)\b(agile|scrum|kanban|devops|ci/cd|tdd|bdd)\b`),
	// interpersonal skills
	regexp.MustCompile(`(?i)\b(communication|teamwork|leadership|problem-solving|critical thinking|time management|adaptability|creativity)\b`),
	regexp.MustCompile(`(?i)\b(collaboration|negotiation|presentation|public speaking|mentoring|coaching|project management)\b`),
}

// firstPersonPronouns never qualify as skills, whatever the tagger says.
var firstPersonPronouns = map[string]bool{
	"i": true, "me": true, "my": true, "we": true, "our": true,
}

const (
	posNoun       = "NOUN"
	posProperNoun = "PROPN"
)

// Extractor finds skill labels in free text. The lexical pass always runs;
// the tagger pass runs only when a tagger is supplied and is intentionally
// permissive, so callers displaying its output must expect noise.
type Extractor struct {
	tagger Tagger
}

// NewExtractor creates an extractor. A nil tagger is allowed.
func NewExtractor(tagger Tagger) *Extractor {
	return &Extractor{tagger: tagger}
}

// Extract returns the sorted set of skill labels found in the text, the
// union of the lexical pass and the optional tagger pass. Entries differing
// only in case collapse to one label.
func (e *Extractor) Extract(text string) []string {
	found := make(map[string]string)

	add := func(label string) {
		key := strings.ToLower(label)
		if _, ok := found[key]; !ok {
			found[key] = label
		}
	}

	for _, pattern := range skillPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			add(Canonical(match))
		}
	}

	if e.tagger != nil {
		for _, token := range e.tagger.TagTokens(text) {
			if token.PartOfSpeech != posNoun && token.PartOfSpeech != posProperNoun {
				continue
			}
			if token.StopWord {
				continue
			}
			word := strings.TrimSpace(token.Text)
			if len([]rune(word)) <= 2 {
				continue
			}
			if firstPersonPronouns[strings.ToLower(word)] {
				continue
			}
			add(Canonical(word))
		}
	}

	skills := make([]string, 0, len(found))
	for _, label := range found {
		skills = append(skills, label)
	}
	sort.Strings(skills)

	return skills
}

// Canonical normalizes a skill label: upper-case first rune, lower-case rest.
func Canonical(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}
	runes := []rune(strings.ToLower(label))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
