package knowledge

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// skillKeywords classify a message as a question about skills.
var skillKeywords = []string{
	"skill", "technology", "programming", "language", "framework", "tool",
	"software", "platform", "experience with", "knowledge of",
	"proficient in", "familiar with", "know", "use", "work with",
	"expertise", "proficiency",
}

// projectKeywords classify a message as a question about projects.
var projectKeywords = []string{
	"github", "repository", "repo", "project", "code", "programming",
	"work", "portfolio", "build", "created", "developed",
}

// generalProjectTerms trigger the top-projects fallback when no project is
// named in the message.
var generalProjectTerms = []string{"github", "repository", "project"}

const topProjectCount = 3

// Enricher rewrites a user message by prepending knowledge-base facts
// relevant to it. A message matching neither question family, or matching
// one without naming anything the base knows, passes through unchanged.
type Enricher struct {
	base   *Base
	logger *zap.Logger
}

func NewEnricher(base *Base, logger *zap.Logger) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{base: base, logger: logger}
}

// Enrich classifies the message and applies skill enrichment, then project
// enrichment. The two compose: project enrichment runs on the output of
// skill enrichment, so both fact blocks may stack.
func (e *Enricher) Enrich(message string) string {
	if containsAny(message, skillKeywords) {
		message = e.withSkillFacts(message)
	}

	if containsAny(message, projectKeywords) {
		message = e.withProjectFacts(message)
	}

	return message
}

// withSkillFacts prepends one fact line per registry skill named in the
// message. Wording depends on the entry's provenance.
func (e *Enricher) withSkillFacts(message string) string {
	lower := strings.ToLower(message)

	var facts []string
	for _, entry := range e.base.Skills() {
		if !strings.Contains(lower, strings.ToLower(entry.Name)) {
			continue
		}
		facts = append(facts, skillFact(entry))
	}

	if len(facts) == 0 {
		return message
	}

	e.logger.Debug("skill enrichment applied", zap.Int("facts", len(facts)))

	return strings.Join(facts, "\n") + "\n\n" + message
}

func skillFact(entry *SkillEntry) string {
	projects := strings.Join(entry.Projects, ", ")

	switch entry.Source {
	case SourceResume:
		return fmt.Sprintf("%s: listed on resume", entry.Name)
	case SourceExternal:
		return fmt.Sprintf("%s: used in projects: %s", entry.Name, projects)
	case SourceBoth:
		return fmt.Sprintf("%s: listed on resume; used in projects: %s", entry.Name, projects)
	case SourceInferred:
		return fmt.Sprintf("%s: inferred from %s", entry.Name, entry.InferredFrom)
	default:
		return entry.Name
	}
}

// withProjectFacts prepends a block describing the projects named in the
// message, or the top projects by stars when the message asks about
// projects in general.
func (e *Enricher) withProjectFacts(message string) string {
	lower := strings.ToLower(message)

	var matched []*ProjectEntry
	for _, project := range e.base.Projects() {
		if strings.Contains(lower, strings.ToLower(project.Name)) {
			matched = append(matched, project)
		}
	}

	if len(matched) == 0 && containsAny(message, generalProjectTerms) {
		matched = e.base.TopProjects(topProjectCount)
	}

	if len(matched) == 0 {
		return message
	}

	lines := make([]string, 0, len(matched))
	for _, project := range matched {
		lines = append(lines, projectFact(project))
	}

	e.logger.Debug("project enrichment applied", zap.Int("projects", len(lines)))

	return strings.Join(lines, "\n") + "\n\n" + message
}

func projectFact(project *ProjectEntry) string {
	description := project.Description
	if description == "" {
		description = "no description"
	}
	if project.Language == "" {
		return fmt.Sprintf("%s: %s", project.Name, description)
	}
	return fmt.Sprintf("%s: %s (written in %s)", project.Name, description, project.Language)
}

func containsAny(message string, keywords []string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
