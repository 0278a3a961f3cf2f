// Package knowledge builds the in-memory skill and project registries and
// enriches conversation messages with facts from them.
package knowledge

import (
	"sort"
	"strings"

	"github.com/naveenaduri/resume-agent/internal/github"
	"github.com/naveenaduri/resume-agent/internal/skills"
)

// Source records where a skill was found.
type Source string

const (
	SourceResume   Source = "resume"
	SourceExternal Source = "github"
	SourceBoth     Source = "both"
	SourceInferred Source = "inferred"
)

// Confidence grades how much a skill claim can be trusted.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// SkillEntry is one skill in the registry. Entries are mutated only while
// the base is built and are read-only afterward.
type SkillEntry struct {
	Name         string     `json:"name"`
	Source       Source     `json:"source"`
	Projects     []string   `json:"projects"`
	Confidence   Confidence `json:"confidence"`
	InferredFrom string     `json:"inferred_from,omitempty"`
}

// ProjectEntry is one external repository in the project registry.
type ProjectEntry struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url"`
	Language    string   `json:"language,omitempty"`
	Topics      []string `json:"topics,omitempty"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
}

// Base is the knowledge base: the skill registry plus the project registry.
// It is built exactly once at startup and only read afterward, so no
// locking is needed.
type Base struct {
	skills     map[string]*SkillEntry
	skillOrder []string

	projects     map[string]*ProjectEntry
	projectOrder []string
}

// Build constructs the knowledge base from the resume text, the external
// repository listing and the skill graph. A failed repository fetch is
// represented by an empty repos slice; the resume and inference steps still
// run.
func Build(resumeText string, repos []*github.Repository, graph *skills.Graph) *Base {
	base := &Base{
		skills:   make(map[string]*SkillEntry),
		projects: make(map[string]*ProjectEntry),
	}

	// Step 1: skills named by the graph and present in the resume text.
	lowerResume := strings.ToLower(resumeText)
	var resumeSkills []string
	for _, skill := range graph.Skills() {
		if strings.Contains(lowerResume, strings.ToLower(skill)) {
			base.addSkill(&SkillEntry{
				Name:       skill,
				Source:     SourceResume,
				Confidence: ConfidenceHigh,
			})
			resumeSkills = append(resumeSkills, skill)
		}
	}

	// Step 2: skills and topics declared by external repositories.
	for _, repo := range repos {
		if repo == nil || repo.Name == "" {
			continue
		}

		if repo.Language != "" {
			base.mergeExternal(repo.Language, repo.Name, ConfidenceHigh)
		}
		for _, topic := range repo.Topics {
			if topic == "" {
				continue
			}
			base.mergeExternal(topic, repo.Name, ConfidenceMedium)
		}

		if _, ok := base.projects[strings.ToLower(repo.Name)]; !ok {
			base.projects[strings.ToLower(repo.Name)] = &ProjectEntry{
				Name:        repo.Name,
				Description: repo.Description,
				URL:         repo.HTMLURL,
				Language:    repo.Language,
				Topics:      append([]string(nil), repo.Topics...),
				Stars:       repo.Stars,
				Forks:       repo.Forks,
			}
			base.projectOrder = append(base.projectOrder, strings.ToLower(repo.Name))
		}
	}

	// Step 3: one-hop inference over the graph for every resume skill. The
	// first origin to propose a skill wins; later origins never overwrite.
	for _, origin := range resumeSkills {
		for _, related := range graph.Related(origin) {
			if base.Skill(related) != nil {
				continue
			}
			base.addSkill(&SkillEntry{
				Name:         related,
				Source:       SourceInferred,
				Confidence:   ConfidenceLow,
				InferredFrom: origin,
			})
		}
	}

	return base
}

// addSkill registers a new entry. Registry keys are case-insensitive; the
// first-seen spelling becomes the entry's name.
func (b *Base) addSkill(entry *SkillEntry) {
	key := strings.ToLower(entry.Name)
	if _, ok := b.skills[key]; ok {
		return
	}
	b.skills[key] = entry
	b.skillOrder = append(b.skillOrder, key)
}

// mergeExternal applies the create-or-upgrade-and-append rule for a skill
// coming from a repository. The project is appended regardless of prior
// source; the source upgrades only on the resume-to-both transition.
func (b *Base) mergeExternal(name, project string, confidence Confidence) {
	existing := b.Skill(name)
	if existing == nil {
		b.addSkill(&SkillEntry{
			Name:       name,
			Source:     SourceExternal,
			Confidence: confidence,
			Projects:   []string{project},
		})
		return
	}

	existing.appendProject(project)
	if existing.Source == SourceResume {
		existing.Source = SourceBoth
	}
}

func (e *SkillEntry) appendProject(project string) {
	for _, p := range e.Projects {
		if p == project {
			return
		}
	}
	e.Projects = append(e.Projects, project)
}

// Skill looks up a registry entry by name, case-insensitively.
func (b *Base) Skill(name string) *SkillEntry {
	return b.skills[strings.ToLower(name)]
}

// Skills returns every registry entry sorted by name.
func (b *Base) Skills() []*SkillEntry {
	entries := make([]*SkillEntry, 0, len(b.skills))
	for _, entry := range b.skills {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// ExplicitSkills returns the entries found directly in the resume or the
// external listing.
func (b *Base) ExplicitSkills() []*SkillEntry {
	return b.partition(func(e *SkillEntry) bool { return e.Source != SourceInferred })
}

// InferredSkills returns the entries proposed by graph inference only.
func (b *Base) InferredSkills() []*SkillEntry {
	return b.partition(func(e *SkillEntry) bool { return e.Source == SourceInferred })
}

func (b *Base) partition(keep func(*SkillEntry) bool) []*SkillEntry {
	var entries []*SkillEntry
	for _, entry := range b.Skills() {
		if keep(entry) {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Project looks up a project entry by name, case-insensitively.
func (b *Base) Project(name string) *ProjectEntry {
	return b.projects[strings.ToLower(name)]
}

// Projects returns the project registry in original listing order.
func (b *Base) Projects() []*ProjectEntry {
	entries := make([]*ProjectEntry, 0, len(b.projectOrder))
	for _, key := range b.projectOrder {
		entries = append(entries, b.projects[key])
	}
	return entries
}

// TopProjects returns up to n projects ranked by stars descending, ties
// broken by the original listing order.
func (b *Base) TopProjects(n int) []*ProjectEntry {
	top := b.Projects()
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Stars > top[j].Stars
	})
	if n > len(top) {
		n = len(top)
	}
	return top[:n]
}
