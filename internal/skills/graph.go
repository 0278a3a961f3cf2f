package skills

import "sort"

// Graph is a closed, hand-curated table mapping a canonical skill to the
// skills commonly found alongside it. It is static configuration data: the
// table is never learned or updated at runtime.
type Graph struct {
	keys      []string
	relations map[string][]string
}

type relation struct {
	skill   string
	related []string
}

// defaultRelations keeps a declared order so that inference over the graph
// stays deterministic from one process run to the next.
var defaultRelations = []relation{
	{"Python", []string{"Django", "Flask", "FastAPI", "Pandas", "NumPy", "SciPy", "PyTorch", "TensorFlow", "Scikit-learn"}},
	{"JavaScript", []string{"React", "Angular", "Vue.js", "Node.js", "Express", "TypeScript", "jQuery"}},
	{"Java", []string{"Spring", "Hibernate", "Maven", "Gradle", "JUnit", "Android"}},
	{"SQL", []string{"MySQL", "PostgreSQL", "Oracle", "SQL Server", "MongoDB", "Redis"}},
	{"AWS", []string{"EC2", "S3", "Lambda", "DynamoDB", "CloudFormation", "CloudWatch"}},
	{"DevOps", []string{"Docker", "Kubernetes", "Jenkins", "CI/CD", "Terraform", "Ansible"}},
	{"Machine Learning", []string{"TensorFlow", "PyTorch", "Scikit-learn", "Keras", "Pandas", "NumPy"}},
	{"Web Development", []string{"HTML", "CSS", "JavaScript", "React", "Angular", "Vue.js", "Node.js"}},
	{"Data Science", []string{"Python", "R", "Pandas", "NumPy", "Matplotlib", "Scikit-learn", "TensorFlow"}},
	{"Cloud Computing", []string{"AWS", "Azure", "Google Cloud", "Docker", "Kubernetes", "Serverless"}},
}

// DefaultGraph returns the built-in skill relation table.
func DefaultGraph() *Graph {
	g := &Graph{relations: make(map[string][]string, len(defaultRelations))}
	for _, rel := range defaultRelations {
		g.keys = append(g.keys, rel.skill)
		g.relations[rel.skill] = rel.related
	}
	return g
}

// NewGraph builds a graph from the provided relation map. Keys are iterated
// in alphabetical order since a map carries no declared order of its own.
func NewGraph(relations map[string][]string) *Graph {
	g := &Graph{relations: make(map[string][]string, len(relations))}
	for skill, related := range relations {
		g.keys = append(g.keys, skill)
		g.relations[skill] = append([]string(nil), related...)
	}
	sort.Strings(g.keys)
	return g
}

// Skills returns every skill in the graph in its declared order.
func (g *Graph) Skills() []string {
	return append([]string(nil), g.keys...)
}

// Related returns the skills related to the given one. Lookup is exact-match
// on the name as stored; an unknown skill yields an empty list.
func (g *Graph) Related(skill string) []string {
	related, ok := g.relations[skill]
	if !ok {
		return nil
	}
	return append([]string(nil), related...)
}

func (g *Graph) Len() int {
	return len(g.keys)
}
