package skills

import "testing"

func TestDefaultGraphRelated(t *testing.T) {
	graph := DefaultGraph()

	related := graph.Related("Python")
	if len(related) == 0 {
		t.Fatal("expected related skills for Python")
	}
	if !contains(related, "Django") || !contains(related, "Flask") {
		t.Fatalf("unexpected related skills: %v", related)
	}
}

func TestGraphRelatedUnknownSkill(t *testing.T) {
	graph := DefaultGraph()

	if related := graph.Related("COBOL"); len(related) != 0 {
		t.Fatalf("expected empty list for unknown skill, got %v", related)
	}
}

func TestGraphRelatedIsExactMatch(t *testing.T) {
	graph := DefaultGraph()

	// Lookup is case-sensitive on the name as stored.
	if related := graph.Related("python"); len(related) != 0 {
		t.Fatalf("expected no match for lower-case lookup, got %v", related)
	}
}

func TestDefaultGraphOrderIsStable(t *testing.T) {
	first := DefaultGraph().Skills()
	second := DefaultGraph().Skills()

	if len(first) != len(second) || len(first) == 0 {
		t.Fatalf("unexpected graph sizes: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("graph order is not stable: %v vs %v", first, second)
		}
	}
	if first[0] != "Python" {
		t.Fatalf("expected declared order to start with Python, got %q", first[0])
	}
}

func TestNewGraphSortsKeys(t *testing.T) {
	graph := NewGraph(map[string][]string{
		"Zig": {"C"},
		"Ada": {"Pascal"},
	})

	keys := graph.Skills()
	if len(keys) != 2 || keys[0] != "Ada" || keys[1] != "Zig" {
		t.Fatalf("expected alphabetical key order, got %v", keys)
	}
	if related := graph.Related("Ada"); len(related) != 1 || related[0] != "Pascal" {
		t.Fatalf("unexpected relations: %v", related)
	}
}
