package lookup

import (
	"testing"

	"github.com/axobot/axobot/internal/axosoft"
)

func TestRebuildRoundTrip(t *testing.T) {
	cache := Rebuild([]axosoft.Project{{Name: "Acme", ID: 42}}, axosoft.DefaultVocabulary())

	id, ok := cache.IDByName("Acme")
	if !ok || id != 42 {
		t.Fatalf("IDByName(Acme) = %d, %v; want 42, true", id, ok)
	}
	if name := cache.NameByID(42); name != "Acme" {
		t.Errorf("NameByID(42) = %q, want Acme", name)
	}
}

func TestIDByNameCaseInsensitive(t *testing.T) {
	cache := Rebuild([]axosoft.Project{{Name: "Acme", ID: 42}}, axosoft.DefaultVocabulary())

	upper, okUpper := cache.IDByName("Acme")
	lower, okLower := cache.IDByName("acme")
	shout, okShout := cache.IDByName("ACME")
	if !okUpper || !okLower || !okShout {
		t.Fatal("expected all case variants to resolve")
	}
	if upper != lower || lower != shout {
		t.Errorf("case variants disagree: %d %d %d", upper, lower, shout)
	}
}

func TestRebuildReplacesWholesale(t *testing.T) {
	first := Rebuild([]axosoft.Project{{Name: "Old", ID: 1}}, axosoft.DefaultVocabulary())
	second := Rebuild([]axosoft.Project{{Name: "New", ID: 2}}, axosoft.DefaultVocabulary())

	if _, ok := second.IDByName("Old"); ok {
		t.Error("second snapshot still knows a project from the first rebuild")
	}
	if _, ok := second.IDByName("New"); !ok {
		t.Error("second snapshot missing its own project")
	}
	// The first snapshot is untouched by the second rebuild.
	if _, ok := first.IDByName("Old"); !ok {
		t.Error("first snapshot lost its project after an unrelated rebuild")
	}
}

func TestNameByIDUnknown(t *testing.T) {
	cache := Rebuild(nil, axosoft.DefaultVocabulary())
	if name := cache.NameByID(7); name != UnknownProject {
		t.Errorf("NameByID(7) = %q, want %q", name, UnknownProject)
	}
}

func TestNameByIDDuplicateIDsFirstMatchWins(t *testing.T) {
	cache := Rebuild([]axosoft.Project{
		{Name: "First", ID: 9},
		{Name: "Second", ID: 9},
	}, axosoft.DefaultVocabulary())

	if name := cache.NameByID(9); name != "First" {
		t.Errorf("NameByID(9) = %q, want First", name)
	}
}

func TestDuplicateNamesLastEntryWins(t *testing.T) {
	// Flattening can produce the same name under different parents; the
	// index keeps the later entry.
	cache := Rebuild([]axosoft.Project{
		{Name: "Shared", ID: 1},
		{Name: "shared", ID: 2},
	}, axosoft.DefaultVocabulary())

	id, ok := cache.IDByName("Shared")
	if !ok || id != 2 {
		t.Errorf("IDByName(Shared) = %d, %v; want 2, true", id, ok)
	}
}

func TestRebuildCopiesInput(t *testing.T) {
	input := []axosoft.Project{{Name: "Acme", ID: 1}}
	cache := Rebuild(input, axosoft.DefaultVocabulary())
	input[0] = axosoft.Project{Name: "Mutated", ID: 99}

	if name := cache.NameByID(1); name != "Acme" {
		t.Errorf("snapshot changed after input mutation: NameByID(1) = %q", name)
	}
}

func TestEmpty(t *testing.T) {
	cache := Empty()
	if cache.Len() != 0 {
		t.Errorf("Empty cache has %d projects", cache.Len())
	}
	if got := cache.Labels().Label(axosoft.KindDefect, false); got != "Bug" {
		t.Errorf("Empty cache defect label = %q, want Bug", got)
	}
}
