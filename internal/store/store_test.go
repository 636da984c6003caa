package store

import (
	"path/filepath"
	"testing"

	"github.com/axobot/axobot/internal/axosoft"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "axobot.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCredentialsEmptyByDefault(t *testing.T) {
	s := openTestStore(t)
	if got := s.BaseURL(); got != "" {
		t.Errorf("BaseURL = %q, want empty", got)
	}
	if got := s.AccessToken(); got != "" {
		t.Errorf("AccessToken = %q, want empty", got)
	}
}

func TestCredentialsRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if err := s.SetBaseURL("https://acme.axosoft.com"); err != nil {
		t.Fatalf("SetBaseURL: %v", err)
	}
	if err := s.SetAccessToken("tok-1"); err != nil {
		t.Fatalf("SetAccessToken: %v", err)
	}
	if got := s.BaseURL(); got != "https://acme.axosoft.com" {
		t.Errorf("BaseURL = %q", got)
	}
	if got := s.AccessToken(); got != "tok-1" {
		t.Errorf("AccessToken = %q", got)
	}

	// Setting again overwrites, not appends.
	if err := s.SetAccessToken("tok-2"); err != nil {
		t.Fatalf("SetAccessToken: %v", err)
	}
	if got := s.AccessToken(); got != "tok-2" {
		t.Errorf("AccessToken after overwrite = %q", got)
	}
}

func TestLoadSnapshotDefaults(t *testing.T) {
	s := openTestStore(t)

	projects, vocab, err := s.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("projects = %v, want none", projects)
	}
	if got := vocab.Label(axosoft.KindDefect, false); got != "Bug" {
		t.Errorf("defect label = %q, want default", got)
	}
}

func TestSnapshotRoundTripPreservesOrder(t *testing.T) {
	s := openTestStore(t)

	in := []axosoft.Project{
		{Name: "Zulu", ID: 9},
		{Name: "Alpha", ID: 1},
		{Name: "Mike", ID: 5},
	}
	vocab := axosoft.DefaultVocabulary()
	vocab[axosoft.KindDefect] = axosoft.KindLabels{Singular: "Issue", Plural: "Issues"}

	if err := s.SaveSnapshot(in, vocab); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	projects, loaded, err := s.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(projects) != len(in) {
		t.Fatalf("got %d projects, want %d", len(projects), len(in))
	}
	for i := range in {
		if projects[i] != in[i] {
			t.Errorf("projects[%d] = %+v, want %+v", i, projects[i], in[i])
		}
	}
	if got := loaded.Label(axosoft.KindDefect, true); got != "Issues" {
		t.Errorf("defect plural = %q, want Issues", got)
	}
	if got := loaded.Label(axosoft.KindTask, false); got != "Task" {
		t.Errorf("task label = %q, want default fallback", got)
	}
}

func TestSaveSnapshotReplacesPrevious(t *testing.T) {
	s := openTestStore(t)

	first := []axosoft.Project{{Name: "Old", ID: 1}, {Name: "Older", ID: 2}}
	if err := s.SaveSnapshot(first, axosoft.DefaultVocabulary()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	second := []axosoft.Project{{Name: "New", ID: 3}}
	if err := s.SaveSnapshot(second, axosoft.DefaultVocabulary()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	projects, _, err := s.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "New" {
		t.Errorf("projects = %v, want just New", projects)
	}
}

func TestReopenSeesPersistedState(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "axobot.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SetBaseURL("https://acme.axosoft.com"); err != nil {
		t.Fatalf("SetBaseURL: %v", err)
	}
	if err := s.SaveSnapshot([]axosoft.Project{{Name: "Alpha", ID: 1}}, axosoft.DefaultVocabulary()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if got := reopened.BaseURL(); got != "https://acme.axosoft.com" {
		t.Errorf("BaseURL after reopen = %q", got)
	}
	projects, _, err := reopened.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != 1 {
		t.Errorf("projects after reopen = %v", projects)
	}
}
