// Package lookup holds the derived project and label index the command
// handlers read. A Cache is an immutable snapshot: it is rebuilt wholesale
// on setup and swapped in atomically, never mutated in place.
package lookup

import (
	"strings"

	"github.com/axobot/axobot/internal/axosoft"
)

// UnknownProject is returned by NameByID when no project has the given ID.
const UnknownProject = "Unknown project"

// Cache is an immutable snapshot of project name↔ID mappings and the
// item kind labels they were built with.
type Cache struct {
	projects []axosoft.Project
	byName   map[string]int
	labels   axosoft.Vocabulary
}

// Rebuild constructs a new snapshot from a flattened project list and the
// current kind labels. Pure: the inputs are copied, never retained.
//
// Name lookups are case-insensitive. Duplicate names (possible because the
// project hierarchy is flattened) resolve to the last entry, matching the
// upstream index behavior.
func Rebuild(projects []axosoft.Project, labels axosoft.Vocabulary) *Cache {
	c := &Cache{
		projects: make([]axosoft.Project, len(projects)),
		byName:   make(map[string]int, len(projects)),
		labels:   labels.Clone(),
	}
	copy(c.projects, projects)
	for _, p := range projects {
		c.byName[strings.ToLower(p.Name)] = p.ID
	}
	return c
}

// Empty returns a snapshot with no projects and the default labels, used
// before the first successful setup.
func Empty() *Cache {
	return Rebuild(nil, axosoft.DefaultVocabulary())
}

// IDByName returns the project ID for a name. Exact match only, ignoring
// case; no fuzzy matching.
func (c *Cache) IDByName(name string) (int, bool) {
	id, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// NameByID returns the project name for an ID, or UnknownProject. Scans in
// rebuild input order; if two projects share an ID the first one wins, so
// the answer is stable across processes.
func (c *Cache) NameByID(id int) string {
	for _, p := range c.projects {
		if p.ID == id {
			return p.Name
		}
	}
	return UnknownProject
}

// Projects returns the snapshot's projects in rebuild input order. The
// returned slice must not be modified.
func (c *Cache) Projects() []axosoft.Project {
	return c.projects
}

// Labels returns the vocabulary this snapshot was built with.
func (c *Cache) Labels() axosoft.Vocabulary {
	return c.labels
}

// Len returns the number of indexed projects.
func (c *Cache) Len() int {
	return len(c.projects)
}
