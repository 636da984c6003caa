// Package command implements the swappable chat command layer: the
// vocabulary registry, the compiled command table and the router that
// dispatches incoming lines. Tables and vocabularies are immutable
// snapshots replaced by atomic pointer swap, so routing never observes a
// half-rebuilt state.
package command

import (
	"sync/atomic"

	"github.com/axobot/axobot/internal/axosoft"
)

// VocabularyRegistry holds the currently active item kind labels.
// Replace publishes a new snapshot atomically; readers that captured a
// snapshot before the swap keep their original view.
type VocabularyRegistry struct {
	current atomic.Pointer[axosoft.Vocabulary]
}

// NewVocabularyRegistry creates a registry seeded with the built-in labels.
func NewVocabularyRegistry() *VocabularyRegistry {
	r := &VocabularyRegistry{}
	v := axosoft.DefaultVocabulary()
	r.current.Store(&v)
	return r
}

// Current returns the active vocabulary snapshot. Callers must not modify it.
func (r *VocabularyRegistry) Current() axosoft.Vocabulary {
	return *r.current.Load()
}

// Replace atomically publishes a new vocabulary. The input is cloned so
// later caller mutations cannot leak into the published snapshot.
func (r *VocabularyRegistry) Replace(v axosoft.Vocabulary) {
	cloned := v.Clone()
	r.current.Store(&cloned)
}
