package command

import "sync/atomic"

// Router dispatches incoming chat lines against the current command table.
// Replace swaps the whole table at once, so a concurrent Route sees either
// the fully-old or fully-new table, never a mix.
type Router struct {
	table atomic.Pointer[Table]
}

// NewRouter creates a router with the given initial table. An empty table
// is valid: every Route call simply misses.
func NewRouter(initial *Table) *Router {
	r := &Router{}
	if initial == nil {
		initial = &Table{}
	}
	r.table.Store(initial)
	return r
}

// Route matches the input line against the current table.
func (r *Router) Route(input string) (*Match, bool) {
	return r.table.Load().Route(input)
}

// Replace atomically swaps in a new table.
func (r *Router) Replace(t *Table) {
	if t == nil {
		t = &Table{}
	}
	r.table.Store(t)
}

// Table returns the current table snapshot.
func (r *Router) Table() *Table {
	return r.table.Load()
}
