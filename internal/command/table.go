package command

import (
	"context"
	"fmt"
	"regexp"
)

// Responder delivers one outgoing chat message. Handlers may call it zero
// or more times.
type Responder func(message string)

// Handler executes a matched command, sending replies through the responder.
type Handler func(ctx context.Context, args []string, reply Responder)

// Spec declares one command as data: a logical id, a fully interpolated
// regular expression pattern and the handler to run on match.
type Spec struct {
	ID      string
	Pattern string
	Handler Handler
}

// LabelCompileError reports a command skipped during a table build because
// its pattern would not compile. One bad label never aborts the rebuild.
type LabelCompileError struct {
	ID      string
	Pattern string
	Err     error
}

func (e *LabelCompileError) Error() string {
	return fmt.Sprintf("command %s: pattern %q: %v", e.ID, e.Pattern, e.Err)
}

func (e *LabelCompileError) Unwrap() error { return e.Err }

// entry is one compiled (pattern, handler) pair.
type entry struct {
	id      string
	re      *regexp.Regexp
	handler Handler
}

// Table is an immutable ordered set of compiled commands. The router picks
// the first entry whose pattern matches.
type Table struct {
	entries []entry
}

// Build compiles the given specs into a table. Specs whose patterns fail to
// compile are skipped and reported; the rest of the table still builds.
func Build(specs []Spec) (*Table, []*LabelCompileError) {
	t := &Table{entries: make([]entry, 0, len(specs))}
	var skipped []*LabelCompileError
	for _, s := range specs {
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			skipped = append(skipped, &LabelCompileError{ID: s.ID, Pattern: s.Pattern, Err: err})
			continue
		}
		t.entries = append(t.entries, entry{id: s.ID, re: re, handler: s.Handler})
	}
	return t, skipped
}

// Match is the result of routing an input line: the command id, the raw
// captured argument substrings and the handler to run.
type Match struct {
	ID      string
	Args    []string
	handler Handler
}

// Handle runs the matched handler.
func (m *Match) Handle(ctx context.Context, reply Responder) {
	m.handler(ctx, m.Args, reply)
}

// Route tries entries in table order and returns the first structural
// match. Args are the raw submatches, not yet interpreted.
func (t *Table) Route(input string) (*Match, bool) {
	for _, e := range t.entries {
		groups := e.re.FindStringSubmatch(input)
		if groups == nil {
			continue
		}
		return &Match{ID: e.id, Args: groups[1:], handler: e.handler}, true
	}
	return nil, false
}

// Len returns the number of compiled commands.
func (t *Table) Len() int {
	return len(t.entries)
}

// IDs returns the command ids in table order.
func (t *Table) IDs() []string {
	ids := make([]string, len(t.entries))
	for i, e := range t.entries {
		ids[i] = e.id
	}
	return ids
}
