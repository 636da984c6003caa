// Package axosoft provides the data model and REST gateway for the
// Axosoft (OnTime) agile project management API.
package axosoft

// ItemKind identifies a trackable item type in Axosoft.
type ItemKind int

const (
	KindDefect ItemKind = iota
	KindFeature
	KindTask
	KindIncident
	KindWorkLog
)

// KindUnknown marks an item type the API reported but this model does not
// recognize. It has no vocabulary entry, so it renders as "Unknown".
const KindUnknown ItemKind = -1

// Kinds lists every item kind in a stable order.
var Kinds = []ItemKind{KindDefect, KindFeature, KindTask, KindIncident, KindWorkLog}

// APIKey returns the REST path segment and wire identifier for the kind.
func (k ItemKind) APIKey() string {
	switch k {
	case KindDefect:
		return "defects"
	case KindFeature:
		return "features"
	case KindTask:
		return "tasks"
	case KindIncident:
		return "incidents"
	case KindWorkLog:
		return "work_logs"
	}
	return "unknown"
}

// SupportsCreate reports whether items of this kind can be created through
// the chat interface. Work logs are read-only.
func (k ItemKind) SupportsCreate() bool {
	return k != KindWorkLog
}

// KindFromAPIKey maps a wire identifier back to an ItemKind.
func KindFromAPIKey(key string) (ItemKind, bool) {
	for _, k := range Kinds {
		if k.APIKey() == key {
			return k, true
		}
	}
	return 0, false
}

// KindLabels is the user-customizable display label pair for an item kind.
type KindLabels struct {
	Singular string
	Plural   string
}

// Vocabulary maps each item kind to its current display labels.
type Vocabulary map[ItemKind]KindLabels

// DefaultVocabulary returns the built-in English labels used until the
// remote system options have been fetched.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		KindDefect:   {Singular: "Bug", Plural: "Bugs"},
		KindFeature:  {Singular: "Feature", Plural: "Features"},
		KindTask:     {Singular: "Task", Plural: "Tasks"},
		KindIncident: {Singular: "Incident", Plural: "Incidents"},
		KindWorkLog:  {Singular: "Work log", Plural: "Work logs"},
	}
}

// Clone returns an independent copy of the vocabulary.
func (v Vocabulary) Clone() Vocabulary {
	out := make(Vocabulary, len(v))
	for k, labels := range v {
		out[k] = labels
	}
	return out
}

// Label returns the display label for a kind, falling back to "Unknown"
// when the vocabulary has no entry.
func (v Vocabulary) Label(kind ItemKind, plural bool) string {
	labels, ok := v[kind]
	if !ok {
		return "Unknown"
	}
	if plural {
		return labels.Plural
	}
	return labels.Singular
}

// Project is one entry of the flattened project tree. Child projects are
// flattened into siblings of their parent; the hierarchy is discarded.
type Project struct {
	Name string
	ID   int
}

// Item is the subset of a work item the bot reports on.
type Item struct {
	ID          int
	Name        string
	Description string
	ProjectID   int
}

// CreatedItem is the identifying result of an item creation.
type CreatedItem struct {
	ID     int
	Number int
}

// WorkLogEntry is one raw work log record for the report command.
type WorkLogEntry struct {
	UserName        string
	ItemID          int
	ItemName        string
	ItemKind        ItemKind
	DurationMinutes int
}
