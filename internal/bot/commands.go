package bot

import (
	"regexp"
	"strings"

	"github.com/axobot/axobot/internal/axosoft"
	"github.com/axobot/axobot/internal/command"
)

// commandSlug names the per-kind command ids (show-bug, add-feature, ...).
// Ids are fixed; only the matched labels change with the vocabulary.
func commandSlug(kind axosoft.ItemKind) string {
	switch kind {
	case axosoft.KindDefect:
		return "bug"
	case axosoft.KindFeature:
		return "feature"
	case axosoft.KindTask:
		return "task"
	case axosoft.KindIncident:
		return "incident"
	case axosoft.KindWorkLog:
		return "work-log"
	}
	return "unknown"
}

// buildSpecs constructs the full command set for a vocabulary. Labels are
// user data: they are escaped before being interpolated into patterns, so
// a label with regex metacharacters cannot corrupt matching.
func (a *App) buildSpecs(vocab axosoft.Vocabulary) []command.Spec {
	trigger := regexp.QuoteMeta(strings.ToLower(a.cfg.Bot.Trigger))
	prefix := `(?i)^` + trigger + ` `

	specs := []command.Spec{
		{ID: "help", Pattern: prefix + `help$`, Handler: a.handleHelp},
		{ID: "authenticate", Pattern: prefix + `authenticate$`, Handler: a.handleAuthenticate},
		{ID: "setup", Pattern: prefix + `setup$`, Handler: a.handleSetup},
		{ID: "set-url", Pattern: prefix + `set url (.*)$`, Handler: a.handleSetURL},
		{ID: "set-token", Pattern: prefix + `set token (.*)$`, Handler: a.handleSetToken},
		{ID: "list-projects", Pattern: prefix + `projects$`, Handler: a.handleListProjects},
		{ID: "show-project", Pattern: prefix + `project (.*)$`, Handler: a.handleShowProject},
	}

	for _, kind := range axosoft.Kinds {
		labels := vocab[kind]
		singular := regexp.QuoteMeta(strings.ToLower(labels.Singular))
		plural := regexp.QuoteMeta(strings.ToLower(labels.Plural))

		if kind == axosoft.KindWorkLog {
			specs = append(specs, command.Spec{
				ID:      "work-log-report",
				Pattern: prefix + plural + ` from (\S+)(?: to (\S+))?$`,
				Handler: a.handleWorkLogReport,
			})
			continue
		}

		specs = append(specs,
			command.Spec{
				ID:      "show-" + commandSlug(kind),
				Pattern: prefix + singular + ` (.+)$`,
				Handler: a.showItemHandler(kind),
			},
			command.Spec{
				ID:      "add-" + commandSlug(kind),
				Pattern: prefix + `add ` + singular + ` "(.+)" to (.+)$`,
				Handler: a.addItemHandler(kind),
			},
		)
	}
	return specs
}
