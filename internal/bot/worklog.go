package bot

import (
	"fmt"
	"strings"

	"github.com/axobot/axobot/internal/axosoft"
)

// ItemTotal is one collapsed work-log line: all of a user's entries against
// the same item summed into a single duration.
type ItemTotal struct {
	ItemID          int
	ItemName        string
	ItemKind        axosoft.ItemKind
	DurationMinutes int
}

// UserReport groups a user's collapsed items with their total.
type UserReport struct {
	UserName     string
	Items        []ItemTotal
	TotalMinutes int
}

// Report is the aggregated work-log report for a day range.
type Report struct {
	Users             []UserReport
	GrandTotalMinutes int
}

// AggregateWorkLogs groups raw entries by user, collapses repeated items
// per user by summing their durations, and totals per user and overall.
// Users and items appear in first-seen order, so the output is
// deterministic for a given input order.
func AggregateWorkLogs(entries []axosoft.WorkLogEntry) Report {
	var rep Report
	userIndex := make(map[string]int)
	itemIndex := make(map[string]map[int]int)

	for _, entry := range entries {
		ui, ok := userIndex[entry.UserName]
		if !ok {
			ui = len(rep.Users)
			userIndex[entry.UserName] = ui
			itemIndex[entry.UserName] = make(map[int]int)
			rep.Users = append(rep.Users, UserReport{UserName: entry.UserName})
		}
		user := &rep.Users[ui]

		ii, ok := itemIndex[entry.UserName][entry.ItemID]
		if !ok {
			ii = len(user.Items)
			itemIndex[entry.UserName][entry.ItemID] = ii
			user.Items = append(user.Items, ItemTotal{
				ItemID:   entry.ItemID,
				ItemName: entry.ItemName,
				ItemKind: entry.ItemKind,
			})
		}
		user.Items[ii].DurationMinutes += entry.DurationMinutes
		user.TotalMinutes += entry.DurationMinutes
		rep.GrandTotalMinutes += entry.DurationMinutes
	}
	return rep
}

// formatReport renders the report the way the work-log command replies.
func formatReport(fromDate string, rep Report, vocab axosoft.Vocabulary, f Formatter) string {
	var b strings.Builder
	b.WriteString(f.Bold("Work from "+fromDate, true))

	for _, user := range rep.Users {
		b.WriteString(f.Bold(user.UserName+":", true))
		for _, item := range user.Items {
			fmt.Fprintf(&b, "[%s][%d] %s - %s\n",
				vocab.Label(item.ItemKind, false), item.ItemID, item.ItemName,
				f.MinutesToHours(item.DurationMinutes, true))
		}
		b.WriteString(f.Bold("Total:", false) + " " + f.MinutesToHours(user.TotalMinutes, true))
		b.WriteString("\n\n")
	}

	b.WriteString(f.Bold("Grand total:", false) + " " + f.MinutesToHours(rep.GrandTotalMinutes, true))
	return b.String()
}
