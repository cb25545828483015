package domain

import (
	"fmt"
	"time"
)

// ActivityTimeLayout renders the display timestamp stored on each entry.
// The raw instant is not kept; the formatted string is the record.
const ActivityTimeLayout = "Jan 2, 2006 3:04 PM"

// Activity is one immutable changelog line on a task.
type Activity struct {
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
	User      string `json:"user"`
}

// CreationActivity builds the single seed entry every task starts with.
func CreationActivity(owner string, now time.Time) Activity {
	return Activity{
		Action:    "You created this task",
		Timestamp: now.Format(ActivityTimeLayout),
		User:      owner,
	}
}

// Changelog diffs a task against a sparse patch and returns the entries to
// append, in fixed field order: title, description, category, due date,
// status, then attachment count changes. All entries share one timestamp
// and the task owner as actor. An unchanged or absent field emits nothing.
//
// Attachments are compared by length only: more means one "uploaded" entry,
// fewer means one "removed" entry, equal means silence even if the URLs
// changed. Description changes are logged without values. Both behaviors
// match the product's established changelog output.
func Changelog(previous Task, patch TaskPatch, now time.Time) []Activity {
	stamp := now.Format(ActivityTimeLayout)
	actor := previous.Owner

	entry := func(action string) Activity {
		return Activity{Action: action, Timestamp: stamp, User: actor}
	}

	var entries []Activity

	if patch.Title != nil && *patch.Title != previous.Title {
		entries = append(entries, entry(changed("title", previous.Title, *patch.Title)))
	}
	if patch.Description != nil && *patch.Description != previous.Description {
		entries = append(entries, entry("You Updated task description"))
	}
	if patch.Category != nil && *patch.Category != previous.Category {
		entries = append(entries, entry(changed("category", string(previous.Category), string(*patch.Category))))
	}
	if patch.DueDate != nil && *patch.DueDate != previous.DueDate {
		entries = append(entries, entry(changed("due date", previous.DueDate, *patch.DueDate)))
	}
	if patch.Status != nil && *patch.Status != previous.Status {
		entries = append(entries, entry(changed("status", string(previous.Status), string(*patch.Status))))
	}
	if patch.Attachments != nil {
		switch next, prior := len(*patch.Attachments), len(previous.Attachments); {
		case next > prior:
			entries = append(entries, entry("You uploaded a file"))
		case next < prior:
			entries = append(entries, entry("You removed a file"))
		}
	}

	return entries
}

func changed(label, from, to string) string {
	return fmt.Sprintf("You Changed %s from %q to %q", label, from, to)
}
