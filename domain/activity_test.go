package domain

import (
	"strings"
	"testing"
	"time"
)

func strPtr(s string) *string         { return &s }
func catPtr(c Category) *Category     { return &c }
func statusPtr(s Status) *Status      { return &s }
func attachPtr(a ...string) *[]string { return &a }

var diffNow = time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC)

func baseTask() Task {
	return Task{
		ID:          "task-1",
		Owner:       "user-1",
		Title:       "Buy milk",
		Description: "two liters",
		Category:    CategoryPersonal,
		DueDate:     "2024-05-01",
		Status:      StatusTodo,
		Attachments: []string{"https://img.example/a.png"},
	}
}

func TestChangelog_SingleFieldTemplates(t *testing.T) {
	tests := []struct {
		name   string
		patch  TaskPatch
		action string
	}{
		{
			name:   "title",
			patch:  TaskPatch{Title: strPtr("Buy oat milk")},
			action: `You Changed title from "Buy milk" to "Buy oat milk"`,
		},
		{
			name:   "description logs no values",
			patch:  TaskPatch{Description: strPtr("three liters")},
			action: "You Updated task description",
		},
		{
			name:   "category",
			patch:  TaskPatch{Category: catPtr(CategoryWork)},
			action: `You Changed category from "Personal" to "Work"`,
		},
		{
			name:   "due date",
			patch:  TaskPatch{DueDate: strPtr("2024-06-01")},
			action: `You Changed due date from "2024-05-01" to "2024-06-01"`,
		},
		{
			name:   "status",
			patch:  TaskPatch{Status: statusPtr(StatusInProgress)},
			action: `You Changed status from "Todo" to "In Progress"`,
		},
		{
			name:   "attachment added",
			patch:  TaskPatch{Attachments: attachPtr("https://img.example/a.png", "https://img.example/b.png")},
			action: "You uploaded a file",
		},
		{
			name:   "attachment removed",
			patch:  TaskPatch{Attachments: attachPtr()},
			action: "You removed a file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Changelog(baseTask(), tt.patch, diffNow)
			if len(entries) != 1 {
				t.Fatalf("expected 1 entry, got %d", len(entries))
			}
			if entries[0].Action != tt.action {
				t.Errorf("action = %q, want %q", entries[0].Action, tt.action)
			}
			if entries[0].User != "user-1" {
				t.Errorf("actor = %q, want task owner", entries[0].User)
			}
			if entries[0].Timestamp != diffNow.Format(ActivityTimeLayout) {
				t.Errorf("timestamp = %q, want %q", entries[0].Timestamp, diffNow.Format(ActivityTimeLayout))
			}
		})
	}
}

func TestChangelog_NoChanges(t *testing.T) {
	prev := baseTask()

	tests := []struct {
		name  string
		patch TaskPatch
	}{
		{name: "empty patch"},
		{
			name: "patch equal to previous",
			patch: TaskPatch{
				Title:       strPtr(prev.Title),
				Description: strPtr(prev.Description),
				Category:    catPtr(prev.Category),
				DueDate:     strPtr(prev.DueDate),
				Status:      statusPtr(prev.Status),
			},
		},
		{
			name: "attachments swapped at equal count",
			// same length, different URL: the length heuristic stays silent
			patch: TaskPatch{Attachments: attachPtr("https://img.example/other.png")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if entries := Changelog(prev, tt.patch, diffNow); len(entries) != 0 {
				t.Errorf("expected no entries, got %d: %v", len(entries), entries)
			}
		})
	}
}

func TestChangelog_FixedFieldOrder(t *testing.T) {
	patch := TaskPatch{
		Title:       strPtr("New title"),
		Description: strPtr("new description"),
		Category:    catPtr(CategoryWork),
		DueDate:     strPtr("2024-07-01"),
		Status:      statusPtr(StatusCompleted),
		Attachments: attachPtr("a", "b"),
	}

	entries := Changelog(baseTask(), patch, diffNow)
	if len(entries) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(entries))
	}

	wantOrder := []string{"title", "description", "category", "due date", "status", "uploaded"}
	for i, marker := range wantOrder {
		if !strings.Contains(entries[i].Action, marker) {
			t.Errorf("entry %d = %q, expected it to mention %q", i, entries[i].Action, marker)
		}
	}

	stamp := entries[0].Timestamp
	for i, e := range entries {
		if e.Timestamp != stamp {
			t.Errorf("entry %d has timestamp %q, want shared %q", i, e.Timestamp, stamp)
		}
	}
}

func TestChangelog_AttachmentCountHeuristic(t *testing.T) {
	prev := baseTask()
	prev.Attachments = []string{"a", "b"}

	tests := []struct {
		name    string
		next    []string
		actions int
		action  string
	}{
		{name: "three added yields one entry", next: []string{"a", "b", "c", "d", "e"}, actions: 1, action: "You uploaded a file"},
		{name: "two removed yields one entry", next: []string{"a"}, actions: 1, action: "You removed a file"},
		{name: "all removed", next: nil, actions: 1, action: "You removed a file"},
		{name: "equal count different content", next: []string{"x", "y"}, actions: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := append([]string(nil), tt.next...)
			entries := Changelog(prev, TaskPatch{Attachments: &next}, diffNow)
			if len(entries) != tt.actions {
				t.Fatalf("expected %d entries, got %d", tt.actions, len(entries))
			}
			if tt.actions == 1 && entries[0].Action != tt.action {
				t.Errorf("action = %q, want %q", entries[0].Action, tt.action)
			}
		})
	}
}

func TestChangelog_EmptyPriorTitleIsLoggedVerbatim(t *testing.T) {
	prev := baseTask()
	prev.Title = ""

	entries := Changelog(prev, TaskPatch{Title: strPtr("Named at last")}, diffNow)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	want := `You Changed title from "" to "Named at last"`
	if entries[0].Action != want {
		t.Errorf("action = %q, want %q", entries[0].Action, want)
	}
}

func TestCreationActivity(t *testing.T) {
	entry := CreationActivity("user-9", diffNow)
	if !strings.Contains(entry.Action, "created") {
		t.Errorf("creation action %q should mention created", entry.Action)
	}
	if entry.User != "user-9" {
		t.Errorf("actor = %q, want user-9", entry.User)
	}
	if entry.Timestamp != diffNow.Format(ActivityTimeLayout) {
		t.Errorf("timestamp = %q", entry.Timestamp)
	}
}
