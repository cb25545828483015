package domain

import "testing"

func TestTaskValidate(t *testing.T) {
	valid := func() Task {
		return Task{
			Owner:    "user-1",
			Title:    "Buy milk",
			Category: CategoryPersonal,
			DueDate:  "2024-05-01",
			Status:   StatusTodo,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Task) {}},
		{name: "empty due date allowed", mutate: func(task *Task) { task.DueDate = "" }},
		{name: "missing title", mutate: func(task *Task) { task.Title = "" }, wantErr: true},
		{name: "missing owner", mutate: func(task *Task) { task.Owner = "" }, wantErr: true},
		{name: "unknown category", mutate: func(task *Task) { task.Category = "Chores" }, wantErr: true},
		{name: "unknown status", mutate: func(task *Task) { task.Status = "Done" }, wantErr: true},
		{name: "malformed due date", mutate: func(task *Task) { task.DueDate = "01/05/2024" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := valid()
			tt.mutate(&task)
			err := task.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskPatchApply(t *testing.T) {
	task := Task{
		Title:       "Old",
		Description: "old text",
		Category:    CategoryWork,
		DueDate:     "2024-01-01",
		Status:      StatusTodo,
		Attachments: []string{"a", "b"},
		ActivityLog: []Activity{{Action: "You created this task"}},
	}

	status := StatusCompleted
	next := []string{"a"}
	patch := TaskPatch{
		Title:       strPtr("New"),
		Status:      &status,
		Attachments: &next,
	}

	patch.Apply(&task)

	if task.Title != "New" || task.Status != StatusCompleted {
		t.Errorf("scalar overwrite failed: %+v", task)
	}
	if task.Description != "old text" || task.Category != CategoryWork || task.DueDate != "2024-01-01" {
		t.Errorf("absent fields must stay untouched: %+v", task)
	}
	if len(task.Attachments) != 1 || task.Attachments[0] != "a" {
		t.Errorf("attachments = %v, want [a]", task.Attachments)
	}
	if len(task.ActivityLog) != 1 {
		t.Errorf("Apply must never touch the activity log")
	}

	// the patch must not alias the caller's slice
	next[0] = "mutated"
	if task.Attachments[0] != "a" {
		t.Errorf("attachments alias the patch slice")
	}
}

func TestTaskPatchValidate(t *testing.T) {
	badCategory := Category("Errands")
	badStatus := Status("Blocked")
	badDate := "tomorrow"

	tests := []struct {
		name    string
		patch   TaskPatch
		wantErr bool
	}{
		{name: "empty patch"},
		{name: "valid status", patch: TaskPatch{Status: statusPtr(StatusInProgress)}},
		{name: "empty title rejected", patch: TaskPatch{Title: strPtr("")}, wantErr: true},
		{name: "bad category", patch: TaskPatch{Category: &badCategory}, wantErr: true},
		{name: "bad status", patch: TaskPatch{Status: &badStatus}, wantErr: true},
		{name: "bad due date", patch: TaskPatch{DueDate: &badDate}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskPatchIsZero(t *testing.T) {
	if !(TaskPatch{}).IsZero() {
		t.Error("empty patch should be zero")
	}
	if (TaskPatch{Title: strPtr("x")}).IsZero() {
		t.Error("patch with a field should not be zero")
	}
}
