package task

import (
	"strings"

	"github.com/taskflow/backend/domain"
)

// Query is the board's view filter state as one explicit value: a
// case-insensitive title search, an exact status and an exact due date.
// Zero fields are inactive; active fields compose by AND.
type Query struct {
	Search  string
	Status  domain.Status
	DueDate string
}

func (q Query) IsZero() bool {
	return q.Search == "" && q.Status == "" && q.DueDate == ""
}

// Matches reports whether the task satisfies every active filter.
func (q Query) Matches(t domain.Task) bool {
	if q.Search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(q.Search)) {
		return false
	}
	if q.Status != "" && t.Status != q.Status {
		return false
	}
	if q.DueDate != "" && t.DueDate != q.DueDate {
		return false
	}
	return true
}

// Filter returns the tasks matching the query, preserving input order.
func Filter(tasks []domain.Task, q Query) []domain.Task {
	if q.IsZero() {
		return tasks
	}
	var out []domain.Task
	for _, t := range tasks {
		if q.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
