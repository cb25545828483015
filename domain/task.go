package domain

import "time"

// Category groups tasks into the two board filters the product exposes.
type Category string

const (
	CategoryWork     Category = "Work"
	CategoryPersonal Category = "Personal"
)

func (c Category) Valid() bool {
	return c == CategoryWork || c == CategoryPersonal
}

// Status governs which board column a task belongs to.
type Status string

const (
	StatusTodo       Status = "Todo"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

func (s Status) Valid() bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusCompleted
}

// DueDateLayout is the calendar-date encoding used on the wire and in storage.
const DueDateLayout = "2006-01-02"

// Task represents one user-owned actionable item. Attachments keep upload
// order; ActivityLog is append-only for the life of the task.
type Task struct {
	ID          string     `json:"id"`
	Owner       string     `json:"owner"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    Category   `json:"category"`
	DueDate     string     `json:"due_date"`
	Status      Status     `json:"status"`
	Attachments []string   `json:"attachments,omitempty"`
	ActivityLog []Activity `json:"activity_log"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// Validate checks the fields a client must supply before a task is persisted.
func (t *Task) Validate() error {
	if t == nil {
		return ErrInvalidPayload
	}
	if t.Title == "" {
		return NewError(ErrCodeInvalid, "title is required")
	}
	if t.Owner == "" {
		return NewError(ErrCodeInvalid, "owner is required")
	}
	if !t.Category.Valid() {
		return NewError(ErrCodeInvalid, "unknown category")
	}
	if !t.Status.Valid() {
		return NewError(ErrCodeInvalid, "unknown status")
	}
	if t.DueDate != "" {
		if _, err := time.Parse(DueDateLayout, t.DueDate); err != nil {
			return NewError(ErrCodeInvalid, "due date must be YYYY-MM-DD")
		}
	}
	return nil
}

// TaskPatch is a sparse update: nil fields are left untouched. Attachments,
// when present, replaces the whole sequence (positional removals are done by
// the caller before building the patch).
type TaskPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *Category `json:"category,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Attachments *[]string `json:"attachments,omitempty"`
}

// IsZero reports whether the patch carries no fields at all.
func (p TaskPatch) IsZero() bool {
	return p.Title == nil &&
		p.Description == nil &&
		p.Category == nil &&
		p.DueDate == nil &&
		p.Status == nil &&
		p.Attachments == nil
}

// Validate rejects enum values outside the known sets. Absent fields pass.
func (p TaskPatch) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return NewError(ErrCodeInvalid, "title is required")
	}
	if p.Category != nil && !p.Category.Valid() {
		return NewError(ErrCodeInvalid, "unknown category")
	}
	if p.Status != nil && !p.Status.Valid() {
		return NewError(ErrCodeInvalid, "unknown status")
	}
	if p.DueDate != nil && *p.DueDate != "" {
		if _, err := time.Parse(DueDateLayout, *p.DueDate); err != nil {
			return NewError(ErrCodeInvalid, "due date must be YYYY-MM-DD")
		}
	}
	return nil
}

// Apply overwrites the task's scalar fields and attachments with the patch
// contents. The activity log is never touched here; appends go through the
// repository's additive merge.
func (p TaskPatch) Apply(t *Task) {
	if t == nil {
		return
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Attachments != nil {
		t.Attachments = append([]string(nil), (*p.Attachments)...)
	}
}
