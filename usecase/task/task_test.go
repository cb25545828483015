package task

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/taskflow/backend/domain"
)

// fakeTaskRepo is an in-memory TaskRepository honoring the same contract as
// the Postgres implementation: Create seeds the log, Update appends
// additively, Delete is idempotent.
type fakeTaskRepo struct {
	mu     sync.Mutex
	tasks  map[string]domain.Task
	nextID int
	calls  int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]domain.Task)}
}

func (r *fakeTaskRepo) contacted() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &task, nil
}

func (r *fakeTaskRepo) ListByOwner(_ context.Context, owner string) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	var out []domain.Task
	for _, task := range r.tasks {
		if task.Owner == owner {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.nextID++
	task.ID = fmt.Sprintf("task-%d", r.nextID)
	if len(task.ActivityLog) == 0 {
		task.ActivityLog = []domain.Activity{domain.CreationActivity(task.Owner, time.Now())}
	}
	r.tasks[task.ID] = *task
	return task, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, id string, patch domain.TaskPatch, entries []domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	task, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	patch.Apply(&task)
	task.ActivityLog = append(task.ActivityLog, entries...)
	r.tasks[id] = task
	return nil
}

func (r *fakeTaskRepo) UpdateStatus(_ context.Context, id string, status domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	task, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	task.Status = status
	r.tasks[id] = task
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	delete(r.tasks, id)
	return nil
}

func newTask(owner string) *domain.Task {
	return &domain.Task{
		Owner:    owner,
		Title:    "Buy milk",
		Category: domain.CategoryPersonal,
		DueDate:  "2024-05-01",
		Status:   domain.StatusTodo,
	}
}

func TestCreateTask_SeedsSingleCreationEntry(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil, nil)

	created, err := uc.CreateTask(context.Background(), newTask("user-1"))
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected an assigned id")
	}
	if len(created.ActivityLog) != 1 {
		t.Fatalf("activity log length = %d, want 1", len(created.ActivityLog))
	}
	if !strings.Contains(created.ActivityLog[0].Action, "created") {
		t.Errorf("seed entry %q should mention created", created.ActivityLog[0].Action)
	}
}

func TestCreateTask_RejectsInvalid(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil, nil)

	task := newTask("user-1")
	task.Title = ""
	if _, err := uc.CreateTask(context.Background(), task); err == nil {
		t.Fatal("expected validation error")
	}
	if repo.contacted() != 0 {
		t.Error("invalid task must not reach the store")
	}
}

// Mirrors the product scenario: create, change status, then change title and
// due date in one edit. The log grows 1 -> 2 -> 4 with entries in field order.
func TestUpdateTask_ChangelogScenario(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil, nil)
	ctx := context.Background()

	created, err := uc.CreateTask(ctx, newTask("user-1"))
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	status := domain.StatusInProgress
	entries, err := uc.UpdateTask(ctx, created.ID, domain.TaskPatch{Status: &status}, *created)
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	want := `You Changed status from "Todo" to "In Progress"`
	if entries[0].Action != want {
		t.Errorf("action = %q, want %q", entries[0].Action, want)
	}

	after, _ := uc.GetTask(ctx, created.ID)
	if len(after.ActivityLog) != 2 {
		t.Fatalf("log length = %d, want 2", len(after.ActivityLog))
	}

	title := "Buy oat milk"
	dueDate := "2024-05-02"
	entries, err = uc.UpdateTask(ctx, after.ID, domain.TaskPatch{Title: &title, DueDate: &dueDate}, *after)
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if !strings.Contains(entries[0].Action, "title") || !strings.Contains(entries[1].Action, "due date") {
		t.Errorf("entries out of order: %v", entries)
	}

	final, _ := uc.GetTask(ctx, created.ID)
	if len(final.ActivityLog) != 4 {
		t.Fatalf("log length = %d, want 4", len(final.ActivityLog))
	}
}

func TestUpdateTask_NoDifferingFieldsStillPersists(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil, nil)
	ctx := context.Background()

	created, _ := uc.CreateTask(ctx, newTask("user-1"))

	same := created.Title
	entries, err := uc.UpdateTask(ctx, created.ID, domain.TaskPatch{Title: &same}, *created)
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %v", entries)
	}

	after, _ := uc.GetTask(ctx, created.ID)
	if len(after.ActivityLog) != 1 {
		t.Errorf("log length = %d, want 1", len(after.ActivityLog))
	}
}

func TestDeleteTask_AbsentIDIsQuiet(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil, nil)

	if err := uc.DeleteTask(context.Background(), "nope"); err != nil {
		t.Fatalf("delete of absent id: %v", err)
	}
}

func TestBulkUpdateStatus_NoOps(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil, nil)
	ctx := context.Background()

	if err := uc.BulkUpdateStatus(ctx, nil, domain.StatusCompleted); err != nil {
		t.Fatalf("empty ids: %v", err)
	}
	if err := uc.BulkUpdateStatus(ctx, []string{"a", "b"}, ""); err != nil {
		t.Fatalf("empty status: %v", err)
	}
	if repo.contacted() != 0 {
		t.Errorf("no-op bulk updates contacted the store %d times", repo.contacted())
	}
}

func TestBulkUpdateStatus_AppliesToAll(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil, nil)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		created, _ := uc.CreateTask(ctx, newTask("user-1"))
		ids = append(ids, created.ID)
	}
	// an absent id fails individually without surfacing
	ids = append(ids, "ghost")

	if err := uc.BulkUpdateStatus(ctx, ids, domain.StatusCompleted); err != nil {
		t.Fatalf("BulkUpdateStatus: %v", err)
	}

	tasks, _ := uc.ListTasks(ctx, "user-1", Query{})
	for _, task := range tasks {
		if task.Status != domain.StatusCompleted {
			t.Errorf("task %s status = %q, want Completed", task.ID, task.Status)
		}
	}
}

func TestBulkDelete(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil, nil)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		created, _ := uc.CreateTask(ctx, newTask("user-1"))
		ids = append(ids, created.ID)
	}

	if err := uc.BulkDelete(ctx, append(ids, "ghost")); err != nil {
		t.Fatalf("BulkDelete: %v", err)
	}
	if tasks, _ := uc.ListTasks(ctx, "user-1", Query{}); len(tasks) != 0 {
		t.Errorf("expected empty collection, got %d tasks", len(tasks))
	}

	if err := uc.BulkDelete(ctx, nil); err != nil {
		t.Fatalf("empty bulk delete: %v", err)
	}
}

func TestListTasks_EmptyOwnerSkipsStore(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil, nil)

	tasks, err := uc.ListTasks(context.Background(), "", Query{})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected no tasks, got %d", len(tasks))
	}
	if repo.contacted() != 0 {
		t.Error("empty owner must not contact the store")
	}
}

func TestRemoveAttachment(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil, nil)
	ctx := context.Background()

	task := newTask("user-1")
	task.Attachments = []string{"a", "b", "c"}
	created, _ := uc.CreateTask(ctx, task)

	if err := uc.RemoveAttachment(ctx, *created, 1); err != nil {
		t.Fatalf("RemoveAttachment: %v", err)
	}

	after, _ := uc.GetTask(ctx, created.ID)
	if len(after.Attachments) != 2 || after.Attachments[0] != "a" || after.Attachments[1] != "c" {
		t.Errorf("attachments = %v, want [a c]", after.Attachments)
	}
	last := after.ActivityLog[len(after.ActivityLog)-1]
	if last.Action != "You removed a file" {
		t.Errorf("last entry = %q", last.Action)
	}

	if err := uc.RemoveAttachment(ctx, *after, 5); err == nil {
		t.Error("out-of-range index should error")
	}
}
