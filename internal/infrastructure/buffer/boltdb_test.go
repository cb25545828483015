package buffer

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "pending.db"), "pending_writes")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_EnqueueAndBatch(t *testing.T) {
	store := openTestStore(t)

	payload, _ := json.Marshal(TaskChange{TaskID: "task-1"})
	for i := 0; i < 3; i++ {
		if err := store.Enqueue(Item{
			Entity:    EntityTask,
			Operation: OperationChange,
			Data:      payload,
		}); err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	}

	size, err := store.Size()
	if err != nil || size != 3 {
		t.Fatalf("Size = %d, %v; want 3", size, err)
	}

	items, err := store.GetBatch(2)
	if err != nil {
		t.Fatalf("GetBatch: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("batch length = %d, want 2", len(items))
	}
	for _, item := range items {
		if item.Entity != EntityTask || item.Operation != OperationChange {
			t.Errorf("item round-trip lost fields: %+v", item)
		}
	}
}

func TestStore_PriorityOrdersBatch(t *testing.T) {
	store := openTestStore(t)

	if err := store.Enqueue(Item{ID: "low", Entity: EntityTask, Operation: OperationDelete, Priority: 5}); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := store.Enqueue(Item{ID: "high", Entity: EntityTask, Operation: OperationCreate, Priority: 1}); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	items, err := store.GetBatch(10)
	if err != nil {
		t.Fatalf("GetBatch: %v", err)
	}
	if len(items) != 2 || items[0].ID != "high" {
		t.Errorf("expected the priority-1 item first, got %+v", items)
	}
}

func TestStore_RemoveAndRequeue(t *testing.T) {
	store := openTestStore(t)

	if err := store.Enqueue(Item{ID: "one", Entity: EntityProfile, Operation: OperationChange}); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	items, _ := store.GetBatch(1)
	if len(items) != 1 {
		t.Fatal("expected one item")
	}

	if err := store.Remove(items[0]); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if size, _ := store.Size(); size != 0 {
		t.Fatalf("Size after remove = %d", size)
	}

	item := items[0]
	item.Retries = 1
	if err := store.Requeue(item); err != nil {
		t.Fatalf("Requeue: %v", err)
	}
	requeued, _ := store.GetBatch(1)
	if len(requeued) != 1 || requeued[0].Retries != 1 {
		t.Errorf("requeued item lost state: %+v", requeued)
	}
}

func TestStore_CleanupDropsStaleItems(t *testing.T) {
	store := openTestStore(t)

	if err := store.Enqueue(Item{ID: "stale", Entity: EntityTask, Operation: OperationDelete, Timestamp: time.Now().Add(-48 * time.Hour)}); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := store.Enqueue(Item{ID: "fresh", Entity: EntityTask, Operation: OperationDelete}); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	if err := store.Cleanup(time.Now().Add(-24 * time.Hour)); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	items, _ := store.GetBatch(10)
	if len(items) != 1 || items[0].ID != "fresh" {
		t.Errorf("expected only the fresh item, got %+v", items)
	}
}
