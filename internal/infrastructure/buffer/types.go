package buffer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/taskflow/backend/domain"
)

const (
	EntityProfile = "profile"
	EntityTask    = "task"

	OperationCreate = "create"
	OperationChange = "change"
	OperationDelete = "delete"
)

// Item represents a write that should be replayed once the primary store
// is reachable again.
type Item struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Entity    string          `json:"entity"`
	Operation string          `json:"operation"`
	Data      json.RawMessage `json:"data"`
	Priority  int             `json:"priority"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

// TaskChange is the replayable payload of a buffered task mutation. Entries
// ride along with the patch so the activity-log append is not lost when the
// scalar write is replayed later.
type TaskChange struct {
	TaskID  string            `json:"task_id"`
	Patch   domain.TaskPatch  `json:"patch"`
	Entries []domain.Activity `json:"entries,omitempty"`
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Priority <= 0 || i.Priority > 5 {
		i.Priority = 3
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
}
