package buffer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/taskmind/backend/pkg/dates"
)

const (
	EntityTask     = "task"
	EntityReminder = "reminder"

	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// Item represents a write that should be retried once primary storage is
// reachable again. Timestamps cross into storage in the storage date layout.
type Item struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Entity    string          `json:"entity"`
	Operation string          `json:"operation"`
	Data      json.RawMessage `json:"data"`
	Priority  int             `json:"priority"`
	Retries   int             `json:"retries"`
	Timestamp dates.Stamp     `json:"timestamp"`

	bucketKey []byte
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Priority <= 0 || i.Priority > 5 {
		i.Priority = 3
	}
	if i.Timestamp.Time().IsZero() {
		i.Timestamp = dates.Stamp(time.Now())
	}
}
