package services

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/taskmind/backend/domain"
	"github.com/taskmind/backend/internal/infrastructure/buffer"
)

type stubHealth struct {
	online bool
}

func (s *stubHealth) IsOnline() bool { return s.online }

func openTestStore(t *testing.T) *buffer.Store {
	t.Helper()
	store, err := buffer.Open(filepath.Join(t.TempDir(), "buffer.db"), "buffer")
	if err != nil {
		t.Fatalf("open buffer store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func deleteItem(t *testing.T, taskID string) buffer.Item {
	t.Helper()
	payload, err := json.Marshal(domain.Task{ID: taskID, OwnerID: "alice"})
	if err != nil {
		t.Fatalf("marshal task: %v", err)
	}
	return buffer.Item{
		ID:        taskID,
		OwnerID:   "alice",
		Entity:    buffer.EntityTask,
		Operation: buffer.OperationDelete,
		Data:      payload,
	}
}

// A task delete that sat in the buffer must remove the task's reminders when
// it is replayed, exactly like an online delete would have.
func TestDrainTaskDeleteCascadesReminders(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	health := &stubHealth{online: false}

	taskRepo := &memTaskRepo{tasks: []*domain.Task{
		{ID: "t1", OwnerID: "alice", Name: "Pay rent"},
	}}
	reminderRepo := &memReminderRepo{reminders: []*domain.Reminder{
		{ID: "r1", TaskID: "t1", OwnerID: "alice", ReminderTime: time.Now()},
		{ID: "r2", TaskID: "t1", OwnerID: "alice", ReminderTime: time.Now()},
		{ID: "r3", TaskID: "t2", OwnerID: "alice", ReminderTime: time.Now()},
	}}

	bp := NewBufferProcessor(store, health, taskRepo, reminderRepo, nil, ProcessorConfig{})

	// Offline: the delete is queued, nothing is applied yet.
	if err := bp.BufferOperation(ctx, deleteItem(t, "t1")); err != nil {
		t.Fatalf("buffer operation: %v", err)
	}
	if len(taskRepo.tasks) != 1 || len(reminderRepo.reminders) != 3 {
		t.Fatal("queued delete must not touch the repositories")
	}

	health.online = true
	if err := bp.Drain(ctx); err != nil {
		t.Fatalf("drain: %v", err)
	}

	if len(taskRepo.tasks) != 0 {
		t.Fatal("task still present after replay")
	}
	for _, r := range reminderRepo.reminders {
		if r.TaskID == "t1" {
			t.Fatalf("reminder %s survived the replayed delete", r.ID)
		}
	}
	if len(reminderRepo.reminders) != 1 {
		t.Fatalf("got %d reminders, want only the unrelated one", len(reminderRepo.reminders))
	}
	if n, _ := store.Size(); n != 0 {
		t.Fatalf("buffer still holds %d items after drain", n)
	}
}

// Replaying a delete for a task that is already gone still clears the
// reminders and consumes the item instead of retrying it.
func TestDrainTaskDeleteAbsentTask(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	taskRepo := &memTaskRepo{}
	reminderRepo := &memReminderRepo{reminders: []*domain.Reminder{
		{ID: "r1", TaskID: "t1", OwnerID: "alice", ReminderTime: time.Now()},
	}}

	bp := NewBufferProcessor(store, &stubHealth{online: true}, taskRepo, reminderRepo, nil, ProcessorConfig{})

	if err := store.Enqueue(deleteItem(t, "t1")); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := bp.Drain(ctx); err != nil {
		t.Fatalf("drain: %v", err)
	}

	if len(reminderRepo.reminders) != 0 {
		t.Fatal("orphaned reminders must be cleared by the replay")
	}
	if n, _ := store.Size(); n != 0 {
		t.Fatalf("buffer still holds %d items", n)
	}
}
