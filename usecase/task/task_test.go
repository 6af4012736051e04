package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskmind/backend/domain"
	"github.com/taskmind/backend/repository"
	"github.com/taskmind/backend/usecase"
)

// memTaskRepo keeps tasks in insertion order so sort stability is observable.
type memTaskRepo struct {
	tasks     []*domain.Task
	saveErr   error
	deleteErr error
}

func (m *memTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	for _, t := range m.tasks {
		if t.ID == id {
			c := *t
			return &c, nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (m *memTaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range m.tasks {
		if filter.OwnerID != "" && t.OwnerID != filter.OwnerID {
			continue
		}
		if filter.CategoryID != "" && (t.Category == nil || t.Category.ID != filter.CategoryID) {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (m *memTaskRepo) Save(ctx context.Context, task *domain.Task) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	for i, t := range m.tasks {
		if t.ID == task.ID {
			c := *task
			m.tasks[i] = &c
			return nil
		}
	}
	c := *task
	m.tasks = append(m.tasks, &c)
	return nil
}

func (m *memTaskRepo) Update(ctx context.Context, task *domain.Task) error {
	for i, t := range m.tasks {
		if t.ID == task.ID {
			c := *task
			m.tasks[i] = &c
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (m *memTaskRepo) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, t := range m.tasks {
		if t.ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

type memReminderRepo struct {
	reminders []*domain.Reminder
}

func (m *memReminderRepo) GetByID(ctx context.Context, id string) (*domain.Reminder, error) {
	for _, r := range m.reminders {
		if r.ID == id {
			c := *r
			return &c, nil
		}
	}
	return nil, domain.ErrReminderNotFound
}

func (m *memReminderRepo) List(ctx context.Context, filter repository.ReminderFilter) ([]domain.Reminder, error) {
	var out []domain.Reminder
	for _, r := range m.reminders {
		if filter.OwnerID != "" && r.OwnerID != filter.OwnerID {
			continue
		}
		if filter.TaskID != "" && r.TaskID != filter.TaskID {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (m *memReminderRepo) Save(ctx context.Context, reminder *domain.Reminder) error {
	c := *reminder
	m.reminders = append(m.reminders, &c)
	return nil
}

func (m *memReminderRepo) Update(ctx context.Context, reminder *domain.Reminder) error {
	for i, r := range m.reminders {
		if r.ID == reminder.ID {
			c := *reminder
			m.reminders[i] = &c
			return nil
		}
	}
	return domain.ErrReminderNotFound
}

func (m *memReminderRepo) Delete(ctx context.Context, id string) error {
	for i, r := range m.reminders {
		if r.ID == id {
			m.reminders = append(m.reminders[:i], m.reminders[i+1:]...)
			return nil
		}
	}
	return domain.ErrReminderNotFound
}

func (m *memReminderRepo) DeleteForTask(ctx context.Context, taskID string) error {
	var kept []*domain.Reminder
	for _, r := range m.reminders {
		if r.TaskID != taskID {
			kept = append(kept, r)
		}
	}
	m.reminders = kept
	return nil
}

// recordingBuffer captures the operations that fall back to the offline queue.
type recordingBuffer struct {
	ops []string
	ids []string
}

func (b *recordingBuffer) BufferTask(ctx context.Context, operation string, task *domain.Task) error {
	b.ops = append(b.ops, operation)
	b.ids = append(b.ids, task.ID)
	return nil
}

func (b *recordingBuffer) BufferReminder(ctx context.Context, operation string, reminder *domain.Reminder) error {
	b.ops = append(b.ops, operation)
	b.ids = append(b.ids, reminder.ID)
	return nil
}

var work = &domain.Category{ID: "c-work", Name: "Work"}

func newService(repo *memTaskRepo, reminders *memReminderRepo) *Service {
	return New("alice", repo, reminders, nil, nil)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	repo := &memTaskRepo{}
	svc := newService(repo, nil)

	t.Run("defaults and id", func(t *testing.T) {
		created, err := svc.Create(ctx, "Write report", "quarterly numbers", work)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.ID == "" {
			t.Fatal("expected a generated id")
		}
		if created.OwnerID != "alice" {
			t.Fatalf("owner: got %q", created.OwnerID)
		}
		if created.Priority != domain.PriorityMedium {
			t.Fatalf("default priority: got %q", created.Priority)
		}
		if created.Completed {
			t.Fatal("new task must start open")
		}

		second, err := svc.Create(ctx, "Write report", "", work)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second.ID == created.ID {
			t.Fatal("ids must be unique")
		}
	})

	t.Run("validation blocks persistence", func(t *testing.T) {
		before := len(repo.tasks)
		if _, err := svc.Create(ctx, "", "", work); !errors.Is(err, domain.ErrEmptyName) {
			t.Fatalf("expected ErrEmptyName, got %v", err)
		}
		if _, err := svc.Create(ctx, "No category", "", nil); !errors.Is(err, domain.ErrNilCategory) {
			t.Fatalf("expected ErrNilCategory, got %v", err)
		}
		if len(repo.tasks) != before {
			t.Fatal("rejected tasks must not be stored")
		}
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	repo := &memTaskRepo{}
	svc := newService(repo, nil)

	created, err := svc.Create(ctx, "Write report", "", work)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("present", func(t *testing.T) {
		got, err := svc.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.ID != created.ID {
			t.Fatalf("got %+v", got)
		}
	})

	t.Run("absent is nil, not an error", func(t *testing.T) {
		got, err := svc.Get(ctx, "no-such-id")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Fatalf("got %+v, want nil", got)
		}
	})

	t.Run("another owner's task is invisible", func(t *testing.T) {
		repo.tasks = append(repo.tasks, &domain.Task{
			ID: "bob-1", OwnerID: "bob", Name: "Bob's task", Category: work, Priority: domain.PriorityLow,
		})
		got, err := svc.Get(ctx, "bob-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Fatal("cross-account lookup must return nil")
		}
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	repo := &memTaskRepo{}
	svc := newService(repo, nil)

	created, _ := svc.Create(ctx, "Write report", "", work)

	t.Run("overwrites fields", func(t *testing.T) {
		created.Name = "Write final report"
		created.Priority = domain.PriorityHigh
		if err := svc.Update(ctx, created); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, _ := svc.Get(ctx, created.ID)
		if got.Name != "Write final report" || got.Priority != domain.PriorityHigh {
			t.Fatalf("update not persisted: %+v", got)
		}
	})

	t.Run("unknown task is an error", func(t *testing.T) {
		ghost := &domain.Task{ID: "ghost", Name: "x", Category: work, Priority: domain.PriorityLow}
		if err := svc.Update(ctx, ghost); !errors.Is(err, domain.ErrTaskNotFound) {
			t.Fatalf("expected ErrTaskNotFound, got %v", err)
		}
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := &memTaskRepo{}
	reminders := &memReminderRepo{}
	svc := newService(repo, reminders)

	created, _ := svc.Create(ctx, "Write report", "", work)
	reminders.Save(ctx, &domain.Reminder{ID: "r1", TaskID: created.ID, OwnerID: "alice", ReminderTime: time.Now()})
	reminders.Save(ctx, &domain.Reminder{ID: "r2", TaskID: "other-task", OwnerID: "alice", ReminderTime: time.Now()})

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := svc.Get(ctx, created.ID); got != nil {
		t.Fatal("task still present after delete")
	}
	for _, r := range reminders.reminders {
		if r.TaskID == created.ID {
			t.Fatal("reminders for the deleted task must be cascaded")
		}
	}
	if len(reminders.reminders) != 1 {
		t.Fatal("reminders for other tasks must survive the cascade")
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("repeat delete must be a no-op, got %v", err)
	}
}

// A delete that cannot reach storage is handed to the buffer as one queued
// operation; the reminder cascade travels with its replay.
func TestDeleteBuffered(t *testing.T) {
	ctx := context.Background()
	repo := &memTaskRepo{
		tasks:     []*domain.Task{{ID: "t1", OwnerID: "alice", Name: "Pay rent", Category: work, Priority: domain.PriorityMedium}},
		deleteErr: errors.New("connection refused"),
	}
	buf := &recordingBuffer{}
	svc := New("alice", repo, &memReminderRepo{}, buf, nil)

	if err := svc.Delete(ctx, "t1"); err != nil {
		t.Fatalf("buffered delete must report success, got %v", err)
	}
	if len(buf.ops) != 1 || buf.ops[0] != usecase.OperationDelete || buf.ids[0] != "t1" {
		t.Fatalf("expected one queued delete for t1, got ops=%v ids=%v", buf.ops, buf.ids)
	}
}

func TestMarkCompleted(t *testing.T) {
	ctx := context.Background()
	repo := &memTaskRepo{}
	svc := newService(repo, nil)

	created, _ := svc.Create(ctx, "Write report", "", work)
	if err := svc.MarkCompleted(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := svc.Get(ctx, created.ID)
	if !got.Completed {
		t.Fatal("task not marked completed")
	}

	if err := svc.MarkCompleted(ctx, "no-such-id"); err != nil {
		t.Fatalf("unknown id must be ignored, got %v", err)
	}
}

func TestSortedByDeadline(t *testing.T) {
	ctx := context.Background()
	repo := &memTaskRepo{}
	svc := newService(repo, nil)

	day := func(d int) *time.Time {
		at := time.Date(2024, 1, d, 9, 0, 0, 0, time.UTC)
		return &at
	}
	seed := []*domain.Task{
		{ID: "later", OwnerID: "alice", Name: "later", Category: work, Priority: domain.PriorityLow, Deadline: day(20)},
		{ID: "none", OwnerID: "alice", Name: "none", Category: work, Priority: domain.PriorityLow},
		{ID: "soon", OwnerID: "alice", Name: "soon", Category: work, Priority: domain.PriorityLow, Deadline: day(5)},
	}
	repo.tasks = seed

	sorted, err := svc.SortedByDeadline(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gotIDs := []string{sorted[0].ID, sorted[1].ID, sorted[2].ID}
	wantIDs := []string{"soon", "later", "none"}
	for i := range wantIDs {
		if gotIDs[i] != wantIDs[i] {
			t.Fatalf("order: got %v, want %v", gotIDs, wantIDs)
		}
	}
}

func TestSortedByPriority(t *testing.T) {
	ctx := context.Background()
	repo := &memTaskRepo{}
	svc := newService(repo, nil)

	mk := func(id string, p domain.Priority) *domain.Task {
		return &domain.Task{ID: id, OwnerID: "alice", Name: id, Category: work, Priority: p}
	}
	repo.tasks = []*domain.Task{
		mk("low", domain.PriorityLow),
		mk("high-1", domain.PriorityHigh),
		mk("medium", domain.PriorityMedium),
		mk("high-2", domain.PriorityHigh),
	}

	sorted, err := svc.SortedByPriority(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"high-1", "high-2", "medium", "low"}
	for i := range want {
		if sorted[i].ID != want[i] {
			t.Fatalf("order: got %v, want %v at index %d", sorted[i].ID, want[i], i)
		}
	}
}

func TestInDateRange(t *testing.T) {
	ctx := context.Background()
	repo := &memTaskRepo{}
	svc := newService(repo, nil)

	at := func(d int) *time.Time {
		v := time.Date(2024, 1, d, 12, 0, 0, 0, time.UTC)
		return &v
	}
	repo.tasks = []*domain.Task{
		{ID: "before", OwnerID: "alice", Name: "before", Category: work, Priority: domain.PriorityLow, Deadline: at(1)},
		{ID: "start", OwnerID: "alice", Name: "start", Category: work, Priority: domain.PriorityLow, Deadline: at(10)},
		{ID: "mid", OwnerID: "alice", Name: "mid", Category: work, Priority: domain.PriorityLow, Deadline: at(15)},
		{ID: "end", OwnerID: "alice", Name: "end", Category: work, Priority: domain.PriorityLow, Deadline: at(20)},
		{ID: "after", OwnerID: "alice", Name: "after", Category: work, Priority: domain.PriorityLow, Deadline: at(25)},
		{ID: "none", OwnerID: "alice", Name: "none", Category: work, Priority: domain.PriorityLow},
	}

	got, err := svc.InDateRange(ctx, *at(10), *at(20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d tasks, want 3 (bounds inclusive, no-deadline excluded)", len(got))
	}
	for _, task := range got {
		if task.ID == "before" || task.ID == "after" || task.ID == "none" {
			t.Fatalf("task %q must not be in range", task.ID)
		}
	}
}

func TestFilters(t *testing.T) {
	ctx := context.Background()
	repo := &memTaskRepo{}
	svc := newService(repo, nil)

	other := &domain.Category{ID: "c-home", Name: "Personal"}
	repo.tasks = []*domain.Task{
		{ID: "w1", OwnerID: "alice", Name: "w1", Category: work, Priority: domain.PriorityHigh},
		{ID: "h1", OwnerID: "alice", Name: "h1", Category: other, Priority: domain.PriorityLow},
	}

	t.Run("by category", func(t *testing.T) {
		got, err := svc.ByCategory(ctx, work)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].ID != "w1" {
			t.Fatalf("got %+v", got)
		}
		if _, err := svc.ByCategory(ctx, nil); !errors.Is(err, domain.ErrNilCategory) {
			t.Fatalf("expected ErrNilCategory, got %v", err)
		}
	})

	t.Run("by priority", func(t *testing.T) {
		got, err := svc.ByPriority(ctx, domain.PriorityLow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].ID != "h1" {
			t.Fatalf("got %+v", got)
		}
		if _, err := svc.ByPriority(ctx, domain.Priority("bogus")); !errors.Is(err, domain.ErrInvalidPriority) {
			t.Fatalf("expected ErrInvalidPriority, got %v", err)
		}
	})
}
