package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskmind/backend/domain"
	"github.com/taskmind/backend/repository"
)

type memReminderRepo struct {
	reminders []*domain.Reminder
	updateErr error
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

func (m *memReminderRepo) Save(ctx context.Context, r *domain.Reminder) error {
	c := *r
	m.reminders = append(m.reminders, &c)
	return nil
}

func (m *memReminderRepo) Update(ctx context.Context, r *domain.Reminder) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for i, stored := range m.reminders {
		if stored.ID == r.ID {
			c := *r
			m.reminders[i] = &c
			return nil
		}
	}
	return domain.ErrReminderNotFound
}

func (m *memReminderRepo) Delete(ctx context.Context, id string) error {
	for i, stored := range m.reminders {
		if stored.ID == id {
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

// recordingObserver remembers every delivery; err, when set, is returned on
// each call.
type recordingObserver struct {
	calls []string
	err   error
}

func (o *recordingObserver) OnReminderDue(ctx context.Context, r *domain.Reminder, taskID string) error {
	o.calls = append(o.calls, r.ID)
	return o.err
}

var now = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func newService(repo *memReminderRepo) *Service {
	return New("alice", repo, nil, nil).WithClock(func() time.Time { return now })
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	repo := &memReminderRepo{}
	svc := newService(repo)

	t.Run("persists untriggered", func(t *testing.T) {
		r, err := svc.Create(ctx, "task-1", now.Add(time.Hour), "standup")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.ID == "" {
			t.Fatal("expected a generated id")
		}
		if r.Triggered {
			t.Fatal("new reminder must start untriggered")
		}
		if r.OwnerID != "alice" {
			t.Fatalf("owner: got %q", r.OwnerID)
		}
	})

	t.Run("zero time rejected", func(t *testing.T) {
		before := len(repo.reminders)
		if _, err := svc.Create(ctx, "task-1", time.Time{}, ""); !errors.Is(err, domain.ErrNoReminderTime) {
			t.Fatalf("expected ErrNoReminderTime, got %v", err)
		}
		if len(repo.reminders) != before {
			t.Fatal("rejected reminder must not be stored")
		}
	})
}

func TestCreateBeforeDeadline(t *testing.T) {
	ctx := context.Background()
	svc := newService(&memReminderRepo{})

	deadline := time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)
	task := &domain.Task{ID: "task-1", OwnerID: "alice", Name: "Review"}
	task.SetDeadline(&deadline)

	t.Run("schedules ahead of the deadline", func(t *testing.T) {
		r, err := svc.CreateBeforeDeadline(ctx, task, 30)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := deadline.Add(-30 * time.Minute)
		if !r.ReminderTime.Equal(want) {
			t.Fatalf("got %v, want %v", r.ReminderTime, want)
		}
		if r.TaskID != "task-1" {
			t.Fatalf("anchored to %q", r.TaskID)
		}
	})

	t.Run("no deadline rejected", func(t *testing.T) {
		bare := &domain.Task{ID: "task-2", OwnerID: "alice", Name: "No deadline"}
		if _, err := svc.CreateBeforeDeadline(ctx, bare, 30); !errors.Is(err, domain.ErrNoDeadline) {
			t.Fatalf("expected ErrNoDeadline, got %v", err)
		}
	})
}

func TestDue(t *testing.T) {
	ctx := context.Background()
	repo := &memReminderRepo{reminders: []*domain.Reminder{
		{ID: "past", OwnerID: "alice", TaskID: "t1", ReminderTime: now.Add(-time.Hour)},
		{ID: "exact", OwnerID: "alice", TaskID: "t1", ReminderTime: now},
		{ID: "future", OwnerID: "alice", TaskID: "t1", ReminderTime: now.Add(time.Hour)},
		{ID: "fired", OwnerID: "alice", TaskID: "t1", ReminderTime: now.Add(-time.Hour), Triggered: true},
	}}
	svc := newService(repo)

	due, err := svc.Due(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("got %d due reminders, want 2", len(due))
	}
	for _, r := range due {
		if r.ID == "future" || r.ID == "fired" {
			t.Fatalf("reminder %q must not be due", r.ID)
		}
	}
}

func TestObserverRegistry(t *testing.T) {
	svc := newService(&memReminderRepo{})
	a := &recordingObserver{}
	b := &recordingObserver{}

	svc.AddObserver(a)
	svc.AddObserver(a)
	svc.AddObserver(b)
	if len(svc.observers) != 2 {
		t.Fatalf("got %d observers, want 2 (duplicate registration ignored)", len(svc.observers))
	}

	svc.RemoveObserver(a)
	if len(svc.observers) != 1 || svc.observers[0] != Observer(b) {
		t.Fatal("remove must drop exactly the registered observer")
	}

	svc.RemoveObserver(a)
	if len(svc.observers) != 1 {
		t.Fatal("removing an unregistered observer must be a no-op")
	}
}

func TestCheckReminders(t *testing.T) {
	ctx := context.Background()

	t.Run("fires due, skips future", func(t *testing.T) {
		repo := &memReminderRepo{reminders: []*domain.Reminder{
			{ID: "r1", OwnerID: "alice", TaskID: "t1", ReminderTime: now.Add(-time.Hour)},
			{ID: "r2", OwnerID: "alice", TaskID: "t2", ReminderTime: now.Add(-time.Minute)},
			{ID: "r3", OwnerID: "alice", TaskID: "t3", ReminderTime: now.Add(time.Hour)},
		}}
		svc := newService(repo)
		obs := &recordingObserver{}
		svc.AddObserver(obs)

		fired, err := svc.CheckReminders(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(fired) != 2 {
			t.Fatalf("got %d fired, want 2", len(fired))
		}
		if len(obs.calls) != 2 {
			t.Fatalf("observer called %d times, want 2", len(obs.calls))
		}
		for _, r := range repo.reminders {
			switch r.ID {
			case "r1", "r2":
				if !r.Triggered {
					t.Fatalf("%s must be marked triggered", r.ID)
				}
			case "r3":
				if r.Triggered {
					t.Fatal("future reminder must stay untriggered")
				}
			}
		}

		// A second cycle finds nothing: fired reminders never fire again.
		again, err := svc.CheckReminders(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(again) != 0 {
			t.Fatalf("second cycle fired %d reminders, want 0", len(again))
		}
	})

	t.Run("observer error does not stop delivery", func(t *testing.T) {
		repo := &memReminderRepo{reminders: []*domain.Reminder{
			{ID: "r1", OwnerID: "alice", TaskID: "t1", ReminderTime: now.Add(-time.Hour)},
			{ID: "r2", OwnerID: "alice", TaskID: "t2", ReminderTime: now.Add(-time.Minute)},
		}}
		svc := newService(repo)
		failing := &recordingObserver{err: errors.New("notification channel down")}
		healthy := &recordingObserver{}
		svc.AddObserver(failing)
		svc.AddObserver(healthy)

		fired, err := svc.CheckReminders(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(fired) != 2 {
			t.Fatalf("got %d fired, want 2", len(fired))
		}
		if len(failing.calls) != 2 || len(healthy.calls) != 2 {
			t.Fatalf("both observers must see both reminders, got %d and %d",
				len(failing.calls), len(healthy.calls))
		}
	})

	t.Run("persist failure keeps delivery", func(t *testing.T) {
		repo := &memReminderRepo{
			reminders: []*domain.Reminder{
				{ID: "r1", OwnerID: "alice", TaskID: "t1", ReminderTime: now.Add(-time.Hour)},
			},
			updateErr: errors.New("connection reset"),
		}
		svc := newService(repo)
		obs := &recordingObserver{}
		svc.AddObserver(obs)

		fired, err := svc.CheckReminders(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(obs.calls) != 1 {
			t.Fatalf("observer must still be notified, got %d calls", len(obs.calls))
		}
		// The reminder could not be marked, so it is not reported as fired
		// and will be delivered again next cycle.
		if len(fired) != 0 {
			t.Fatalf("got %d fired, want 0", len(fired))
		}
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := &memReminderRepo{reminders: []*domain.Reminder{
		{ID: "r1", OwnerID: "alice", TaskID: "t1", ReminderTime: now},
	}}
	svc := newService(repo)

	if err := svc.Delete(ctx, "r1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.reminders) != 0 {
		t.Fatal("reminder still present after delete")
	}
	if err := svc.Delete(ctx, "r1"); err != nil {
		t.Fatalf("repeat delete must be a no-op, got %v", err)
	}
}
