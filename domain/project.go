package domain

import "time"

// Project groups tasks without owning them; a task can live outside any
// project. Task references are kept in insertion order with no duplicates.
type Project struct {
	ID          string
	Name        string
	Description string

	startDate *time.Time
	endDate   *time.Time
	tasks     []*Task
}

func NewProject(name, description string) *Project {
	return &Project{Name: name, Description: description}
}

func (p *Project) StartDate() *time.Time { return CloneTime(p.startDate) }
func (p *Project) EndDate() *time.Time   { return CloneTime(p.endDate) }

func (p *Project) SetStartDate(at *time.Time) { p.startDate = CloneTime(at) }
func (p *Project) SetEndDate(at *time.Time)   { p.endDate = CloneTime(at) }

// Tasks returns a copy of the task reference list.
func (p *Project) Tasks() []*Task {
	out := make([]*Task, len(p.tasks))
	copy(out, p.tasks)
	return out
}

// AddTask appends a task reference. A task already present (same id) is not
// added twice.
func (p *Project) AddTask(task *Task) error {
	if task == nil {
		return ErrInvalidPayload
	}
	for _, t := range p.tasks {
		if t.ID == task.ID {
			return nil
		}
	}
	p.tasks = append(p.tasks, task)
	return nil
}

// RemoveTask drops the reference with the given id and reports whether it
// was present.
func (p *Project) RemoveTask(taskID string) bool {
	for i, t := range p.tasks {
		if t.ID == taskID {
			p.tasks = append(p.tasks[:i], p.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// CompletionPercent derives progress as whole percent of completed tasks.
// An empty project reports zero.
func (p *Project) CompletionPercent() int {
	if len(p.tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range p.tasks {
		if t.Completed {
			done++
		}
	}
	return 100 * done / len(p.tasks)
}
