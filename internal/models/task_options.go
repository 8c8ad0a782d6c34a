package models

import "time"

// TaskOption — функция частичного обновления: опция из отсутствующего
// поля возвращается как nil и поле остаётся нетронутым
type TaskOption func(*Task)

func WithTitle(title *string) TaskOption {
	if title == nil {
		return nil
	}
	return func(task *Task) {
		task.Title = *title
	}
}

func WithDescription(description *string) TaskOption {
	if description == nil {
		return nil
	}
	return func(task *Task) {
		task.Description = *description
	}
}

func WithDueDate(dueDate *time.Time) TaskOption {
	if dueDate == nil {
		return nil
	}
	return func(task *Task) {
		task.DueDate = dueDate
	}
}

func WithPriority(priority *int) TaskOption {
	if priority == nil {
		return nil
	}
	return func(task *Task) {
		task.Priority = *priority
	}
}

func WithCompleted(completed *bool) TaskOption {
	if completed == nil {
		return nil
	}
	return func(task *Task) {
		task.Completed = *completed
	}
}

func (t *Task) Apply(options ...TaskOption) {
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
}
