package models

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description,omitempty" db:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty" db:"due_date"`
	Priority    int        `json:"priority" db:"priority"`
	Completed   bool       `json:"completed" db:"completed"`
	Workspace   Workspace  `json:"workspace,omitempty" db:"workspace"`
	UserID      uuid.UUID  `json:"user" db:"user_id"`
	TeamID      *uuid.UUID `json:"team,omitempty" db:"team_id"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`

	// Seq — порядок вставки в хранилище, наружу не отдаётся
	Seq int64 `json:"-" db:"seq"`
}

type Workspace string

const WorkspacePersonal Workspace = "personal"
const WorkspaceTeam Workspace = "team"

// задачи, созданные через командный маршрут, workspace не получают
const WorkspaceNone Workspace = ""

// порядок выдачи списка личных задач
type TaskSort string

const SortNone TaskSort = ""
const SortPriority TaskSort = "priority"
const SortDateAdded TaskSort = "dateAdded"

func ParseTaskSort(raw string) TaskSort {
	switch raw {
	case string(SortPriority):
		return SortPriority
	case string(SortDateAdded):
		return SortDateAdded
	default:
		// любое другое значение — естественный порядок хранилища
		return SortNone
	}
}
