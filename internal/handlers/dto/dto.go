package dto

import (
	"time"

	"taskBoard/internal/models"
	"taskBoard/internal/service"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Priority    int        `json:"priority"`
	Workspace   string     `json:"workspace"`
	Team        *uuid.UUID `json:"team,omitempty"`
}

type TeamTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Priority    int        `json:"priority"`
}

// указатели: отсутствующее в теле поле остаётся нетронутым
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Priority    *int       `json:"priority,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
}

func (r *UpdateTaskRequest) Options() []models.TaskOption {
	return []models.TaskOption{
		models.WithTitle(r.Title),
		models.WithDescription(r.Description),
		models.WithDueDate(r.DueDate),
		models.WithPriority(r.Priority),
		models.WithCompleted(r.Completed),
	}
}

type UpdateStatusRequest struct {
	Completed *bool `json:"completed"`
}

type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Priority    int        `json:"priority"`
	Completed   bool       `json:"completed"`
	Workspace   string     `json:"workspace,omitempty"`
	User        uuid.UUID  `json:"user"`
	Team        *uuid.UUID `json:"team,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func FromTask(t *models.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Completed:   t.Completed,
		Workspace:   string(t.Workspace),
		User:        t.UserID,
		Team:        t.TeamID,
		CreatedAt:   t.CreatedAt,
	}
}

func FromTaskList(tasks []*models.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}

// автор задачи, развёрнутый до имени
type UserRef struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type TeamTaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Priority    int        `json:"priority"`
	Completed   bool       `json:"completed"`
	User        UserRef    `json:"user"`
	Team        *uuid.UUID `json:"team,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func FromTeamTask(t service.TeamTask) TeamTaskResponse {
	return TeamTaskResponse{
		ID:          t.Task.ID,
		Title:       t.Task.Title,
		Description: t.Task.Description,
		DueDate:     t.Task.DueDate,
		Priority:    t.Task.Priority,
		Completed:   t.Task.Completed,
		User:        UserRef{ID: t.Task.UserID, Username: t.Username},
		Team:        t.Task.TeamID,
		CreatedAt:   t.Task.CreatedAt,
	}
}

func FromTeamTaskList(tasks []service.TeamTask) []TeamTaskResponse {
	result := make([]TeamTaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTeamTask(t)
	}
	return result
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
