package handlers

import (
	"context"

	"taskBoard/internal/models"
	"taskBoard/internal/service"

	"github.com/google/uuid"
)

type TaskService interface {
	ListPersonalTasks(context.Context, uuid.UUID, models.TaskSort) ([]*models.Task, error)
	CreateTask(context.Context, uuid.UUID, service.CreateTaskParams) (*models.Task, error)
	CreateTeamTask(context.Context, uuid.UUID, uuid.UUID, service.TeamTaskParams) (*models.Task, error)
	ListTeamTasks(context.Context, uuid.UUID, uuid.UUID) ([]service.TeamTask, error)
	UpdateTask(context.Context, uuid.UUID, uuid.UUID, ...models.TaskOption) (*models.Task, error)
	UpdateTaskStatus(context.Context, uuid.UUID, bool) (*models.Task, error)
	DeleteTask(context.Context, uuid.UUID, uuid.UUID) error
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}
