package service

import (
	"context"

	"taskBoard/internal/models"

	"github.com/google/uuid"
)

type TaskRepository interface {
	Create(context.Context, *models.Task) error
	Update(context.Context, *models.Task) error
	GetByID(context.Context, uuid.UUID) (*models.Task, error)
	GetByUser(context.Context, uuid.UUID, models.TaskSort) ([]*models.Task, error)
	GetByTeam(context.Context, uuid.UUID) ([]*models.Task, error)
	SetCompleted(context.Context, uuid.UUID, bool) (*models.Task, error)
	Delete(context.Context, uuid.UUID) error
}

// справочник команд; сервис задач только читает его
type TeamRepository interface {
	GetTeamByID(context.Context, uuid.UUID) (*models.Team, error)
}

type UserRepository interface {
	CreateUser(context.Context, *models.User) error
	GetUserByID(context.Context, uuid.UUID) (*models.User, error)
	GetUserByEmail(context.Context, string) (*models.User, error)
	GetUsernames(context.Context, []uuid.UUID) (map[uuid.UUID]string, error)
}
