package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskBoard/internal/logger"
	"taskBoard/internal/models"
	repo "taskBoard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// здесь живут проверки владения и членства; хранилище их не знает

type TaskService struct {
	tasks TaskRepository
	teams TeamRepository
	users UserRepository
}

func NewTaskService(tasks TaskRepository, teams TeamRepository, users UserRepository) TaskService {
	return TaskService{
		tasks: tasks,
		teams: teams,
		users: users,
	}
}

type CreateTaskParams struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    int
	Workspace   string
	TeamID      *uuid.UUID
}

type TeamTaskParams struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    int
}

// задача команды с развёрнутым именем автора
type TeamTask struct {
	Task     *models.Task
	Username string
}

func (s *TaskService) ListPersonalTasks(ctx context.Context, userID uuid.UUID, sortBy models.TaskSort) ([]*models.Task, error) {
	tasks, err := s.tasks.GetByUser(ctx, userID, sortBy)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) CreateTask(ctx context.Context, userID uuid.UUID, params CreateTaskParams) (*models.Task, error) {
	task := &models.Task{
		ID:          uuid.New(),
		Title:       params.Title,
		Description: params.Description,
		DueDate:     params.DueDate,
		Priority:    params.Priority,
		UserID:      userID,
	}

	switch models.Workspace(params.Workspace) {
	case models.WorkspacePersonal:
		task.Workspace = models.WorkspacePersonal
	case models.WorkspaceTeam:
		if params.TeamID == nil {
			return nil, NewValidationError("Team ID is required", "team")
		}
		// существование команды и членство здесь не проверяются —
		// паритет с прежним поведением, см. DESIGN.md
		task.Workspace = models.WorkspaceTeam
		task.TeamID = params.TeamID
	default:
		return nil, NewValidationError("Invalid workspace", "workspace")
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	logger.Info("Service: Задача создана",
		zap.String("task_id", task.ID.String()),
		zap.String("workspace", string(task.Workspace)))

	return task, nil
}

func (s *TaskService) CreateTeamTask(ctx context.Context, userID, teamID uuid.UUID, params TeamTaskParams) (*models.Task, error) {
	team, err := s.teams.GetTeamByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFound("Team not found", teamID.String())
		}
		return nil, fmt.Errorf("получение команды: %w", err)
	}

	if !team.HasMember(userID) {
		logger.Warn("Service: Попытка создать задачу не участником команды",
			zap.String("team_id", teamID.String()),
			zap.String("user_id", userID.String()))
		return nil, NewNotAuthorized("Not a member of this team")
	}

	// workspace у задач командного маршрута не выставляется
	task := &models.Task{
		ID:          uuid.New(),
		Title:       params.Title,
		Description: params.Description,
		DueDate:     params.DueDate,
		Priority:    params.Priority,
		UserID:      userID,
		TeamID:      &teamID,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("создание задачи команды: %w", err)
	}

	logger.Info("Service: Задача команды создана",
		zap.String("task_id", task.ID.String()),
		zap.String("team_id", teamID.String()))

	return task, nil
}

func (s *TaskService) ListTeamTasks(ctx context.Context, userID, teamID uuid.UUID) ([]TeamTask, error) {
	team, err := s.teams.GetTeamByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFound("Team not found", teamID.String())
		}
		return nil, fmt.Errorf("получение команды: %w", err)
	}

	if !team.HasMember(userID) {
		return nil, NewNotAuthorized("Not a member of this team")
	}

	tasks, err := s.tasks.GetByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("получение задач команды: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(tasks))
	seen := make(map[uuid.UUID]bool, len(tasks))
	for _, t := range tasks {
		if !seen[t.UserID] {
			seen[t.UserID] = true
			ids = append(ids, t.UserID)
		}
	}

	usernames, err := s.users.GetUsernames(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("разворот авторов задач: %w", err)
	}

	res := make([]TeamTask, len(tasks))
	for i, t := range tasks {
		res[i] = TeamTask{Task: t, Username: usernames[t.UserID]}
	}

	return res, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, options ...models.TaskOption) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", taskID.String()))
			return nil, NewNotFound("Task not found", taskID.String())
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	if task.UserID != userID {
		logger.Warn("Service: Попытка обновить чужую задачу",
			zap.String("task_id", taskID.String()),
			zap.String("user_id", userID.String()))
		return nil, NewNotAuthorized("Not authorized")
	}

	task.Apply(options...)

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}

	return task, nil
}

// UpdateTaskStatus намеренно не проверяет владельца: любой
// аутентифицированный пользователь может переключить completed по id.
// Паритет с прежним поведением, зафиксировано в DESIGN.md.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, completed bool) (*models.Task, error) {
	task, err := s.tasks.SetCompleted(ctx, taskID, completed)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFound("Task not found", taskID.String())
		}
		return nil, fmt.Errorf("обновление статуса: %w", err)
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", taskID.String()))
			return NewNotFound("Task not found", taskID.String())
		}
		return fmt.Errorf("получение задачи: %w", err)
	}

	if task.UserID != userID {
		logger.Warn("Service: Попытка удалить чужую задачу",
			zap.String("task_id", taskID.String()),
			zap.String("user_id", userID.String()))
		return NewNotAuthorized("Not authorized")
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("удаление задачи: %w", err)
	}

	return nil
}
