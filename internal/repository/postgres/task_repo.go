package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskBoard/internal/logger"
	"taskBoard/internal/models"
	repo "taskBoard/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const taskColumns = `id,
				seq,
				title,
				description,
				due_date,
				priority,
				completed,
				workspace,
				user_id,
				team_id,
				created_at`

func scanTask(row pgx.Row) (*models.Task, error) {
	task := &models.Task{}
	err := row.Scan(
		&task.ID,
		&task.Seq,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.Priority,
		&task.Completed,
		&task.Workspace,
		&task.UserID,
		&task.TeamID,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Storage) Create(ctx context.Context, taskToCreate *models.Task) error {
	start := time.Now()

	query := `INSERT INTO tasks
				(id, title, description, due_date, priority, completed, workspace, user_id, team_id)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
				RETURNING seq, created_at`

	err := s.pool.QueryRow(ctx, query,
		taskToCreate.ID,
		taskToCreate.Title,
		taskToCreate.Description,
		taskToCreate.DueDate,
		taskToCreate.Priority,
		taskToCreate.Completed,
		taskToCreate.Workspace,
		taskToCreate.UserID,
		taskToCreate.TeamID,
	).Scan(&taskToCreate.Seq, &taskToCreate.CreatedAt)

	if err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление задачи: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	start := time.Now()

	query := `SELECT ` + taskColumns + `
				FROM tasks
				WHERE id = $1`

	task, err := scanTask(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return task, nil
}

// задачи пользователя; без sortBy — в порядке вставки (seq)
func (s *Storage) GetByUser(ctx context.Context, userID uuid.UUID, sortBy models.TaskSort) ([]*models.Task, error) {
	start := time.Now()

	order := `seq ASC`
	switch sortBy {
	case models.SortPriority:
		order = `priority DESC, seq ASC`
	case models.SortDateAdded:
		order = `created_at DESC, seq DESC`
	}

	query := `SELECT ` + taskColumns + `
				FROM tasks
				WHERE user_id = $1
				ORDER BY ` + order

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	defer rows.Close()

	tasks, err := collectTasks(rows)
	if err != nil {
		return nil, err
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return tasks, nil
}

func (s *Storage) GetByTeam(ctx context.Context, teamID uuid.UUID) ([]*models.Task, error) {
	start := time.Now()

	query := `SELECT ` + taskColumns + `
				FROM tasks
				WHERE team_id = $1
				ORDER BY seq ASC`

	rows, err := s.pool.Query(ctx, query, teamID)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи команды", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач команды: %w", err)
	}
	defer rows.Close()

	tasks, err := collectTasks(rows)
	if err != nil {
		return nil, err
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return tasks, nil
}

func (s *Storage) Update(ctx context.Context, taskToUpdate *models.Task) error {
	start := time.Now()

	query := `UPDATE tasks
			SET title = $1,
				description = $2,
				due_date = $3,
				priority = $4,
				completed = $5
			WHERE id = $6`

	tag, err := s.pool.Exec(ctx, query,
		taskToUpdate.Title,
		taskToUpdate.Description,
		taskToUpdate.DueDate,
		taskToUpdate.Priority,
		taskToUpdate.Completed,
		taskToUpdate.ID,
	)

	if err != nil {
		logger.Error("Repository: Не удалось обновить задачу", err)
		return fmt.Errorf("обновление задачи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

// выставление completed одним запросом, возвращает обновлённую запись
func (s *Storage) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (*models.Task, error) {
	start := time.Now()

	query := `UPDATE tasks
			SET completed = $1
			WHERE id = $2
			RETURNING ` + taskColumns

	task, err := scanTask(s.pool.QueryRow(ctx, query, completed, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить статус задачи", err)
		return nil, fmt.Errorf("обновление статуса: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return task, nil
}

func (s *Storage) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()

	query := `DELETE FROM tasks
				WHERE id = $1`

	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		logger.Error("Repository: Не удалось удалить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("удаление задачи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}

	return nil
}

func collectTasks(rows pgx.Rows) ([]*models.Task, error) {
	tasks := []*models.Task{}

	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			logger.Warn("Repository: Ошибка сканирования задачи", zap.Error(err))
			continue
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	return tasks, nil
}
