package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"taskBoard/internal/models"
	repo "taskBoard/internal/repository"

	"github.com/google/uuid"
)

// TaskStorage хранит задачи в памяти; порядок вставки сохраняется в ids
type TaskStorage struct {
	storage map[uuid.UUID]*models.Task
	mtx     *sync.RWMutex
	ids     []uuid.UUID
	seq     int64
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[uuid.UUID]*models.Task),
		mtx:     &sync.RWMutex{},
		ids:     []uuid.UUID{},
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *models.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	taskToCreate.CreatedAt = time.Now()
	s.seq++
	taskToCreate.Seq = s.seq

	s.storage[taskToCreate.ID] = taskToCreate
	s.ids = append(s.ids, taskToCreate.ID)
	return nil
}

func (s *TaskStorage) Update(ctx context.Context, taskToUpdate *models.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[taskToUpdate.ID]; !ok {
		return repo.ErrNotFound
	}
	s.storage[taskToUpdate.ID] = taskToUpdate

	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return taskToGet, nil
}

// задачи пользователя в заданном порядке
func (s *TaskStorage) GetByUser(ctx context.Context, userID uuid.UUID, sortBy models.TaskSort) ([]*models.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*models.Task{}
	for _, id := range s.ids {
		t := s.storage[id]
		if t.UserID == userID {
			res = append(res, t)
		}
	}

	switch sortBy {
	case models.SortPriority:
		sort.SliceStable(res, func(i, j int) bool {
			return res[i].Priority > res[j].Priority
		})
	case models.SortDateAdded:
		sort.SliceStable(res, func(i, j int) bool {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		})
	}

	return res, nil
}

// задачи команды в порядке вставки
func (s *TaskStorage) GetByTeam(ctx context.Context, teamID uuid.UUID) ([]*models.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*models.Task{}
	for _, id := range s.ids {
		t := s.storage[id]
		if t.TeamID != nil && *t.TeamID == teamID {
			res = append(res, t)
		}
	}

	return res, nil
}

// прямое выставление completed без проверки владельца — см. бизнес-слой
func (s *TaskStorage) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (*models.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	taskToUpdate, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}

	taskToUpdate.Completed = completed
	return taskToUpdate, nil
}

func (s *TaskStorage) Delete(ctx context.Context, id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}

	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
	return nil
}
