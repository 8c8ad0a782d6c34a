package inmemory

import (
	"context"
	"strings"
	"sync"
	"time"

	"taskBoard/internal/models"
	repo "taskBoard/internal/repository"

	"github.com/google/uuid"
)

type UserStorage struct {
	storage map[uuid.UUID]*models.User
	byEmail map[string]uuid.UUID
	mtx     *sync.RWMutex
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		storage: make(map[uuid.UUID]*models.User),
		byEmail: make(map[string]uuid.UUID),
		mtx:     &sync.RWMutex{},
	}
}

func (s *UserStorage) CreateUser(ctx context.Context, userToCreate *models.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	email := strings.ToLower(userToCreate.Email)
	if _, ok := s.byEmail[email]; ok {
		return repo.ErrAlreadyExists
	}

	userToCreate.CreatedAt = time.Now()
	s.storage[userToCreate.ID] = userToCreate
	s.byEmail[email] = userToCreate.ID
	return nil
}

func (s *UserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	userToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return userToGet, nil
}

func (s *UserStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return s.storage[id], nil
}

// имена пользователей одним обращением — для разворота user в командных задачах
func (s *UserStorage) GetUsernames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make(map[uuid.UUID]string, len(ids))
	for _, id := range ids {
		if u, ok := s.storage[id]; ok {
			res[id] = u.Username
		}
	}
	return res, nil
}
