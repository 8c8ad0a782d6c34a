package inmemory

import (
	"context"
	"sync"
	"time"

	"taskBoard/internal/models"
	repo "taskBoard/internal/repository"

	"github.com/google/uuid"
)

// TeamStorage — справочник команд; сервис задач его только читает
type TeamStorage struct {
	storage map[uuid.UUID]*models.Team
	mtx     *sync.RWMutex
}

func NewTeamStorage() *TeamStorage {
	return &TeamStorage{
		storage: make(map[uuid.UUID]*models.Team),
		mtx:     &sync.RWMutex{},
	}
}

func (s *TeamStorage) CreateTeam(ctx context.Context, teamToCreate *models.Team) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[teamToCreate.ID]; ok {
		return repo.ErrAlreadyExists
	}

	teamToCreate.CreatedAt = time.Now()
	s.storage[teamToCreate.ID] = teamToCreate
	return nil
}

func (s *TeamStorage) GetTeamByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	teamToGet, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return teamToGet, nil
}
