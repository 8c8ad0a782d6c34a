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

// команды создаются вне этого сервиса; Create нужен сидированию и тестам
func (s *Storage) CreateTeam(ctx context.Context, teamToCreate *models.Team) error {
	start := time.Now()

	query := `INSERT INTO teams
				(id, name, members)
				VALUES ($1, $2, $3)
				RETURNING created_at`

	err := s.pool.QueryRow(ctx, query,
		teamToCreate.ID,
		teamToCreate.Name,
		teamToCreate.Members,
	).Scan(&teamToCreate.CreatedAt)

	if err != nil {
		logger.Error("Repository: Не удалось добавить команду", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление команды: %w", err)
	}

	return nil
}

func (s *Storage) GetTeamByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	start := time.Now()

	query := `SELECT id, name, members, created_at
				FROM teams
				WHERE id = $1`

	team := &models.Team{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.Members,
		&team.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить команду", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение команды: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return team, nil
}
