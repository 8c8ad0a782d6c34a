package service

import (
	"context"
	"errors"
	"fmt"

	"taskBoard/internal/auth"
	"taskBoard/internal/logger"
	"taskBoard/internal/models"
	repo "taskBoard/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService struct {
	users  UserRepository
	tokens *auth.JWTManager
	hasher *auth.PasswordHasher
}

func NewAuthService(users UserRepository, tokens *auth.JWTManager) AuthService {
	return AuthService{
		users:  users,
		tokens: tokens,
		hasher: auth.NewPasswordHasher(),
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("хеширование пароля: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			return "", NewBusinessError(CodeAlreadyExists, "User already exists", ToDetail("email", email))
		}
		return "", fmt.Errorf("создание пользователя: %w", err)
	}

	logger.Info("Service: Пользователь зарегистрирован", zap.String("user_id", user.ID.String()))

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("выпуск токена: %w", err)
	}

	return token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			// не раскрываем, существует ли адрес
			return "", NewBusinessError(CodeInvalidCredentials, "Invalid credentials")
		}
		return "", fmt.Errorf("получение пользователя: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		logger.Warn("Service: Неверный пароль", zap.String("user_id", user.ID.String()))
		return "", NewBusinessError(CodeInvalidCredentials, "Invalid credentials")
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("выпуск токена: %w", err)
	}

	return token, nil
}
