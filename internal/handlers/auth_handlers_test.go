package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskBoard/internal/handlers"
	"taskBoard/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAuthService - мок сервиса аутентификации
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (string, error) {
	args := m.Called(ctx, username, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

var _ handlers.AuthService = (*MockAuthService)(nil)

func doAuthRequest(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("успешная регистрация", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := handlers.NewAuthHandler(mockService)

		mockService.On("Register", mock.Anything, "alice", "alice@example.com", "password123").
			Return("token-123", nil)

		rec := doAuthRequest(handler.Register,
			`{"username":"alice","email":"alice@example.com","password":"password123"}`)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "token-123", response["token"])
		mockService.AssertExpectations(t)
	})

	t.Run("пустые поля", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := handlers.NewAuthHandler(mockService)

		rec := doAuthRequest(handler.Register, `{"username":"alice"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Username, email and password are required")
		mockService.AssertNotCalled(t, "Register")
	})

	t.Run("дубликат пользователя", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := handlers.NewAuthHandler(mockService)

		mockService.On("Register", mock.Anything, "alice", "alice@example.com", "password123").
			Return("", service.NewBusinessError(service.CodeAlreadyExists, "User already exists"))

		rec := doAuthRequest(handler.Register,
			`{"username":"alice","email":"alice@example.com","password":"password123"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "User already exists")
	})

	t.Run("неверный content-type", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := handlers.NewAuthHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		handler.Register(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("успешный вход", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := handlers.NewAuthHandler(mockService)

		mockService.On("Login", mock.Anything, "alice@example.com", "password123").
			Return("token-456", nil)

		rec := doAuthRequest(handler.Login,
			`{"email":"alice@example.com","password":"password123"}`)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "token-456", response["token"])
		mockService.AssertExpectations(t)
	})

	t.Run("пустые поля", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := handlers.NewAuthHandler(mockService)

		rec := doAuthRequest(handler.Login, `{"email":"alice@example.com"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Email and password are required")
		mockService.AssertNotCalled(t, "Login")
	})

	t.Run("неверные учётные данные", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := handlers.NewAuthHandler(mockService)

		mockService.On("Login", mock.Anything, "alice@example.com", "wrong").
			Return("", service.NewBusinessError(service.CodeInvalidCredentials, "Invalid credentials"))

		rec := doAuthRequest(handler.Login,
			`{"email":"alice@example.com","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials")
	})

	t.Run("битый JSON", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := handlers.NewAuthHandler(mockService)

		rec := doAuthRequest(handler.Login, `{"email":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockService.AssertNotCalled(t, "Login")
	})
}
