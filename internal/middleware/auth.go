package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"taskBoard/internal/auth"
	"taskBoard/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const UserIdKey contextKey = "user_id"

// Auth пропускает дальше только запросы с валидным Bearer-токеном
// и кладёт id пользователя в контекст запроса
func Auth(tokens *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, r, "missing authorization header")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w, r, "invalid authorization header")
				return
			}

			userID, err := tokens.Validate(parts[1])
			if err != nil {
				logger.Warn("HTTP: Отклонён токен",
					zap.Error(err),
					zap.String("request_id", GetRequestID(r.Context())),
					zap.String("client_ip", r.RemoteAddr))
				unauthorized(w, r, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIdKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID возвращает id пользователя, положенный Auth; uuid.Nil если его нет
func GetUserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(UserIdKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"error":      "NOT_AUTHORIZED",
		"message":    message,
		"request_id": GetRequestID(r.Context()),
	})
}
