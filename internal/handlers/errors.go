package handlers

import (
	"errors"
	"net/http"

	"taskBoard/internal/logger"
	"taskBoard/internal/service"

	"go.uber.org/zap"
)

// handleBusinessError возвращает true, если ошибка была бизнес-ошибкой
// и ответ уже отправлен; иначе вызывающий отдаёт общий 500
func handleBusinessError(w http.ResponseWriter, err error) bool {
	var businessErr *service.BusinessError
	if errors.As(err, &businessErr) {
		statusCode := mapBusinessErrorToHTTP(businessErr.Code)

		logger.Warn("HTTP: Бизнес-ошибка",
			zap.String("error_code", businessErr.Code),
			zap.Int("http_status", statusCode))

		responseWithJSON(w, statusCode, map[string]any{
			"error":   businessErr.Code,
			"message": businessErr.Message,
			"details": businessErr.Details,
		})
		return true
	}
	return false
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeNotAuthorized, service.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case service.CodeValidationError:
		return http.StatusBadRequest
	case service.CodeAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// общий 500: подробности только в лог, наружу — нейтральное сообщение
func handleUnexpectedError(w http.ResponseWriter, err error, operation string) {
	logger.Error("HTTP: Ошибка Service", err, zap.String("operation", operation))
	responseWithError(w, http.StatusInternalServerError, "Server error")
}
