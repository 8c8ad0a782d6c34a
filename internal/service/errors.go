package service

import "fmt"

// коды бизнес-ошибок; маппинг в HTTP-статусы живёт в handlers
const (
	CodeNotFound           = "NOT_FOUND"
	CodeNotAuthorized      = "NOT_AUTHORIZED"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func ToDetail(key string, payload any) Detail {
	return Detail{
		Key:     key,
		Payload: payload,
	}
}

func NewBusinessError(code string, message string, details ...Detail) *BusinessError {
	busErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}

	for _, detail := range details {
		busErr.Details[detail.Key] = detail.Payload
	}

	return busErr
}

// сообщения наружу — на языке API, совпадают с прежним поведением сервиса
func NewNotFound(message string, id string) *BusinessError {
	return NewBusinessError(CodeNotFound, message, ToDetail("id", id))
}

func NewNotAuthorized(message string) *BusinessError {
	return NewBusinessError(CodeNotAuthorized, message)
}

func NewValidationError(message string, field string) *BusinessError {
	return NewBusinessError(CodeValidationError, message, ToDetail("field", field))
}
