package models

import "net/http"

// ErrorResponse описывает ошибку с кодом и сообщением.
type ErrorResponse struct {
	StatusCode  int               `json:"-"`
	Message     string            `json:"reason"`
	FieldErrors map[string]string `json:"-"`
}

// NewErrorResponse создает новую ошибку с кодом и сообщением.
func NewErrorResponse(statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Message:    message}
}

// NewNotFoundError - ошибка 404; любая неудачная проверка доступа сводится к ней,
// чтобы не раскрывать существование чужих брифов.
func NewNotFoundError(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusNotFound, message)
}

// NewValidationError - ошибка 400 с сообщениями по конкретным полям формы.
func NewValidationError(message string, fieldErrors map[string]string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode:  http.StatusBadRequest,
		Message:     message,
		FieldErrors: fieldErrors,
	}
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *ErrorResponse) Error() string {
	return e.Message
}
