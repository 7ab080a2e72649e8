package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// HTTPError - типизированная ошибка Data API. Для ошибок валидации (400)
// Errors содержит коды по конкретным полям формы; сервисный слой
// сопоставляет их сообщениям из манифеста.
type HTTPError struct {
	StatusCode int
	Message    string
	Errors     map[string]string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("data api responded %d: %s", e.StatusCode, e.Message)
}

// IsValidationError - ошибка содержит пополевую раскладку и подлежит
// показу в форме, а не на странице технических неполадок.
func (e *HTTPError) IsValidationError() bool {
	return e.StatusCode == http.StatusBadRequest && len(e.Errors) > 0
}

// AsHTTPError извлекает *HTTPError из цепочки ошибок.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// decodeHTTPError разбирает тело ошибки Data API: {"error": "message"}
// либо {"error": {"field": "code", ...}}.
func decodeHTTPError(resp *http.Response) *HTTPError {
	httpErr := &HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return httpErr
	}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == nil {
		return httpErr
	}

	var message string
	if err := json.Unmarshal(envelope.Error, &message); err == nil {
		httpErr.Message = message
		return httpErr
	}

	var fields map[string]string
	if err := json.Unmarshal(envelope.Error, &fields); err == nil {
		httpErr.Message = "validation failed"
		httpErr.Errors = fields
	}
	return httpErr
}
