package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client - клиент удалённого Data API; единственная граница персистентности
// приложения. Каждая мутация и каждый запрос проходят через него.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient создаёт новый экземпляр Client.
func NewClient(baseURL, authToken string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authToken:  authToken,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// do выполняет один запрос к Data API и декодирует ответ в out.
// Ответы вне 2xx превращаются в *HTTPError; ретраев нет, ошибка
// поднимается до обработчика как есть.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out interface{}) error {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("data api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeHTTPError(resp)
		c.logger.Warn("data api error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", apiErr.StatusCode))
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// GetStatus проверяет доступность Data API; используется эндпоинтом /_status.
func (c *Client) GetStatus(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/_status", nil, nil, nil)
}
