package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/senyabanana/briefs-frontend/internal/repository"
)

// StatusHandler обрабатывает GET запрос к /_status: проверяет доступность Data API.
type StatusHandler struct {
	Client  *repository.Client
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewStatusHandler создаёт новый экземпляр StatusHandler.
func NewStatusHandler(client *repository.Client, logger *zap.Logger, timeout time.Duration) *StatusHandler {
	return &StatusHandler{Client: client, Logger: logger, Timeout: timeout}
}

// Status отвечает JSON со статусом приложения и Data API.
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	status := map[string]string{"status": "ok"}
	code := http.StatusOK
	if r.URL.Query().Get("ignore-dependencies") != "true" {
		if err := h.Client.GetStatus(ctx); err != nil {
			h.Logger.Error("data api status check failed", zap.Error(err))
			status["status"] = "error"
			status["api_status"] = "error"
			code = http.StatusInternalServerError
		} else {
			status["api_status"] = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		h.Logger.Error("failed to encode status response", zap.Error(err))
	}
}
