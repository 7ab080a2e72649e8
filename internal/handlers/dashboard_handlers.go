package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/senyabanana/briefs-frontend/internal/services"
	"github.com/senyabanana/briefs-frontend/internal/session"
	"github.com/senyabanana/briefs-frontend/internal/templates"
)

// DashboardHandler - обработчики стартовой страницы покупателя и списков брифов.
type DashboardHandler struct {
	base
	Service *services.DashboardService
	Timeout time.Duration
}

// NewDashboardHandler создаёт новый экземпляр DashboardHandler.
func NewDashboardHandler(service *services.DashboardService, sess *session.Manager,
	renderer *templates.Renderer, logger *zap.Logger, timeout time.Duration) *DashboardHandler {
	return &DashboardHandler{
		base:    base{Session: sess, Renderer: renderer, Logger: logger},
		Service: service,
		Timeout: timeout,
	}
}

// Index показывает стартовый дашборд со счётчиками.
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	page, err := h.Service.Dashboard(ctx, user)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Renderer.Render(w, http.StatusOK, "index.html", h.page(w, r, "Your account", page))
}

// Requirements показывает брифы пользователя по стадиям жизненного цикла.
func (h *DashboardHandler) Requirements(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	page, err := h.Service.Requirements(ctx, user)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Renderer.Render(w, http.StatusOK, "requirements.html",
		h.page(w, r, "Your Digital Outcomes and Specialists requirements", page))
}
