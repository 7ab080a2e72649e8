package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/senyabanana/briefs-frontend/internal/models"
	"github.com/senyabanana/briefs-frontend/internal/services"
	"github.com/senyabanana/briefs-frontend/internal/session"
	"github.com/senyabanana/briefs-frontend/internal/templates"
)

// AccountHandler - обработчики выдачи приглашений на аккаунт покупателя.
// Эти страницы доступны без сессии.
type AccountHandler struct {
	base
	Service *services.AccountService
	Timeout time.Duration
}

// NewAccountHandler создаёт новый экземпляр AccountHandler.
func NewAccountHandler(service *services.AccountService, sess *session.Manager,
	renderer *templates.Renderer, logger *zap.Logger, timeout time.Duration) *AccountHandler {
	return &AccountHandler{
		base:    base{Session: sess, Renderer: renderer, Logger: logger},
		Service: service,
		Timeout: timeout,
	}
}

// createBuyerForm - данные формы запроса приглашения.
type createBuyerForm struct {
	EmailAddress string
	Errors       map[string]string
}

// CreateBuyerPage показывает форму запроса приглашения.
func (h *AccountHandler) CreateBuyerPage(w http.ResponseWriter, r *http.Request) {
	h.Renderer.Render(w, http.StatusOK, "create_buyer.html",
		h.page(w, r, "Create a buyer account", &createBuyerForm{}))
}

// CreateBuyer проверяет адрес и отправляет приглашение.
func (h *AccountHandler) CreateBuyer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err)
		return
	}
	emailAddress := r.PostForm.Get("email_address")

	err := h.Service.RequestInvite(ctx, emailAddress)
	switch {
	case err == nil:
		h.Renderer.Render(w, http.StatusOK, "create_buyer_done.html",
			h.page(w, r, "Check your email", emailAddress))
	case err == services.ErrInvalidBuyerDomain:
		h.Renderer.Render(w, http.StatusConflict, "create_buyer_error.html",
			h.page(w, r, "You must use a public sector email address", emailAddress))
	default:
		if errResp, ok := err.(*models.ErrorResponse); ok && errResp.StatusCode == http.StatusBadRequest {
			h.Renderer.Render(w, http.StatusBadRequest, "create_buyer.html",
				h.page(w, r, "Create a buyer account", &createBuyerForm{
					EmailAddress: emailAddress,
					Errors:       errResp.FieldErrors,
				}))
			return
		}
		h.fail(w, r, err)
	}
}
