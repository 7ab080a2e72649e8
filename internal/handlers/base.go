package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/senyabanana/briefs-frontend/internal/models"
	"github.com/senyabanana/briefs-frontend/internal/session"
	"github.com/senyabanana/briefs-frontend/internal/templates"
)

// base - общая часть всех обработчиков: сессии, шаблоны, логирование.
type base struct {
	Session  *session.Manager
	Renderer *templates.Renderer
	Logger   *zap.Logger
}

// page собирает обёртку страницы с пользователем и flash-сообщениями.
func (b *base) page(w http.ResponseWriter, r *http.Request, title string, data interface{}) templates.Page {
	user, _ := session.UserFromContext(r.Context())
	return templates.Page{
		Title:   title,
		Flashes: b.Session.Flashes(w, r),
		User:    user,
		Data:    data,
	}
}

// fail логирует ошибку сервиса и показывает соответствующую страницу ошибки.
func (b *base) fail(w http.ResponseWriter, r *http.Request, err error) {
	user, _ := session.UserFromContext(r.Context())
	if errResp, ok := err.(*models.ErrorResponse); ok {
		if errResp.StatusCode >= http.StatusInternalServerError {
			b.Logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		} else {
			b.Logger.Info("request rejected", zap.String("path", r.URL.Path),
				zap.Int("status", errResp.StatusCode), zap.Error(err))
		}
		b.Renderer.RenderError(w, errResp, user)
		return
	}
	b.Logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	b.Renderer.RenderError(w, models.NewErrorResponse(http.StatusInternalServerError,
		"Sorry, we're experiencing technical difficulties"), user)
}

// currentUser достаёт пользователя, положенного в контекст middleware.
func (b *base) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := session.UserFromContext(r.Context())
	if !ok {
		b.fail(w, r, models.NewErrorResponse(http.StatusInternalServerError, "no user in request context"))
		return nil, false
	}
	return user, true
}

// briefIDFromPath разбирает идентификатор брифа; нечисловой путь - это 404.
func briefIDFromPath(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil || id <= 0 {
		return 0, models.NewNotFoundError("brief not found")
	}
	return id, nil
}

// briefPath строит адрес страницы брифа под /buyers.
func briefPath(frameworkSlug, lotSlug string, briefID int, suffix string) string {
	path := fmt.Sprintf("/buyers/frameworks/%s/requirements/%s/%d", frameworkSlug, lotSlug, briefID)
	if suffix != "" {
		path += "/" + suffix
	}
	return path
}
