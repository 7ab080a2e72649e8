package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/senyabanana/briefs-frontend/internal/models"
	"github.com/senyabanana/briefs-frontend/internal/services"
	"github.com/senyabanana/briefs-frontend/internal/session"
	"github.com/senyabanana/briefs-frontend/internal/templates"
)

// OutcomeHandler - обработчики присуждения и отмены закрытых брифов.
type OutcomeHandler struct {
	base
	Service *services.OutcomeService
	Timeout time.Duration
}

// NewOutcomeHandler создаёт новый экземпляр OutcomeHandler.
func NewOutcomeHandler(service *services.OutcomeService, sess *session.Manager,
	renderer *templates.Renderer, logger *zap.Logger, timeout time.Duration) *OutcomeHandler {
	return &OutcomeHandler{
		base:    base{Session: sess, Renderer: renderer, Logger: logger},
		Service: service,
		Timeout: timeout,
	}
}

// AwardOrCancel показывает вопрос "присудили ли вы контракт".
func (h *OutcomeHandler) AwardOrCancel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	briefID, err := briefIDFromPath(r, "briefID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	page, err := h.Service.AwardOrCancel(ctx, user, r.PathValue("frameworkSlug"), r.PathValue("lotSlug"), briefID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Renderer.Render(w, http.StatusOK, "award_or_cancel.html", h.page(w, r, "Did you award a contract?", page))
}

// AwardOrCancelDecision разводит ответ формы по трём сценариям.
func (h *OutcomeHandler) AwardOrCancelDecision(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	briefID, err := briefIDFromPath(r, "briefID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err)
		return
	}

	frameworkSlug := r.PathValue("frameworkSlug")
	lotSlug := r.PathValue("lotSlug")
	decision, message, page, err := h.Service.AwardOrCancelDecision(ctx, user, frameworkSlug, lotSlug,
		briefID, r.PostForm.Get("award_or_cancel_decision"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if page != nil {
		status := http.StatusBadRequest
		if page.AlreadyAwarded {
			status = http.StatusOK
		}
		h.Renderer.Render(w, status, "award_or_cancel.html", h.page(w, r, "Did you award a contract?", page))
		return
	}

	switch decision {
	case services.AwardDecisionYes:
		http.Redirect(w, r, briefPath(frameworkSlug, lotSlug, briefID, "award-contract"), http.StatusFound)
	case services.AwardDecisionNo:
		http.Redirect(w, r, briefPath(frameworkSlug, lotSlug, briefID, "cancel-award"), http.StatusFound)
	default:
		h.Session.AddFlash(w, r, message, "message")
		http.Redirect(w, r, "/buyers/requirements/digital-outcomes-and-specialists", http.StatusFound)
	}
}

// Award показывает список заявок для выбора победителя.
func (h *OutcomeHandler) Award(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	briefID, err := briefIDFromPath(r, "briefID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	frameworkSlug := r.PathValue("frameworkSlug")
	lotSlug := r.PathValue("lotSlug")
	page, err := h.Service.Award(ctx, user, frameworkSlug, lotSlug, briefID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if len(page.BriefResponses) == 0 {
		http.Redirect(w, r, briefPath(frameworkSlug, lotSlug, briefID, "responses"), http.StatusFound)
		return
	}
	h.Renderer.Render(w, http.StatusOK, "award.html", h.page(w, r, "Who won the contract?", page))
}

// AwardSelect помечает выбранную заявку и ведёт к вводу данных контракта.
func (h *OutcomeHandler) AwardSelect(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	briefID, err := briefIDFromPath(r, "briefID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err)
		return
	}

	frameworkSlug := r.PathValue("frameworkSlug")
	lotSlug := r.PathValue("lotSlug")
	briefResponseID, _ := strconv.Atoi(r.PostForm.Get("brief_response"))

	page, err := h.Service.AwardSelect(ctx, user, frameworkSlug, lotSlug, briefID, briefResponseID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if page != nil {
		h.Renderer.Render(w, http.StatusBadRequest, "award.html", h.page(w, r, "Who won the contract?", page))
		return
	}
	http.Redirect(w, r, briefPath(frameworkSlug, lotSlug, briefID,
		fmt.Sprintf("award/%d/contract-details", briefResponseID)), http.StatusFound)
}

// AwardDetails показывает форму даты начала и стоимости контракта.
func (h *OutcomeHandler) AwardDetails(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	briefID, err := briefIDFromPath(r, "briefID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	briefResponseID, err := briefIDFromPath(r, "briefResponseID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	page, err := h.Service.AwardDetails(ctx, user, r.PathValue("frameworkSlug"), r.PathValue("lotSlug"),
		briefID, briefResponseID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Renderer.Render(w, http.StatusOK, "award_details.html", h.page(w, r, "Tell us about your contract", page))
}

// SubmitAwardDetails сохраняет данные контракта и завершает присуждение.
func (h *OutcomeHandler) SubmitAwardDetails(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	briefID, err := briefIDFromPath(r, "briefID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	briefResponseID, err := briefIDFromPath(r, "briefResponseID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err)
		return
	}

	message, page, err := h.Service.SubmitAwardDetails(ctx, user, r.PathValue("frameworkSlug"),
		r.PathValue("lotSlug"), briefID, briefResponseID, r.PostForm)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if page != nil {
		h.Renderer.Render(w, http.StatusBadRequest, "award_details.html",
			h.page(w, r, "Tell us about your contract", page))
		return
	}
	h.Session.AddFlash(w, r, message, "success")
	http.Redirect(w, r, "/buyers/requirements/digital-outcomes-and-specialists", http.StatusFound)
}

// Cancel показывает форму причины отмены закрытого брифа.
func (h *OutcomeHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.cancelPage(w, r, false)
}

// CancelAward - та же форма, но в сценарии "контракт не присуждён".
func (h *OutcomeHandler) CancelAward(w http.ResponseWriter, r *http.Request) {
	h.cancelPage(w, r, true)
}

func (h *OutcomeHandler) cancelPage(w http.ResponseWriter, r *http.Request, awardFlow bool) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	briefID, err := briefIDFromPath(r, "briefID")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	page, err := h.Service.Cancel(ctx, user, r.PathValue("frameworkSlug"), r.PathValue("lotSlug"), briefID, awardFlow)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Renderer.Render(w, http.StatusOK, "cancel.html", h.page(w, r, "Why do you need to cancel?", page))
}

// SubmitCancel завершает бриф по выбранной причине.
func (h *OutcomeHandler) SubmitCancel(w http.ResponseWriter, r *http.Request) {
	h.submitCancel(w, r, false)
}

// SubmitCancelAward завершает бриф из сценария присуждения.
func (h *OutcomeHandler) SubmitCancelAward(w http.ResponseWriter, r *http.Request) {
	h.submitCancel(w, r, true)
}

func (h *OutcomeHandler) submitCancel(w http.ResponseWriter, r *http.Request, awardFlow bool) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	briefID, err := briefIDFromPath(r, "briefID")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err)
		return
	}

	message, page, err := h.Service.SubmitCancel(ctx, user, r.PathValue("frameworkSlug"),
		r.PathValue("lotSlug"), briefID, awardFlow, r.PostForm.Get("cancel_reason"))
	if err != nil {
		if errResp, ok := err.(*models.ErrorResponse); ok && errResp.StatusCode == http.StatusBadRequest {
			h.Logger.Info("unrecognized cancellation reason", zap.String("path", r.URL.Path))
		}
		h.fail(w, r, err)
		return
	}
	if page != nil {
		h.Renderer.Render(w, http.StatusBadRequest, "cancel.html", h.page(w, r, "Why do you need to cancel?", page))
		return
	}
	h.Session.AddFlash(w, r, message, "success")
	http.Redirect(w, r, "/buyers/requirements/digital-outcomes-and-specialists", http.StatusFound)
}
