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

// QuestionHandler - обработчики вопросов поставщиков и просмотра заявок.
type QuestionHandler struct {
	base
	Questions *services.QuestionService
	Responses *services.ResponseService
	Timeout   time.Duration
}

// NewQuestionHandler создаёт новый экземпляр QuestionHandler.
func NewQuestionHandler(questions *services.QuestionService, responses *services.ResponseService,
	sess *session.Manager, renderer *templates.Renderer, logger *zap.Logger, timeout time.Duration) *QuestionHandler {
	return &QuestionHandler{
		base:      base{Session: sess, Renderer: renderer, Logger: logger},
		Questions: questions,
		Responses: responses,
		Timeout:   timeout,
	}
}

// SupplierQuestions показывает опубликованные вопросы и ответы.
func (h *QuestionHandler) SupplierQuestions(w http.ResponseWriter, r *http.Request) {
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

	page, err := h.Questions.SupplierQuestions(ctx, user, r.PathValue("frameworkSlug"), r.PathValue("lotSlug"), briefID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Renderer.Render(w, http.StatusOK, "supplier_questions.html",
		h.page(w, r, "Supplier questions", page))
}

// AnswerQuestionPage показывает форму публикации вопроса и ответа.
func (h *QuestionHandler) AnswerQuestionPage(w http.ResponseWriter, r *http.Request) {
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

	form, err := h.Questions.AnswerQuestionPage(ctx, user, r.PathValue("frameworkSlug"), r.PathValue("lotSlug"), briefID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Renderer.Render(w, http.StatusOK, "answer_question.html",
		h.page(w, r, "Answer a supplier question", form))
}

// AnswerQuestion публикует вопрос с ответом и возвращает к списку.
func (h *QuestionHandler) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
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
	form, err := h.Questions.AnswerQuestion(ctx, user, frameworkSlug, lotSlug, briefID, r.PostForm)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if form != nil {
		h.Renderer.Render(w, http.StatusBadRequest, "answer_question.html",
			h.page(w, r, "Answer a supplier question", form))
		return
	}
	h.Session.AddFlash(w, r, "Answer published.", "success")
	http.Redirect(w, r, briefPath(frameworkSlug, lotSlug, briefID, "supplier-questions"), http.StatusFound)
}

// BriefResponses показывает сводку заявок на завершённый бриф.
func (h *QuestionHandler) BriefResponses(w http.ResponseWriter, r *http.Request) {
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

	page, err := h.Responses.ListResponses(ctx, user, r.PathValue("frameworkSlug"), r.PathValue("lotSlug"), briefID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Renderer.Render(w, http.StatusOK, "responses.html", h.page(w, r, "Responses to your requirements", page))
}
