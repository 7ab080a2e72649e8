package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/senyabanana/briefs-frontend/internal/services"
	"github.com/senyabanana/briefs-frontend/internal/session"
	"github.com/senyabanana/briefs-frontend/internal/templates"
)

// BriefHandler - обработчики страниц подготовки и публикации требований.
type BriefHandler struct {
	base
	Service *services.BriefService
	Timeout time.Duration
}

// NewBriefHandler создаёт новый экземпляр BriefHandler.
func NewBriefHandler(service *services.BriefService, sess *session.Manager,
	renderer *templates.Renderer, logger *zap.Logger, timeout time.Duration) *BriefHandler {
	return &BriefHandler{
		base:    base{Session: sess, Renderer: renderer, Logger: logger},
		Service: service,
		Timeout: timeout,
	}
}

// StartBrief показывает первую страницу создания требований.
func (h *BriefHandler) StartBrief(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	form, err := h.Service.StartBriefPage(ctx, r.PathValue("frameworkSlug"), r.PathValue("lotSlug"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Renderer.Render(w, http.StatusOK, "create_brief.html", h.page(w, r, "Create requirements", form))
}

// CreateBrief создаёт черновик из отправленной формы.
func (h *BriefHandler) CreateBrief(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, err)
		return
	}

	frameworkSlug := r.PathValue("frameworkSlug")
	lotSlug := r.PathValue("lotSlug")
	brief, form, err := h.Service.CreateBrief(ctx, user, frameworkSlug, lotSlug, r.PostForm)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if form != nil {
		h.Renderer.Render(w, http.StatusBadRequest, "create_brief.html", h.page(w, r, "Create requirements", form))
		return
	}
	http.Redirect(w, r, briefPath(frameworkSlug, lotSlug, brief.ID, ""), http.StatusFound)
}

// Overview показывает обзор брифа со сводкой секций.
func (h *BriefHandler) Overview(w http.ResponseWriter, r *http.Request) {
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

	deleteRequested := r.URL.Query().Get("delete_requested") == "True"
	withdrawRequested := r.URL.Query().Get("withdraw_requested") == "True"
	page, err := h.Service.BriefOverview(ctx, user, r.PathValue("frameworkSlug"), r.PathValue("lotSlug"),
		briefID, deleteRequested, withdrawRequested)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Renderer.Render(w, http.StatusOK, "brief_overview.html", h.page(w, r, page.Brief.DisplayName(), page))
}

// SectionSummary показывает сводку одной секции черновика.
func (h *BriefHandler) SectionSummary(w http.ResponseWriter, r *http.Request) {
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

	page, err := h.Service.SectionSummary(ctx, user, r.PathValue("frameworkSlug"), r.PathValue("lotSlug"),
		briefID, r.PathValue("sectionSlug"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Renderer.Render(w, http.StatusOK, "section_summary.html", h.page(w, r, page.Section.Name, page))
}

// EditQuestion показывает форму одного вопроса черновика.
func (h *BriefHandler) EditQuestion(w http.ResponseWriter, r *http.Request) {
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

	form, err := h.Service.EditQuestionPage(ctx, user, r.PathValue("frameworkSlug"), r.PathValue("lotSlug"),
		briefID, r.PathValue("sectionSlug"), r.PathValue("questionID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Renderer.Render(w, http.StatusOK, "edit_question.html", h.page(w, r, form.Question.Label, form))
}

// UpdateQuestion сохраняет ответ и ведёт либо к следующему вопросу из
// многостраничной секции, либо к сводке секции, либо к обзору.
func (h *BriefHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
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
	sectionSlug := r.PathValue("sectionSlug")
	questionID := r.PathValue("questionID")

	section, form, err := h.Service.UpdateQuestion(ctx, user, frameworkSlug, lotSlug,
		briefID, sectionSlug, questionID, r.PostForm)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if form != nil {
		h.Renderer.Render(w, http.StatusBadRequest, "edit_question.html", h.page(w, r, form.Question.Label, form))
		return
	}

	if nextID, ok := section.NextQuestionID(questionID); ok && r.PostForm.Get("save_and_continue") != "" {
		http.Redirect(w, r, briefPath(frameworkSlug, lotSlug, briefID,
			fmt.Sprintf("edit/%s/%s", sectionSlug, nextID)), http.StatusFound)
		return
	}
	if section.HasSummaryPage {
		http.Redirect(w, r, briefPath(frameworkSlug, lotSlug, briefID, sectionSlug), http.StatusFound)
		return
	}
	http.Redirect(w, r, briefPath(frameworkSlug, lotSlug, briefID, ""), http.StatusFound)
}

// Preview показывает требования так, как их увидят поставщики.
func (h *BriefHandler) Preview(w http.ResponseWriter, r *http.Request) {
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

	page, err := h.Service.Preview(ctx, user, r.PathValue("frameworkSlug"), r.PathValue("lotSlug"), briefID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	status := http.StatusOK
	if page.UnansweredRequired > 0 {
		status = http.StatusBadRequest
	}
	h.Renderer.Render(w, status, "preview.html", h.page(w, r, page.Brief.DisplayName(), page))
}

// PublishPage показывает подтверждение перед публикацией.
func (h *BriefHandler) PublishPage(w http.ResponseWriter, r *http.Request) {
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

	page, err := h.Service.PublishPage(ctx, user, r.PathValue("frameworkSlug"), r.PathValue("lotSlug"), briefID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Renderer.Render(w, http.StatusOK, "publish.html", h.page(w, r, "Publish your requirements", page))
}

// Publish публикует черновик и ведёт на обзор с отметкой об успехе.
func (h *BriefHandler) Publish(w http.ResponseWriter, r *http.Request) {
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
	if _, err := h.Service.Publish(ctx, user, frameworkSlug, lotSlug, briefID); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, briefPath(frameworkSlug, lotSlug, briefID, "")+"?published=true", http.StatusFound)
}

// Timeline показывает даты этапа вопросов и ответов.
func (h *BriefHandler) Timeline(w http.ResponseWriter, r *http.Request) {
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

	page, err := h.Service.Timeline(ctx, user, r.PathValue("frameworkSlug"), r.PathValue("lotSlug"), briefID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Renderer.Render(w, http.StatusOK, "timeline.html", h.page(w, r, "Question and answer dates", page))
}

// Delete удаляет черновик и возвращает на дашборд с подтверждением.
func (h *BriefHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	message, err := h.Service.Delete(ctx, user, r.PathValue("frameworkSlug"), r.PathValue("lotSlug"), briefID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Session.AddFlash(w, r, message, "success")
	http.Redirect(w, r, "/buyers", http.StatusFound)
}

// Withdraw отзывает опубликованный бриф.
func (h *BriefHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
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

	message, err := h.Service.Withdraw(ctx, user, r.PathValue("frameworkSlug"), r.PathValue("lotSlug"), briefID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.Session.AddFlash(w, r, message, "success")
	http.Redirect(w, r, "/buyers", http.StatusFound)
}

// Copy создаёт новый черновик из существующего брифа и ведёт
// на первый вопрос нового черновика.
func (h *BriefHandler) Copy(w http.ResponseWriter, r *http.Request) {
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

	newBrief, sectionSlug, questionID, err := h.Service.Copy(ctx, user,
		r.PathValue("frameworkSlug"), r.PathValue("lotSlug"), briefID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, briefPath(newBrief.FrameworkSlug, newBrief.LotSlug, newBrief.ID,
		fmt.Sprintf("edit/%s/%s", sectionSlug, questionID)), http.StatusFound)
}
