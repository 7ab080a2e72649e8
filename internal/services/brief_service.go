package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/senyabanana/briefs-frontend/internal/content"
	"github.com/senyabanana/briefs-frontend/internal/models"
	"github.com/senyabanana/briefs-frontend/internal/repository"
	"github.com/senyabanana/briefs-frontend/internal/utils"
)

const (
	editBriefManifest             = "edit_brief"
	displayBriefManifest          = "display_brief"
	clarificationQuestionManifest = "clarification_question"

	// requirementsLengthQuestion обрабатывается на странице публикации
	// отдельно от остальных обязательных вопросов.
	requirementsLengthQuestion = "requirementsLength"
)

var liveFrameworkOnly = []models.FrameworkStatus{models.LiveFramework}
var liveOrExpiredFramework = []models.FrameworkStatus{models.LiveFramework, models.ExpiredFramework}

// BriefService реализует сценарий подготовки требований:
// черновик -> редактирование -> предпросмотр -> публикация.
type BriefService struct {
	Frameworks repository.FrameworkRepository
	Briefs     repository.BriefRepository
	Responses  repository.BriefResponseRepository
	Content    ContentStore
}

// NewBriefService создаёт новый экземпляр BriefService.
func NewBriefService(frameworks repository.FrameworkRepository, briefs repository.BriefRepository,
	responses repository.BriefResponseRepository, loader ContentStore) *BriefService {
	return &BriefService{
		Frameworks: frameworks,
		Briefs:     briefs,
		Responses:  responses,
		Content:    loader,
	}
}

// QuestionForm - данные для страницы одного вопроса, включая повторный
// показ с ошибками валидации.
type QuestionForm struct {
	Framework *models.Framework
	Lot       *models.Lot
	Brief     *models.Brief
	Section   *content.Section
	Question  *content.Question
	Data      map[string]interface{}
	Errors    map[string]string
}

// OverviewPage - данные страницы обзора брифа.
type OverviewPage struct {
	Framework             *models.Framework
	Brief                 *models.Brief
	Sections              content.SummarySections
	CompletedSections     map[string]bool
	DeleteRequested       bool
	WithdrawRequested     bool
	CallOffContractURL    string
	FrameworkAgreementURL string
	AwardedSupplierName   string
}

// SectionSummaryPage - данные страницы сводки секции.
type SectionSummaryPage struct {
	Brief           *models.Brief
	Section         content.SummarySection
	ShowPreviewLink bool
}

// PreviewPage - данные предпросмотра требований.
type PreviewPage struct {
	Brief              *models.Brief
	Sections           content.SummarySections
	UnansweredRequired int
}

// PublishPage - данные страницы подтверждения публикации.
type PublishPage struct {
	Brief              *models.Brief
	Sections           content.SummarySections
	UnansweredRequired int
	EmailAddress       string
	Dates              PublishingDates
}

// editManifest возвращает манифест редактирования, отфильтрованный по лоту.
// Пустой результат означает, что контента для лота нет: 404.
func (s *BriefService) editManifest(frameworkSlug, lotSlug string) (*content.Manifest, *models.ErrorResponse) {
	manifest, err := s.Content.GetManifest(frameworkSlug, editBriefManifest)
	if err != nil {
		return nil, models.NewNotFoundError("no content for this framework")
	}
	filtered := manifest.Filter(lotSlug)
	if filtered.IsEmpty() {
		return nil, models.NewNotFoundError("no content for this lot")
	}
	return filtered, nil
}

// loadCorrectBrief загружает бриф и проверяет все условия доступа.
func (s *BriefService) loadCorrectBrief(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int, guard utils.BriefGuard) (*models.Brief, error) {

	brief, err := s.Briefs.GetBrief(ctx, briefID)
	if err != nil {
		if httpErr, ok := repository.AsHTTPError(err); ok && httpErr.StatusCode == http.StatusNotFound {
			return nil, models.NewNotFoundError("brief not found")
		}
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch brief")
	}
	if !utils.IsBriefCorrect(brief, frameworkSlug, lotSlug, user.ID, guard) {
		return nil, models.NewNotFoundError("brief not found")
	}
	return brief, nil
}

// StartBriefPage готовит первую страницу создания требований.
func (s *BriefService) StartBriefPage(ctx context.Context, frameworkSlug, lotSlug string) (*QuestionForm, error) {
	framework, lot, err := utils.GetFrameworkAndLot(ctx, s.Frameworks, frameworkSlug, lotSlug, liveFrameworkOnly, true)
	if err != nil {
		return nil, err
	}
	manifest, errResp := s.editManifest(frameworkSlug, lotSlug)
	if errResp != nil {
		return nil, errResp
	}
	section := manifest.GetSection(manifest.GetNextEditableSectionSlug())
	if section == nil || len(section.Questions) == 0 {
		return nil, models.NewNotFoundError("no editable section")
	}
	return &QuestionForm{
		Framework: framework,
		Lot:       lot,
		Section:   section,
		Question:  section.Questions[0],
		Data:      map[string]interface{}{},
	}, nil
}

// CreateBrief создаёт черновик из первой отправленной страницы вопросов.
// При ошибке валидации возвращает форму для повторного показа.
func (s *BriefService) CreateBrief(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, form url.Values) (*models.Brief, *QuestionForm, error) {

	page, err := s.StartBriefPage(ctx, frameworkSlug, lotSlug)
	if err != nil {
		return nil, nil, err
	}

	data := page.Section.GetData(form)
	brief, err := s.Briefs.CreateBrief(ctx, frameworkSlug, lotSlug, user.ID, data,
		user.EmailAddress, page.Section.QuestionIDs())
	if err != nil {
		if httpErr, ok := repository.AsHTTPError(err); ok && httpErr.IsValidationError() {
			page.Data = page.Section.UnformatData(data)
			page.Errors = page.Section.ErrorMessages(httpErr.Errors)
			return nil, page, nil
		}
		return nil, nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to create brief")
	}
	return brief, nil, nil
}

// BriefOverview собирает страницу обзора: сводку секций, карту
// завершённости и ссылки на документы фреймворка.
func (s *BriefService) BriefOverview(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int, deleteRequested, withdrawRequested bool) (*OverviewPage, error) {

	framework, _, err := utils.GetFrameworkAndLot(ctx, s.Frameworks, frameworkSlug, lotSlug, liveOrExpiredFramework, true)
	if err != nil {
		return nil, err
	}
	brief, err := s.loadCorrectBrief(ctx, user, frameworkSlug, lotSlug, briefID, utils.BriefGuard{})
	if err != nil {
		return nil, err
	}
	manifest, errResp := s.editManifest(frameworkSlug, lotSlug)
	if errResp != nil {
		return nil, errResp
	}

	sections := manifest.Summary(brief)
	completed := make(map[string]bool, len(sections))
	for _, section := range sections {
		required, optional := content.CountUnansweredQuestions([]content.SummarySection{section})
		if section.HasAtLeastOneRequiredQuestion() {
			completed[section.Slug] = required == 0
		} else {
			completed[section.Slug] = optional == 0
		}
	}

	for i := range brief.ClarificationQuestions {
		brief.ClarificationQuestions[i].Number = i + 1
	}

	awardedSupplierName := ""
	if brief.AwardedBriefResponseID != 0 {
		response, err := s.Responses.GetBriefResponse(ctx, brief.AwardedBriefResponseID)
		if err != nil {
			return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch awarded brief response")
		}
		awardedSupplierName = response.SupplierName
	}

	callOffContractURL, _ := s.Content.GetMessage(frameworkSlug, "urls", "call_off_contract_url")
	frameworkAgreementURL, _ := s.Content.GetMessage(frameworkSlug, "urls", "framework_agreement_url")

	return &OverviewPage{
		Framework:             framework,
		Brief:                 brief,
		Sections:              sections,
		CompletedSections:     completed,
		DeleteRequested:       deleteRequested && brief.Status == models.DraftBrief,
		WithdrawRequested:     withdrawRequested && brief.Status == models.LiveBrief,
		CallOffContractURL:    callOffContractURL,
		FrameworkAgreementURL: frameworkAgreementURL,
		AwardedSupplierName:   awardedSupplierName,
	}, nil
}

// SectionSummary - сводка одной секции черновика.
func (s *BriefService) SectionSummary(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int, sectionSlug string) (*SectionSummaryPage, error) {

	if _, _, err := utils.GetFrameworkAndLot(ctx, s.Frameworks, frameworkSlug, lotSlug, liveOrExpiredFramework, true); err != nil {
		return nil, err
	}
	brief, err := s.loadCorrectBrief(ctx, user, frameworkSlug, lotSlug, briefID, utils.BriefGuard{})
	if err != nil {
		return nil, err
	}
	if !brief.CanBeEdited() {
		return nil, models.NewNotFoundError("brief is not editable")
	}
	manifest, errResp := s.editManifest(frameworkSlug, lotSlug)
	if errResp != nil {
		return nil, errResp
	}

	sections := manifest.Summary(brief)
	section, ok := sections.GetSection(sectionSlug)
	if !ok {
		return nil, models.NewNotFoundError("section not found")
	}
	unansweredRequired, _ := content.CountUnansweredQuestions(sections)

	return &SectionSummaryPage{
		Brief:           brief,
		Section:         section,
		ShowPreviewLink: unansweredRequired == 0,
	}, nil
}

// EditQuestionPage - форма редактирования одного вопроса черновика.
func (s *BriefService) EditQuestionPage(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int, sectionSlug, questionID string) (*QuestionForm, error) {

	framework, lot, err := utils.GetFrameworkAndLot(ctx, s.Frameworks, frameworkSlug, lotSlug, liveFrameworkOnly, true)
	if err != nil {
		return nil, err
	}
	brief, err := s.loadCorrectBrief(ctx, user, frameworkSlug, lotSlug, briefID, utils.BriefGuard{})
	if err != nil {
		return nil, err
	}
	if !brief.CanBeEdited() {
		return nil, models.NewNotFoundError("brief is not editable")
	}
	manifest, errResp := s.editManifest(frameworkSlug, lotSlug)
	if errResp != nil {
		return nil, errResp
	}
	section := manifest.GetSection(sectionSlug)
	if section == nil || !section.Editable {
		return nil, models.NewNotFoundError("section not found")
	}
	question := section.GetQuestion(questionID)
	if question == nil {
		return nil, models.NewNotFoundError("question not found")
	}

	return &QuestionForm{
		Framework: framework,
		Lot:       lot,
		Brief:     brief,
		Section:   section,
		Question:  question,
		Data:      section.UnformatData(brief.Answers),
	}, nil
}

// UpdateQuestion сохраняет ответ на один вопрос через Data API.
// Возвращает секцию для выбора редиректа либо форму с ошибками.
func (s *BriefService) UpdateQuestion(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int, sectionSlug, questionID string,
	form url.Values) (*content.Section, *QuestionForm, error) {

	page, err := s.EditQuestionPage(ctx, user, frameworkSlug, lotSlug, briefID, sectionSlug, questionID)
	if err != nil {
		return nil, nil, err
	}

	data := page.Question.GetData(form)
	err = s.Briefs.UpdateBrief(ctx, briefID, data, user.EmailAddress, []string{page.Question.ID})
	if err != nil {
		if httpErr, ok := repository.AsHTTPError(err); ok && httpErr.IsValidationError() {
			page.Data = page.Section.UnformatData(data)
			page.Errors = page.Section.ErrorMessages(httpErr.Errors)
			return nil, page, nil
		}
		return nil, nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to update brief")
	}
	return page.Section, nil, nil
}

// Preview готовит предпросмотр; при неотвеченных обязательных вопросах
// страница возвращается со статусом 400.
func (s *BriefService) Preview(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int) (*PreviewPage, error) {

	if _, _, err := utils.GetFrameworkAndLot(ctx, s.Frameworks, frameworkSlug, lotSlug, liveFrameworkOnly, true); err != nil {
		return nil, err
	}
	brief, err := s.loadCorrectBrief(ctx, user, frameworkSlug, lotSlug, briefID, utils.BriefGuard{})
	if err != nil {
		return nil, err
	}
	if !brief.CanBeEdited() {
		return nil, models.NewNotFoundError("brief is not editable")
	}
	manifest, errResp := s.editManifest(frameworkSlug, lotSlug)
	if errResp != nil {
		return nil, errResp
	}

	displayManifest, err2 := s.Content.GetManifest(frameworkSlug, displayBriefManifest)
	sections := manifest.Summary(brief)
	if err2 == nil {
		sections = displayManifest.Filter(lotSlug).Summary(brief)
	}

	unansweredRequired, _ := content.CountUnansweredQuestions(manifest.Summary(brief))
	return &PreviewPage{
		Brief:              brief,
		Sections:           sections,
		UnansweredRequired: unansweredRequired,
	}, nil
}

// PublishPage - подтверждение перед публикацией. requirementsLength
// обязателен, но показывается на этой странице отдельно, поэтому
// вычитается из общего счётчика.
func (s *BriefService) PublishPage(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int) (*PublishPage, error) {

	brief, sections, err := s.publishableBrief(ctx, user, frameworkSlug, lotSlug, briefID)
	if err != nil {
		return nil, err
	}

	unansweredRequired, _ := content.CountUnansweredQuestions(sections)
	if question, ok := sections.GetQuestion(requirementsLengthQuestion); ok && question.AnswerRequired() {
		unansweredRequired--
	}

	emailAddress := ""
	if len(brief.Users) > 0 {
		emailAddress = brief.Users[0].EmailAddress
	}

	return &PublishPage{
		Brief:              brief,
		Sections:           sections,
		UnansweredRequired: unansweredRequired,
		EmailAddress:       emailAddress,
		Dates:              GetPublishingDates(brief, timeNow()),
	}, nil
}

// Publish переводит черновик в live. Публикация отклоняется без единого
// вызова Data API, пока остаются обязательные вопросы без ответа.
func (s *BriefService) Publish(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int) (*models.Brief, error) {

	brief, sections, err := s.publishableBrief(ctx, user, frameworkSlug, lotSlug, briefID)
	if err != nil {
		return nil, err
	}

	unansweredRequired, _ := content.CountUnansweredQuestions(sections)
	if unansweredRequired > 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "there are still unanswered required questions")
	}

	publishedBy := ""
	if len(brief.Users) > 0 {
		publishedBy = brief.Users[0].Name
	}
	if err := s.Briefs.PublishBrief(ctx, briefID, publishedBy); err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to publish brief")
	}
	return brief, nil
}

func (s *BriefService) publishableBrief(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int) (*models.Brief, content.SummarySections, error) {

	if _, _, err := utils.GetFrameworkAndLot(ctx, s.Frameworks, frameworkSlug, lotSlug, liveFrameworkOnly, true); err != nil {
		return nil, nil, err
	}
	brief, err := s.loadCorrectBrief(ctx, user, frameworkSlug, lotSlug, briefID, utils.BriefGuard{})
	if err != nil {
		return nil, nil, err
	}
	if !brief.CanBeEdited() {
		return nil, nil, models.NewNotFoundError("brief is not editable")
	}
	manifest, errResp := s.editManifest(frameworkSlug, lotSlug)
	if errResp != nil {
		return nil, nil, errResp
	}
	return brief, manifest.Summary(brief), nil
}

// Timeline - страница дат вопросов и ответов опубликованного брифа.
func (s *BriefService) Timeline(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int) (*PublishPage, error) {

	if _, _, err := utils.GetFrameworkAndLot(ctx, s.Frameworks, frameworkSlug, lotSlug, liveOrExpiredFramework, true); err != nil {
		return nil, err
	}
	brief, err := s.loadCorrectBrief(ctx, user, frameworkSlug, lotSlug, briefID,
		utils.BriefGuard{AllowedStatuses: []models.BriefStatus{models.LiveBrief}})
	if err != nil {
		return nil, err
	}

	emailAddress := ""
	if len(brief.Users) > 0 {
		emailAddress = brief.Users[0].EmailAddress
	}
	return &PublishPage{
		Brief:        brief,
		EmailAddress: emailAddress,
		Dates:        GetPublishingDates(brief, brief.PublishedAt),
	}, nil
}

// Delete удаляет черновик; удалять можно только свой draft, иначе 404.
func (s *BriefService) Delete(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int) (string, error) {

	if _, _, err := utils.GetFrameworkAndLot(ctx, s.Frameworks, frameworkSlug, lotSlug, liveOrExpiredFramework, true); err != nil {
		return "", err
	}
	brief, err := s.loadCorrectBrief(ctx, user, frameworkSlug, lotSlug, briefID, utils.BriefGuard{})
	if err != nil {
		return "", err
	}
	if !brief.CanBeEdited() {
		return "", models.NewNotFoundError("only draft briefs can be deleted")
	}
	if err := s.Briefs.DeleteBrief(ctx, briefID, user.EmailAddress); err != nil {
		return "", models.NewErrorResponse(http.StatusInternalServerError, "failed to delete brief")
	}
	return fmt.Sprintf("Your requirements ‘%s’ were deleted", brief.DisplayName()), nil
}

// Withdraw отзывает опубликованный бриф; только свой и только live.
func (s *BriefService) Withdraw(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int) (string, error) {

	if _, _, err := utils.GetFrameworkAndLot(ctx, s.Frameworks, frameworkSlug, lotSlug, liveOrExpiredFramework, true); err != nil {
		return "", err
	}
	brief, err := s.loadCorrectBrief(ctx, user, frameworkSlug, lotSlug, briefID,
		utils.BriefGuard{AllowedStatuses: []models.BriefStatus{models.LiveBrief}})
	if err != nil {
		return "", err
	}
	if err := s.Briefs.WithdrawBrief(ctx, briefID, user.EmailAddress); err != nil {
		return "", models.NewErrorResponse(http.StatusInternalServerError, "failed to withdraw brief")
	}
	return fmt.Sprintf("You’ve withdrawn your requirements for ‘%s’", brief.DisplayName()), nil
}

// Copy создаёт новый черновик из существующего брифа и возвращает
// адрес первого вопроса для редиректа.
func (s *BriefService) Copy(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int) (*models.Brief, string, string, error) {

	brief, err := s.loadCorrectBrief(ctx, user, frameworkSlug, lotSlug, briefID,
		utils.BriefGuard{AllowWithdrawn: true})
	if err != nil {
		return nil, "", "", err
	}
	newBrief, err := s.Briefs.CopyBrief(ctx, brief.ID, user.EmailAddress)
	if err != nil {
		return nil, "", "", models.NewErrorResponse(http.StatusInternalServerError, "failed to copy brief")
	}
	manifest, errResp := s.editManifest(newBrief.FrameworkSlug, newBrief.LotSlug)
	if errResp != nil {
		return nil, "", "", errResp
	}
	section := manifest.GetSection(manifest.GetNextEditableSectionSlug())
	if section == nil || len(section.Questions) == 0 {
		return nil, "", "", models.NewNotFoundError("no editable section")
	}
	return newBrief, section.Slug, section.Questions[0].ID, nil
}
