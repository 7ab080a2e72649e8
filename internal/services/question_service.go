package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/senyabanana/briefs-frontend/internal/content"
	"github.com/senyabanana/briefs-frontend/internal/models"
	"github.com/senyabanana/briefs-frontend/internal/repository"
	"github.com/senyabanana/briefs-frontend/internal/utils"
)

// QuestionService отвечает за вопросы поставщиков к опубликованным брифам.
type QuestionService struct {
	Frameworks repository.FrameworkRepository
	Briefs     repository.BriefRepository
	Content    ContentStore
}

// NewQuestionService создаёт новый экземпляр QuestionService.
func NewQuestionService(frameworks repository.FrameworkRepository, briefs repository.BriefRepository,
	loader ContentStore) *QuestionService {
	return &QuestionService{Frameworks: frameworks, Briefs: briefs, Content: loader}
}

// SupplierQuestionsPage - список вопросов поставщиков с нумерацией.
type SupplierQuestionsPage struct {
	Brief     *models.Brief
	Questions []models.ClarificationQuestion
}

// AnswerQuestionForm - форма публикации вопроса и ответа.
type AnswerQuestionForm struct {
	Brief   *models.Brief
	Section *content.Section
	Data    map[string]interface{}
	Errors  map[string]string
}

var liveBriefOnly = utils.BriefGuard{AllowedStatuses: []models.BriefStatus{models.LiveBrief}}

// loadLiveBrief загружает бриф, на который ещё можно отвечать поставщикам.
func (s *QuestionService) loadLiveBrief(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int) (*models.Brief, error) {

	if _, _, err := utils.GetFrameworkAndLot(ctx, s.Frameworks, frameworkSlug, lotSlug, liveOrExpiredFramework, true); err != nil {
		return nil, err
	}
	brief, err := s.Briefs.GetBrief(ctx, briefID)
	if err != nil {
		if httpErr, ok := repository.AsHTTPError(err); ok && httpErr.StatusCode == http.StatusNotFound {
			return nil, models.NewNotFoundError("brief not found")
		}
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch brief")
	}
	if !utils.IsBriefCorrect(brief, frameworkSlug, lotSlug, user.ID, liveBriefOnly) {
		return nil, models.NewNotFoundError("brief not found")
	}
	return brief, nil
}

// SupplierQuestions возвращает страницу с опубликованными вопросами и ответами.
func (s *QuestionService) SupplierQuestions(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int) (*SupplierQuestionsPage, error) {

	brief, err := s.loadLiveBrief(ctx, user, frameworkSlug, lotSlug, briefID)
	if err != nil {
		return nil, err
	}
	return &SupplierQuestionsPage{Brief: brief, Questions: brief.ClarificationQuestions}, nil
}

// AnswerQuestionPage готовит форму публикации вопроса и ответа.
func (s *QuestionService) AnswerQuestionPage(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int) (*AnswerQuestionForm, error) {

	brief, err := s.loadLiveBrief(ctx, user, frameworkSlug, lotSlug, briefID)
	if err != nil {
		return nil, err
	}
	section, errResp := s.clarificationSection(brief)
	if errResp != nil {
		return nil, errResp
	}
	return &AnswerQuestionForm{Brief: brief, Section: section, Data: map[string]interface{}{}}, nil
}

// AnswerQuestion публикует вопрос поставщика вместе с ответом покупателя.
// Ненулевая форма в ответе означает ошибки валидации и повторный показ.
func (s *QuestionService) AnswerQuestion(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int, form url.Values) (*AnswerQuestionForm, error) {

	brief, err := s.loadLiveBrief(ctx, user, frameworkSlug, lotSlug, briefID)
	if err != nil {
		return nil, err
	}
	section, errResp := s.clarificationSection(brief)
	if errResp != nil {
		return nil, errResp
	}

	data := section.GetData(form)
	question, _ := data["question"].(string)
	answer, _ := data["answer"].(string)

	apiErr := s.Briefs.AddBriefClarificationQuestion(ctx, briefID, question, answer, user.EmailAddress)
	if apiErr != nil {
		if httpErr, ok := repository.AsHTTPError(apiErr); ok && httpErr.IsValidationError() {
			return &AnswerQuestionForm{
				Brief:   brief,
				Section: section,
				Data:    data,
				Errors:  section.ErrorMessages(httpErr.Errors),
			}, nil
		}
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to publish question and answer")
	}
	return nil, nil
}

func (s *QuestionService) clarificationSection(brief *models.Brief) (*content.Section, *models.ErrorResponse) {
	manifest, err := s.Content.GetManifest(brief.FrameworkSlug, clarificationQuestionManifest)
	if err != nil {
		return nil, models.NewNotFoundError("no content for this framework")
	}
	filtered := manifest.Filter(brief.LotSlug)
	slug := filtered.GetNextEditableSectionSlug()
	section := filtered.GetSection(slug)
	if section == nil {
		return nil, models.NewNotFoundError("no clarification section")
	}
	return section, nil
}
