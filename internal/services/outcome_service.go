package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/senyabanana/briefs-frontend/internal/content"
	"github.com/senyabanana/briefs-frontend/internal/models"
	"github.com/senyabanana/briefs-frontend/internal/repository"
	"github.com/senyabanana/briefs-frontend/internal/utils"
)

const awardBriefManifest = "award_brief"

// Ответы формы "присудить или отменить".
const (
	AwardDecisionYes  = "yes"
	AwardDecisionNo   = "no"
	AwardDecisionBack = "back"
)

// Коды причин отмены; любое другое значение - неожиданный ввод.
const (
	CancelReasonCancel       = "cancel"
	CancelReasonUnsuccessful = "unsuccessful"
)

var briefOutcomeStatuses = []models.BriefStatus{
	models.AwardedBrief, models.CancelledBrief, models.UnsuccessfulBrief, models.ClosedBrief,
}

// OutcomeService реализует под-сценарий присуждения и отмены после
// закрытия брифа.
type OutcomeService struct {
	Frameworks repository.FrameworkRepository
	Briefs     repository.BriefRepository
	Responses  repository.BriefResponseRepository
	Content    ContentStore
}

// NewOutcomeService создаёт новый экземпляр OutcomeService.
func NewOutcomeService(frameworks repository.FrameworkRepository, briefs repository.BriefRepository,
	responses repository.BriefResponseRepository, loader ContentStore) *OutcomeService {
	return &OutcomeService{
		Frameworks: frameworks,
		Briefs:     briefs,
		Responses:  responses,
		Content:    loader,
	}
}

// AwardOrCancelPage - страница выбора "присуждён ли контракт".
type AwardOrCancelPage struct {
	Brief          *models.Brief
	AlreadyAwarded bool
	Errors         map[string]string
}

// AwardPage - страница выбора победившей заявки.
type AwardPage struct {
	Brief          *models.Brief
	BriefResponses []models.BriefResponse
	Selected       int
	Errors         map[string]string
}

// AwardDetailsPage - страница даты начала и стоимости контракта.
type AwardDetailsPage struct {
	Brief         *models.Brief
	BriefResponse *models.BriefResponse
	Section       *content.Section
	Data          map[string]interface{}
	Errors        map[string]string
}

// CancelPage - страница выбора причины отмены.
type CancelPage struct {
	Brief     *models.Brief
	AwardFlow bool
	LabelText string
	Errors    map[string]string
}

func (s *OutcomeService) loadOutcomeBrief(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int, allowed []models.BriefStatus) (*models.Brief, error) {

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
	if !utils.IsBriefCorrect(brief, frameworkSlug, lotSlug, user.ID, utils.BriefGuard{AllowedStatuses: allowed}) {
		return nil, models.NewNotFoundError("brief not found")
	}
	return brief, nil
}

// AwardOrCancel готовит страницу выбора исхода закрытого брифа.
func (s *OutcomeService) AwardOrCancel(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int) (*AwardOrCancelPage, error) {

	brief, err := s.loadOutcomeBrief(ctx, user, frameworkSlug, lotSlug, briefID, briefOutcomeStatuses)
	if err != nil {
		return nil, err
	}
	return &AwardOrCancelPage{
		Brief:          brief,
		AlreadyAwarded: brief.HasStatus(models.AwardedBrief, models.CancelledBrief, models.UnsuccessfulBrief),
	}, nil
}

// AwardOrCancelDecision обрабатывает ответ формы. Возвращает страницу
// с ошибкой, если ответ не выбран, либо решение для редиректа; для
// ответа "back" - ещё и сообщение с названием брифа.
func (s *OutcomeService) AwardOrCancelDecision(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int, decision string) (string, string, *AwardOrCancelPage, error) {

	page, err := s.AwardOrCancel(ctx, user, frameworkSlug, lotSlug, briefID)
	if err != nil {
		return "", "", nil, err
	}
	if page.AlreadyAwarded {
		return "", "", page, nil
	}
	switch decision {
	case AwardDecisionYes, AwardDecisionNo:
		return decision, "", nil, nil
	case AwardDecisionBack:
		return decision, fmt.Sprintf("You’ve updated ‘%s’", page.Brief.DisplayName()), nil, nil
	case "":
		page.Errors = map[string]string{"award_or_cancel_decision": "You need to answer this question."}
		return "", "", page, nil
	default:
		return "", "", nil, models.NewErrorResponse(http.StatusInternalServerError,
			"unexpected answer to award or cancel brief")
	}
}

// Award готовит список заявок для выбора победителя: только submitted и
// pending-awarded, по алфавиту имён поставщиков; при равенстве имён
// сохраняется исходный порядок. Пустой список - редирект к заявкам.
func (s *OutcomeService) Award(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int) (*AwardPage, error) {

	brief, err := s.loadOutcomeBrief(ctx, user, frameworkSlug, lotSlug, briefID,
		[]models.BriefStatus{models.ClosedBrief})
	if err != nil {
		return nil, err
	}
	responses, err := s.Responses.FindBriefResponses(ctx, briefID, "submitted,pending-awarded")
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch brief responses")
	}
	sort.SliceStable(responses, func(i, j int) bool {
		return strings.ToLower(responses[i].SupplierName) < strings.ToLower(responses[j].SupplierName)
	})

	selected := 0
	for _, response := range responses {
		if response.AwardDetails.Pending {
			selected = response.ID
			break
		}
	}
	return &AwardPage{Brief: brief, BriefResponses: responses, Selected: selected}, nil
}

// AwardSelect помечает выбранную заявку ожидающей присуждения.
func (s *OutcomeService) AwardSelect(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID, briefResponseID int) (*AwardPage, error) {

	page, err := s.Award(ctx, user, frameworkSlug, lotSlug, briefID)
	if err != nil {
		return nil, err
	}
	valid := false
	for _, response := range page.BriefResponses {
		if response.ID == briefResponseID {
			valid = true
			break
		}
	}
	if !valid {
		page.Errors = map[string]string{"brief_response": "You need to answer this question."}
		return page, nil
	}
	if err := s.Responses.UpdateBriefAwardBriefResponse(ctx, briefID, briefResponseID, user.EmailAddress); err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError,
			"unexpected API error when awarding brief response")
	}
	return nil, nil
}

// AwardDetails готовит форму контракта для заявки в статусе pending-awarded.
func (s *OutcomeService) AwardDetails(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID, briefResponseID int) (*AwardDetailsPage, error) {

	brief, err := s.loadOutcomeBrief(ctx, user, frameworkSlug, lotSlug, briefID, nil)
	if err != nil {
		return nil, err
	}
	response, err := s.Responses.GetBriefResponse(ctx, briefResponseID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch brief response")
	}
	if response.Status != models.PendingAwardedBriefResponse || response.BriefID != brief.ID {
		return nil, models.NewNotFoundError("brief response not found")
	}

	manifest, err := s.Content.GetManifest(frameworkSlug, awardBriefManifest)
	if err != nil {
		return nil, models.NewNotFoundError("no award content for this framework")
	}
	section := manifest.GetSection(manifest.GetNextEditableSectionSlug())
	if section == nil {
		return nil, models.NewNotFoundError("no award section")
	}
	return &AwardDetailsPage{
		Brief:         brief,
		BriefResponse: response,
		Section:       section,
		Data:          map[string]interface{}{},
	}, nil
}

// SubmitAwardDetails сохраняет дату начала и стоимость контракта.
// Оба поля валидирует Data API; ошибки возвращаются в форму по полям.
func (s *OutcomeService) SubmitAwardDetails(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID, briefResponseID int, form url.Values) (string, *AwardDetailsPage, error) {

	page, err := s.AwardDetails(ctx, user, frameworkSlug, lotSlug, briefID, briefResponseID)
	if err != nil {
		return "", nil, err
	}

	data := page.Section.GetData(form)
	err = s.Responses.UpdateBriefAwardDetails(ctx, briefID, briefResponseID, data, user.EmailAddress)
	if err != nil {
		if httpErr, ok := repository.AsHTTPError(err); ok && httpErr.IsValidationError() {
			page.Data = page.Section.UnformatData(data)
			page.Errors = page.Section.ErrorMessages(httpErr.Errors)
			return "", page, nil
		}
		return "", nil, models.NewErrorResponse(http.StatusInternalServerError,
			"unexpected API error when awarding brief")
	}
	return fmt.Sprintf("You’ve updated ‘%s’", page.Brief.DisplayName()), nil, nil
}

// Cancel готовит страницу причины отмены; текст зависит от того,
// пришёл ли пользователь из сценария присуждения.
func (s *OutcomeService) Cancel(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int, awardFlow bool) (*CancelPage, error) {

	brief, err := s.loadOutcomeBrief(ctx, user, frameworkSlug, lotSlug, briefID,
		[]models.BriefStatus{models.ClosedBrief})
	if err != nil {
		return nil, err
	}
	labelText := fmt.Sprintf("Why do you need to cancel %s?", brief.DisplayName())
	if awardFlow {
		labelText = fmt.Sprintf("Why didn’t you award a contract for %s?", brief.DisplayName())
	}
	return &CancelPage{Brief: brief, AwardFlow: awardFlow, LabelText: labelText}, nil
}

// SubmitCancel выполняет ровно одну мутацию по коду причины:
// cancel -> отмена, unsuccessful -> пометка безрезультатным.
func (s *OutcomeService) SubmitCancel(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int, awardFlow bool, reason string) (string, *CancelPage, error) {

	page, err := s.Cancel(ctx, user, frameworkSlug, lotSlug, briefID, awardFlow)
	if err != nil {
		return "", nil, err
	}

	switch reason {
	case CancelReasonCancel:
		err = s.Briefs.CancelBrief(ctx, briefID, user.EmailAddress)
	case CancelReasonUnsuccessful:
		err = s.Briefs.UpdateBriefAsUnsuccessful(ctx, briefID, user.EmailAddress)
	case "":
		page.Errors = map[string]string{"cancel_reason": "You need to answer this question."}
		return "", page, nil
	default:
		return "", nil, models.NewErrorResponse(http.StatusBadRequest,
			fmt.Sprintf("unrecognized cancellation reason %q", reason))
	}
	if err != nil {
		return "", nil, models.NewErrorResponse(http.StatusInternalServerError,
			"unexpected API error when cancelling brief")
	}
	return fmt.Sprintf("You’ve updated ‘%s’", page.Brief.DisplayName()), nil, nil
}
