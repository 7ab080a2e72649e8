package services

import (
	"context"
	"net/http"
	"sort"

	"github.com/senyabanana/briefs-frontend/internal/models"
	"github.com/senyabanana/briefs-frontend/internal/repository"
	"github.com/senyabanana/briefs-frontend/internal/utils"
)

// ResponseService отвечает за просмотр заявок поставщиков на завершённые брифы.
type ResponseService struct {
	Frameworks repository.FrameworkRepository
	Briefs     repository.BriefRepository
	Responses  repository.BriefResponseRepository
	Content    ContentStore
}

// NewResponseService создаёт новый экземпляр ResponseService.
func NewResponseService(frameworks repository.FrameworkRepository, briefs repository.BriefRepository,
	responses repository.BriefResponseRepository, loader ContentStore) *ResponseService {
	return &ResponseService{Frameworks: frameworks, Briefs: briefs, Responses: responses, Content: loader}
}

// ResponsesPage - сводка заявок на бриф: прошедшие отбор и отсеянные.
type ResponsesPage struct {
	Brief             *models.Brief
	EligibleCount     int
	FailedCount       int
	EligibleResponses []models.BriefResponse
	// LegacyFlow: первое поколение фреймворков принимало заявки
	// с невыполненными обязательными требованиями, и отбор шёл на этой странице.
	LegacyFlow bool
	FileType   string
}

var closedBriefGuard = utils.BriefGuard{AllowedStatuses: models.ClosedPublishedBriefStatuses}

// ListResponses возвращает сводку заявок на завершённый бриф.
func (s *ResponseService) ListResponses(ctx context.Context, user *models.User,
	frameworkSlug, lotSlug string, briefID int) (*ResponsesPage, error) {

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
	if !utils.IsBriefCorrect(brief, frameworkSlug, lotSlug, user.ID, closedBriefGuard) {
		return nil, models.NewNotFoundError("brief not found")
	}

	cfg, cfgErr := s.Content.FrameworkConfig(frameworkSlug)
	if cfgErr != nil {
		return nil, models.NewNotFoundError("no content for this framework")
	}

	responses, err := s.Responses.FindBriefResponses(ctx, briefID, "")
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch responses")
	}

	page := &ResponsesPage{Brief: brief, LegacyFlow: cfg.LegacyResponseFlow, FileType: "ods"}
	if cfg.LegacyResponseFlow {
		page.FileType = "csv"
	}
	for _, response := range responses {
		if response.MeetsAllEssentialRequirements() {
			page.EligibleResponses = append(page.EligibleResponses, response)
		} else {
			page.FailedCount++
		}
	}
	// Сначала заявки с наибольшим числом выполненных необязательных требований.
	sort.SliceStable(page.EligibleResponses, func(i, j int) bool {
		return page.EligibleResponses[i].NiceToHaveCount() > page.EligibleResponses[j].NiceToHaveCount()
	})
	page.EligibleCount = len(page.EligibleResponses)
	return page, nil
}
