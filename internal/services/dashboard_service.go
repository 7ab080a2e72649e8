package services

import (
	"context"
	"net/http"
	"sort"

	"github.com/senyabanana/briefs-frontend/internal/content"
	"github.com/senyabanana/briefs-frontend/internal/models"
	"github.com/senyabanana/briefs-frontend/internal/repository"
)

// DashboardService собирает списки и счётчики для дашбордов покупателя.
type DashboardService struct {
	Briefs   repository.BriefRepository
	Projects repository.ProjectRepository
	Content  ContentStore
}

// NewDashboardService создаёт новый экземпляр DashboardService.
func NewDashboardService(briefs repository.BriefRepository, projects repository.ProjectRepository,
	loader ContentStore) *DashboardService {
	return &DashboardService{Briefs: briefs, Projects: projects, Content: loader}
}

// DashboardPage - счётчики стартового дашборда.
type DashboardPage struct {
	BriefsTotal              int
	ProjectsAwaitingOutcomes int
	HasProjects              bool
}

// BriefListItem - бриф на дашборде со счётчиками незаполненных вопросов.
type BriefListItem struct {
	Brief              models.Brief
	UnansweredRequired int
	UnansweredOptional int
}

// RequirementsPage - списки брифов по стадиям жизненного цикла.
type RequirementsPage struct {
	DraftBriefs  []BriefListItem
	LiveBriefs   []models.Brief
	ClosedBriefs []models.Brief
}

// Dashboard возвращает счётчики брифов и проектов прямого присуждения.
func (s *DashboardService) Dashboard(ctx context.Context, user *models.User) (*DashboardPage, error) {
	_, briefsMeta, err := s.Briefs.FindBriefs(ctx, user.ID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch briefs")
	}
	_, awaitingMeta, err := s.Projects.FindDirectAwardProjects(ctx, user.ID, true, true)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch projects")
	}

	hasProjects := awaitingMeta.Total > 0
	if !hasProjects {
		// Лишний вызов не нужен, если проекты уже нашлись среди ожидающих.
		_, allMeta, err := s.Projects.FindDirectAwardProjects(ctx, user.ID, false, false)
		if err != nil {
			return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch projects")
		}
		hasProjects = allMeta.Total > 0
	}

	return &DashboardPage{
		BriefsTotal:              briefsMeta.Total,
		ProjectsAwaitingOutcomes: awaitingMeta.Total,
		HasProjects:              hasProjects,
	}, nil
}

// Requirements возвращает брифы пользователя тремя списками:
// черновики по дате создания, опубликованные по дате публикации,
// завершённые по дате закрытия приёма заявок; все - новые сверху.
func (s *DashboardService) Requirements(ctx context.Context, user *models.User) (*RequirementsPage, error) {
	briefs, _, err := s.Briefs.FindBriefs(ctx, user.ID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch briefs")
	}

	page := &RequirementsPage{}
	for _, brief := range briefs {
		switch {
		case brief.Status == models.DraftBrief:
			item := BriefListItem{Brief: brief}
			item.UnansweredRequired, item.UnansweredOptional = s.countUnanswered(&brief)
			page.DraftBriefs = append(page.DraftBriefs, item)
		case brief.Status == models.LiveBrief:
			page.LiveBriefs = append(page.LiveBriefs, brief)
		case brief.HasStatus(models.ClosedBriefStatuses...):
			page.ClosedBriefs = append(page.ClosedBriefs, brief)
		}
	}

	sort.SliceStable(page.DraftBriefs, func(i, j int) bool {
		return page.DraftBriefs[i].Brief.CreatedAt.After(page.DraftBriefs[j].Brief.CreatedAt)
	})
	sort.SliceStable(page.LiveBriefs, func(i, j int) bool {
		return page.LiveBriefs[i].PublishedAt.After(page.LiveBriefs[j].PublishedAt)
	})
	sort.SliceStable(page.ClosedBriefs, func(i, j int) bool {
		return page.ClosedBriefs[i].ApplicationsClosedAt.After(page.ClosedBriefs[j].ApplicationsClosedAt)
	})
	return page, nil
}

func (s *DashboardService) countUnanswered(brief *models.Brief) (int, int) {
	manifest, err := s.Content.GetManifest(brief.FrameworkSlug, editBriefManifest)
	if err != nil {
		return 0, 0
	}
	sections := manifest.Filter(brief.LotSlug).Summary(brief)
	return content.CountUnansweredQuestions(sections)
}
