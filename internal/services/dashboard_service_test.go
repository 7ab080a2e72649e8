package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senyabanana/briefs-frontend/internal/models"
)

type fakeBriefLists struct {
	fakeBriefs
	briefs []models.Brief
}

func (f *fakeBriefLists) FindBriefs(ctx context.Context, userID int) ([]models.Brief, *models.ListMeta, error) {
	return f.briefs, &models.ListMeta{Total: len(f.briefs)}, nil
}

func day(n int) time.Time {
	return time.Date(2026, 6, n, 12, 0, 0, 0, time.UTC)
}

func listedBrief(id int, status models.BriefStatus) models.Brief {
	brief := *testBrief(status, map[string]interface{}{"title": "Brief"})
	brief.ID = id
	return brief
}

func TestRequirementsGroupsAndSortsBriefs(t *testing.T) {
	oldDraft := listedBrief(1, models.DraftBrief)
	oldDraft.CreatedAt = day(1)
	newDraft := listedBrief(2, models.DraftBrief)
	newDraft.CreatedAt = day(5)

	oldLive := listedBrief(3, models.LiveBrief)
	oldLive.PublishedAt = day(2)
	newLive := listedBrief(4, models.LiveBrief)
	newLive.PublishedAt = day(9)

	closed := listedBrief(5, models.ClosedBrief)
	closed.ApplicationsClosedAt = day(3)
	awarded := listedBrief(6, models.AwardedBrief)
	awarded.ApplicationsClosedAt = day(8)
	withdrawn := listedBrief(7, models.WithdrawnBrief)
	withdrawn.ApplicationsClosedAt = day(6)

	briefs := &fakeBriefLists{briefs: []models.Brief{oldDraft, oldLive, closed, newDraft, newLive, awarded, withdrawn}}
	service := NewDashboardService(briefs, &fakeProjects{}, testContent())

	page, err := service.Requirements(context.Background(), testUser())

	require.NoError(t, err)
	require.Len(t, page.DraftBriefs, 2)
	assert.Equal(t, 2, page.DraftBriefs[0].Brief.ID)
	assert.Equal(t, 1, page.DraftBriefs[1].Brief.ID)

	require.Len(t, page.LiveBriefs, 2)
	assert.Equal(t, 4, page.LiveBriefs[0].ID)
	assert.Equal(t, 3, page.LiveBriefs[1].ID)

	// Отозванные брифы остаются в списке завершённых.
	require.Len(t, page.ClosedBriefs, 3)
	assert.Equal(t, 6, page.ClosedBriefs[0].ID)
	assert.Equal(t, 7, page.ClosedBriefs[1].ID)
	assert.Equal(t, 5, page.ClosedBriefs[2].ID)
}

func TestRequirementsAnnotatesDraftCounts(t *testing.T) {
	draft := listedBrief(1, models.DraftBrief)
	draft.Answers = map[string]interface{}{"title": "Brief", "organisation": "MoT"}

	briefs := &fakeBriefLists{briefs: []models.Brief{draft}}
	service := NewDashboardService(briefs, &fakeProjects{}, testContent())

	page, err := service.Requirements(context.Background(), testUser())

	require.NoError(t, err)
	require.Len(t, page.DraftBriefs, 1)
	// Не отвечены description и requirementsLength; budgetRange необязателен.
	assert.Equal(t, 2, page.DraftBriefs[0].UnansweredRequired)
	assert.Equal(t, 1, page.DraftBriefs[0].UnansweredOptional)
}

func TestDashboardCounters(t *testing.T) {
	briefs := &fakeBriefLists{briefs: []models.Brief{listedBrief(1, models.LiveBrief)}}
	service := NewDashboardService(briefs, &fakeProjects{total: 3, awaiting: 2}, testContent())

	page, err := service.Dashboard(context.Background(), testUser())

	require.NoError(t, err)
	assert.Equal(t, 1, page.BriefsTotal)
	assert.Equal(t, 2, page.ProjectsAwaitingOutcomes)
	assert.True(t, page.HasProjects)
}

func TestDashboardNoProjects(t *testing.T) {
	briefs := &fakeBriefLists{}
	service := NewDashboardService(briefs, &fakeProjects{}, testContent())

	page, err := service.Dashboard(context.Background(), testUser())

	require.NoError(t, err)
	assert.False(t, page.HasProjects)
	assert.Zero(t, page.ProjectsAwaitingOutcomes)
}
