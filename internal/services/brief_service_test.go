package services

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senyabanana/briefs-frontend/internal/models"
)

func newBriefService(briefs *fakeBriefs, responses *fakeResponses) *BriefService {
	return NewBriefService(&fakeFrameworks{framework: testFramework()}, briefs, responses, testContent())
}

func TestCreateBriefLotDoesNotAllowBriefs(t *testing.T) {
	briefs := &fakeBriefs{}
	service := newBriefService(briefs, &fakeResponses{})

	form := url.Values{"title": {"My requirements"}}
	_, _, err := service.CreateBrief(context.Background(), testUser(), testFrameworkSlug, "user-research-studios", form)

	errResp, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, errResp.StatusCode)
	assert.Zero(t, briefs.createCalls)
}

func TestCreateBriefUnknownLot(t *testing.T) {
	briefs := &fakeBriefs{}
	service := newBriefService(briefs, &fakeResponses{})

	_, _, err := service.CreateBrief(context.Background(), testUser(), testFrameworkSlug, "no-such-lot", url.Values{})

	errResp, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, errResp.StatusCode)
	assert.Zero(t, briefs.createCalls)
}

func TestCreateBriefSuccess(t *testing.T) {
	briefs := &fakeBriefs{}
	service := newBriefService(briefs, &fakeResponses{})

	brief, form, err := service.CreateBrief(context.Background(), testUser(), testFrameworkSlug, testLotSlug,
		url.Values{"title": {"My requirements"}})

	require.NoError(t, err)
	assert.Nil(t, form)
	assert.Equal(t, 100, brief.ID)
	assert.Equal(t, 1, briefs.createCalls)
	assert.Equal(t, "My requirements", briefs.lastData["title"])
}

func TestPublishRejectedWhileRequiredUnanswered(t *testing.T) {
	brief := testBrief(models.DraftBrief, map[string]interface{}{"title": "Only a title"})
	briefs := &fakeBriefs{brief: brief}
	service := newBriefService(briefs, &fakeResponses{})

	_, err := service.Publish(context.Background(), testUser(), testFrameworkSlug, testLotSlug, brief.ID)

	errResp, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, errResp.StatusCode)
	assert.Zero(t, briefs.publishCalls)
}

func TestPublishSucceedsWhenComplete(t *testing.T) {
	brief := answeredBrief(models.DraftBrief)
	briefs := &fakeBriefs{brief: brief}
	service := newBriefService(briefs, &fakeResponses{})

	published, err := service.Publish(context.Background(), testUser(), testFrameworkSlug, testLotSlug, brief.ID)

	require.NoError(t, err)
	assert.Equal(t, 1, briefs.publishCalls)
	assert.Equal(t, "Test Buyer", briefs.lastPublishedBy)
	assert.Equal(t, brief.ID, published.ID)
}

func TestPublishPageSubtractsRequirementsLength(t *testing.T) {
	// Не отвечены два обязательных вопроса: requirementsLength и description.
	// requirementsLength показывается на самой странице публикации, поэтому
	// в счётчик не входит.
	brief := testBrief(models.DraftBrief, map[string]interface{}{
		"title":        "Cloud hosting support",
		"organisation": "Ministry of Testing",
	})
	briefs := &fakeBriefs{brief: brief}
	service := newBriefService(briefs, &fakeResponses{})

	page, err := service.PublishPage(context.Background(), testUser(), testFrameworkSlug, testLotSlug, brief.ID)

	require.NoError(t, err)
	assert.Equal(t, 1, page.UnansweredRequired)
	assert.Equal(t, "buyer@example.gov.uk", page.EmailAddress)
}

func TestDeleteOnlyDraft(t *testing.T) {
	brief := answeredBrief(models.LiveBrief)
	briefs := &fakeBriefs{brief: brief}
	service := newBriefService(briefs, &fakeResponses{})

	_, err := service.Delete(context.Background(), testUser(), testFrameworkSlug, testLotSlug, brief.ID)

	errResp, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, errResp.StatusCode)
	assert.Zero(t, briefs.deleteCalls)
}

func TestDeleteDraft(t *testing.T) {
	brief := answeredBrief(models.DraftBrief)
	briefs := &fakeBriefs{brief: brief}
	service := newBriefService(briefs, &fakeResponses{})

	message, err := service.Delete(context.Background(), testUser(), testFrameworkSlug, testLotSlug, brief.ID)

	require.NoError(t, err)
	assert.Equal(t, 1, briefs.deleteCalls)
	assert.Contains(t, message, "Cloud hosting support")
	assert.Contains(t, message, "deleted")
}

func TestWithdrawOnlyLive(t *testing.T) {
	for _, status := range []models.BriefStatus{models.DraftBrief, models.ClosedBrief, models.AwardedBrief} {
		brief := answeredBrief(status)
		briefs := &fakeBriefs{brief: brief}
		service := newBriefService(briefs, &fakeResponses{})

		_, err := service.Withdraw(context.Background(), testUser(), testFrameworkSlug, testLotSlug, brief.ID)

		errResp, ok := err.(*models.ErrorResponse)
		require.True(t, ok, "status %s", status)
		assert.Equal(t, http.StatusNotFound, errResp.StatusCode)
		assert.Zero(t, briefs.withdrawCalls, "status %s", status)
	}
}

func TestWithdrawLive(t *testing.T) {
	brief := answeredBrief(models.LiveBrief)
	briefs := &fakeBriefs{brief: brief}
	service := newBriefService(briefs, &fakeResponses{})

	message, err := service.Withdraw(context.Background(), testUser(), testFrameworkSlug, testLotSlug, brief.ID)

	require.NoError(t, err)
	assert.Equal(t, 1, briefs.withdrawCalls)
	assert.Contains(t, message, "withdrawn")
}

func TestBriefNotOwnedByUserIs404(t *testing.T) {
	brief := answeredBrief(models.DraftBrief)
	brief.Users = []models.User{{ID: 999}}
	briefs := &fakeBriefs{brief: brief}
	service := newBriefService(briefs, &fakeResponses{})

	_, err := service.BriefOverview(context.Background(), testUser(), testFrameworkSlug, testLotSlug, brief.ID, false, false)

	errResp, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, errResp.StatusCode)
}

func TestWithdrawnBriefHiddenFromOverview(t *testing.T) {
	brief := answeredBrief(models.WithdrawnBrief)
	briefs := &fakeBriefs{brief: brief}
	service := newBriefService(briefs, &fakeResponses{})

	_, err := service.BriefOverview(context.Background(), testUser(), testFrameworkSlug, testLotSlug, brief.ID, false, false)

	errResp, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, errResp.StatusCode)
}

func TestCopyAllowsWithdrawnBrief(t *testing.T) {
	brief := answeredBrief(models.WithdrawnBrief)
	briefs := &fakeBriefs{brief: brief}
	service := newBriefService(briefs, &fakeResponses{})

	newBrief, sectionSlug, questionID, err := service.Copy(context.Background(), testUser(),
		testFrameworkSlug, testLotSlug, brief.ID)

	require.NoError(t, err)
	assert.Equal(t, 1, briefs.copyCalls)
	assert.Equal(t, brief.ID+1, newBrief.ID)
	assert.Equal(t, "title", sectionSlug)
	assert.Equal(t, "title", questionID)
}

func TestBriefOverviewCompletedSections(t *testing.T) {
	brief := testBrief(models.DraftBrief, map[string]interface{}{
		"title":        "Cloud hosting support",
		"organisation": "Ministry of Testing",
		"description":  "Keep the lights on",
	})
	briefs := &fakeBriefs{brief: brief}
	service := newBriefService(briefs, &fakeResponses{})

	page, err := service.BriefOverview(context.Background(), testUser(), testFrameworkSlug, testLotSlug, brief.ID, false, false)

	require.NoError(t, err)
	assert.True(t, page.CompletedSections["title"])
	assert.True(t, page.CompletedSections["description-of-work"])
	assert.False(t, page.CompletedSections["how-long-your-requirements-will-be-open-for"])
}

func TestGetPublishingDates(t *testing.T) {
	from := time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)

	short := GetPublishingDates(answeredBrief(models.DraftBrief), from)
	assert.Equal(t, time.Date(2026, 3, 4, 23, 59, 59, 0, time.UTC), short.QuestionsCloseAt)
	assert.Equal(t, time.Date(2026, 3, 9, 23, 59, 59, 0, time.UTC), short.ClosingAt)

	long := GetPublishingDates(testBrief(models.DraftBrief, map[string]interface{}{
		"requirementsLength": "2 weeks",
	}), from)
	assert.Equal(t, time.Date(2026, 3, 9, 23, 59, 59, 0, time.UTC), long.QuestionsCloseAt)
	assert.Equal(t, time.Date(2026, 3, 16, 23, 59, 59, 0, time.UTC), long.ClosingAt)
}
