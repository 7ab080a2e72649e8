package services

import (
	"context"
	"fmt"

	"github.com/senyabanana/briefs-frontend/internal/content"
	"github.com/senyabanana/briefs-frontend/internal/models"
	"github.com/senyabanana/briefs-frontend/internal/repository"
)

type fakeFrameworks struct {
	framework *models.Framework
}

func (f *fakeFrameworks) GetFramework(ctx context.Context, frameworkSlug string) (*models.Framework, error) {
	if f.framework == nil || f.framework.Slug != frameworkSlug {
		return nil, &repository.HTTPError{StatusCode: 404, Message: "not found"}
	}
	return f.framework, nil
}

// fakeBriefs считает вызовы каждой мутации, чтобы тесты могли проверить,
// что отклонённые переходы не ходят в Data API вовсе.
type fakeBriefs struct {
	brief *models.Brief

	createCalls       int
	updateCalls       int
	publishCalls      int
	deleteCalls       int
	withdrawCalls     int
	cancelCalls       int
	unsuccessfulCalls int
	copyCalls         int
	questionCalls     int

	createErr error
	updateErr error

	lastPublishedBy string
	lastData        map[string]interface{}
}

func (f *fakeBriefs) GetBrief(ctx context.Context, briefID int) (*models.Brief, error) {
	if f.brief == nil || f.brief.ID != briefID {
		return nil, &repository.HTTPError{StatusCode: 404, Message: "not found"}
	}
	copied := *f.brief
	return &copied, nil
}

func (f *fakeBriefs) CreateBrief(ctx context.Context, frameworkSlug, lotSlug string, userID int,
	data map[string]interface{}, updatedBy string, pageQuestions []string) (*models.Brief, error) {
	f.createCalls++
	f.lastData = data
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Brief{ID: 100, FrameworkSlug: frameworkSlug, LotSlug: lotSlug, Status: models.DraftBrief}, nil
}

func (f *fakeBriefs) UpdateBrief(ctx context.Context, briefID int, data map[string]interface{},
	updatedBy string, pageQuestions []string) error {
	f.updateCalls++
	f.lastData = data
	return f.updateErr
}

func (f *fakeBriefs) PublishBrief(ctx context.Context, briefID int, updatedBy string) error {
	f.publishCalls++
	f.lastPublishedBy = updatedBy
	return nil
}

func (f *fakeBriefs) DeleteBrief(ctx context.Context, briefID int, updatedBy string) error {
	f.deleteCalls++
	return nil
}

func (f *fakeBriefs) WithdrawBrief(ctx context.Context, briefID int, updatedBy string) error {
	f.withdrawCalls++
	return nil
}

func (f *fakeBriefs) CancelBrief(ctx context.Context, briefID int, updatedBy string) error {
	f.cancelCalls++
	return nil
}

func (f *fakeBriefs) UpdateBriefAsUnsuccessful(ctx context.Context, briefID int, updatedBy string) error {
	f.unsuccessfulCalls++
	return nil
}

func (f *fakeBriefs) CopyBrief(ctx context.Context, briefID int, updatedBy string) (*models.Brief, error) {
	f.copyCalls++
	copied := *f.brief
	copied.ID = f.brief.ID + 1
	copied.Status = models.DraftBrief
	return &copied, nil
}

func (f *fakeBriefs) FindBriefs(ctx context.Context, userID int) ([]models.Brief, *models.ListMeta, error) {
	if f.brief == nil {
		return nil, &models.ListMeta{}, nil
	}
	return []models.Brief{*f.brief}, &models.ListMeta{Total: 1}, nil
}

func (f *fakeBriefs) AddBriefClarificationQuestion(ctx context.Context, briefID int,
	question, answer, updatedBy string) error {
	f.questionCalls++
	return nil
}

type fakeResponses struct {
	responses []models.BriefResponse

	awardCalls   int
	detailsCalls int
	detailsErr   error
}

func (f *fakeResponses) FindBriefResponses(ctx context.Context, briefID int, statuses string) ([]models.BriefResponse, error) {
	return f.responses, nil
}

func (f *fakeResponses) GetBriefResponse(ctx context.Context, briefResponseID int) (*models.BriefResponse, error) {
	for i := range f.responses {
		if f.responses[i].ID == briefResponseID {
			return &f.responses[i], nil
		}
	}
	return nil, &repository.HTTPError{StatusCode: 404, Message: "not found"}
}

func (f *fakeResponses) UpdateBriefAwardBriefResponse(ctx context.Context, briefID, briefResponseID int, updatedBy string) error {
	f.awardCalls++
	return nil
}

func (f *fakeResponses) UpdateBriefAwardDetails(ctx context.Context, briefID, briefResponseID int,
	details map[string]interface{}, updatedBy string) error {
	f.detailsCalls++
	return f.detailsErr
}

type fakeProjects struct {
	total    int
	awaiting int
}

func (f *fakeProjects) FindDirectAwardProjects(ctx context.Context, userID int,
	lockedOnly, withoutOutcome bool) ([]models.DirectAwardProject, *models.ListMeta, error) {
	if lockedOnly && withoutOutcome {
		return nil, &models.ListMeta{Total: f.awaiting}, nil
	}
	return nil, &models.ListMeta{Total: f.total}, nil
}

type fakeContent struct {
	manifests map[string]*content.Manifest
	config    content.FrameworkConfig
	messages  map[string]string
}

func (f *fakeContent) GetManifest(frameworkSlug, name string) (*content.Manifest, error) {
	manifest, ok := f.manifests[name]
	if !ok {
		return nil, fmt.Errorf("no manifest %q", name)
	}
	return manifest, nil
}

func (f *fakeContent) GetMessage(frameworkSlug, group, key string) (string, error) {
	return f.messages[group+"/"+key], nil
}

func (f *fakeContent) FrameworkConfig(frameworkSlug string) (content.FrameworkConfig, error) {
	return f.config, nil
}

const (
	testFrameworkSlug = "digital-outcomes-and-specialists-4"
	testLotSlug       = "digital-outcomes"
)

func testFramework() *models.Framework {
	return &models.Framework{
		Slug:   testFrameworkSlug,
		Name:   "Digital Outcomes and Specialists 4",
		Family: "digital-outcomes-and-specialists",
		Status: models.LiveFramework,
		Lots: []models.Lot{
			{Slug: testLotSlug, Name: "Digital outcomes", AllowsBrief: true},
			{Slug: "user-research-studios", Name: "User research studios", AllowsBrief: false},
		},
	}
}

func testUser() *models.User {
	return &models.User{ID: 123, Name: "Test Buyer", EmailAddress: "buyer@example.gov.uk", Role: "buyer"}
}

func testBrief(status models.BriefStatus, answers map[string]interface{}) *models.Brief {
	return &models.Brief{
		ID:            7,
		FrameworkSlug: testFrameworkSlug,
		LotSlug:       testLotSlug,
		Status:        status,
		Users:         []models.User{*testUser()},
		Answers:       answers,
	}
}

func question(id string, kind content.QuestionKind, optional bool) *content.Question {
	return &content.Question{
		ID:       id,
		Kind:     kind,
		Label:    id,
		Optional: optional,
		Validations: []content.Validation{
			{Name: "answer_required", Message: "You need to answer this question."},
		},
	}
}

func testEditManifest() *content.Manifest {
	return &content.Manifest{
		Name:          editBriefManifest,
		FrameworkSlug: testFrameworkSlug,
		Sections: []*content.Section{
			{
				Slug:     "title",
				Name:     "Title",
				Editable: true,
				Questions: []*content.Question{
					question("title", content.KindText, false),
				},
			},
			{
				Slug:           "description-of-work",
				Name:           "About the work",
				Editable:       true,
				HasSummaryPage: true,
				Questions: []*content.Question{
					question("organisation", content.KindText, false),
					question("description", content.KindTextarea, false),
					question("budgetRange", content.KindText, true),
				},
			},
			{
				Slug:     "how-long-your-requirements-will-be-open-for",
				Name:     "How long your requirements will be open for",
				Editable: true,
				Questions: []*content.Question{
					question(requirementsLengthQuestion, content.KindRadios, false),
				},
			},
		},
	}
}

func testAwardManifest() *content.Manifest {
	return &content.Manifest{
		Name:          awardBriefManifest,
		FrameworkSlug: testFrameworkSlug,
		Sections: []*content.Section{
			{
				Slug:     "contract-details",
				Name:     "Tell us about your contract",
				Editable: true,
				Questions: []*content.Question{
					question("awardedContractStartDate", content.KindDate, false),
					question("awardedContractValue", content.KindText, false),
				},
			},
		},
	}
}

func testContent() *fakeContent {
	return &fakeContent{
		manifests: map[string]*content.Manifest{
			editBriefManifest:  testEditManifest(),
			awardBriefManifest: testAwardManifest(),
			clarificationQuestionManifest: {
				Name:          clarificationQuestionManifest,
				FrameworkSlug: testFrameworkSlug,
				Sections: []*content.Section{
					{
						Slug:     "clarification-question",
						Name:     "Answer a supplier question",
						Editable: true,
						Questions: []*content.Question{
							question("question", content.KindTextarea, false),
							question("answer", content.KindTextarea, false),
						},
					},
				},
			},
		},
		messages: map[string]string{},
	}
}

func answeredBrief(status models.BriefStatus) *models.Brief {
	return testBrief(status, map[string]interface{}{
		"title":              "Cloud hosting support",
		"organisation":       "Ministry of Testing",
		"description":        "Keep the lights on",
		"requirementsLength": "1 week",
	})
}
