package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senyabanana/briefs-frontend/internal/models"
)

func lotManifest() *Manifest {
	return &Manifest{
		Name: "edit_brief",
		Sections: []*Section{
			{
				Slug:     "title",
				Editable: true,
				Questions: []*Question{
					{ID: "title", Kind: KindText},
				},
			},
			{
				Slug:     "specialist-role",
				Editable: true,
				Questions: []*Question{
					{ID: "specialistRole", Kind: KindRadios, Lots: []string{"digital-specialists"}},
				},
			},
			{
				Slug:     "description-of-work",
				Editable: true,
				Questions: []*Question{
					{ID: "description", Kind: KindTextarea},
					{ID: "requirementsLength", Kind: KindRadios, Lots: []string{"digital-outcomes", "digital-specialists"}},
				},
			},
		},
	}
}

func TestFilterDropsSectionsForOtherLots(t *testing.T) {
	manifest := lotManifest()

	filtered := manifest.Filter("digital-outcomes")

	require.Len(t, filtered.Sections, 2)
	assert.Equal(t, "title", filtered.Sections[0].Slug)
	assert.Equal(t, "description-of-work", filtered.Sections[1].Slug)
	assert.Nil(t, filtered.GetQuestion("specialistRole"))
	assert.NotNil(t, filtered.GetQuestion("requirementsLength"))
}

func TestFilterDoesNotMutateManifest(t *testing.T) {
	manifest := lotManifest()

	manifest.Filter("digital-outcomes")

	assert.Len(t, manifest.Sections, 3)
	assert.NotNil(t, manifest.GetQuestion("specialistRole"))
}

func TestFilterIsIdempotent(t *testing.T) {
	filtered := lotManifest().Filter("digital-specialists")

	again := filtered.Filter("digital-specialists")

	require.Len(t, again.Sections, len(filtered.Sections))
	for i := range again.Sections {
		assert.Equal(t, filtered.Sections[i].Slug, again.Sections[i].Slug)
		assert.Equal(t, filtered.Sections[i].QuestionIDs(), again.Sections[i].QuestionIDs())
	}
}

func TestFilterUnknownLotIsEmpty(t *testing.T) {
	manifest := &Manifest{Sections: []*Section{{
		Slug:      "specialist-role",
		Questions: []*Question{{ID: "specialistRole", Lots: []string{"digital-specialists"}}},
	}}}

	assert.True(t, manifest.Filter("user-research-participants").IsEmpty())
	assert.False(t, manifest.Filter("digital-specialists").IsEmpty())
}

func TestGetSection(t *testing.T) {
	manifest := lotManifest()

	assert.Equal(t, "description-of-work", manifest.GetSection("description-of-work").Slug)
	assert.Nil(t, manifest.GetSection("nope"))
}

func TestGetNextEditableSectionSlug(t *testing.T) {
	manifest := &Manifest{Sections: []*Section{
		{Slug: "read-only"},
		{Slug: "first-editable", Editable: true},
		{Slug: "second-editable", Editable: true},
	}}

	assert.Equal(t, "first-editable", manifest.GetNextEditableSectionSlug())
	assert.Equal(t, "", (&Manifest{}).GetNextEditableSectionSlug())
}

func TestSummaryDoesNotMutateManifest(t *testing.T) {
	manifest := lotManifest()
	brief := &models.Brief{Answers: map[string]interface{}{"title": "Support engineer"}}

	first := manifest.Summary(brief)
	brief.Answers["description"] = "updated"
	second := manifest.Summary(brief)

	question, ok := first.GetQuestion("description")
	require.True(t, ok)
	assert.Nil(t, question.Value)

	question, ok = second.GetQuestion("description")
	require.True(t, ok)
	assert.Equal(t, "updated", question.Value)
}
