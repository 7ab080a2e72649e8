package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeContentTree раскладывает файлы контента по каталогу фреймворка.
func writeContentTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "frameworks", "digital-outcomes-and-specialists-4")
	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return root
}

const frameworkYML = `name: Digital Outcomes and Specialists 4
family: digital-outcomes-and-specialists
legacyResponseFlow: true
`

func validFiles() map[string]string {
	return map[string]string{
		"framework.yml": frameworkYML,
		"questions/title.yml": `id: title
kind: text
label: What do you want to call your requirements?
validations:
  - name: answer_required
    message: You need to answer this question.
`,
		"questions/requirementsLength.yml": `id: requirementsLength
kind: radios
label: How long do you want your requirements to be open for applications?
lots:
  - digital-outcomes
options:
  - label: 1 week
    value: 1 week
  - label: 2 weeks
    value: 2 weeks
`,
		"manifests/edit_brief.yml": `sections:
  - slug: title
    name: Title
    editable: true
    questions:
      - title
  - slug: how-long-your-requirements-will-be-open-for
    name: How long your requirements will be open for
    editable: true
    questions:
      - requirementsLength
`,
		"messages/urls.yml": `call_off_contract_url: https://www.gov.uk/guidance/call-off
`,
	}
}

func TestNewLoaderLoadsFramework(t *testing.T) {
	loader, err := NewLoader(writeContentTree(t, validFiles()))
	require.NoError(t, err)

	manifest, err := loader.GetManifest("digital-outcomes-and-specialists-4", "edit_brief")
	require.NoError(t, err)
	require.Len(t, manifest.Sections, 2)
	assert.Equal(t, "digital-outcomes-and-specialists-4", manifest.FrameworkSlug)

	question := manifest.GetQuestion("requirementsLength")
	require.NotNil(t, question)
	assert.Equal(t, KindRadios, question.Kind)
	assert.Equal(t, []string{"digital-outcomes"}, question.Lots)
	require.Len(t, question.Options, 2)
	assert.Equal(t, "1 week", question.Options[0].Value)

	config, err := loader.FrameworkConfig("digital-outcomes-and-specialists-4")
	require.NoError(t, err)
	assert.True(t, config.LegacyResponseFlow)
	assert.Equal(t, "digital-outcomes-and-specialists", config.Family)

	message, err := loader.GetMessage("digital-outcomes-and-specialists-4", "urls", "call_off_contract_url")
	require.NoError(t, err)
	assert.Equal(t, "https://www.gov.uk/guidance/call-off", message)
}

func TestNewLoaderRejectsUnknownQuestionKind(t *testing.T) {
	files := validFiles()
	files["questions/title.yml"] = `id: title
kind: dropdown
label: What do you want to call your requirements?
`

	_, err := NewLoader(writeContentTree(t, files))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "title.yml")
}

func TestNewLoaderRejectsUnexpectedQuestionKeys(t *testing.T) {
	files := validFiles()
	files["questions/title.yml"] = `id: title
kind: text
label: What do you want to call your requirements?
placeholder: not a supported key
`

	_, err := NewLoader(writeContentTree(t, files))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid question definition")
}

func TestNewLoaderRejectsIDFileNameMismatch(t *testing.T) {
	files := validFiles()
	files["questions/title.yml"] = `id: somethingElse
kind: text
label: What do you want to call your requirements?
`

	_, err := NewLoader(writeContentTree(t, files))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match file name")
}

func TestNewLoaderRejectsManifestWithUnknownQuestion(t *testing.T) {
	files := validFiles()
	files["manifests/edit_brief.yml"] = `sections:
  - slug: title
    name: Title
    editable: true
    questions:
      - missingQuestion
`

	_, err := NewLoader(writeContentTree(t, files))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown question")
}

func TestNewLoaderRequiresContent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "frameworks"), 0o755))

	_, err := NewLoader(root)

	assert.Error(t, err)
}

func TestGetManifestUnknownFramework(t *testing.T) {
	loader, err := NewLoader(writeContentTree(t, validFiles()))
	require.NoError(t, err)

	_, err = loader.GetManifest("g-cloud-14", "edit_brief")
	assert.Error(t, err)

	_, err = loader.GetManifest("digital-outcomes-and-specialists-4", "nope")
	assert.Error(t, err)
}
