package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FrameworkConfig - поведение конкретного поколения фреймворка, описанное
// данными, а не ветками в коде.
type FrameworkConfig struct {
	Name   string `yaml:"name"`
	Family string `yaml:"family"`
	// LegacyResponseFlow: в первом поколении обязательные требования
	// оценивались в конце заявки, а не валидацией формы.
	LegacyResponseFlow bool `yaml:"legacyResponseFlow"`
}

type frameworkContent struct {
	config    FrameworkConfig
	questions map[string]*Question
	manifests map[string]*Manifest
	messages  map[string]map[string]string
}

// Loader загружает контент всех фреймворков при старте и дальше отдаёт
// его только на чтение. Некорректный файл контента - фатальная ошибка
// загрузки, на уровне запросов она не обрабатывается.
type Loader struct {
	frameworks map[string]*frameworkContent
}

type questionFile struct {
	ID          string           `yaml:"id"`
	Kind        string           `yaml:"kind"`
	Label       string           `yaml:"label"`
	Hint        string           `yaml:"hint"`
	Optional    bool             `yaml:"optional"`
	Lots        []string         `yaml:"lots"`
	Validations []Validation     `yaml:"validations"`
	Options     []QuestionOption `yaml:"options"`
	Fields      []string         `yaml:"fields"`
	MaxItems    int              `yaml:"max_items"`
}

type manifestFile struct {
	Sections []struct {
		Slug        string   `yaml:"slug"`
		Name        string   `yaml:"name"`
		Description string   `yaml:"description"`
		Editable    bool     `yaml:"editable"`
		SummaryPage bool     `yaml:"summary_page"`
		Step        int      `yaml:"step"`
		Questions   []string `yaml:"questions"`
	} `yaml:"sections"`
}

// NewLoader читает content/frameworks/<slug>/{framework.yml,questions,manifests,messages}.
func NewLoader(root string) (*Loader, error) {
	frameworksRoot := filepath.Join(root, "frameworks")
	entries, err := os.ReadDir(frameworksRoot)
	if err != nil {
		return nil, fmt.Errorf("cannot read content directory: %w", err)
	}

	loader := &Loader{frameworks: make(map[string]*frameworkContent)}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		slug := entry.Name()
		framework, err := loadFramework(filepath.Join(frameworksRoot, slug))
		if err != nil {
			return nil, fmt.Errorf("framework %s: %w", slug, err)
		}
		loader.frameworks[slug] = framework
	}
	if len(loader.frameworks) == 0 {
		return nil, fmt.Errorf("no framework content found in %s", frameworksRoot)
	}
	return loader, nil
}

func loadFramework(dir string) (*frameworkContent, error) {
	framework := &frameworkContent{
		questions: make(map[string]*Question),
		manifests: make(map[string]*Manifest),
		messages:  make(map[string]map[string]string),
	}

	configRaw, err := os.ReadFile(filepath.Join(dir, "framework.yml"))
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(configRaw, &framework.config); err != nil {
		return nil, fmt.Errorf("framework.yml: %w", err)
	}

	if err := loadQuestions(filepath.Join(dir, "questions"), framework); err != nil {
		return nil, err
	}
	if err := loadManifests(filepath.Join(dir, "manifests"), dir, framework); err != nil {
		return nil, err
	}
	if err := loadMessages(filepath.Join(dir, "messages"), framework); err != nil {
		return nil, err
	}
	return framework, nil
}

func loadQuestions(dir string, framework *frameworkContent) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yml") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		if err := validateQuestionFile(raw); err != nil {
			return fmt.Errorf("question %s: %w", entry.Name(), err)
		}

		var file questionFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return fmt.Errorf("question %s: %w", entry.Name(), err)
		}
		kind, err := ParseQuestionKind(file.Kind)
		if err != nil {
			return fmt.Errorf("question %s: %w", entry.Name(), err)
		}
		if expected := strings.TrimSuffix(entry.Name(), ".yml"); expected != file.ID {
			return fmt.Errorf("question %s: id %q does not match file name", entry.Name(), file.ID)
		}
		framework.questions[file.ID] = &Question{
			ID:          file.ID,
			Kind:        kind,
			Label:       file.Label,
			Hint:        file.Hint,
			Optional:    file.Optional,
			Lots:        file.Lots,
			Validations: file.Validations,
			Options:     file.Options,
			Fields:      file.Fields,
			MaxItems:    file.MaxItems,
		}
	}
	return nil
}

func loadManifests(dir, frameworkDir string, framework *frameworkContent) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yml") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		var file manifestFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return fmt.Errorf("manifest %s: %w", entry.Name(), err)
		}

		manifest := &Manifest{
			Name:          strings.TrimSuffix(entry.Name(), ".yml"),
			FrameworkSlug: filepath.Base(frameworkDir),
		}
		for _, sectionFile := range file.Sections {
			section := &Section{
				Slug:           sectionFile.Slug,
				Name:           sectionFile.Name,
				Description:    sectionFile.Description,
				Editable:       sectionFile.Editable,
				HasSummaryPage: sectionFile.SummaryPage,
				Step:           sectionFile.Step,
			}
			for _, questionID := range sectionFile.Questions {
				question, ok := framework.questions[questionID]
				if !ok {
					return fmt.Errorf("manifest %s: section %s references unknown question %q",
						entry.Name(), sectionFile.Slug, questionID)
				}
				section.Questions = append(section.Questions, question)
			}
			manifest.Sections = append(manifest.Sections, section)
		}
		framework.manifests[manifest.Name] = manifest
	}
	return nil
}

func loadMessages(dir string, framework *frameworkContent) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yml") {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		messages := make(map[string]string)
		if err := yaml.Unmarshal(raw, &messages); err != nil {
			return fmt.Errorf("messages %s: %w", entry.Name(), err)
		}
		framework.messages[strings.TrimSuffix(entry.Name(), ".yml")] = messages
	}
	return nil
}

// GetManifest возвращает манифест фреймворка по имени.
func (l *Loader) GetManifest(frameworkSlug, name string) (*Manifest, error) {
	framework, ok := l.frameworks[frameworkSlug]
	if !ok {
		return nil, fmt.Errorf("no content for framework %q", frameworkSlug)
	}
	manifest, ok := framework.manifests[name]
	if !ok {
		return nil, fmt.Errorf("framework %q has no manifest %q", frameworkSlug, name)
	}
	return manifest, nil
}

// GetMessage возвращает сообщение фреймворка из группы по ключу.
func (l *Loader) GetMessage(frameworkSlug, group, key string) (string, error) {
	framework, ok := l.frameworks[frameworkSlug]
	if !ok {
		return "", fmt.Errorf("no content for framework %q", frameworkSlug)
	}
	messages, ok := framework.messages[group]
	if !ok {
		return "", fmt.Errorf("framework %q has no message group %q", frameworkSlug, group)
	}
	return messages[key], nil
}

// FrameworkConfig возвращает конфигурацию поколения фреймворка.
func (l *Loader) FrameworkConfig(frameworkSlug string) (FrameworkConfig, error) {
	framework, ok := l.frameworks[frameworkSlug]
	if !ok {
		return FrameworkConfig{}, fmt.Errorf("no content for framework %q", frameworkSlug)
	}
	return framework.config, nil
}
