package content

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// questionSchema - структурная проверка файла вопроса до типизированного
// разбора; даёт понятные сообщения об ошибках контента при старте.
const questionSchema = `{
	"type": "object",
	"required": ["id", "kind", "label"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"kind": {
			"type": "string",
			"enum": ["text", "textarea", "number", "list", "radios",
				"checkboxes", "boolean", "boolean_list", "date", "pricing"]
		},
		"label": {"type": "string", "minLength": 1},
		"hint": {"type": "string"},
		"optional": {"type": "boolean"},
		"lots": {"type": "array", "items": {"type": "string"}},
		"validations": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "message"],
				"properties": {
					"name": {"type": "string"},
					"message": {"type": "string"}
				}
			}
		},
		"options": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["label"],
				"properties": {
					"label": {"type": "string"},
					"value": {"type": "string"}
				}
			}
		},
		"fields": {"type": "array", "items": {"type": "string"}},
		"max_items": {"type": "integer", "minimum": 1}
	},
	"additionalProperties": false
}`

var compiledQuestionSchema = gojsonschema.NewStringLoader(questionSchema)

func validateQuestionFile(raw []byte) error {
	var decoded map[string]interface{}
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return err
	}

	result, err := gojsonschema.Validate(compiledQuestionSchema, gojsonschema.NewGoLoader(decoded))
	if err != nil {
		return err
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, problem := range result.Errors() {
			problems = append(problems, problem.String())
		}
		return fmt.Errorf("invalid question definition: %s", strings.Join(problems, "; "))
	}
	return nil
}
