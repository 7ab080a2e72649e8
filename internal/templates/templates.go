package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/senyabanana/briefs-frontend/internal/content"
	"github.com/senyabanana/briefs-frontend/internal/models"
	"github.com/senyabanana/briefs-frontend/internal/session"
)

//go:embed views/*.html
var viewFiles embed.FS

// Page - обёртка, в которой данные вида доставляются в шаблон.
type Page struct {
	Title   string
	Flashes []session.Flash
	User    *models.User
	Data    interface{}
}

// Renderer хранит разобранные шаблоны и отдаёт готовый HTML.
type Renderer struct {
	views  map[string]*template.Template
	logger *zap.Logger
}

var funcMap = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Monday 2 January 2006")
	},
	"formatDateShort": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2 January 2006")
	},
	"inc": func(i int) int { return i + 1 },
	"asString": func(v interface{}) string {
		if v == nil {
			return ""
		}
		return fmt.Sprintf("%v", v)
	},
	"asList": func(v interface{}) []interface{} {
		items, _ := v.([]interface{})
		return items
	},
	"hasValue": func(v interface{}, option string) bool {
		items, _ := v.([]interface{})
		for _, item := range items {
			if s, ok := item.(string); ok && s == option {
				return true
			}
		}
		return false
	},
	"field": func(q *content.Question, data map[string]interface{}, errors map[string]string) QuestionField {
		return QuestionField{Question: q, Data: data, Errors: errors}
	},
}

// QuestionField - контекст шаблона question_input: один вопрос формы
// вместе с введёнными данными и ошибками валидации.
type QuestionField struct {
	Question *content.Question
	Data     map[string]interface{}
	Errors   map[string]string
}

// NewRenderer разбирает все встроенные шаблоны; ошибка разбора фатальна при старте.
func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	names, err := viewFiles.ReadDir("views")
	if err != nil {
		return nil, err
	}
	views := make(map[string]*template.Template)
	for _, entry := range names {
		name := entry.Name()
		if name == "base.html" {
			continue
		}
		tmpl, err := template.New("base.html").Funcs(funcMap).
			ParseFS(viewFiles, "views/base.html", "views/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		views[name] = tmpl
	}
	return &Renderer{views: views, logger: logger}, nil
}

// Render пишет страницу с указанным статусом; ошибка рендера уже не исправима,
// поэтому только логируется.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) {
	tmpl, ok := r.views[name]
	if !ok {
		r.logger.Error("unknown template", zap.String("name", name))
		http.Error(w, "Sorry, we're experiencing technical difficulties", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", page); err != nil {
		r.logger.Error("failed to render template", zap.String("name", name), zap.Error(err))
		http.Error(w, "Sorry, we're experiencing technical difficulties", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// RenderError показывает страницу ошибки, соответствующую её коду.
func (r *Renderer) RenderError(w http.ResponseWriter, errResp *models.ErrorResponse, user *models.User) {
	page := Page{Title: "Sorry, we couldn't find that page", User: user, Data: errResp}
	switch {
	case errResp.StatusCode == http.StatusNotFound:
		page.Title = "Page not found"
	case errResp.StatusCode >= http.StatusInternalServerError:
		page.Title = "Sorry, we're experiencing technical difficulties"
	default:
		page.Title = "There was a problem with your request"
	}
	r.Render(w, errResp.StatusCode, "error.html", page)
}
