package session

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/senyabanana/briefs-frontend/internal/models"
)

const sessionName = "dm_session"

type contextKey int

const userContextKey contextKey = iota

// Flash - одноразовое сообщение, показываемое на следующей странице.
type Flash struct {
	Message  string
	Category string
}

// Manager оборачивает cookie-сессии: текущий пользователь и flash-сообщения.
// Аутентификацию выполняет внешний сервис входа; здесь сессия только читается.
type Manager struct {
	store    *sessions.CookieStore
	loginURL string
}

// NewManager создаёт новый экземпляр Manager.
func NewManager(secret, loginURL string) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store, loginURL: loginURL}
}

// CurrentUser читает пользователя из cookie-сессии.
func (m *Manager) CurrentUser(r *http.Request) (*models.User, bool) {
	s, err := m.store.Get(r, sessionName)
	if err != nil {
		return nil, false
	}
	id, ok := s.Values["user_id"].(int)
	if !ok || id == 0 {
		return nil, false
	}
	name, _ := s.Values["name"].(string)
	email, _ := s.Values["email_address"].(string)
	role, _ := s.Values["role"].(string)
	return &models.User{ID: id, Name: name, EmailAddress: email, Role: role}, true
}

// SignIn сохраняет пользователя в сессию; используется сервисом входа и тестами.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, user models.User) error {
	s, _ := m.store.Get(r, sessionName)
	s.Values["user_id"] = user.ID
	s.Values["name"] = user.Name
	s.Values["email_address"] = user.EmailAddress
	s.Values["role"] = user.Role
	return s.Save(r, w)
}

// AddFlash откладывает сообщение до следующего показа страницы.
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, message, category string) {
	s, _ := m.store.Get(r, sessionName)
	s.AddFlash(category + "|" + message)
	_ = s.Save(r, w)
}

// Flashes забирает и очищает отложенные сообщения.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	s, err := m.store.Get(r, sessionName)
	if err != nil {
		return nil
	}
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = s.Save(r, w)

	flashes := make([]Flash, 0, len(raw))
	for _, item := range raw {
		encoded, ok := item.(string)
		if !ok {
			continue
		}
		category, message := "message", encoded
		for i := 0; i < len(encoded); i++ {
			if encoded[i] == '|' {
				category, message = encoded[:i], encoded[i+1:]
				break
			}
		}
		flashes = append(flashes, Flash{Message: message, Category: category})
	}
	return flashes
}

// RequireBuyer пропускает только покупателей; остальных отправляет на вход.
// Сбой сессии считается восстановимым: редирект, а не ошибка.
func (m *Manager) RequireBuyer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := m.CurrentUser(r)
		if !ok || user.Role != "buyer" {
			m.AddFlash(w, r, "You must log in with a buyer account to see this page.", "error")
			http.Redirect(w, r, m.loginURL, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// WithUser кладёт пользователя в контекст запроса.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext достаёт пользователя, положенного RequireBuyer.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}
