package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/senyabanana/briefs-frontend/internal/models"
)

// FrameworkRepository - интерфейс чтения фреймворков.
type FrameworkRepository interface {
	GetFramework(ctx context.Context, frameworkSlug string) (*models.Framework, error)
}

// ProjectRepository - интерфейс чтения проектов прямого присуждения.
type ProjectRepository interface {
	FindDirectAwardProjects(ctx context.Context, userID int, lockedOnly, withoutOutcome bool) ([]models.DirectAwardProject, *models.ListMeta, error)
}

// AuditRepository - интерфейс записи событий аудита.
type AuditRepository interface {
	CreateAuditEvent(ctx context.Context, auditType string, data map[string]interface{}) error
}

// AccountRepository - интерфейс проверок при создании аккаунта покупателя.
type AccountRepository interface {
	IsEmailAddressWithValidBuyerDomain(ctx context.Context, emailAddress string) (bool, error)
}

type frameworkEnvelope struct {
	Frameworks models.Framework `json:"frameworks"`
}

type projectListEnvelope struct {
	Projects []models.DirectAwardProject `json:"projects"`
	Meta     models.ListMeta             `json:"meta"`
}

// GetFramework возвращает фреймворк вместе с лотами.
func (c *Client) GetFramework(ctx context.Context, frameworkSlug string) (*models.Framework, error) {
	var envelope frameworkEnvelope
	if err := c.do(ctx, http.MethodGet, "/frameworks/"+frameworkSlug, nil, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Frameworks, nil
}

// FindDirectAwardProjects возвращает проекты прямого присуждения пользователя.
func (c *Client) FindDirectAwardProjects(ctx context.Context, userID int, lockedOnly, withoutOutcome bool) ([]models.DirectAwardProject, *models.ListMeta, error) {
	query := url.Values{"user_id": []string{strconv.Itoa(userID)}}
	if lockedOnly {
		query.Set("locked", "true")
	}
	if withoutOutcome {
		query.Set("having_outcome", "false")
	}
	var envelope projectListEnvelope
	if err := c.do(ctx, http.MethodGet, "/direct-award/projects", query, nil, &envelope); err != nil {
		return nil, nil, err
	}
	return envelope.Projects, &envelope.Meta, nil
}

// CreateAuditEvent записывает событие аудита.
func (c *Client) CreateAuditEvent(ctx context.Context, auditType string, data map[string]interface{}) error {
	payload := map[string]interface{}{
		"auditEvents": map[string]interface{}{
			"type": auditType,
			"data": data,
		},
	}
	return c.do(ctx, http.MethodPost, "/audit-events", nil, payload, nil)
}

// IsEmailAddressWithValidBuyerDomain проверяет домен почты покупателя.
func (c *Client) IsEmailAddressWithValidBuyerDomain(ctx context.Context, emailAddress string) (bool, error) {
	payload := map[string]interface{}{"emailAddress": emailAddress}
	var result struct {
		Valid bool `json:"valid"`
	}
	if err := c.do(ctx, http.MethodPost, "/users/check-buyer-email", nil, payload, &result); err != nil {
		return false, fmt.Errorf("check buyer email domain: %w", err)
	}
	return result.Valid, nil
}
