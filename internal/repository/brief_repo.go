package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/senyabanana/briefs-frontend/internal/models"
)

// BriefRepository - интерфейс для работы с брифами через Data API.
type BriefRepository interface {
	GetBrief(ctx context.Context, briefID int) (*models.Brief, error)
	CreateBrief(ctx context.Context, frameworkSlug, lotSlug string, userID int,
		data map[string]interface{}, updatedBy string, pageQuestions []string) (*models.Brief, error)
	UpdateBrief(ctx context.Context, briefID int, data map[string]interface{},
		updatedBy string, pageQuestions []string) error
	PublishBrief(ctx context.Context, briefID int, updatedBy string) error
	DeleteBrief(ctx context.Context, briefID int, updatedBy string) error
	WithdrawBrief(ctx context.Context, briefID int, updatedBy string) error
	CancelBrief(ctx context.Context, briefID int, updatedBy string) error
	UpdateBriefAsUnsuccessful(ctx context.Context, briefID int, updatedBy string) error
	CopyBrief(ctx context.Context, briefID int, updatedBy string) (*models.Brief, error)
	FindBriefs(ctx context.Context, userID int) ([]models.Brief, *models.ListMeta, error)
	AddBriefClarificationQuestion(ctx context.Context, briefID int, question, answer, updatedBy string) error
}

type briefEnvelope struct {
	Briefs models.Brief `json:"briefs"`
}

type briefListEnvelope struct {
	Briefs []models.Brief  `json:"briefs"`
	Meta   models.ListMeta `json:"meta"`
}

// GetBrief возвращает бриф по идентификатору.
func (c *Client) GetBrief(ctx context.Context, briefID int) (*models.Brief, error) {
	var envelope briefEnvelope
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/briefs/%d", briefID), nil, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Briefs, nil
}

// CreateBrief создаёт черновик при отправке первого вопроса.
func (c *Client) CreateBrief(ctx context.Context, frameworkSlug, lotSlug string, userID int,
	data map[string]interface{}, updatedBy string, pageQuestions []string) (*models.Brief, error) {
	payload := map[string]interface{}{
		"briefs": mergeBriefPayload(data, map[string]interface{}{
			"frameworkSlug": frameworkSlug,
			"lot":           lotSlug,
			"userId":        userID,
		}),
		"updated_by":     updatedBy,
		"page_questions": pageQuestions,
	}
	var envelope briefEnvelope
	if err := c.do(ctx, http.MethodPost, "/briefs", nil, payload, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Briefs, nil
}

// UpdateBrief сохраняет ответы одной страницы вопросов.
func (c *Client) UpdateBrief(ctx context.Context, briefID int, data map[string]interface{},
	updatedBy string, pageQuestions []string) error {
	payload := map[string]interface{}{
		"briefs":         data,
		"updated_by":     updatedBy,
		"page_questions": pageQuestions,
	}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/briefs/%d", briefID), nil, payload, nil)
}

// PublishBrief переводит черновик в статус live.
func (c *Client) PublishBrief(ctx context.Context, briefID int, updatedBy string) error {
	payload := map[string]interface{}{"updated_by": updatedBy}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/briefs/%d/publish", briefID), nil, payload, nil)
}

// DeleteBrief удаляет черновик; запись перестаёт существовать.
func (c *Client) DeleteBrief(ctx context.Context, briefID int, updatedBy string) error {
	payload := map[string]interface{}{"updated_by": updatedBy}
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/briefs/%d", briefID), nil, payload, nil)
}

// WithdrawBrief отзывает опубликованный бриф.
func (c *Client) WithdrawBrief(ctx context.Context, briefID int, updatedBy string) error {
	payload := map[string]interface{}{"updated_by": updatedBy}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/briefs/%d/withdraw", briefID), nil, payload, nil)
}

// CancelBrief отменяет закрытый бриф.
func (c *Client) CancelBrief(ctx context.Context, briefID int, updatedBy string) error {
	payload := map[string]interface{}{"updated_by": updatedBy}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/briefs/%d/cancel", briefID), nil, payload, nil)
}

// UpdateBriefAsUnsuccessful помечает закрытый бриф безрезультатным.
func (c *Client) UpdateBriefAsUnsuccessful(ctx context.Context, briefID int, updatedBy string) error {
	payload := map[string]interface{}{"updated_by": updatedBy}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/briefs/%d/unsuccessful", briefID), nil, payload, nil)
}

// CopyBrief создаёт новый черновик из существующего брифа.
func (c *Client) CopyBrief(ctx context.Context, briefID int, updatedBy string) (*models.Brief, error) {
	payload := map[string]interface{}{"updated_by": updatedBy}
	var envelope briefEnvelope
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/briefs/%d/copy", briefID), nil, payload, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Briefs, nil
}

// FindBriefs возвращает все брифы пользователя.
func (c *Client) FindBriefs(ctx context.Context, userID int) ([]models.Brief, *models.ListMeta, error) {
	query := url.Values{"user_id": []string{strconv.Itoa(userID)}}
	var envelope briefListEnvelope
	if err := c.do(ctx, http.MethodGet, "/briefs", query, nil, &envelope); err != nil {
		return nil, nil, err
	}
	return envelope.Briefs, &envelope.Meta, nil
}

// AddBriefClarificationQuestion публикует вопрос поставщика с ответом.
func (c *Client) AddBriefClarificationQuestion(ctx context.Context, briefID int, question, answer, updatedBy string) error {
	payload := map[string]interface{}{
		"question":   question,
		"answer":     answer,
		"updated_by": updatedBy,
	}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/briefs/%d/clarification-questions", briefID), nil, payload, nil)
}

func mergeBriefPayload(data, extra map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(data)+len(extra))
	for key, value := range data {
		merged[key] = value
	}
	for key, value := range extra {
		merged[key] = value
	}
	return merged
}
