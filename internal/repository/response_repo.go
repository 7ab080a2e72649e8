package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/senyabanana/briefs-frontend/internal/models"
)

// BriefResponseRepository - интерфейс для работы с заявками поставщиков.
type BriefResponseRepository interface {
	FindBriefResponses(ctx context.Context, briefID int, statuses string) ([]models.BriefResponse, error)
	GetBriefResponse(ctx context.Context, briefResponseID int) (*models.BriefResponse, error)
	UpdateBriefAwardBriefResponse(ctx context.Context, briefID, briefResponseID int, updatedBy string) error
	UpdateBriefAwardDetails(ctx context.Context, briefID, briefResponseID int,
		details map[string]interface{}, updatedBy string) error
}

type briefResponseEnvelope struct {
	BriefResponses models.BriefResponse `json:"briefResponses"`
}

type briefResponseListEnvelope struct {
	BriefResponses []models.BriefResponse `json:"briefResponses"`
}

// FindBriefResponses возвращает заявки по брифу, при необходимости
// отфильтрованные по статусам (список через запятую).
func (c *Client) FindBriefResponses(ctx context.Context, briefID int, statuses string) ([]models.BriefResponse, error) {
	query := url.Values{"brief_id": []string{strconv.Itoa(briefID)}}
	if statuses != "" {
		query.Set("status", statuses)
	}
	var envelope briefResponseListEnvelope
	if err := c.do(ctx, http.MethodGet, "/brief-responses", query, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.BriefResponses, nil
}

// GetBriefResponse возвращает заявку по идентификатору.
func (c *Client) GetBriefResponse(ctx context.Context, briefResponseID int) (*models.BriefResponse, error) {
	var envelope briefResponseEnvelope
	path := fmt.Sprintf("/brief-responses/%d", briefResponseID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.BriefResponses, nil
}

// UpdateBriefAwardBriefResponse помечает заявку ожидающей присуждения.
func (c *Client) UpdateBriefAwardBriefResponse(ctx context.Context, briefID, briefResponseID int, updatedBy string) error {
	payload := map[string]interface{}{
		"briefResponseId": briefResponseID,
		"updated_by":      updatedBy,
	}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/briefs/%d/award", briefID), nil, payload, nil)
}

// UpdateBriefAwardDetails сохраняет дату начала и стоимость контракта;
// оба поля валидирует Data API, ошибки возвращаются по полям.
func (c *Client) UpdateBriefAwardDetails(ctx context.Context, briefID, briefResponseID int,
	details map[string]interface{}, updatedBy string) error {
	payload := map[string]interface{}{
		"awardDetails": details,
		"updated_by":   updatedBy,
	}
	path := fmt.Sprintf("/briefs/%d/award/%d/contract-details", briefID, briefResponseID)
	return c.do(ctx, http.MethodPost, path, nil, payload, nil)
}
