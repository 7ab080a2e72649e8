package utils

import (
	"context"
	"net/http"

	"github.com/senyabanana/briefs-frontend/internal/models"
	"github.com/senyabanana/briefs-frontend/internal/repository"
)

// GetFrameworkAndLot загружает фреймворк и находит лот. Любое несоответствие
// (нет лота, недопустимый статус фреймворка, лот не разрешает брифы)
// возвращает 404, чтобы не раскрывать лишнего.
func GetFrameworkAndLot(ctx context.Context, repo repository.FrameworkRepository,
	frameworkSlug, lotSlug string, allowedStatuses []models.FrameworkStatus,
	mustAllowBrief bool) (*models.Framework, *models.Lot, error) {

	framework, err := repo.GetFramework(ctx, frameworkSlug)
	if err != nil {
		if httpErr, ok := repository.AsHTTPError(err); ok && httpErr.StatusCode == http.StatusNotFound {
			return nil, nil, models.NewNotFoundError("framework not found")
		}
		return nil, nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch framework")
	}

	lot := framework.GetLot(lotSlug)
	if lot == nil {
		return nil, nil, models.NewNotFoundError("lot not found")
	}
	if len(allowedStatuses) > 0 && !framework.HasStatus(allowedStatuses...) {
		return nil, nil, models.NewNotFoundError("framework is not available")
	}
	if mustAllowBrief && !lot.AllowsBrief {
		return nil, nil, models.NewNotFoundError("lot does not allow briefs")
	}
	return framework, lot, nil
}

// BriefGuard - дополнительные условия проверки принадлежности брифа.
type BriefGuard struct {
	AllowWithdrawn  bool
	AllowedStatuses []models.BriefStatus
}

// IsBriefCorrect проверяет, что бриф принадлежит фреймворку, лоту и
// пользователю и находится в допустимом статусе. Пользователь передаётся
// явно, а не берётся из глобального состояния запроса.
func IsBriefCorrect(brief *models.Brief, frameworkSlug, lotSlug string, userID int, guard BriefGuard) bool {
	if brief.FrameworkSlug != frameworkSlug || brief.LotSlug != lotSlug {
		return false
	}
	if !brief.IsAssociatedWithUser(userID) {
		return false
	}
	if !guard.AllowWithdrawn && brief.IsWithdrawn() {
		return false
	}
	if len(guard.AllowedStatuses) > 0 && !brief.HasStatus(guard.AllowedStatuses...) {
		return false
	}
	return true
}
