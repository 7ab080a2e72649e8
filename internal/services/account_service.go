package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/senyabanana/briefs-frontend/internal/mailer"
	"github.com/senyabanana/briefs-frontend/internal/models"
	"github.com/senyabanana/briefs-frontend/internal/repository"
)

// AccountService отвечает за выдачу приглашений на создание аккаунта покупателя.
type AccountService struct {
	Accounts repository.AccountRepository
	Audit    repository.AuditRepository
	Mailer   mailer.Mailer
	BaseURL  string
	Logger   *zap.Logger
}

// NewAccountService создаёт новый экземпляр AccountService.
func NewAccountService(accounts repository.AccountRepository, audit repository.AuditRepository,
	m mailer.Mailer, baseURL string, logger *zap.Logger) *AccountService {
	return &AccountService{Accounts: accounts, Audit: audit, Mailer: m, BaseURL: baseURL, Logger: logger}
}

// ErrInvalidBuyerDomain - домен почты не входит в список разрешённых для покупателей.
var ErrInvalidBuyerDomain = models.NewErrorResponse(http.StatusConflict, "email domain is not approved for buyer accounts")

// RequestInvite проверяет адрес и отправляет письмо со ссылкой на создание аккаунта.
func (s *AccountService) RequestInvite(ctx context.Context, emailAddress string) error {
	emailAddress = strings.TrimSpace(emailAddress)
	if !looksLikeEmail(emailAddress) {
		return models.NewValidationError("invalid email address",
			map[string]string{"email_address": "You must provide a valid email address"})
	}

	valid, err := s.Accounts.IsEmailAddressWithValidBuyerDomain(ctx, emailAddress)
	if err != nil {
		return models.NewErrorResponse(http.StatusInternalServerError, "failed to validate email address")
	}
	if !valid {
		return ErrInvalidBuyerDomain
	}

	token := uuid.NewString()
	inviteLink := fmt.Sprintf("%s/user/create/%s", s.BaseURL, token)
	if err := s.Mailer.SendBuyerInvite(ctx, emailAddress, inviteLink); err != nil {
		s.Logger.Error("failed to send buyer invite", zap.Error(err))
		return models.NewErrorResponse(http.StatusServiceUnavailable, "failed to send invite email")
	}

	auditData := map[string]interface{}{
		"invitedEmail": emailAddress,
		"inviteToken":  token,
	}
	if err := s.Audit.CreateAuditEvent(ctx, "invite_user", auditData); err != nil {
		// Письмо уже ушло, поэтому отказ аудита не превращаем в ошибку пользователю.
		s.Logger.Warn("failed to record invite audit event", zap.Error(err))
	}
	return nil
}

// looksLikeEmail - минимальная проверка формата: ровно одна @ и непустые части.
func looksLikeEmail(emailAddress string) bool {
	at := strings.Count(emailAddress, "@")
	if at != 1 {
		return false
	}
	parts := strings.SplitN(emailAddress, "@", 2)
	if parts[0] == "" || parts[1] == "" {
		return false
	}
	return strings.Contains(parts[1], ".") && !strings.ContainsAny(emailAddress, " \t")
}
