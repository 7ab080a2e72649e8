package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/senyabanana/briefs-frontend/internal/models"
)

type fakeAccounts struct {
	valid bool
	calls int
}

func (f *fakeAccounts) IsEmailAddressWithValidBuyerDomain(ctx context.Context, emailAddress string) (bool, error) {
	f.calls++
	return f.valid, nil
}

type fakeAudit struct {
	events []string
}

func (f *fakeAudit) CreateAuditEvent(ctx context.Context, auditType string, data map[string]interface{}) error {
	f.events = append(f.events, auditType)
	return nil
}

type fakeMailer struct {
	sent []string
	link string
	err  error
}

func (f *fakeMailer) SendBuyerInvite(ctx context.Context, emailAddress, inviteLink string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, emailAddress)
	f.link = inviteLink
	return nil
}

func newAccountService(accounts *fakeAccounts, audit *fakeAudit, m *fakeMailer) *AccountService {
	return NewAccountService(accounts, audit, m, "https://marketplace.example.gov.uk", zap.NewNop())
}

func TestRequestInviteRejectsMalformedEmail(t *testing.T) {
	accounts := &fakeAccounts{valid: true}
	service := newAccountService(accounts, &fakeAudit{}, &fakeMailer{})

	for _, emailAddress := range []string{"", "no-at-sign", "two@@example.com", "@example.com", "user@", "user@nodot"} {
		err := service.RequestInvite(context.Background(), emailAddress)

		errResp, ok := err.(*models.ErrorResponse)
		require.True(t, ok, "email %q", emailAddress)
		assert.Equal(t, http.StatusBadRequest, errResp.StatusCode)
		assert.NotEmpty(t, errResp.FieldErrors["email_address"])
	}
	assert.Zero(t, accounts.calls)
}

func TestRequestInviteRejectsUnapprovedDomain(t *testing.T) {
	mail := &fakeMailer{}
	service := newAccountService(&fakeAccounts{valid: false}, &fakeAudit{}, mail)

	err := service.RequestInvite(context.Background(), "buyer@unknown.example.com")

	assert.Equal(t, ErrInvalidBuyerDomain, err)
	assert.Empty(t, mail.sent)
}

func TestRequestInviteSendsEmailAndAudits(t *testing.T) {
	audit := &fakeAudit{}
	mail := &fakeMailer{}
	service := newAccountService(&fakeAccounts{valid: true}, audit, mail)

	err := service.RequestInvite(context.Background(), "buyer@example.gov.uk")

	require.NoError(t, err)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "buyer@example.gov.uk", mail.sent[0])
	assert.True(t, strings.HasPrefix(mail.link, "https://marketplace.example.gov.uk/user/create/"))
	assert.Equal(t, []string{"invite_user"}, audit.events)
}

func TestRequestInviteMailerFailure(t *testing.T) {
	audit := &fakeAudit{}
	mail := &fakeMailer{err: errors.New("ses unavailable")}
	service := newAccountService(&fakeAccounts{valid: true}, audit, mail)

	err := service.RequestInvite(context.Background(), "buyer@example.gov.uk")

	errResp, ok := err.(*models.ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, errResp.StatusCode)
	assert.Empty(t, audit.events)
}
