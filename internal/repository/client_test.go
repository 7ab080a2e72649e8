package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-token", 5*time.Second, zap.NewNop()), server
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"briefs": {"id": 7, "status": "draft", "title": "Support engineer"}}`)
	})

	brief, err := client.GetBrief(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, 7, brief.ID)
	assert.Equal(t, "Support engineer", brief.Title())
}

func TestGetBriefSplitsAnswersFromMetadata(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/briefs/7", r.URL.Path)
		fmt.Fprint(w, `{"briefs": {
			"id": 7,
			"frameworkSlug": "digital-outcomes-and-specialists-4",
			"lotSlug": "digital-outcomes",
			"status": "live",
			"publishedAt": "2026-08-01T09:30:00.000000Z",
			"users": [{"id": 123, "name": "Test Buyer", "role": "buyer", "active": true}],
			"framework": {"slug": "digital-outcomes-and-specialists-4", "family": "digital-outcomes-and-specialists", "status": "live"},
			"title": "Support engineer",
			"requirementsLength": "2 weeks"
		}}`)
	})

	brief, err := client.GetBrief(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "digital-outcomes", brief.LotSlug)
	assert.True(t, brief.IsAssociatedWithUser(123))
	assert.Equal(t, time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC), brief.PublishedAt)
	assert.Equal(t, "2 weeks", brief.Value("requirementsLength"))
	assert.Nil(t, brief.Answers["users"])
}

func TestCreateBriefPayload(t *testing.T) {
	var payload map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/briefs", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		fmt.Fprint(w, `{"briefs": {"id": 100, "status": "draft"}}`)
	})

	brief, err := client.CreateBrief(context.Background(), "digital-outcomes-and-specialists-4",
		"digital-outcomes", 123, map[string]interface{}{"title": "Support engineer"},
		"Test Buyer", []string{"title"})

	require.NoError(t, err)
	assert.Equal(t, 100, brief.ID)

	briefs := payload["briefs"].(map[string]interface{})
	assert.Equal(t, "Support engineer", briefs["title"])
	assert.Equal(t, "digital-outcomes", briefs["lot"])
	assert.Equal(t, float64(123), briefs["userId"])
	assert.Equal(t, "Test Buyer", payload["updated_by"])
	assert.Equal(t, []interface{}{"title"}, payload["page_questions"])
}

func TestFindBriefsQuery(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "123", r.URL.Query().Get("user_id"))
		fmt.Fprint(w, `{"briefs": [{"id": 1, "status": "draft"}], "meta": {"total": 1}}`)
	})

	briefs, meta, err := client.FindBriefs(context.Background(), 123)

	require.NoError(t, err)
	require.Len(t, briefs, 1)
	assert.Equal(t, 1, meta.Total)
}

func TestDecodeHTTPErrorMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": "brief not found"}`)
	})

	_, err := client.GetBrief(context.Background(), 404)

	httpErr, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, "brief not found", httpErr.Message)
	assert.False(t, httpErr.IsValidationError())
}

func TestDecodeHTTPErrorFieldMap(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": {"title": "answer_required", "description": "under_100_words"}}`)
	})

	err := client.UpdateBrief(context.Background(), 7,
		map[string]interface{}{"title": nil}, "Test Buyer", []string{"title"})

	httpErr, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.True(t, httpErr.IsValidationError())
	assert.Equal(t, map[string]string{
		"title":       "answer_required",
		"description": "under_100_words",
	}, httpErr.Errors)
}

func TestDecodeHTTPErrorUnparsableBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "<html>gateway error</html>")
	})

	err := client.GetStatus(context.Background())

	httpErr, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Empty(t, httpErr.Errors)
}

func TestGetStatusOK(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/_status", r.URL.Path)
		fmt.Fprint(w, `{"status": "ok"}`)
	})

	assert.NoError(t, client.GetStatus(context.Background()))
}
