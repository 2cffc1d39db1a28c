package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenvor/internal/domain/chat"
	"zenvor/internal/domain/demo"
	"zenvor/internal/domain/intake"
	"zenvor/internal/domain/lead"
	"zenvor/internal/pkg/validator"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", opts...)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestSubmitLead(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/leads/submit", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "ru", r.Header.Get("Accept-Language"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusCreated, `{"success":true,"data":{"id":"lead-1"}}`)
	}, WithAdminToken("secret"), WithLanguage("ru"))

	res, err := c.SubmitLead(context.Background(), &lead.SubmitRequest{
		FullName:    "Ada Lovelace",
		Email:       "ada@example.com",
		CompanyName: "Engines",
		CompanySize: lead.CompanySize1To10,
	})
	require.NoError(t, err)
	assert.Equal(t, "lead-1", res.ID)
	assert.Equal(t, "Ada Lovelace", got["full_name"])
	assert.NotContains(t, got, "pain_point")
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "duplicate",
			status: http.StatusTooManyRequests,
			body:   `{"success":false,"error":{"code":"DUPLICATE_SUBMISSION","message":"already"}}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, intake.ErrDuplicateSubmission)
			},
		},
		{
			name:   "validation",
			status: http.StatusUnprocessableEntity,
			body:   `{"success":false,"error":{"code":"VALIDATION_ERROR","message":"Validation failed","details":{"email":"must be a valid email address"}}}`,
			check: func(t *testing.T, err error) {
				var verr *validator.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "must be a valid email address", verr.Fields["email"])
			},
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   `{"success":false,"error":{"code":"NOT_FOUND","message":"Record not found"}}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, intake.ErrNotFound)
			},
		},
		{
			name:   "plain text",
			status: http.StatusBadGateway,
			body:   "upstream down\n",
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
				assert.Equal(t, "upstream down", apiErr.Message)
				assert.NotErrorIs(t, err, intake.ErrNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})
			_, err := c.SubmitDemo(context.Background(), &demo.SubmitRequest{FullName: "Grace", Email: "g@example.com"})
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestSubmitIsNotRetried(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(w, http.StatusInternalServerError, `{"success":false,"error":{"code":"INTERNAL_ERROR","message":"x"}}`)
	})

	_, err := c.SubmitLead(context.Background(), &lead.SubmitRequest{})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
	}, WithTimeout(50*time.Millisecond))
	defer close(release)

	_, err := c.SubmitLead(context.Background(), &lead.SubmitRequest{})
	assert.Error(t, err)
}

func TestTriageCalls(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		switch r.Method + " " + r.URL.Path {
		case "GET /api/v1/admin/leads":
			assert.Equal(t, "contacted", r.URL.Query().Get("status"))
			assert.Equal(t, "10", r.URL.Query().Get("limit"))
			assert.Empty(t, r.URL.Query().Get("offset"))
			writeJSON(w, http.StatusOK, `{"success":true,"data":[{"id":"a","email":"a@example.com","status":"contacted"}]}`)
		case "PATCH /api/v1/admin/leads/a/status":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]any{"status": "qualified"}, body)
			writeJSON(w, http.StatusOK, `{"success":true,"data":{"id":"a"}}`)
		case "GET /api/v1/admin/demo-requests/stats":
			writeJSON(w, http.StatusOK, `{"success":true,"data":{"pending":2,"completed":1}}`)
		case "GET /api/v1/admin/demo-requests/d-1":
			writeJSON(w, http.StatusOK, `{"success":true,"data":{"id":"d-1","full_name":"Grace"}}`)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusTeapot)
		}
	}, WithAdminToken("secret"))
	ctx := context.Background()

	leads, err := c.ListLeads(ctx, lead.ListQuery{Status: lead.StatusContacted, Limit: 10})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "a@example.com", leads[0].Email)

	res, err := c.UpdateLeadStatus(ctx, &lead.UpdateStatusRequest{ID: "a", Status: lead.StatusQualified})
	require.NoError(t, err)
	assert.Equal(t, "a", res.ID)

	stats, err := c.DemoStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats[demo.StatusPending])

	dr, err := c.GetDemo(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, "Grace", dr.FullName)
}

func TestChatStream(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chat.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, "event:delta\ndata:{\"text\":\"Hel\"}\n\n")
		_, _ = io.WriteString(w, "event: delta\ndata: {\"text\":\"lo\"}\n\n")
		_, _ = io.WriteString(w, "event:done\ndata:{}\n\n")
	})

	var got string
	err := c.Chat(context.Background(), []chat.Message{{Role: chat.RoleUser, Content: "hi"}}, func(s string) { got += s })
	require.NoError(t, err)
	assert.Equal(t, "Hello", got)
}

func TestChatStreamErrors(t *testing.T) {
	interrupted := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "event:delta\ndata:{\"text\":\"Hel\"}\n\nevent:error\ndata:{\"message\":\"x\"}\n\n")
	})
	err := interrupted.Chat(context.Background(), []chat.Message{{Role: chat.RoleUser, Content: "hi"}}, func(string) {})
	assert.ErrorIs(t, err, ErrStreamInterrupted)

	truncated := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "event:delta\ndata:{\"text\":\"Hel\"}\n\n")
	})
	err = truncated.Chat(context.Background(), []chat.Message{{Role: chat.RoleUser, Content: "hi"}}, func(string) {})
	assert.ErrorIs(t, err, ErrStreamInterrupted)

	rejected := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, `{"success":false,"error":{"code":"EMPTY_CONVERSATION","message":"No messages to send"}}`)
	})
	err = rejected.Chat(context.Background(), nil, func(string) {})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "EMPTY_CONVERSATION", apiErr.Code)
}
