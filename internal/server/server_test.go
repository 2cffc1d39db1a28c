package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenvor/internal/client"
	"zenvor/internal/config"
	"zenvor/internal/database/databasetest"
	"zenvor/internal/domain/chat"
	"zenvor/internal/domain/demo"
	"zenvor/internal/domain/intake"
	"zenvor/internal/domain/lead"
	"zenvor/internal/i18n"
	"zenvor/internal/wizard"
)

const testAdminToken = "test-admin-token"

type echoCompleter struct{}

func (echoCompleter) Stream(_ context.Context, _ string, messages []chat.Message, onDelta func(string) error) error {
	last := messages[len(messages)-1].Content
	for _, word := range strings.Fields(last) {
		if err := onDelta(word + " "); err != nil {
			return err
		}
	}
	return nil
}

func setupServer(t *testing.T, completer chat.Completer) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := databasetest.Open(t, &lead.Lead{}, &demo.Request{})
	r := NewRouter(Deps{
		Config:    &config.Config{AppEnv: "test", AdminToken: testAdminToken},
		DB:        db,
		Completer: completer,
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestHealth(t *testing.T) {
	srv := setupServer(t, nil)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWizardSubmitsThroughAPI(t *testing.T) {
	srv := setupServer(t, nil)
	api := client.New(srv.URL, client.WithAdminToken(testAdminToken))
	ctx := context.Background()

	fill := func(c *wizard.Controller) {
		for _, a := range []wizard.Action{
			wizard.SetField{Field: wizard.FieldFullName, Value: "Ada Lovelace"},
			wizard.SetField{Field: wizard.FieldEmail, Value: "  Ada@Example.com "},
			wizard.SetField{Field: wizard.FieldCompanyName, Value: "Analytical Engines"},
			wizard.SetField{Field: wizard.FieldCompanySize, Value: "51_200"},
			wizard.Next{},
			wizard.ToggleTool{Tool: "HubSpot"},
			wizard.ToggleTool{Tool: "n8n"},
			wizard.Next{},
			wizard.SetField{Field: wizard.FieldPainPoint, Value: "lead_qualification"},
		} {
			c.Dispatch(a)
		}
	}

	first := wizard.NewController(api, i18n.EN)
	fill(first)
	st, err := first.Submit(ctx)
	require.NoError(t, err)
	require.Equal(t, wizard.PhaseSuccess, st.Phase)

	stored, err := api.GetLead(ctx, st.SubmittedID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", stored.Email)
	assert.Equal(t, []string{"HubSpot", "n8n"}, stored.Tools())
	assert.Equal(t, lead.StatusNew, stored.Status)

	second := wizard.NewController(client.New(srv.URL, client.WithLanguage("ru")), i18n.RU)
	fill(second)
	st, err = second.Submit(ctx)
	assert.ErrorIs(t, err, intake.ErrDuplicateSubmission)
	assert.Equal(t, wizard.PhaseError, st.Phase)
	assert.Equal(t, i18n.For(i18n.RU).AlreadySubmitted, st.ErrorMessage)
	assert.Equal(t, 3, st.Step)
}

func TestDemoTriageThroughAPI(t *testing.T) {
	srv := setupServer(t, nil)
	api := client.New(srv.URL, client.WithAdminToken(testAdminToken))
	ctx := context.Background()

	dc := wizard.NewDemoController(api, i18n.EN)
	dc.Dispatch(wizard.SetField{Field: wizard.FieldFullName, Value: "Grace Hopper"})
	dc.Dispatch(wizard.SetField{Field: wizard.FieldEmail, Value: "grace@example.com"})
	dc.Dispatch(wizard.SetField{Field: wizard.FieldServiceInterest, Value: "support_ai"})
	st, err := dc.Submit(ctx)
	require.NoError(t, err)
	id := st.SubmittedID

	note := "Wants a pilot"
	owner := "sam"
	_, err = api.UpdateDemoStatus(ctx, &demo.UpdateStatusRequest{ID: id, Status: demo.StatusScheduled, AssignedTo: &owner, InternalNote: &note})
	require.NoError(t, err)

	scheduled, err := api.ListDemos(ctx, demo.ListQuery{Status: demo.StatusScheduled})
	require.NoError(t, err)
	require.Len(t, scheduled, 1)
	assert.Equal(t, "sam", *scheduled[0].AssignedTo)

	_, err = api.UpdateDemoStatus(ctx, &demo.UpdateStatusRequest{ID: id, Status: demo.StatusCompleted})
	require.NoError(t, err)
	got, err := api.GetDemo(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.AssignedTo)
	assert.Nil(t, got.InternalNote)

	stats, err := api.DemoStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats[demo.StatusCompleted])
	assert.Equal(t, 0, stats[demo.StatusPending])

	_, err = api.UpdateDemoStatus(ctx, &demo.UpdateStatusRequest{ID: "missing", Status: demo.StatusCompleted})
	assert.ErrorIs(t, err, intake.ErrNotFound)
}

func TestAdminRoutesNeedToken(t *testing.T) {
	srv := setupServer(t, nil)
	ctx := context.Background()

	_, err := client.New(srv.URL).LeadStats(ctx)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	_, err = client.New(srv.URL, client.WithAdminToken("wrong")).ListLeads(ctx, lead.ListQuery{})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)

	stats, err := client.New(srv.URL, client.WithAdminToken(testAdminToken)).LeadStats(ctx)
	require.NoError(t, err)
	assert.Len(t, stats, len(lead.Pipeline))
}

func TestChatRoutes(t *testing.T) {
	disabled := setupServer(t, nil)
	err := client.New(disabled.URL).Chat(context.Background(), []chat.Message{{Role: chat.RoleUser, Content: "hi"}}, func(string) {})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	enabled := setupServer(t, echoCompleter{})
	var reply strings.Builder
	err = client.New(enabled.URL).Chat(context.Background(), []chat.Message{
		{Role: chat.RoleUser, Content: "what does zenvor do"},
	}, func(s string) { reply.WriteString(s) })
	require.NoError(t, err)
	assert.Equal(t, "what does zenvor do ", reply.String())
}

func TestNewCompleter(t *testing.T) {
	c, err := NewCompleter(context.Background(), config.ChatConfig{Provider: config.ProviderAnthropic})
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = NewCompleter(context.Background(), config.ChatConfig{Provider: config.ProviderAnthropic, APIKey: "k", Model: "m", MaxTokens: 10})
	require.NoError(t, err)
	assert.IsType(t, &chat.AnthropicCompleter{}, c)

	c, err = NewCompleter(context.Background(), config.ChatConfig{Provider: config.ProviderGemini, APIKey: "k", Model: "m", MaxTokens: 10})
	require.NoError(t, err)
	assert.IsType(t, &chat.GeminiCompleter{}, c)

	_, err = NewCompleter(context.Background(), config.ChatConfig{Provider: "other", APIKey: "k"})
	assert.Error(t, err)
}
