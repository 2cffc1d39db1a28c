package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiCompleterStreamsText(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "gemini-2.5-flash:streamGenerateContent"), r.URL.Path)
		assert.Equal(t, "g-key", r.Header.Get("X-Goog-Api-Key"))
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)

		w.Header().Set("Content-Type", "text/event-stream")
		for _, chunk := range []string{"Happy to ", "help."} {
			fmt.Fprintf(w, "data: {\"candidates\":[{\"content\":{\"role\":\"model\",\"parts\":[{\"text\":%q}]}}]}\n\n", chunk)
		}
	}))
	defer srv.Close()

	c, err := NewGeminiCompleter(context.Background(), "g-key", "gemini-2.5-flash", 128, srv.URL)
	require.NoError(t, err)

	var got strings.Builder
	err = c.Stream(context.Background(), "be brief", []Message{
		{Role: RoleUser, Content: "Hi"},
		{Role: RoleAssistant, Content: "Hello"},
		{Role: RoleUser, Content: "Pricing?"},
	}, func(d string) error {
		got.WriteString(d)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Happy to help.", got.String())

	contents, ok := body["contents"].([]any)
	require.True(t, ok)
	require.Len(t, contents, 3)
	assert.Equal(t, "model", contents[1].(map[string]any)["role"])
	assert.NotNil(t, body["systemInstruction"])
}

func TestGeminiCompleterReportsHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`)
	}))
	defer srv.Close()

	c, err := NewGeminiCompleter(context.Background(), "bad", "gemini-2.5-flash", 64, srv.URL)
	require.NoError(t, err)

	err = c.Stream(context.Background(), "sys", []Message{{Role: RoleUser, Content: "hi"}}, func(string) error {
		t.Fatal("no delta expected")
		return nil
	})
	assert.Error(t, err)
}
