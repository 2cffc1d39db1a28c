package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompleter replays fixed deltas and optionally fails after failAfter of them.
type fakeCompleter struct {
	deltas    []string
	failAfter int
	err       error

	gotSystem   string
	gotMessages []Message
}

func (f *fakeCompleter) Stream(_ context.Context, system string, messages []Message, onDelta func(string) error) error {
	f.gotSystem = system
	f.gotMessages = messages
	for i, d := range f.deltas {
		if f.err != nil && i == f.failAfter {
			return f.err
		}
		if err := onDelta(d); err != nil {
			return err
		}
	}
	if f.err != nil && f.failAfter >= len(f.deltas) {
		return f.err
	}
	return nil
}

func setupChatRouter(completer Completer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := NewService(completer, nil)

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), NewHandler(svc, nil), NewWSHandler(svc, nil, nil))
	return r
}

func postChat(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

const helloConversation = `{"messages":[{"role":"user","parts":[{"type":"text","text":"Hello"}]}]}`

func TestStreamWritesDeltasThenDone(t *testing.T) {
	fc := &fakeCompleter{deltas: []string{"Hi ", "there."}}
	r := setupChatRouter(fc)

	rr := postChat(r, helloConversation)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/event-stream")

	body := rr.Body.String()
	assert.Contains(t, body, "event:delta")
	assert.Contains(t, body, `"text":"Hi "`)
	assert.Contains(t, body, `"text":"there."`)
	assert.True(t, strings.Index(body, "there.") < strings.Index(body, "event:done"))

	assert.Equal(t, SystemPrompt(), fc.gotSystem)
	assert.Contains(t, fc.gotSystem, "hello@zenvor.ai")
	assert.Equal(t, []Message{{Role: RoleUser, Content: "Hello"}}, fc.gotMessages)
}

func TestStreamFailureBeforeFirstByte(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("upstream 529")}
	r := setupChatRouter(fc)

	rr := postChat(r, helloConversation)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Failed to process request"}`, rr.Body.String())
}

func TestStreamFailureMidStream(t *testing.T) {
	fc := &fakeCompleter{deltas: []string{"partial", "never"}, failAfter: 1, err: errors.New("connection reset")}
	r := setupChatRouter(fc)

	rr := postChat(r, helloConversation)
	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "partial")
	assert.NotContains(t, body, "never")
	assert.Contains(t, body, "event:error")
	assert.NotContains(t, body, "event:done")
}

func TestStreamRejectsBadInput(t *testing.T) {
	r := setupChatRouter(&fakeCompleter{})

	rr := postChat(r, "{")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = postChat(r, `{"messages":[{"role":"user","content":"   "}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestWebSocketConversation(t *testing.T) {
	fc := &fakeCompleter{deltas: []string{"We build ", "automations."}}
	srv := httptest.NewServer(setupChatRouter(fc))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/chat/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(helloConversation)))

	var frames []WSServerMessage
	for {
		var msg WSServerMessage
		require.NoError(t, conn.ReadJSON(&msg))
		frames = append(frames, msg)
		if msg.Type != "delta" {
			break
		}
	}
	require.Len(t, frames, 3)
	assert.Equal(t, "We build ", frames[0].Text)
	assert.Equal(t, "automations.", frames[1].Text)
	assert.Equal(t, "done", frames[2].Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	var bad WSServerMessage
	require.NoError(t, conn.ReadJSON(&bad))
	assert.Equal(t, "error", bad.Type)
	assert.Equal(t, "INVALID_JSON", bad.ErrorCode)

	empty, _ := json.Marshal(Request{})
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, empty))
	require.NoError(t, conn.ReadJSON(&bad))
	assert.Equal(t, "EMPTY_CONVERSATION", bad.ErrorCode)
}

func TestWebSocketRejectsForeignOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := NewService(&fakeCompleter{}, nil)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), NewHandler(svc, nil), NewWSHandler(svc, nil, []string{"https://zenvor.ai"}))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/chat/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{"https://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
