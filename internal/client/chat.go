package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"zenvor/internal/domain/chat"
)

// ErrStreamInterrupted is returned when the server ends a chat stream with
// an error event.
var ErrStreamInterrupted = errors.New("intake api: chat stream interrupted")

type sseEvent struct {
	Event string
	Data  string
}

// Chat sends the conversation and calls onDelta for each text chunk of the
// reply as it arrives. The request has no timeout of its own; bound it
// with ctx.
func (c *Client) Chat(ctx context.Context, messages []chat.Message, onDelta func(string)) error {
	in := make([]chat.IncomingMessage, 0, len(messages))
	for _, m := range messages {
		content := m.Content
		in = append(in, chat.IncomingMessage{Role: string(m.Role), Content: &content})
	}
	data, err := json.Marshal(chat.Request{Messages: in})
	if err != nil {
		return fmt.Errorf("intake api: marshal: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/chat", nil, bytes.NewReader(data), false)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	// Streams outlive the default request timeout.
	hc := *c.httpClient
	hc.Timeout = 0
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("intake api: POST /chat: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return parseError(resp)
	}

	return readEvents(resp, func(ev sseEvent) (bool, error) {
		switch ev.Event {
		case "delta":
			var payload struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal([]byte(ev.Data), &payload); err != nil {
				return false, fmt.Errorf("intake api: chat delta: %w", err)
			}
			onDelta(payload.Text)
		case "done":
			return true, nil
		case "error":
			return true, ErrStreamInterrupted
		}
		return false, nil
	})
}

// readEvents parses a server-sent event stream and hands each event to fn
// until fn reports done or the body ends.
func readEvents(resp *http.Response, fn func(sseEvent) (bool, error)) error {
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var cur sseEvent
	for scanner.Scan() {
		line := scanner.Text()

		if line == "" {
			if cur.Event != "" || cur.Data != "" {
				done, err := fn(cur)
				if done || err != nil {
					return err
				}
			}
			cur = sseEvent{}
			continue
		}

		switch {
		case strings.HasPrefix(line, "event:"):
			cur.Event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data := strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " ")
			if cur.Data != "" {
				cur.Data += "\n" + data
			} else {
				cur.Data = data
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("intake api: chat stream: %w", err)
	}
	return ErrStreamInterrupted
}
