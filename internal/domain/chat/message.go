package chat

import "strings"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Part is one piece of a widget message. Only "text" parts carry content.
type Part struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// IncomingMessage is a message as sent by the chat widget. Parts, when
// present, take precedence over Content.
type IncomingMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content,omitempty"`
	Parts   []Part  `json:"parts,omitempty"`
}

// Request is the body of a chat call: the whole conversation so far.
type Request struct {
	Messages []IncomingMessage `json:"messages"`
}

// Message is a sanitized conversation turn forwarded to the model.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Sanitize flattens widget messages into plain turns. Blank turns and
// roles other than user/assistant are dropped, as are assistant turns
// before the first user turn.
func Sanitize(in []IncomingMessage) []Message {
	out := make([]Message, 0, len(in))
	for _, m := range in {
		role := Role(strings.ToLower(strings.TrimSpace(m.Role)))
		if role != RoleUser && role != RoleAssistant {
			continue
		}
		if role == RoleAssistant && len(out) == 0 {
			continue
		}

		text := m.text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		out = append(out, Message{Role: role, Content: text})
	}
	return out
}

func (m IncomingMessage) text() string {
	if m.Parts != nil {
		var b strings.Builder
		for _, p := range m.Parts {
			if p.Type == "text" {
				b.WriteString(p.Text)
			}
		}
		return b.String()
	}
	if m.Content != nil {
		return *m.Content
	}
	return ""
}
