package chat

// WSServerMessage is one outbound websocket frame.
type WSServerMessage struct {
	Type         string `json:"type"`
	Text         string `json:"text,omitempty"`
	ErrorCode    string `json:"code,omitempty"`
	ErrorMessage string `json:"message,omitempty"`
}

func NewDeltaEvent(text string) *WSServerMessage {
	return &WSServerMessage{Type: "delta", Text: text}
}

func NewDoneEvent() *WSServerMessage {
	return &WSServerMessage{Type: "done"}
}

func NewErrorEvent(code, message string) *WSServerMessage {
	return &WSServerMessage{
		Type:         "error",
		ErrorCode:    code,
		ErrorMessage: message,
	}
}
