package chat

import "errors"

var (
	ErrEmptyConversation = errors.New("conversation has no user or assistant text")
	ErrCompleterFailed   = errors.New("chat completion failed")
)
