package chat

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"go.uber.org/zap"
)

//go:embed system_prompt.txt
var defaultSystemPrompt string

// SystemPrompt returns the fixed instructions sent with every conversation.
func SystemPrompt() string {
	return defaultSystemPrompt
}

// Service relays conversations to the completer. It keeps no state
// between calls; the widget resends the whole conversation every turn.
type Service struct {
	completer Completer
	log       *zap.Logger
	prompt    string
}

func NewService(completer Completer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		completer: completer,
		log:       log.Named("chat"),
		prompt:    defaultSystemPrompt,
	}
}

// Reply sanitizes the conversation and streams the model answer into onDelta.
func (s *Service) Reply(ctx context.Context, in []IncomingMessage, onDelta func(string) error) error {
	messages := Sanitize(in)
	if len(messages) == 0 {
		return ErrEmptyConversation
	}

	start := time.Now()
	var chunks int
	err := s.completer.Stream(ctx, s.prompt, messages, func(delta string) error {
		chunks++
		return onDelta(delta)
	})
	if err != nil {
		s.log.Warn("chat stream failed",
			zap.Int("messages", len(messages)),
			zap.Int("chunks", chunks),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrCompleterFailed, err)
	}

	s.log.Debug("chat stream finished",
		zap.Int("messages", len(messages)),
		zap.Int("chunks", chunks),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}
