package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"zenvor/internal/client"
	"zenvor/internal/domain/chat"
)

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [question]",
		Short: "Ask the Zenvor assistant",
		Long: `Ask the Zenvor assistant.

With a question as arguments, prints one reply and exits. Without
arguments, starts a conversation that keeps its history until EOF or
an empty line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &chatSession{
				api:    a.api,
				out:    cmd.OutOrStdout(),
				render: cmd.OutOrStdout() == os.Stdout && isTerminal(os.Stdout),
			}
			if len(args) > 0 {
				return s.ask(cmd.Context(), strings.Join(args, " "))
			}
			return s.repl(cmd.Context(), cmd.InOrStdin())
		},
	}
}

type chatSession struct {
	api     *client.Client
	out     io.Writer
	render  bool
	history []chat.Message
}

func (s *chatSession) repl(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, headerStyle.Render("› "))
		if !sc.Scan() {
			fmt.Fprintln(s.out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			return nil
		}
		if err := s.ask(ctx, line); err != nil {
			fmt.Fprintln(s.out, failStyle.Render(iconFail+" "+err.Error()))
		}
	}
}

// ask sends question with the history so far. A failed turn is dropped
// from the history so the next question starts clean.
func (s *chatSession) ask(ctx context.Context, question string) error {
	turns := append(s.history, chat.Message{Role: chat.RoleUser, Content: question})

	var reply strings.Builder
	err := s.api.Chat(ctx, turns, func(delta string) {
		reply.WriteString(delta)
		if !s.render {
			fmt.Fprint(s.out, delta)
		}
	})
	if err != nil {
		if !s.render && reply.Len() > 0 {
			fmt.Fprintln(s.out)
		}
		return err
	}

	if s.render {
		fmt.Fprint(s.out, renderMarkdown(reply.String()))
	} else {
		fmt.Fprintln(s.out)
	}
	s.history = append(turns, chat.Message{Role: chat.RoleAssistant, Content: reply.String()})
	return nil
}
