// Command intake is the terminal client for the Zenvor intake API: the
// "get started" wizard, the demo booking form, the chat assistant and the
// triage commands for the team.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, failStyle.Render(iconFail+" "+err.Error()))
		stop()
		os.Exit(1)
	}
}
