package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/pkgdu/internal/cli"
	"github.com/matzehuels/pkgdu/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// With SIGPIPE handled, a closed stdout surfaces as EPIPE instead of
	// killing the process.
	signal.Notify(make(chan os.Signal, 1), syscall.SIGPIPE)

	c := cli.New(os.Stderr, cli.LogWarn)
	err := c.RootCommand().ExecuteContext(ctx)

	code := errors.ExitCode(err)
	if code == errors.ExitFailure {
		c.Logger.Error(errors.UserMessage(err))
	}
	os.Exit(code)
}
