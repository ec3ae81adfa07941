package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/ppmedit/internal/cli"
	"github.com/matzehuels/ppmedit/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := cli.New(os.Stderr, cli.LogInfo)
	err := c.Execute(ctx, os.Args[1:])
	code := cli.ExitCode(err)
	if err != nil && code != cli.ExitCanceled {
		cli.PrintError(os.Stderr, "%s", errors.UserMessage(err))
	}
	cancel()
	os.Exit(code)
}
