package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/comalice/shaderstage/internal/cli"
	"github.com/comalice/shaderstage/internal/ctxlog"
)

func main() {
	cfg, exit, err := cli.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		fail(err)
	}
	if exit {
		return
	}

	logger := cfg.NewLogger(os.Stderr)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	if err := cli.Run(ctx, cfg, os.Stdout); err != nil {
		fail(err)
	}
}

func fail(err error) {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", exitErr.Message)
		os.Exit(exitErr.Code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
