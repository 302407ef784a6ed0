// Package main is the entry point for the git-relnotes CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/runoshun/git-relnotes/internal/cli"
	"github.com/runoshun/git-relnotes/internal/infra/actions"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	env := actions.NewEnv()
	if err := run(env); err != nil {
		if env.IsActions() {
			_ = actions.Command(os.Stderr, "error", err.Error())
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func run(env *actions.Env) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cli.NewRootCommand(env, version)
	return rootCmd.ExecuteContext(ctx)
}
