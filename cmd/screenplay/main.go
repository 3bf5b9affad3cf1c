// File: cmd/screenplay/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/xkilldash9x/screenplay-cli/cmd"
	"github.com/xkilldash9x/screenplay-cli/internal/observability"
)

// Allows mocking in tests.
var (
	osExit  = os.Exit
	execute = cmd.Execute
)

func main() {
	osExit(run())
}

// run executes the CLI under a context canceled by SIGINT or SIGTERM and
// returns the process exit status.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer observability.Sync()

	return cmd.ExitCode(execute(ctx))
}
