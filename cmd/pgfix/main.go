package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/pgfix/internal/cli"
	"github.com/vvka-141/pgfix/pkg/pgfix"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(pgfix.ExitPanic)
		}
	}()

	if os.Getenv("PGFIX_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(pgfix.ExitCodeForError(err))
	}
}
