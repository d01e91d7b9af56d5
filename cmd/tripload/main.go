package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/tripload/internal/cli"
	"github.com/vvka-141/tripload/pkg/tripload"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(tripload.ExitPanic)
		}
	}()

	if os.Getenv("TRIPLOAD_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(tripload.ExitCodeForError(err))
	}
}
