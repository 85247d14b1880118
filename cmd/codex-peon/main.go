package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/roasbeef/codex-peon/cmd/codex-peon/commands"
)

func main() {
	// The notify hook invokes us with the JSON payload as the first
	// argument. Short-circuit before cobra so payloads never collide
	// with command parsing.
	if len(os.Args) >= 2 &&
		strings.HasPrefix(strings.TrimSpace(os.Args[1]), "{") {

		_ = commands.HandleHookPayload([]byte(os.Args[1]))
		return
	}

	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
