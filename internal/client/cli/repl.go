package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	AddKanji(ctx context.Context) error
	AddVocab(ctx context.Context) error
	AddGroup(ctx context.Context) error
	GroupAddKanji(ctx context.Context) error
	GroupAddVocab(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the kotoba CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - addkanji       — add a character entry
//	  - addvocab       — add a phrase entry
//	  - addgroup       — create a group
//	  - groupkanji     — add a character entry to a group
//	  - groupvocab     — add a phrase entry to a group
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("kotoba %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: addkanji, addvocab, addgroup, groupkanji, groupvocab, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "addkanji":
			_ = a.AddKanji(ctx)

		case "addvocab":
			_ = a.AddVocab(ctx)

		case "addgroup":
			_ = a.AddGroup(ctx)

		case "groupkanji":
			_ = a.GroupAddKanji(ctx)

		case "groupvocab":
			_ = a.GroupAddVocab(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
