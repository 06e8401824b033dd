package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(args ...any) { fmt.Println(args...) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Status(ctx context.Context) error
	Punch(ctx context.Context, action string) error
	Report(ctx context.Context, args []string) error
	Breaks(ctx context.Context, args []string) error
	AddBreak(ctx context.Context, args []string) error
	EditBreak(ctx context.Context, args []string) error
	DeleteBreak(ctx context.Context, args []string) error
	EditHours(ctx context.Context, args []string) error
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//   - status                             show today's derived status
//   - start | end                        punch work start / end
//   - breakstart | breakend              punch break start / end
//   - report [YYYY-MM]                   print the monthly report
//   - breaks <session-id>                list breaks of a session
//   - addbreak <session-id> <from> <to>  add a closed break
//   - editbreak <break-id> <from> <to>   move a break
//   - delbreak <break-id>                delete a break
//   - edithours <session-id> <from> <to> set working hours
//   - exit | quit                        leave the program
//
// Timestamps are given as YYYY-MM-DDTHH:MM:SS; the T keeps them one token.
//
// Any errors returned by command handlers are printed here; this keeps the
// loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		printlnFn("att> ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn("Available commands: status, start, end, breakstart, breakend, report, breaks, addbreak, editbreak, delbreak, edithours, exit")
		case "status":
			err = a.Status(ctx)
		case "start":
			err = a.Punch(ctx, "work_start")
		case "end":
			err = a.Punch(ctx, "work_end")
		case "breakstart":
			err = a.Punch(ctx, "break_start")
		case "breakend":
			err = a.Punch(ctx, "break_end")
		case "report":
			err = a.Report(ctx, args)
		case "breaks":
			err = a.Breaks(ctx, args)
		case "addbreak":
			err = a.AddBreak(ctx, args)
		case "editbreak":
			err = a.EditBreak(ctx, args)
		case "delbreak":
			err = a.DeleteBreak(ctx, args)
		case "edithours":
			err = a.EditHours(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
