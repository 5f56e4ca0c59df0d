package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. The real App
// satisfies it; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Cases(ctx context.Context) error
	Case(ctx context.Context, id string) error
	NewCase(ctx context.Context) error
	SetStatus(ctx context.Context, id, status string) error
	Upload(ctx context.Context, caseID, path, category, description string) error
	Documents(ctx context.Context, caseID string) error
	Meetings(ctx context.Context, caseID string) error
	Schedule(ctx context.Context, caseID, when, title string) error
	Chat(ctx context.Context, caseID, text string) error
	Ask(ctx context.Context, question string) error
	Analyze(ctx context.Context, documentID string) error

	Queue(ctx context.Context) error
	Drain(ctx context.Context) error
	ClearQueue(ctx context.Context) error
	Storage(ctx context.Context) error
	ClearCache(ctx context.Context) error
	Status(ctx context.Context) error
	Dismiss(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, status, storage, clearcache, queue, exit"
	helpLoggedIn  = "Available commands: whoami, cases, case, newcase, setstatus, upload, docs, meet, schedule, chat, ask, analyze, queue, drain, clearqueue, storage, clearcache, status, dismiss, logout, exit"
)

// usage lists the argument forms of commands that take arguments.
var usage = map[string]string{
	"case":      "Usage: case <caseId>",
	"setstatus": "Usage: setstatus <caseId> <FILED|UNDER_REVIEW|HEARING_SCHEDULED|JUDGMENT_RESERVED|CLOSED>",
	"upload":    "Usage: upload <caseId> <path> [category] [description...]",
	"docs":      "Usage: docs <caseId>",
	"meet":      "Usage: meet <caseId>",
	"schedule":  "Usage: schedule <caseId> <2006-01-02T15:04> [title...]",
	"chat":      "Usage: chat <caseId> [message...]",
	"ask":       "Usage: ask <question...>",
	"analyze":   "Usage: analyze <documentId>",
}

// commands usable without a session.
var public = map[string]bool{
	"help": true, "register": true, "login": true, "status": true, "storage": true,
	"clearcache": true, "queue": true, "clearqueue": true, "dismiss": true, "exit": true, "quit": true,
}

// runREPL reads a line, parses the first token as the command and
// dispatches to a. The loop exits on scanner EOF, on "exit" or "quit", or
// when ctx is cancelled.
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures to the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("nyaysetu %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if !public[cmd] && !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}
		if u, ok := usage[cmd]; ok && len(args) < minArgs(cmd) {
			printlnFn(u)
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "cases":
			_ = a.Cases(ctx)
		case "case":
			_ = a.Case(ctx, args[0])
		case "newcase":
			_ = a.NewCase(ctx)
		case "setstatus":
			_ = a.SetStatus(ctx, args[0], args[1])
		case "upload":
			_ = a.Upload(ctx, args[0], args[1], argAt(args, 2), strings.Join(tail(args, 3), " "))
		case "docs":
			_ = a.Documents(ctx, args[0])
		case "meet":
			_ = a.Meetings(ctx, args[0])
		case "schedule":
			_ = a.Schedule(ctx, args[0], args[1], strings.Join(tail(args, 2), " "))
		case "chat":
			_ = a.Chat(ctx, args[0], strings.Join(tail(args, 1), " "))
		case "ask":
			_ = a.Ask(ctx, strings.Join(args, " "))
		case "analyze":
			_ = a.Analyze(ctx, args[0])
		case "queue":
			_ = a.Queue(ctx)
		case "drain":
			_ = a.Drain(ctx)
		case "clearqueue":
			_ = a.ClearQueue(ctx)
		case "storage":
			_ = a.Storage(ctx)
		case "clearcache":
			_ = a.ClearCache(ctx)
		case "status":
			_ = a.Status(ctx)
		case "dismiss":
			_ = a.Dismiss(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func minArgs(cmd string) int {
	switch cmd {
	case "setstatus", "upload", "schedule":
		return 2
	default:
		return 1
	}
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func tail(args []string, from int) []string {
	if from < len(args) {
		return args[from:]
	}
	return nil
}
