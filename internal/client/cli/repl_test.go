package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) rec(name string, args ...string) error {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, "|")))
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error { return f.rec("register") }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.rec("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.rec("logout")
}
func (f *fakeExec) WhoAmI(context.Context) error { return f.rec("whoami") }
func (f *fakeExec) Cases(context.Context) error { return f.rec("cases") }
func (f *fakeExec) Case(_ context.Context, id string) error {
	return f.rec("case", id)
}
func (f *fakeExec) NewCase(context.Context) error { return f.rec("newcase") }
func (f *fakeExec) SetStatus(_ context.Context, id, st string) error {
	return f.rec("setstatus", id, st)
}
func (f *fakeExec) Upload(_ context.Context, caseID, path, cat, desc string) error {
	return f.rec("upload", caseID, path, cat, desc)
}
func (f *fakeExec) Documents(_ context.Context, caseID string) error { return f.rec("docs", caseID) }
func (f *fakeExec) Meetings(_ context.Context, caseID string) error { return f.rec("meet", caseID) }
func (f *fakeExec) Schedule(_ context.Context, caseID, when, title string) error {
	return f.rec("schedule", caseID, when, title)
}
func (f *fakeExec) Chat(_ context.Context, caseID, text string) error {
	return f.rec("chat", caseID, text)
}
func (f *fakeExec) Ask(_ context.Context, q string) error { return f.rec("ask", q) }
func (f *fakeExec) Analyze(_ context.Context, id string) error { return f.rec("analyze", id) }
func (f *fakeExec) Queue(context.Context) error { return f.rec("queue") }
func (f *fakeExec) Drain(context.Context) error { return f.rec("drain") }
func (f *fakeExec) ClearQueue(context.Context) error { return f.rec("clearqueue") }
func (f *fakeExec) Storage(context.Context) error { return f.rec("storage") }
func (f *fakeExec) ClearCache(context.Context) error { return f.rec("clearcache") }
func (f *fakeExec) Status(context.Context) error { return f.rec("status") }
func (f *fakeExec) Dismiss(context.Context) error { return f.rec("dismiss") }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func run(t *testing.T, exec *fakeExec, input ...string) {
	t.Helper()
	sc := bufio.NewScanner(strings.NewReader(strings.Join(input, "\n")))
	runREPL(context.Background(), exec, func() string { return "(test)" }, sc)
}

func TestRunREPL_LoginGate(t *testing.T) {
	out := captureOutput(t)
	exec := &fakeExec{}

	run(t, exec, "cases", "status", "login", "cases", "exit", "cases")

	assert.Equal(t, []string{"status", "login", "cases"}, exec.calls)
	assert.Contains(t, *out, "Please login first")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_ArgumentParsing(t *testing.T) {
	captureOutput(t)
	exec := &fakeExec{loggedIn: true}

	run(t, exec,
		"case c1",
		"setstatus c1 closed",
		"upload c1 ./fir.pdf evidence CCTV still from gate",
		"upload c1 ./fir.pdf",
		"docs c1",
		"meet c1",
		"schedule c1 2026-11-02T10:30 Bail hearing",
		"chat c1",
		"chat c1 please file the reply",
		"ask what is section 482",
		"analyze d9",
		"queue", "drain", "clearqueue", "storage", "clearcache", "dismiss", "whoami", "newcase", "logout",
	)

	assert.Equal(t, []string{
		"case c1",
		"setstatus c1|closed",
		"upload c1|./fir.pdf|evidence|CCTV still from gate",
		"upload c1|./fir.pdf||",
		"docs c1",
		"meet c1",
		"schedule c1|2026-11-02T10:30|Bail hearing",
		"chat c1|",
		"chat c1|please file the reply",
		"ask what is section 482",
		"analyze d9",
		"queue", "drain", "clearqueue", "storage", "clearcache", "dismiss", "whoami", "newcase", "logout",
	}, exec.calls)
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	out := captureOutput(t)
	exec := &fakeExec{loggedIn: true}

	run(t, exec, "case", "setstatus c1", "upload c1", "ask", "", "frobnicate", "help")

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, usage["case"])
	assert.Contains(t, *out, usage["setstatus"])
	assert.Contains(t, *out, usage["upload"])
	assert.Contains(t, *out, usage["ask"])
	assert.Contains(t, *out, "Unknown command: frobnicate")
	assert.Contains(t, *out, helpLoggedIn)
	assert.Contains(t, *out, "nyaysetu (test) > ")
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	captureOutput(t)
	exec := &fakeExec{loggedIn: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runREPL(ctx, exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("cases\n")))
	assert.Empty(t, exec.calls)
}
