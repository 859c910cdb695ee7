package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  []string
}

func (f *fakeExec) isAuthenticated() bool { return f.loggedIn }
func (f *fakeExec) Go(ctx context.Context, path string) error {
	f.calls = append(f.calls, "go")
	f.args = append(f.args, path)
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) List(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "list")
	f.args = append(f.args, strings.Join(args, " "))
	return nil
}
func (f *fakeExec) New(ctx context.Context) error { f.calls = append(f.calls, "new"); return nil }
func (f *fakeExec) View(ctx context.Context, id string) error {
	f.calls = append(f.calls, "view")
	f.args = append(f.args, id)
	return nil
}
func (f *fakeExec) Edit(ctx context.Context, id string) error {
	f.calls = append(f.calls, "edit")
	f.args = append(f.args, id)
	return nil
}
func (f *fakeExec) Delete(ctx context.Context, id string) error {
	f.calls = append(f.calls, "delete")
	f.args = append(f.args, id)
	return nil
}
func (f *fakeExec) Profile(ctx context.Context, userID string) error {
	f.calls = append(f.calls, "profile")
	f.args = append(f.args, userID)
	return nil
}
func (f *fakeExec) WhoAmI(ctx context.Context) error { f.calls = append(f.calls, "whoami"); return nil }

func run(t *testing.T, exec *fakeExec, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "(status)" }, in, &out)
	return out.String()
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	exec := &fakeExec{}
	out := run(t, exec,
		"help",
		"login",
		"help",
		"list mine category 2",
		"view 7",
		"edit 7",
		"delete 7",
		"new",
		"profile",
		"profile 9",
		"go /recipes/7",
		"whoami",
		"foobar",
		"logout",
		"exit",
	)

	require.Equal(t, []string{"login", "list", "view", "edit", "delete", "new", "profile", "profile", "go", "whoami", "logout"}, exec.calls)
	require.Equal(t, []string{"mine category 2", "7", "7", "7", "", "9", "/recipes/7"}, exec.args)
	require.Contains(t, out, helpAnonymous)
	require.Contains(t, out, helpSignedIn)
	require.Contains(t, out, "Unknown command: foobar")
	require.Contains(t, out, "recipebox(status)> ")
	require.Contains(t, out, "Bye!")
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	out := run(t, exec, "view", "edit 1 2", "delete", "go", "quit", "list")

	require.Empty(t, exec.calls)
	require.Contains(t, out, "Usage: view <id>")
	require.Contains(t, out, "Usage: edit <id>")
	require.Contains(t, out, "Usage: delete <id>")
	require.Contains(t, out, "Usage: go <path>")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	exec := &fakeExec{}
	run(t, exec, "", "  ", "login")
	require.Equal(t, []string{"login"}, exec.calls)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	exec := &fakeExec{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("login\n")), &out)
	require.Empty(t, exec.calls)
}
