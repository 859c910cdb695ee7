package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isAuthenticated() bool
	Go(ctx context.Context, path string) error
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context, args []string) error
	New(ctx context.Context) error
	View(ctx context.Context, id string) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Profile(ctx context.Context, userID string) error
	WhoAmI(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: login, register, go <path>, help, exit"
	helpSignedIn  = "Available commands: list [mine|user <id>|category <id>], new, view <id>, edit <id>, delete <id>, " +
		"profile [userId], whoami, go <path>, logout, help, exit"
)

// runREPL starts a simple read–eval–print loop for the recipebox CLI.
//
// It reads a line from in, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is done or when the user types
// "exit" or "quit".
//
// Command handlers report their own failures to the user; an error that
// reaches the loop is an input error such as a missing argument.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(out, "recipebox%s> ", statusFn())

		line, err := in.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isAuthenticated() {
				fmt.Fprintln(out, helpSignedIn)
			} else {
				fmt.Fprintln(out, helpAnonymous)
			}

		case "go":
			if len(args) != 1 {
				cmdErr = usage("go <path>")
				break
			}
			cmdErr = a.Go(ctx, args[0])

		case "login":
			cmdErr = a.Login(ctx)

		case "register":
			cmdErr = a.Register(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "l", "list":
			cmdErr = a.List(ctx, args)

		case "new":
			cmdErr = a.New(ctx)

		case "view", "show":
			if len(args) != 1 {
				cmdErr = usage(cmd + " <id>")
				break
			}
			cmdErr = a.View(ctx, args[0])

		case "edit":
			if len(args) != 1 {
				cmdErr = usage("edit <id>")
				break
			}
			cmdErr = a.Edit(ctx, args[0])

		case "delete", "rm":
			if len(args) != 1 {
				cmdErr = usage(cmd + " <id>")
				break
			}
			cmdErr = a.Delete(ctx, args[0])

		case "profile":
			userID := ""
			if len(args) > 0 {
				userID = args[0]
			}
			cmdErr = a.Profile(ctx, userID)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(out, cmdErr.Error())
		}
		if err != nil {
			return
		}
	}
}

func usage(s string) error {
	return errors.New("Usage: " + s)
}
