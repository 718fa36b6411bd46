// Package commandtest provides a scripted command.Runner for tests.
package commandtest

import (
	"context"
	"strings"
	"sync"

	"github.com/mail-sync/mail-tray/internal/command"
)

// Call records one invocation.
type Call struct {
	Name string
	Args []string
}

// String renders the call as a shell-like line.
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Fake is a command.Runner whose results come from Handler. Executables listed
// in Missing behave as if not installed.
type Fake struct {
	Missing map[string]bool
	Handler func(name string, args []string) (command.Output, error)

	mu    sync.Mutex
	calls []Call
}

// Run records the call and returns the scripted result.
func (f *Fake) Run(ctx context.Context, name string, args ...string) (command.Output, error) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Name: name, Args: append([]string(nil), args...)})
	f.mu.Unlock()

	if f.Missing[name] {
		return command.Output{}, &command.Error{Name: name, Kind: command.ErrNotFound}
	}
	if err := ctx.Err(); err != nil {
		return command.Output{}, &command.Error{Name: name, Err: err}
	}
	if f.Handler == nil {
		return command.Output{}, nil
	}
	return f.Handler(name, args)
}

// LookPath succeeds unless name is in Missing.
func (f *Fake) LookPath(name string) (string, error) {
	if f.Missing[name] {
		return "", &command.Error{Name: name, Kind: command.ErrNotFound}
	}
	return "/usr/bin/" + name, nil
}

// Calls returns a copy of the recorded calls.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo returns the recorded calls of one executable.
func (f *Fake) CallsTo(name string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Exit builds the result of a command that exited with code.
func Exit(name string, code int, stdout, stderr string) (command.Output, error) {
	out := command.Output{ExitCode: code, Stdout: stdout, Stderr: stderr}
	if code == 0 {
		return out, nil
	}
	return out, &command.Error{Name: name, Kind: command.ErrExit, Output: out}
}
