// Package command runs external collaborator programs (systemctl, journalctl,
// notify-send, mu, emacsclient) and reports their outcome uniformly.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Sentinel errors for errors.Is checks.
var (
	ErrNotFound = errors.New("executable not found")
	ErrTimeout  = errors.New("command timed out")
	ErrExit     = errors.New("command exited with non-zero status")
)

// Output captures a finished command.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Error describes a failed invocation. Output is populated whenever the
// process actually ran.
type Error struct {
	Name   string
	Kind   error // ErrNotFound, ErrTimeout, ErrExit, or nil for start failures
	Output Output
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrExit:
		return fmt.Sprintf("%s: exit %d", e.Name, e.Output.ExitCode)
	case ErrTimeout:
		return fmt.Sprintf("%s: %v", e.Name, ErrTimeout)
	case ErrNotFound:
		return fmt.Sprintf("%s: %v", e.Name, ErrNotFound)
	}
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Runner runs one external command to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Output, error)
	LookPath(name string) (string, error)
}

// ExecRunner runs commands with os/exec, bounding each one by Timeout.
type ExecRunner struct {
	Timeout time.Duration
}

// NewExecRunner returns a runner that kills commands after timeout.
// A zero timeout means no bound beyond ctx.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

// LookPath reports whether name is installed.
func (r *ExecRunner) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", &Error{Name: name, Kind: ErrNotFound, Err: err}
	}
	return path, nil
}

// Run executes name with args and waits for it. A non-zero exit is returned as
// an *Error wrapping ErrExit with the captured output.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Don't let a child holding the pipes open outlive the kill.
	cmd.WaitDelay = time.Second

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if cmd.ProcessState != nil {
		out.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err == nil {
		return out, nil
	}
	if ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return out, &Error{Name: name, Kind: ErrTimeout, Output: out, Err: ctx.Err()}
	}
	if errors.Is(err, exec.ErrNotFound) {
		return out, &Error{Name: name, Kind: ErrNotFound, Err: err}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		return out, &Error{Name: name, Kind: ErrExit, Output: out, Err: err}
	}
	return out, &Error{Name: name, Output: out, Err: err}
}

// Describe picks the most informative text from a failed command: stderr,
// else stdout, else the exit code, else the error itself.
func Describe(err error) string {
	var cmdErr *Error
	if !errors.As(err, &cmdErr) {
		if err == nil {
			return ""
		}
		return err.Error()
	}
	if s := strings.TrimSpace(cmdErr.Output.Stderr); s != "" {
		return s
	}
	if s := strings.TrimSpace(cmdErr.Output.Stdout); s != "" {
		return s
	}
	if cmdErr.Kind == ErrExit {
		return fmt.Sprintf("exit %d", cmdErr.Output.ExitCode)
	}
	return cmdErr.Error()
}
