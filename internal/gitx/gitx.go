// Package gitx wraps invocation of the external git binary.
//
// All remote transport and history handling is delegated to git itself; this
// package only runs subcommands against a working directory, applies a hard
// timeout, and normalizes failures into a single error type so callers never
// have to interpret exit codes.
package gitx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds ordinary git operations (pull, add, commit, push).
	DefaultTimeout = 30 * time.Second

	// CloneTimeout bounds clone operations, which move more data.
	CloneTimeout = 60 * time.Second
)

// CommandError is the single failure kind surfaced for any git invocation
// that exited non-zero or timed out. It carries the raw message for
// diagnostics but is never interpreted further.
type CommandError struct {
	Args     []string
	Dir      string
	Message  string
	TimedOut bool
}

func (e *CommandError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("git %s timed out in %s", strings.Join(e.Args, " "), e.Dir)
	}
	return fmt.Sprintf("git %s failed in %s: %s", strings.Join(e.Args, " "), e.Dir, e.Message)
}

// IsCommandError reports whether err is (or wraps) a git CommandError.
func IsCommandError(err error) bool {
	var ce *CommandError
	return errors.As(err, &ce)
}

// Executor runs git subcommands against a fixed working directory.
// The zero value is not usable; construct with New.
type Executor struct {
	dir     string
	timeout time.Duration
}

// New returns an Executor bound to dir with the default timeout.
func New(dir string) *Executor {
	return &Executor{dir: dir, timeout: DefaultTimeout}
}

// WithTimeout returns a copy of the executor using the given timeout.
// Used for clone, which gets a longer budget.
func (e *Executor) WithTimeout(d time.Duration) *Executor {
	return &Executor{dir: e.dir, timeout: d}
}

// Dir returns the working directory this executor is bound to.
func (e *Executor) Dir() string {
	return e.dir
}

// Run executes `git args...` in the executor's directory and returns the
// trimmed standard output. Any non-zero exit or timeout is returned as a
// *CommandError; stderr is folded into the message.
func (e *Executor) Run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...) // #nosec G204 - args assembled by callers, never user-supplied shell text
	cmd.Dir = e.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", &CommandError{
			Args:     args,
			Dir:      e.dir,
			Message:  msg,
			TimedOut: errors.Is(ctx.Err(), context.DeadlineExceeded),
		}
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Clone clones url into dest using the longer clone timeout. The executor's
// own directory is used only as the process working directory; dest may be
// absolute.
func (e *Executor) Clone(ctx context.Context, url, dest string) error {
	_, err := e.WithTimeout(CloneTimeout).Run(ctx, "clone", url, dest)
	return err
}

// Available reports whether a git binary can be found on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}
