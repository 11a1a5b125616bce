package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
)

// TimeoutCommands is the default max execution time for a git command (0 to disable)
var TimeoutCommands = 10 * time.Minute

type logger interface {
	Debugf(format string, args ...interface{})
}

// Runner executes git subcommands in a given directory
type Runner interface {
	// Run executes the command, forwarding its output to the terminal
	Run(ctx context.Context, dir string, args ...string) error
	// Output executes the command and returns its trimmed standard output
	Output(ctx context.Context, dir string, args ...string) (string, error)
}

// CommandError is returned when git couldn't run or exited with a non-zero code
type CommandError struct {
	Args     []string
	ExitCode int
	Output   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s failed with code %d: %v", strings.Join(e.Args, " "), e.ExitCode, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitCode returns the git exit code carried by err, or -1
func ExitCode(err error) int {
	var cerr *CommandError
	if errors.As(err, &cerr) {
		return cerr.ExitCode
	}
	return -1
}

// Cmd runs the real git binary
type Cmd struct {
	Logger  logger
	Binary  string
	Stdout  io.Writer
	Stderr  io.Writer
	Stdin   io.Reader
	Author  string
	Email   string
	Timeout time.Duration
	DryRun  bool
}

// New instantiate a git runner streaming to the process' standard outputs.
func New(log logger, dryRun bool) *Cmd {
	return &Cmd{
		Logger:  log,
		Binary:  "git",
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Stdin:   os.Stdin,
		Timeout: TimeoutCommands,
		DryRun:  dryRun,
	}
}

// Run executes a git subcommand with inherited standard streams
func (c *Cmd) Run(ctx context.Context, dir string, args ...string) error {
	if c.skip(dir, args) {
		return nil
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	cmd := c.command(ctx, dir, args)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		return newCommandError(ctx, args, "", err)
	}

	return nil
}

// Output executes a git subcommand and captures its standard output
func (c *Cmd) Output(ctx context.Context, dir string, args ...string) (string, error) {
	if c.skip(dir, args) {
		return "", nil
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := c.command(ctx, dir, args)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", newCommandError(ctx, args, stderr.String(), err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

func (c *Cmd) skip(dir string, args []string) bool {
	if c.Logger != nil {
		c.Logger.Debugf("git %s (in %s)", strings.Join(args, " "), dir)
	}
	return c.DryRun
}

func (c *Cmd) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok || c.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.Timeout)
}

func (c *Cmd) command(ctx context.Context, dir string, args []string) *exec.Cmd {
	bin := c.Binary
	if bin == "" {
		bin = "git"
	}

	cmd := exec.CommandContext(ctx, bin, args...) // #nosec
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), c.identity()...)
	return cmd
}

func (c *Cmd) identity() []string {
	var env []string
	if c.Author != "" {
		env = append(env, "GIT_AUTHOR_NAME="+c.Author, "GIT_COMMITTER_NAME="+c.Author)
	}
	if c.Email != "" {
		env = append(env, "GIT_AUTHOR_EMAIL="+c.Email, "GIT_COMMITTER_EMAIL="+c.Email)
	}
	return env
}

func newCommandError(ctx context.Context, args []string, output string, err error) *CommandError {
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	if ctx.Err() == context.DeadlineExceeded {
		err = ctx.Err()
	}
	return &CommandError{Args: args, ExitCode: code, Output: output, Err: err}
}

// Status tells wether the working tree in dir has uncommitted changes
func Status(ctx context.Context, r Runner, dir string) (changed bool, err error) {
	out, err := r.Output(ctx, dir, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("git status failed: %w", err)
	}

	return out != "", nil
}

// Head returns the commit hash the local repository's HEAD points to
func Head(dir string) (string, error) {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return "", fmt.Errorf("failed to open repository %s: %v", dir, err)
	}

	ref, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD in %s: %v", dir, err)
	}

	return ref.Hash().String(), nil
}
