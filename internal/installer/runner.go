package installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner starts external programs in a project directory.
type Runner interface {
	// Run passes the program's stdio straight through to the operator.
	Run(ctx context.Context, dir, name string, args ...string) error
	// Output captures combined stdout and stderr.
	Output(ctx context.Context, dir, name string, args ...string) (string, error)
}

// ExecRunner runs real processes. There is no timeout; a hung installer
// blocks until the operator interrupts it.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner wired to the process's own stdio.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", commandLine(name, args), err)
	}
	return nil
}

func (r *ExecRunner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}

func commandLine(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

// commandError folds captured output into the error so it is not lost.
func commandError(name string, args []string, out string, err error) error {
	if out == "" {
		return fmt.Errorf("%s: %w", commandLine(name, args), err)
	}
	return fmt.Errorf("%s: %w: %s", commandLine(name, args), err, lastLine(out))
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}
