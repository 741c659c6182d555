// Package cmdexec provides the boundary between groundwork and the
// external system tools it drives (lsblk, parted, mkfs, btrfs, mount).
//
// Every package that mutates or inspects block-device state takes a
// Runner rather than calling os/exec directly. In production the Runner
// is an ExecRunner; in tests it is a scripted mock that records the
// exact command lines and simulates tool failures deterministically.
package cmdexec

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner executes external commands.
type Runner interface {
	// Run executes a command, streaming its stdout/stderr to the
	// process streams. Used for tools whose output the user should see
	// (parted print, mkfs progress).
	Run(ctx context.Context, name string, args ...string) error

	// Output executes a command and returns its stdout. Stderr is
	// discarded unless the command fails, in which case it is included
	// in the error.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// Quiet executes a command with all output suppressed. Used for
	// best-effort calls (partprobe, sync) and remediation commands.
	Quiet(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", commandLine(name, args), err)
	}
	return nil
}

func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %w: %s", commandLine(name, args), err, strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("%s: %w", commandLine(name, args), err)
	}
	return out, nil
}

func (r *ExecRunner) Quiet(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", commandLine(name, args), err)
	}
	return nil
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
