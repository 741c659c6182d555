// Package console handles groundwork's interaction with the user:
// prompts, yes/no confirmation gates, and leveled output. Info and
// warnings go to stdout, errors to stderr. Streams are injected so tests
// can script answers and capture output.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Console reads answers from in and writes leveled output to out/errOut.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

// New returns a Console on the process streams.
func New() *Console {
	return NewWithStreams(os.Stdin, os.Stdout, os.Stderr)
}

// NewWithStreams returns a Console on the given streams.
func NewWithStreams(in io.Reader, out, errOut io.Writer) *Console {
	return &Console{
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
	}
}

// Printf writes plain output to stdout.
func (c *Console) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

// Infof writes an informational line to stdout.
func (c *Console) Infof(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Successf writes a success line to stdout with a leading check mark.
func (c *Console) Successf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, "%s %s\n", color.GreenString("✓"), fmt.Sprintf(format, args...))
}

// Warnf writes a warning line to stdout.
func (c *Console) Warnf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, "%s %s\n", color.YellowString("warning:"), fmt.Sprintf(format, args...))
}

// Errorf writes an error line to stderr.
func (c *Console) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(c.errOut, "%s %s\n", color.RedString("error:"), fmt.Sprintf(format, args...))
}

// Prompt displays a label and reads one line of input.
func (c *Console) Prompt(label string) (string, error) {
	fmt.Fprintf(c.out, "%s: ", label)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question and returns true only for an explicit
// yes. Anything else, including EOF, counts as a decline.
func (c *Console) Confirm(question string) (bool, error) {
	fmt.Fprintf(c.out, "%s [y/N]: ", color.New(color.Bold).Sprint(question))
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
