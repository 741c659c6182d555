package block

import (
	"context"
	"fmt"
	"strings"
)

// mockRunner is a scripted cmdexec.Runner. Commands are matched by
// prefix against the recorded command line; unmatched Output calls fail.
type mockRunner struct {
	calls    []string
	outputs  map[string]string // command-line prefix -> stdout
	failures map[string]error  // command-line prefix -> error
}

func newMockRunner() *mockRunner {
	return &mockRunner{
		outputs:  make(map[string]string),
		failures: make(map[string]error),
	}
}

func (m *mockRunner) line(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

func (m *mockRunner) fail(line string) error {
	for prefix, err := range m.failures {
		if strings.HasPrefix(line, prefix) {
			return err
		}
	}
	return nil
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) error {
	line := m.line(name, args)
	m.calls = append(m.calls, line)
	return m.fail(line)
}

func (m *mockRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	line := m.line(name, args)
	m.calls = append(m.calls, line)
	if err := m.fail(line); err != nil {
		return nil, err
	}
	for prefix, out := range m.outputs {
		if strings.HasPrefix(line, prefix) {
			return []byte(out), nil
		}
	}
	return nil, fmt.Errorf("no scripted output for %q", line)
}

func (m *mockRunner) Quiet(ctx context.Context, name string, args ...string) error {
	line := m.line(name, args)
	m.calls = append(m.calls, line)
	return m.fail(line)
}
