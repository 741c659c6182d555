package disk

import (
	"context"
	"fmt"
	"strings"
)

// mockRunner is a scripted cmdexec.Runner that records command lines
// and simulates failures for commands matching a prefix.
type mockRunner struct {
	calls    []string
	failures map[string]error
}

func newMockRunner() *mockRunner {
	return &mockRunner{failures: make(map[string]error)}
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
	return nil, fmt.Errorf("no scripted output for %q", line)
}

func (m *mockRunner) Quiet(ctx context.Context, name string, args ...string) error {
	line := m.line(name, args)
	m.calls = append(m.calls, line)
	return m.fail(line)
}

// called reports whether any recorded command line has the prefix.
func (m *mockRunner) called(prefix string) bool {
	for _, call := range m.calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}
