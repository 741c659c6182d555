package prepare

import (
	"context"
	"fmt"
	"strings"
)

// mockRunner is a scripted cmdexec.Runner. Output results are queued
// per command-line prefix so a query can change its answer between
// calls (e.g. lsblk before and after a forced unmount); the last queued
// value keeps being returned once the queue drains to one.
type mockRunner struct {
	calls    []string
	outputs  map[string][]string
	failures map[string]error
}

func newMockRunner() *mockRunner {
	return &mockRunner{
		outputs:  make(map[string][]string),
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
	for prefix, queue := range m.outputs {
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		out := queue[0]
		if len(queue) > 1 {
			m.outputs[prefix] = queue[1:]
		}
		return []byte(out), nil
	}
	return nil, fmt.Errorf("no scripted output for %q", line)
}

func (m *mockRunner) Quiet(ctx context.Context, name string, args ...string) error {
	line := m.line(name, args)
	m.calls = append(m.calls, line)
	return m.fail(line)
}

func (m *mockRunner) called(prefix string) bool {
	for _, call := range m.calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}

// callsWithPrefix returns the recorded command lines matching a prefix.
func (m *mockRunner) callsWithPrefix(prefix string) []string {
	var matched []string
	for _, call := range m.calls {
		if strings.HasPrefix(call, prefix) {
			matched = append(matched, call)
		}
	}
	return matched
}
