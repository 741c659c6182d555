package block

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const meminfoPath = "/proc/meminfo"

// MemTotalMiB reads total system RAM in MiB from /proc/meminfo.
func MemTotalMiB() (int, error) {
	f, err := os.Open(meminfoPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", meminfoPath, err)
	}
	defer func() { _ = f.Close() }()

	return parseMemTotalMiB(f)
}

// parseMemTotalMiB extracts the MemTotal field from meminfo content.
// The kernel reports the value in KiB; the result truncates to MiB.
func parseMemTotalMiB(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0, fmt.Errorf("malformed MemTotal line: %q", line)
		}
		kib, err := strconv.Atoi(fields[1])
		if err != nil {
			return 0, fmt.Errorf("malformed MemTotal value %q: %w", fields[1], err)
		}
		return kib / 1024, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to read meminfo: %w", err)
	}
	return 0, fmt.Errorf("MemTotal not found in meminfo")
}
