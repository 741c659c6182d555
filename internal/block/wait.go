package block

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// DefaultSettleTimeout bounds how long WaitForPartitions waits for the
// kernel to publish new partition device nodes after a table change.
const DefaultSettleTimeout = 10 * time.Second

const pollInterval = 100 * time.Millisecond

// WaitForPartitions polls until every path in nodes exists, or fails
// after timeout. A fixed sleep is not enough here: partprobe returns
// before udev has created the nodes, and the next stage reads them.
func WaitForPartitions(ctx context.Context, nodes []string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultSettleTimeout
	}
	deadline := time.Now().Add(timeout)

	for {
		missing := missingNodes(nodes)
		if len(missing) == 0 {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("partition device nodes not ready after %s: %s",
				timeout, strings.Join(missing, ", "))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

func missingNodes(nodes []string) []string {
	var missing []string
	for _, node := range nodes {
		if _, err := os.Stat(node); err != nil {
			missing = append(missing, node)
		}
	}
	return missing
}
