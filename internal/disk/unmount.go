package disk

import (
	"context"
	"fmt"

	"github.com/archtools/groundwork/internal/block"
	"github.com/archtools/groundwork/internal/cmdexec"
)

// ForceUnmount releases every given partition: active swap is
// deactivated, every mountpoint is recursively unmounted. Only runs
// after the user has explicitly confirmed the remediation.
func ForceUnmount(ctx context.Context, r cmdexec.Runner, partitions []block.Partition) error {
	for _, part := range partitions {
		if part.IsSwap() {
			if err := r.Run(ctx, "swapoff", part.Path); err != nil {
				return fmt.Errorf("failed to deactivate swap on %s: %w", part.Path, err)
			}
		}
		for _, mountpoint := range part.Mountpoints {
			if mountpoint == "[SWAP]" {
				continue
			}
			if err := r.Run(ctx, "umount", "-R", mountpoint); err != nil {
				return fmt.Errorf("failed to unmount %s: %w", mountpoint, err)
			}
		}
	}
	return nil
}
