package disk

import (
	"context"
	"fmt"

	"github.com/archtools/groundwork/internal/cmdexec"
	"github.com/archtools/groundwork/internal/config"
)

// partitionStartMiB is where the first partition begins, leaving the
// conventional 1 MiB alignment gap after the GPT structures.
const partitionStartMiB = 1

// Partition creates the layout's partitions on a freshly labeled device:
// the ESP first, then the swap partition when the layout has one, then
// the root partition spanning the remaining space. swapSizeMiB is the
// resolved swap size and is ignored for layouts without swap.
func Partition(ctx context.Context, r cmdexec.Runner, device string, layout *config.Layout, swapSizeMiB int) error {
	bootEnd := partitionStartMiB + layout.BootSizeMiB

	if err := r.Run(ctx, "parted", "-s", device, "mkpart", "ESP", "fat32",
		mib(partitionStartMiB), mib(bootEnd)); err != nil {
		return fmt.Errorf("failed to create EFI partition: %w", err)
	}
	if err := r.Run(ctx, "parted", "-s", device, "set", "1", "esp", "on"); err != nil {
		return fmt.Errorf("failed to set ESP flag: %w", err)
	}
	if err := r.Run(ctx, "parted", "-s", device, "set", "1", "boot", "on"); err != nil {
		return fmt.Errorf("failed to set boot flag: %w", err)
	}

	rootStart := bootEnd
	if layout.Swap {
		if swapSizeMiB <= 0 {
			return fmt.Errorf("swap size must be > 0, got %d MiB", swapSizeMiB)
		}
		swapEnd := bootEnd + swapSizeMiB
		if err := r.Run(ctx, "parted", "-s", device, "mkpart", "swap", "linux-swap",
			mib(bootEnd), mib(swapEnd)); err != nil {
			return fmt.Errorf("failed to create swap partition: %w", err)
		}
		rootStart = swapEnd
	}

	if err := r.Run(ctx, "parted", "-s", device, "mkpart", "root", "btrfs",
		mib(rootStart), "100%"); err != nil {
		return fmt.Errorf("failed to create root partition: %w", err)
	}

	return nil
}

// Probe asks the kernel to re-read the device's partition table. The
// caller still has to wait for the new device nodes to appear; partprobe
// returns before udev finishes creating them.
func Probe(ctx context.Context, r cmdexec.Runner, device string) error {
	if err := r.Quiet(ctx, "partprobe", device); err != nil {
		return fmt.Errorf("failed to re-read partition table on %s: %w", device, err)
	}
	return nil
}

func mib(n int) string {
	return fmt.Sprintf("%dMiB", n)
}
