package disk

import (
	"context"
	"fmt"

	"github.com/archtools/groundwork/internal/cmdexec"
)

// FormatBoot formats the EFI System Partition as FAT32, the filesystem
// UEFI firmware requires.
func FormatBoot(ctx context.Context, r cmdexec.Runner, partition string) error {
	if err := r.Run(ctx, "mkfs.fat", "-F", "32", partition); err != nil {
		return fmt.Errorf("failed to format %s as FAT32: %w", partition, err)
	}
	return nil
}

// FormatSwap initializes the partition as swap space and activates it.
func FormatSwap(ctx context.Context, r cmdexec.Runner, partition string) error {
	if err := r.Run(ctx, "mkswap", partition); err != nil {
		return fmt.Errorf("failed to initialize swap on %s: %w", partition, err)
	}
	if err := r.Run(ctx, "swapon", partition); err != nil {
		return fmt.Errorf("failed to activate swap on %s: %w", partition, err)
	}
	return nil
}

// FormatRoot formats the root partition as Btrfs. -f overwrites any
// leftover filesystem the wipe stage did not recognize.
func FormatRoot(ctx context.Context, r cmdexec.Runner, partition string) error {
	if err := r.Run(ctx, "mkfs.btrfs", "-f", partition); err != nil {
		return fmt.Errorf("failed to format %s as Btrfs: %w", partition, err)
	}
	return nil
}
