package disk

import (
	"context"
	"fmt"

	"github.com/archtools/groundwork/internal/cmdexec"
)

// wipeFallbackMiB is how much of the device start the dd fallback
// zeroes. 100 MiB covers every primary metadata region that matters
// here: MBR, GPT header and entries, and filesystem superblocks.
const wipeFallbackMiB = 100

// Wipe erases existing filesystem and partition-table signatures from
// the device. wipefs is the primary path; if it fails (old util-linux,
// exotic signatures it refuses to touch) the start of the device is
// zeroed and flushed instead.
func Wipe(ctx context.Context, r cmdexec.Runner, device string) error {
	if err := r.Run(ctx, "wipefs", "--all", device); err == nil {
		return nil
	}

	if err := r.Run(ctx, "dd",
		"if=/dev/zero",
		"of="+device,
		"bs=1M",
		fmt.Sprintf("count=%d", wipeFallbackMiB),
		"conv=fsync",
		"status=none",
	); err != nil {
		return fmt.Errorf("failed to wipe %s: %w", device, err)
	}
	_ = r.Quiet(ctx, "sync")

	return nil
}

// LabelGPT writes a fresh GPT partition table, destroying any previous
// table on the device.
func LabelGPT(ctx context.Context, r cmdexec.Runner, device string) error {
	if err := r.Run(ctx, "parted", "-s", device, "mklabel", "gpt"); err != nil {
		return fmt.Errorf("failed to create GPT label on %s: %w", device, err)
	}
	return nil
}
