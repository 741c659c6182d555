package disk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/archtools/groundwork/internal/cmdexec"
	"github.com/archtools/groundwork/internal/config"
)

// mkdirAll is swapped in tests so mount sequences can run without
// touching the real filesystem.
var mkdirAll = os.MkdirAll

// CreateSubvolumes mounts the raw Btrfs root partition at the target
// root, creates the layout's subvolumes in order, and unmounts again.
// The unmount is part of the contract: the raw top-level filesystem must
// not stay mounted once the subvolume remounts happen.
func CreateSubvolumes(ctx context.Context, r cmdexec.Runner, rootPartition string, layout *config.Layout) error {
	if err := mkdirAll(layout.TargetRoot, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", layout.TargetRoot, err)
	}
	if err := r.Run(ctx, "mount", rootPartition, layout.TargetRoot); err != nil {
		return fmt.Errorf("failed to mount %s: %w", rootPartition, err)
	}

	for _, sv := range layout.Subvolumes {
		path := filepath.Join(layout.TargetRoot, sv.Name)
		if err := r.Run(ctx, "btrfs", "subvolume", "create", path); err != nil {
			// Leave the temporary mount for the user to inspect; the
			// device state is already inconsistent and we do not roll back.
			return fmt.Errorf("failed to create subvolume %s: %w", sv.Name, err)
		}
	}

	if err := r.Run(ctx, "umount", layout.TargetRoot); err != nil {
		return fmt.Errorf("failed to unmount %s: %w", layout.TargetRoot, err)
	}

	return nil
}

// MountHierarchy mounts the prepared filesystems at their final places
// under the target root: the root subvolume first, then each secondary
// subvolume at its path, then the ESP at /boot.
func MountHierarchy(ctx context.Context, r cmdexec.Runner, bootPartition, rootPartition string, layout *config.Layout) error {
	root := layout.Subvolumes[0]
	if err := r.Run(ctx, "mount", "-o", subvolOptions(root, layout.Compression),
		rootPartition, layout.TargetRoot); err != nil {
		return fmt.Errorf("failed to mount root subvolume: %w", err)
	}

	for _, sv := range layout.Subvolumes[1:] {
		target := filepath.Join(layout.TargetRoot, sv.Path)
		if err := mkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create mountpoint %s: %w", target, err)
		}
		if err := r.Run(ctx, "mount", "-o", subvolOptions(sv, layout.Compression),
			rootPartition, target); err != nil {
			return fmt.Errorf("failed to mount subvolume %s: %w", sv.Name, err)
		}
	}

	bootTarget := filepath.Join(layout.TargetRoot, "boot")
	if err := mkdirAll(bootTarget, 0o755); err != nil {
		return fmt.Errorf("failed to create mountpoint %s: %w", bootTarget, err)
	}
	if err := r.Run(ctx, "mount", bootPartition, bootTarget); err != nil {
		return fmt.Errorf("failed to mount boot partition: %w", err)
	}

	return nil
}

// subvolOptions builds the -o argument for a subvolume mount.
func subvolOptions(sv config.Subvolume, compression string) string {
	if sv.Compress {
		return fmt.Sprintf("compress=%s,subvol=%s", compression, sv.Name)
	}
	return "subvol=" + sv.Name
}
