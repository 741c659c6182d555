package block

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/archtools/groundwork/internal/cmdexec"
)

// RootDisk returns the /dev path of the whole disk backing the running
// root filesystem. The findmnt source is resolved through symlinks
// (by-uuid, by-id, LVM names) before the partition suffix is stripped.
func RootDisk(ctx context.Context, r cmdexec.Runner) (string, error) {
	out, err := r.Output(ctx, "findmnt", "-n", "-o", "SOURCE", "/")
	if err != nil {
		return "", fmt.Errorf("failed to find root filesystem source: %w", err)
	}

	source := strings.TrimSpace(string(out))
	// Btrfs roots are reported as /dev/sda2[/@]; drop the subvolume part.
	if idx := strings.Index(source, "["); idx != -1 {
		source = source[:idx]
	}
	if source == "" {
		return "", fmt.Errorf("could not determine root filesystem source")
	}

	resolved, err := filepath.EvalSymlinks(source)
	if err != nil {
		// Sources like "overlay" or "zroot/ROOT" are not paths; there is
		// no disk to guard against in that case.
		resolved = source
	}

	return "/dev/" + BaseDevice(filepath.Base(resolved)), nil
}

// SameDisk reports whether two /dev paths refer to the same underlying
// device. Both paths are resolved and compared by their device numbers
// (st_rdev), so differing names for one disk still match. If either
// device cannot be stat'ed the comparison falls back to the resolved
// path strings.
func SameDisk(a, b string) bool {
	ra := resolvePath(a)
	rb := resolvePath(b)

	rdevA, errA := deviceNumber(ra)
	rdevB, errB := deviceNumber(rb)
	if errA == nil && errB == nil {
		return rdevA == rdevB
	}

	return ra == rb
}

func resolvePath(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return filepath.Clean(path)
}

func deviceNumber(path string) (uint64, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, err
	}
	if st.Mode&unix.S_IFMT != unix.S_IFBLK {
		return 0, fmt.Errorf("%s is not a block device", path)
	}
	return uint64(st.Rdev), nil
}
