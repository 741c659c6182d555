package block

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/archtools/groundwork/internal/cmdexec"
)

// Device is a whole-disk block device as reported by lsblk.
type Device struct {
	Name        string   `json:"name"`
	Size        uint64   `json:"size"`
	Type        string   `json:"type"`
	Transport   string   `json:"tran"`
	Removable   bool     `json:"rm"`
	Mountpoints []string `json:"mountpoints"`
	Children    []Device `json:"children,omitempty"`
}

// Path returns the /dev path for the device.
func (d *Device) Path() string {
	return "/dev/" + d.Name
}

// Partition is a partition of a device together with its active
// mountpoints. An active swap partition carries the pseudo-mountpoint
// "[SWAP]" exactly as lsblk reports it.
type Partition struct {
	Name        string
	Path        string
	Mountpoints []string
}

// IsSwap reports whether the partition is active swap space.
func (p *Partition) IsSwap() bool {
	for _, m := range p.Mountpoints {
		if m == "[SWAP]" {
			return true
		}
	}
	return false
}

// lsblkReport is the top-level object of lsblk -J output.
type lsblkReport struct {
	BlockDevices []Device `json:"blockdevices"`
}

// lsblkColumns is the column set requested from lsblk. Sizes are
// requested in bytes (-b) so no unit parsing is needed.
const lsblkColumns = "NAME,SIZE,TYPE,TRAN,RM,MOUNTPOINTS"

// List returns the whole-disk devices on the system. Virtual devices
// (loop, ram, zram) are excluded; they are never valid install targets.
func List(ctx context.Context, r cmdexec.Runner) ([]Device, error) {
	out, err := r.Output(ctx, "lsblk", "-J", "-b", "-o", lsblkColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to list block devices: %w", err)
	}

	var report lsblkReport
	if err := json.Unmarshal(out, &report); err != nil {
		return nil, fmt.Errorf("failed to parse lsblk output: %w", err)
	}

	var disks []Device
	for _, d := range report.BlockDevices {
		if d.Type != "disk" {
			continue
		}
		if strings.HasPrefix(d.Name, "loop") || strings.HasPrefix(d.Name, "ram") || strings.HasPrefix(d.Name, "zram") {
			continue
		}
		disks = append(disks, d)
	}

	return disks, nil
}

// Lookup finds a whole-disk device by its /dev path. Returns an error if
// the path does not name a known disk.
func Lookup(ctx context.Context, r cmdexec.Runner, devicePath string) (*Device, error) {
	disks, err := List(ctx, r)
	if err != nil {
		return nil, err
	}
	for i := range disks {
		if disks[i].Path() == devicePath {
			return &disks[i], nil
		}
	}
	return nil, fmt.Errorf("%s is not a disk device", devicePath)
}

// MountedPartitions returns the device's partitions that are currently
// mounted or in use as active swap.
func (d *Device) MountedPartitions() []Partition {
	var mounted []Partition
	for _, child := range d.Children {
		if child.Type != "part" {
			continue
		}
		var points []string
		for _, m := range child.Mountpoints {
			if m != "" {
				points = append(points, m)
			}
		}
		if len(points) == 0 {
			continue
		}
		mounted = append(mounted, Partition{
			Name:        child.Name,
			Path:        "/dev/" + child.Name,
			Mountpoints: points,
		})
	}
	return mounted
}
