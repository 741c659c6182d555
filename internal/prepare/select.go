package prepare

import (
	"context"
	"fmt"
	"strings"

	"github.com/archtools/groundwork/internal/block"
	"github.com/archtools/groundwork/internal/disk"
)

// selectDevice runs the selection loop: prompt for a disk, validate it,
// guard against the disk backing the running system, and remediate
// existing mounts with explicit consent. Invalid input re-prompts
// indefinitely with no side effects; only a declined forced unmount
// aborts.
//
// preset, when non-empty, answers the first prompt (the --device flag);
// if it fails validation the loop falls back to interactive prompting.
func (p *Preparer) selectDevice(ctx context.Context, preset string) (*block.Device, error) {
	rootDisk, err := block.RootDisk(ctx, p.Runner)
	if err != nil {
		return nil, fmt.Errorf("failed to determine system disk: %w", err)
	}

	input := strings.TrimSpace(preset)
	for {
		if input == "" {
			input, err = p.Console.Prompt("Disk to prepare (e.g. sda, nvme0n1)")
			if err != nil {
				return nil, err
			}
		}

		devicePath := block.NormalizeDevicePath(input)
		input = ""
		if devicePath == "" {
			continue
		}

		dev, err := block.Lookup(ctx, p.Runner, devicePath)
		if err != nil {
			p.Console.Warnf("%v", err)
			continue
		}

		if block.SameDisk(dev.Path(), rootDisk) {
			p.Console.Warnf("%s backs the running system's root filesystem, refusing to touch it", dev.Path())
			continue
		}

		dev, err = p.releaseMounts(ctx, dev)
		if err != nil {
			return nil, err
		}

		return dev, nil
	}
}

// releaseMounts handles a device that still has mounted partitions or
// active swap: it lists them, asks for consent to force-unmount, and
// re-reads the device afterwards. Declining is fatal to the run.
func (p *Preparer) releaseMounts(ctx context.Context, dev *block.Device) (*block.Device, error) {
	mounted := dev.MountedPartitions()
	if len(mounted) == 0 {
		return dev, nil
	}

	p.Console.Warnf("%s has partitions in use:", dev.Path())
	for _, part := range mounted {
		p.Console.Infof("  %s: %s", part.Path, strings.Join(part.Mountpoints, ", "))
	}

	ok, err := p.Console.Confirm(fmt.Sprintf("Force-unmount everything on %s?", dev.Path()))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("aborted: %s has mounted partitions", dev.Path())
	}

	if err := disk.ForceUnmount(ctx, p.Runner, mounted); err != nil {
		return nil, err
	}

	dev, err = block.Lookup(ctx, p.Runner, dev.Path())
	if err != nil {
		return nil, err
	}
	if remaining := dev.MountedPartitions(); len(remaining) > 0 {
		return nil, fmt.Errorf("%s still has mounted partitions after forced unmount", dev.Path())
	}

	return dev, nil
}
