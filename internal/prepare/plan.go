package prepare

import (
	"github.com/archtools/groundwork/internal/block"
	"github.com/archtools/groundwork/internal/config"
)

// Plan is the fully resolved description of what will be done to one
// disk. It is built once, after device selection, and treated as
// immutable by every stage that consumes it.
type Plan struct {
	// Device is the whole-disk /dev path being prepared.
	Device string

	// Layout is the partition and subvolume layout to apply.
	Layout config.Layout

	// SwapSizeMiB is the resolved swap partition size; zero when the
	// layout has no swap.
	SwapSizeMiB int

	// BootPartition is the device node of the EFI System Partition.
	BootPartition string

	// SwapPartition is the device node of the swap partition, empty when
	// the layout has no swap.
	SwapPartition string

	// RootPartition is the device node of the Btrfs root partition,
	// always the last partition on the disk.
	RootPartition string
}

// NewPlan resolves a layout against a selected device. swapSizeMiB is
// the already-resolved swap size (layout override or total RAM).
func NewPlan(device string, layout config.Layout, swapSizeMiB int) Plan {
	plan := Plan{
		Device:        device,
		Layout:        layout,
		BootPartition: block.PartitionPath(device, 1),
		RootPartition: block.PartitionPath(device, layout.RootIndex()),
	}
	if layout.Swap {
		plan.SwapSizeMiB = swapSizeMiB
		plan.SwapPartition = block.PartitionPath(device, layout.SwapIndex())
	}
	return plan
}

// PartitionNodes returns the device nodes the partitioning stage is
// expected to produce, in partition order.
func (p *Plan) PartitionNodes() []string {
	nodes := []string{p.BootPartition}
	if p.SwapPartition != "" {
		nodes = append(nodes, p.SwapPartition)
	}
	return append(nodes, p.RootPartition)
}
