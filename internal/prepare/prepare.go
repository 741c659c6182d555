package prepare

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/archtools/groundwork/internal/block"
	"github.com/archtools/groundwork/internal/cmdexec"
	"github.com/archtools/groundwork/internal/config"
	"github.com/archtools/groundwork/internal/console"
	"github.com/archtools/groundwork/internal/disk"
	"github.com/archtools/groundwork/internal/output"
)

// Preparer runs the interactive preparation pipeline.
type Preparer struct {
	Runner  cmdexec.Runner
	Console *console.Console

	// MemTotal reports total system RAM in MiB, used to size the swap
	// partition when the layout does not override it. Defaults to
	// reading /proc/meminfo.
	MemTotal func() (int, error)

	// SettleTimeout bounds the wait for partition device nodes after
	// partitioning. Zero means block.DefaultSettleTimeout.
	SettleTimeout time.Duration

	// WaitForNodes waits for the expected partition device nodes.
	// Defaults to block.WaitForPartitions.
	WaitForNodes func(ctx context.Context, nodes []string, timeout time.Duration) error
}

// New returns a Preparer on the real runner and process streams.
func New() *Preparer {
	return &Preparer{
		Runner:       cmdexec.NewExecRunner(),
		Console:      console.New(),
		MemTotal:     block.MemTotalMiB,
		WaitForNodes: block.WaitForPartitions,
	}
}

// Run executes the full pipeline against one disk. presetDevice, when
// non-empty, pre-answers the disk prompt. Any returned error means the
// run stopped before completion; partially applied changes are not
// rolled back.
func (p *Preparer) Run(ctx context.Context, layout *config.Layout, presetDevice string) error {
	if err := p.showDisks(ctx); err != nil {
		return err
	}

	dev, err := p.selectDevice(ctx, presetDevice)
	if err != nil {
		return err
	}

	swapSizeMiB, err := p.resolveSwapSize(layout)
	if err != nil {
		return err
	}

	plan := NewPlan(dev.Path(), *layout, swapSizeMiB)

	ok, err := p.Console.Confirm(fmt.Sprintf("This will ERASE ALL DATA on %s (%s). Continue?",
		plan.Device, humanize.IBytes(dev.Size)))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("aborted: wipe of %s declined", plan.Device)
	}

	if err := p.wipeAndPartition(ctx, plan); err != nil {
		return err
	}

	ok, err = p.Console.Confirm(fmt.Sprintf("Create filesystems and mount under %s?", plan.Layout.TargetRoot))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("aborted: filesystem creation declined")
	}

	if err := p.formatAndMount(ctx, plan); err != nil {
		return err
	}

	p.summarize(plan)
	return nil
}

func (p *Preparer) showDisks(ctx context.Context) error {
	disks, err := block.List(ctx, p.Runner)
	if err != nil {
		return err
	}
	rootDisk, err := block.RootDisk(ctx, p.Runner)
	if err != nil {
		return fmt.Errorf("failed to determine system disk: %w", err)
	}

	table := &output.TableFormatter{RootDisk: rootDisk}
	listing, err := table.FormatDevices(disks)
	if err != nil {
		return err
	}
	p.Console.Printf("%s\n", listing)
	return nil
}

// resolveSwapSize picks the swap partition size: the layout override if
// set, otherwise total system RAM.
func (p *Preparer) resolveSwapSize(layout *config.Layout) (int, error) {
	if !layout.Swap {
		return 0, nil
	}
	if layout.SwapSizeMiB > 0 {
		return layout.SwapSizeMiB, nil
	}
	memMiB, err := p.MemTotal()
	if err != nil {
		return 0, fmt.Errorf("failed to determine RAM size for swap: %w", err)
	}
	return memMiB, nil
}

func (p *Preparer) wipeAndPartition(ctx context.Context, plan Plan) error {
	p.Console.Infof("Wiping %s...", plan.Device)
	if err := disk.Wipe(ctx, p.Runner, plan.Device); err != nil {
		return err
	}
	if err := disk.LabelGPT(ctx, p.Runner, plan.Device); err != nil {
		return err
	}
	p.Console.Successf("GPT label written")

	p.Console.Infof("Partitioning %s...", plan.Device)
	if err := disk.Partition(ctx, p.Runner, plan.Device, &plan.Layout, plan.SwapSizeMiB); err != nil {
		return err
	}
	if err := disk.Probe(ctx, p.Runner, plan.Device); err != nil {
		return err
	}
	wait := p.WaitForNodes
	if wait == nil {
		wait = block.WaitForPartitions
	}
	if err := wait(ctx, plan.PartitionNodes(), p.SettleTimeout); err != nil {
		return err
	}
	p.Console.Successf("Partitions created: %d", plan.Layout.PartitionCount())

	return nil
}

func (p *Preparer) formatAndMount(ctx context.Context, plan Plan) error {
	p.Console.Infof("Formatting %s as FAT32...", plan.BootPartition)
	if err := disk.FormatBoot(ctx, p.Runner, plan.BootPartition); err != nil {
		return err
	}

	if plan.SwapPartition != "" {
		p.Console.Infof("Activating swap on %s (%d MiB)...", plan.SwapPartition, plan.SwapSizeMiB)
		if err := disk.FormatSwap(ctx, p.Runner, plan.SwapPartition); err != nil {
			return err
		}
	}

	p.Console.Infof("Formatting %s as Btrfs...", plan.RootPartition)
	if err := disk.FormatRoot(ctx, p.Runner, plan.RootPartition); err != nil {
		return err
	}

	p.Console.Infof("Creating subvolumes...")
	if err := disk.CreateSubvolumes(ctx, p.Runner, plan.RootPartition, &plan.Layout); err != nil {
		return err
	}

	p.Console.Infof("Mounting hierarchy under %s...", plan.Layout.TargetRoot)
	if err := disk.MountHierarchy(ctx, p.Runner, plan.BootPartition, plan.RootPartition, &plan.Layout); err != nil {
		return err
	}

	return nil
}

func (p *Preparer) summarize(plan Plan) {
	p.Console.Successf("%s is ready for installation", plan.Device)
	p.Console.Infof("  %s  FAT32  %s", plan.BootPartition, filepath.Join(plan.Layout.TargetRoot, "boot"))
	if plan.SwapPartition != "" {
		p.Console.Infof("  %s  swap   active (%d MiB)", plan.SwapPartition, plan.SwapSizeMiB)
	}
	p.Console.Infof("  %s  btrfs  %s", plan.RootPartition, plan.Layout.TargetRoot)
	for _, sv := range plan.Layout.Subvolumes {
		p.Console.Infof("    %-11s %s", sv.Name, filepath.Join(plan.Layout.TargetRoot, sv.Path))
	}
}
