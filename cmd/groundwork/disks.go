package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archtools/groundwork/internal/block"
	"github.com/archtools/groundwork/internal/cmdexec"
	"github.com/archtools/groundwork/internal/output"
)

var (
	outputFormat string
	noHeaders    bool
)

var disksCmd = &cobra.Command{
	Use:   "disks",
	Short: "List candidate disks",
	Long: `List the system's whole-disk block devices.

The disk backing the running root filesystem is marked "(system)"; the
prepare command refuses to select it.

Output formats:
  -o table  Human-readable table (default)
  -o yaml   YAML listing
  -o json   JSON listing`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := output.ValidateFormat(outputFormat); err != nil {
			return err
		}

		ctx := context.Background()
		runner := cmdexec.NewExecRunner()

		disks, err := block.List(ctx, runner)
		if err != nil {
			return err
		}

		rootDisk, err := block.RootDisk(ctx, runner)
		if err != nil {
			// Listing still works without the marker (e.g. overlay roots
			// on live media).
			rootDisk = ""
		}

		formatter, err := output.NewFormatter(output.Options{
			Format:    output.Format(outputFormat),
			NoHeaders: noHeaders,
			RootDisk:  rootDisk,
		})
		if err != nil {
			return err
		}

		result, err := formatter.FormatDevices(disks)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

func init() {
	disksCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, yaml, json)")
	disksCmd.Flags().BoolVar(&noHeaders, "no-headers", false, "omit headers in table output")
}
