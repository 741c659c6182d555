package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/archtools/groundwork/internal/config"
	"github.com/archtools/groundwork/internal/prepare"
)

var (
	profileName string
	layoutFile  string
	targetRoot  string
	deviceFlag  string
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Interactively prepare a disk",
	Long: `Prepare a disk for an Arch Linux installation.

The command walks through disk selection, a wipe confirmation, GPT
partitioning, and filesystem creation. Every destructive step is gated
by an explicit confirmation; declining one stops the run.

Layouts:
  --profile default  512 MiB ESP, swap sized to RAM, subvolumes
                     @ @home @snapshots @log @pkg
  --profile noswap   2 GiB ESP, no swap, subvolumes @ @home @snapshots
  --config <file>    full layout from a YAML file

Example:
  groundwork prepare --profile noswap --target /mnt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := resolveLayout()
		if err != nil {
			return err
		}

		return prepare.New().Run(context.Background(), layout, deviceFlag)
	},
}

func init() {
	prepareCmd.Flags().StringVar(&profileName, "profile", config.ProfileDefault,
		fmt.Sprintf("built-in layout profile (%s)", strings.Join(config.BuiltinProfiles(), ", ")))
	prepareCmd.Flags().StringVar(&layoutFile, "config", "",
		"layout YAML file (overrides --profile)")
	prepareCmd.Flags().StringVar(&targetRoot, "target", "",
		"mount root for the prepared hierarchy (default /mnt)")
	prepareCmd.Flags().StringVar(&deviceFlag, "device", "",
		"pre-answer the disk prompt (still validated and confirmed)")
}

func resolveLayout() (*config.Layout, error) {
	var layout *config.Layout
	var err error

	if layoutFile != "" {
		layout, err = config.Load(layoutFile)
	} else {
		layout, err = config.Profile(profileName)
	}
	if err != nil {
		return nil, err
	}

	if targetRoot != "" {
		layout.TargetRoot = targetRoot
		if err := layout.Validate(); err != nil {
			return nil, err
		}
	}

	return layout, nil
}
