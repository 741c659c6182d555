package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "groundwork",
	Short: "Groundwork - disk preparation for Arch Linux installs",
	Long: `Groundwork interactively prepares a disk for an Arch Linux installation.

It selects a target disk with safety checks, wipes it, writes a GPT
partition table with an EFI System Partition (and optionally swap),
formats the root partition as Btrfs, and mounts a subvolume hierarchy
under the install root, ready for pacstrap.`,
	Version: fmt.Sprintf("%s (commit: %s)", version, commit),
}

func init() {
	rootCmd.AddCommand(prepareCmd)
	rootCmd.AddCommand(disksCmd)
}
