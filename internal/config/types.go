package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Layout describes the on-disk layout groundwork prepares: the ESP size,
// whether a swap partition is created, and the Btrfs subvolume set with
// its mountpoints.
type Layout struct {
	// BootSizeMiB is the size of the EFI System Partition in MiB.
	BootSizeMiB int `yaml:"boot_size_mib"`

	// Swap enables a swap partition between the ESP and the root partition.
	Swap bool `yaml:"swap"`

	// SwapSizeMiB overrides the swap partition size. Zero means "size to
	// total system RAM", the conventional hibernate-capable layout.
	SwapSizeMiB int `yaml:"swap_size_mib,omitempty"`

	// Compression is the Btrfs compression algorithm used on mounts.
	Compression string `yaml:"compression"`

	// TargetRoot is the directory the prepared hierarchy is mounted under.
	TargetRoot string `yaml:"target_root"`

	// Subvolumes is the ordered set of Btrfs subvolumes to create. The
	// first entry must be the root subvolume "@" mounted at "/".
	Subvolumes []Subvolume `yaml:"subvolumes"`
}

// Subvolume is a single Btrfs subvolume and where it gets mounted,
// relative to the target root.
type Subvolume struct {
	Name     string `yaml:"name"`               // e.g. "@home"
	Path     string `yaml:"path"`               // e.g. "/home"
	Compress bool   `yaml:"compress,omitempty"` // mount with compression
}

// Names of the built-in layout profiles.
const (
	// ProfileDefault is the full layout: 512 MiB ESP, RAM-sized swap,
	// and separate subvolumes for logs and the pacman package cache.
	ProfileDefault = "default"

	// ProfileNoSwap omits the swap partition and carries a larger ESP.
	ProfileNoSwap = "noswap"
)

// DefaultTargetRoot is where the prepared hierarchy is mounted, the
// conventional install root for pacstrap.
const DefaultTargetRoot = "/mnt"

// BuiltinProfiles returns the names of the built-in layout profiles.
func BuiltinProfiles() []string {
	return []string{ProfileDefault, ProfileNoSwap}
}

// Profile returns a built-in layout by name.
func Profile(name string) (*Layout, error) {
	switch name {
	case ProfileDefault:
		return &Layout{
			BootSizeMiB: 512,
			Swap:        true,
			Compression: "zstd",
			TargetRoot:  DefaultTargetRoot,
			Subvolumes: []Subvolume{
				{Name: "@", Path: "/", Compress: true},
				{Name: "@home", Path: "/home", Compress: true},
				{Name: "@snapshots", Path: "/.snapshots", Compress: true},
				{Name: "@log", Path: "/var/log", Compress: true},
				{Name: "@pkg", Path: "/var/cache/pacman/pkg", Compress: true},
			},
		}, nil
	case ProfileNoSwap:
		return &Layout{
			BootSizeMiB: 2048,
			Swap:        false,
			Compression: "zstd",
			TargetRoot:  DefaultTargetRoot,
			Subvolumes: []Subvolume{
				{Name: "@", Path: "/", Compress: true},
				{Name: "@home", Path: "/home", Compress: true},
				{Name: "@snapshots", Path: "/.snapshots", Compress: true},
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown profile %q (available: %s)", name, strings.Join(BuiltinProfiles(), ", "))
	}
}

// Load reads a layout from a YAML file and validates it. Compression and
// target root fall back to their defaults when omitted.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}

	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("failed to parse layout file %s: %w", path, err)
	}

	if layout.Compression == "" {
		layout.Compression = "zstd"
	}
	if layout.TargetRoot == "" {
		layout.TargetRoot = DefaultTargetRoot
	}

	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout %s: %w", path, err)
	}

	return &layout, nil
}

// supportedCompression lists the algorithms mount accepts for compress=.
var supportedCompression = map[string]bool{
	"zstd": true,
	"lzo":  true,
	"zlib": true,
}

// Validate checks the layout for errors. It validates structure only;
// whether the target disk is large enough is only known at preparation
// time against the live device.
func (l *Layout) Validate() error {
	if l.BootSizeMiB <= 0 {
		return fmt.Errorf("boot_size_mib must be > 0, got %d", l.BootSizeMiB)
	}
	if l.SwapSizeMiB < 0 {
		return fmt.Errorf("swap_size_mib must be >= 0, got %d", l.SwapSizeMiB)
	}
	if !l.Swap && l.SwapSizeMiB > 0 {
		return fmt.Errorf("swap_size_mib set but swap is disabled")
	}
	if !supportedCompression[l.Compression] {
		return fmt.Errorf("unsupported compression %q (supported: zstd, lzo, zlib)", l.Compression)
	}
	if !filepath.IsAbs(l.TargetRoot) {
		return fmt.Errorf("target_root must be an absolute path, got %q", l.TargetRoot)
	}

	if len(l.Subvolumes) == 0 {
		return fmt.Errorf("at least one subvolume is required")
	}
	if l.Subvolumes[0].Name != "@" || l.Subvolumes[0].Path != "/" {
		return fmt.Errorf("the first subvolume must be \"@\" mounted at \"/\", got %q at %q",
			l.Subvolumes[0].Name, l.Subvolumes[0].Path)
	}

	namesSeen := make(map[string]bool)
	pathsSeen := make(map[string]bool)
	for i, sv := range l.Subvolumes {
		if err := sv.Validate(); err != nil {
			return fmt.Errorf("subvolumes[%d]: %w", i, err)
		}
		if namesSeen[sv.Name] {
			return fmt.Errorf("subvolumes[%d]: duplicate subvolume name %q", i, sv.Name)
		}
		namesSeen[sv.Name] = true
		if pathsSeen[sv.Path] {
			return fmt.Errorf("subvolumes[%d]: duplicate mountpoint %q", i, sv.Path)
		}
		pathsSeen[sv.Path] = true
	}

	return nil
}

// Validate checks a single subvolume entry.
func (s *Subvolume) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !strings.HasPrefix(s.Name, "@") {
		return fmt.Errorf("name must start with '@', got %q", s.Name)
	}
	if strings.ContainsAny(s.Name, "/ \t") {
		return fmt.Errorf("name must not contain '/' or whitespace, got %q", s.Name)
	}
	if s.Path == "" {
		return fmt.Errorf("path is required")
	}
	if !strings.HasPrefix(s.Path, "/") {
		return fmt.Errorf("path must be absolute, got %q", s.Path)
	}
	return nil
}

// PartitionCount returns how many partitions this layout creates.
func (l *Layout) PartitionCount() int {
	if l.Swap {
		return 3
	}
	return 2
}

// RootIndex returns the 1-based parted index of the root partition.
// The root filesystem is always the last partition created.
func (l *Layout) RootIndex() int {
	return l.PartitionCount()
}

// SwapIndex returns the 1-based parted index of the swap partition, or
// zero when the layout has no swap.
func (l *Layout) SwapIndex() int {
	if !l.Swap {
		return 0
	}
	return 2
}
