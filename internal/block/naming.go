package block

import (
	"path/filepath"
	"strconv"
	"strings"
)

// NormalizeDevicePath turns user input like "sda" or "/dev/sda" into an
// absolute /dev path.
func NormalizeDevicePath(input string) string {
	name := strings.TrimSpace(input)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "/") {
		return filepath.Clean(name)
	}
	return "/dev/" + name
}

// PartitionPath returns the device node for the index-th partition of a
// disk. Devices whose names end in a digit (nvme0n1, mmcblk0, loop0) use
// a "p" separator before the partition number; SCSI-style names append
// the number directly.
func PartitionPath(devicePath string, index int) string {
	name := filepath.Base(devicePath)
	if len(name) > 0 && name[len(name)-1] >= '0' && name[len(name)-1] <= '9' {
		return devicePath + "p" + strconv.Itoa(index)
	}
	return devicePath + strconv.Itoa(index)
}

// BaseDevice returns the whole-disk device name for a partition name.
// For example, "nvme0n1p2" becomes "nvme0n1" and "sda1" becomes "sda".
// A name that is already a whole disk is returned unchanged.
func BaseDevice(name string) string {
	if strings.HasPrefix(name, "nvme") || strings.HasPrefix(name, "mmcblk") {
		if idx := strings.LastIndex(name, "p"); idx > 0 {
			// Only strip a p-suffix that is followed by digits.
			if isDigits(name[idx+1:]) {
				return name[:idx]
			}
		}
		return name
	}

	i := len(name) - 1
	for ; i >= 0; i-- {
		if name[i] < '0' || name[i] > '9' {
			break
		}
	}
	return name[:i+1]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
