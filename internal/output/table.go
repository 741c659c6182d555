package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/archtools/groundwork/internal/block"
)

// TableFormatter formats devices as human-readable tables.
type TableFormatter struct {
	// NoHeaders omits the header row.
	NoHeaders bool
	// RootDisk is the /dev path of the disk backing the root filesystem;
	// it gets a "(system)" marker in the listing.
	RootDisk string
}

// FormatDevices formats a list of devices as a table.
func (f *TableFormatter) FormatDevices(devices []block.Device) (string, error) {
	if len(devices) == 0 {
		return "No disks found\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "NAME\tSIZE\tTRANSPORT\tREMOVABLE\tIN-USE")
	}

	for i := range devices {
		d := &devices[i]

		transport := d.Transport
		if transport == "" {
			transport = "-"
		}

		removable := "no"
		if d.Removable {
			removable = "yes"
		}

		name := d.Path()
		if f.RootDisk != "" && name == f.RootDisk {
			name += " (system)"
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			name, humanize.IBytes(d.Size), transport, removable, inUse(d))
	}

	_ = w.Flush()
	return buf.String(), nil
}

// inUse summarizes a device's mounted partitions for the listing.
func inUse(d *block.Device) string {
	mounted := d.MountedPartitions()
	if len(mounted) == 0 {
		return "-"
	}

	var points []string
	for _, p := range mounted {
		points = append(points, p.Mountpoints...)
	}
	const maxShown = 3
	if len(points) > maxShown {
		points = append(points[:maxShown], fmt.Sprintf("+%d more", len(points)-maxShown))
	}
	return strings.Join(points, ",")
}
