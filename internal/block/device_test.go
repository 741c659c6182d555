package block

import (
	"context"
	"errors"
	"testing"
)

// lsblkFixture mirrors real lsblk -J -b output: one system disk with
// mounted partitions and active swap, one clean disk, plus virtual
// devices that must be filtered out.
const lsblkFixture = `{
  "blockdevices": [
    {
      "name": "sda", "size": 512110190592, "type": "disk", "tran": "sata", "rm": false,
      "mountpoints": [null],
      "children": [
        {"name": "sda1", "size": 536870912, "type": "part", "tran": null, "rm": false, "mountpoints": ["/boot"]},
        {"name": "sda2", "size": 8589934592, "type": "part", "tran": null, "rm": false, "mountpoints": ["[SWAP]"]},
        {"name": "sda3", "size": 502983385088, "type": "part", "tran": null, "rm": false, "mountpoints": ["/", "/home"]}
      ]
    },
    {
      "name": "sdb", "size": 1000204886016, "type": "disk", "tran": "usb", "rm": true,
      "mountpoints": [null],
      "children": [
        {"name": "sdb1", "size": 1000203837952, "type": "part", "tran": null, "rm": true, "mountpoints": [null]}
      ]
    },
    {"name": "loop0", "size": 718274560, "type": "disk", "tran": null, "rm": false, "mountpoints": [null]},
    {"name": "zram0", "size": 4294967296, "type": "disk", "tran": null, "rm": false, "mountpoints": ["[SWAP]"]},
    {"name": "sr0", "size": 1073741312, "type": "rom", "tran": "sata", "rm": true, "mountpoints": [null]}
  ]
}`

func TestList(t *testing.T) {
	runner := newMockRunner()
	runner.outputs["lsblk"] = lsblkFixture

	disks, err := List(context.Background(), runner)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(disks) != 2 {
		t.Fatalf("List() returned %d disks, want 2 (virtual devices and rom filtered)", len(disks))
	}
	if disks[0].Name != "sda" || disks[1].Name != "sdb" {
		t.Errorf("List() = %s, %s; want sda, sdb", disks[0].Name, disks[1].Name)
	}
	if disks[0].Path() != "/dev/sda" {
		t.Errorf("Path() = %q, want /dev/sda", disks[0].Path())
	}
	if !disks[1].Removable {
		t.Error("sdb should be removable")
	}
	if disks[1].Transport != "usb" {
		t.Errorf("sdb transport = %q, want usb", disks[1].Transport)
	}
}

func TestListErrors(t *testing.T) {
	t.Run("lsblk failure", func(t *testing.T) {
		runner := newMockRunner()
		runner.failures["lsblk"] = errors.New("exit status 1")
		if _, err := List(context.Background(), runner); err == nil {
			t.Error("List() expected error, got nil")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		runner := newMockRunner()
		runner.outputs["lsblk"] = "{not json"
		if _, err := List(context.Background(), runner); err == nil {
			t.Error("List() expected parse error, got nil")
		}
	})
}

func TestLookup(t *testing.T) {
	runner := newMockRunner()
	runner.outputs["lsblk"] = lsblkFixture

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "existing disk", path: "/dev/sdb"},
		{name: "unknown device", path: "/dev/sdc", wantErr: true},
		{name: "partition is not a disk", path: "/dev/sda1", wantErr: true},
		{name: "filtered virtual device", path: "/dev/loop0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev, err := Lookup(context.Background(), runner, tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Lookup(%s) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && dev.Path() != tt.path {
				t.Errorf("Lookup(%s) returned %s", tt.path, dev.Path())
			}
		})
	}
}

func TestMountedPartitions(t *testing.T) {
	runner := newMockRunner()
	runner.outputs["lsblk"] = lsblkFixture

	disks, err := List(context.Background(), runner)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	mounted := disks[0].MountedPartitions()
	if len(mounted) != 3 {
		t.Fatalf("sda mounted partitions = %d, want 3", len(mounted))
	}
	if !mounted[1].IsSwap() {
		t.Error("sda2 should be detected as active swap")
	}
	if mounted[0].IsSwap() {
		t.Error("sda1 should not be detected as swap")
	}
	if got := len(mounted[2].Mountpoints); got != 2 {
		t.Errorf("sda3 mountpoints = %d, want 2", got)
	}

	if got := disks[1].MountedPartitions(); len(got) != 0 {
		t.Errorf("sdb mounted partitions = %d, want 0 (null mountpoints)", len(got))
	}
}
