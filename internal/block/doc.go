// Package block provides read-only queries against the kernel's view of
// block devices: device inventory via lsblk, partition naming rules,
// detection of the disk backing the running root filesystem, and waiting
// for partition device nodes to appear after a table change.
//
// Nothing in this package mutates device state; mutations live in
// internal/disk. Queries are re-run at each pipeline stage rather than
// cached, so decisions are always made against the current kernel state.
package block
