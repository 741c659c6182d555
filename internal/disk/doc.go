// Package disk performs the mutating block-device operations: signature
// wipe, GPT labeling and partitioning via parted, filesystem creation,
// and the Btrfs subvolume create/mount cycle.
//
// Every operation takes a cmdexec.Runner so tests can script the exact
// external command sequence and simulate tool failures. Any failure of a
// partitioning or formatting tool is returned to the caller and is fatal
// to the preparation pipeline; no operation attempts rollback, matching
// the destructive one-way nature of the tools themselves.
package disk
