// Package prepare orchestrates the interactive preparation pipeline:
//
//	select disk → confirm wipe → wipe + GPT label → partition →
//	wait for device nodes → confirm filesystems → format → subvolumes →
//	mount hierarchy
//
// Selection produces an immutable Plan that is passed by value through
// every later stage; no stage consults shared mutable state. Each safety
// gate that the user declines, and each external tool failure, stops the
// pipeline with an error — there is no rollback of partial work.
package prepare
