// Package pipeline runs one pass of the descriptor workflow: locate headers,
// scan for rows marked done, extract their metadata, write a descriptor per
// new video and deliver the new descriptors.
//
// A run is sequential and holds an advisory lock on the output directory for
// its whole duration, so two overlapping invocations cannot both decide that
// the same descriptor is new. The ledger and notifier are optional side
// channels; their failures are logged and never change the outcome of a run.
package pipeline
