// Package ripping sequences a whole-disc rip.
//
// A run resolves the DVD device, takes the output-directory lock, drops a
// scan cache record that belongs to another disc, counts titles (from the
// cache when the volume label matches, otherwise with a HandBrakeCLI scan),
// and then encodes titles 1..N one at a time. The first failed title stops
// the run; files already written stay in place.
package ripping
