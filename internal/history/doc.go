// Package history keeps a SQLite log of ripped titles per output directory.
//
// Each completed title is recorded with the run that produced it, the disc
// volume label, and the output file size and encode time. The log is
// informational only; the scan cache remains the sole input to title counting.
package history
