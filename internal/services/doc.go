// Package services defines shared utilities consumed by the ripping stages
// and the external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, and title indices for
//     logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     (missing dependency, no disc, scan failure, rip failure) for reporting.
//   - ExitError, which preserves the exit status of a failed subprocess so
//     callers can report it.
//
// Use these helpers when wiring new stage logic so error handling and
// observability stay uniform across the run.
package services
