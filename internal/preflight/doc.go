// Package preflight verifies that a rip can start: HandBrakeCLI and the
// libdvdcss decryption library are installed and the output directory is
// writable.
//
// Each failure carries a remediation message so the CLI can tell the user
// exactly what to install before exiting.
package preflight
