// Package disc identifies the inserted DVD and the drive that holds it.
//
// Probes shell out to the platform's disk utilities (drutil and diskutil on
// macOS, lsblk and the CDROM_DRIVE_STATUS ioctl on Linux). Their text output
// is interpreted by small pure parser functions so the parsing rules can be
// tested against captured samples without hardware.
package disc
