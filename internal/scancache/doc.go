// Package scancache remembers how many titles the last scanned disc had so a
// reinserted disc can skip the slow HandBrakeCLI scan.
//
// # Storage
//
// One record per output directory, stored as the hidden JSON file
// .dvd_cache.json:
//
//	{"volumeName": "THE_GREAT_ESCAPE", "numTitles": 12}
//
// A record is only reusable while its volume name equals the label of the
// disc currently in the drive (exact, case-sensitive match). Any other label
// invalidates it. Unreadable or malformed files are treated as absent.
package scancache
