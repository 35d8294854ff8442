// Command juiceit rips every title on a DVD to its own MP4 file.
//
// The root command runs a rip with HandBrakeCLI; the cache and config
// subcommands inspect the per-directory scan cache and write a sample
// configuration file.
package main
