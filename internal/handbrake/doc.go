// Package handbrake mediates access to HandBrakeCLI for disc scans and
// per-title encodes.
//
// It builds the encoder argument list, streams subprocess output line by
// line, parses the "scan: DVD has N title(s)" summary and the
// "Encoding: ... NN.NN %" progress frames, and maps non-zero exit statuses to
// services.ExitError. The parsers are exported so they can be tested against
// captured output without launching HandBrakeCLI.
package handbrake
