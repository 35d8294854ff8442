// Package language normalizes subtitle language codes for HandBrakeCLI.
//
// HandBrakeCLI selects subtitle tracks by ISO 639-2 code, while users tend to
// type two-letter codes or plain words ("en", "english"). Common languages are
// resolved from a builtin table; anything else is validated against the IANA
// registry bundled with golang.org/x/text.
package language
