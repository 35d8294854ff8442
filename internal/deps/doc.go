// Package deps checks for the external programs and libraries juiceit drives.
package deps
