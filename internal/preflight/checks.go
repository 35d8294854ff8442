package preflight

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sys/unix"

	"juiceit/internal/config"
	"juiceit/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps evaluates the encoder binary and decryption library for
// the current platform.
func CheckSystemDeps(ctx context.Context, cfg config.Config) []deps.Status {
	return checkSystemDeps(ctx, cfg, runtime.GOOS)
}

func checkSystemDeps(ctx context.Context, cfg config.Config, goos string) []deps.Status {
	statuses := deps.CheckBinaries(ctx, []deps.Requirement{handBrakeRequirement(cfg, goos)})
	return append(statuses, deps.CheckLibrary(ctx, decryptionLibrary(goos)))
}

func handBrakeRequirement(cfg config.Config, goos string) deps.Requirement {
	remediation := "HandBrakeCLI is not installed. Install it from https://handbrake.fr/downloads2.php or your distribution packages (e.g. 'apt install handbrake-cli')."
	if goos == "darwin" {
		remediation = "HandBrakeCLI is not installed. Please install it using 'brew install handbrake'."
	}
	return deps.Requirement{
		Name:        "HandBrakeCLI",
		Command:     cfg.HandBrake.Binary,
		Description: "Required for scanning and encoding",
		Remediation: remediation,
		VersionArgs: []string{"--version"},
	}
}

func decryptionLibrary(goos string) deps.Library {
	if goos == "darwin" {
		return deps.Library{
			Name:        "libdvdcss",
			Query:       []string{"brew", "list", "libdvdcss"},
			Description: "Required to read encrypted DVDs",
			Remediation: "libdvdcss is not installed. Please install it using 'brew install libdvdcss'.",
		}
	}
	return deps.Library{
		Name:        "libdvdcss",
		Query:       []string{"ldconfig", "-p"},
		Match:       "libdvdcss",
		Description: "Required to read encrypted DVDs",
		Remediation: "libdvdcss is not installed. Install it from your distribution (e.g. 'apt install libdvd-pkg && dpkg-reconfigure libdvd-pkg').",
	}
}
