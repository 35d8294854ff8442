package preflight

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"juiceit/internal/config"
	"juiceit/internal/services"
	"juiceit/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	result := CheckDirectoryAccess("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_Missing(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed || !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("expected missing directory failure, got %#v", result)
	}
}

func TestCheckDirectoryAccess_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if result := CheckDirectoryAccess("test", path); result.Passed {
		t.Fatal("expected failure for regular file")
	}
}

func TestDecryptionLibraryQueryPerPlatform(t *testing.T) {
	darwin := decryptionLibrary("darwin")
	if strings.Join(darwin.Query, " ") != "brew list libdvdcss" {
		t.Fatalf("unexpected darwin query %v", darwin.Query)
	}
	linux := decryptionLibrary("linux")
	if linux.Query[0] != "ldconfig" || linux.Match != "libdvdcss" {
		t.Fatalf("unexpected linux query %#v", linux)
	}
	if !strings.Contains(handBrakeRequirement(config.Default(), "darwin").Remediation, "brew install handbrake") {
		t.Fatal("expected brew remediation on darwin")
	}
}

func TestVerifyReportsMissingEncoder(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	cfg := config.Default()
	cfg.Paths.OutputDir = t.TempDir()
	cfg.HandBrake.Binary = "HandBrakeCLI-not-installed"

	err := Verify(context.Background(), cfg)
	if !errors.Is(err, services.ErrMissingDependency) {
		t.Fatalf("expected missing dependency error, got %v", err)
	}
	if !strings.Contains(err.Error(), "HandBrakeCLI is not installed") {
		t.Fatalf("expected remediation in %q", err.Error())
	}
}

func TestVerifyRejectsBrokenEncoder(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries("brew"))
	binDir := filepath.Join(testsupport.BaseDir(cfg), "bin")
	testsupport.WriteStub(t, binDir, "HandBrakeCLI", "exit 1\n")
	testsupport.WriteStub(t, binDir, "ldconfig", `echo "libdvdcss.so.2 => /usr/lib/libdvdcss.so.2"`+"\n")

	err := Verify(context.Background(), cfg)
	if !errors.Is(err, services.ErrMissingDependency) {
		t.Fatalf("expected missing dependency error for failing --version, got %v", err)
	}
}

func TestVerifyPassesWithStubs(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries("HandBrakeCLI", "brew"))
	binDir := filepath.Join(testsupport.BaseDir(cfg), "bin")
	testsupport.WriteStub(t, binDir, "ldconfig", `echo "libdvdcss.so.2 => /usr/lib/libdvdcss.so.2"`+"\n")

	if err := Verify(context.Background(), cfg); err != nil {
		t.Fatalf("expected preflight to pass, got %v", err)
	}
}
