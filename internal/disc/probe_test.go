package disc

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const drutilSample = ` Vendor   Product           Rev 
 MATSHITA DVD-R   UJ-8A8    HB13

           Type: DVD-ROM              Name: /dev/disk5
       Sessions: 1                  Tracks: 1 
   Overwritable:   00:00:00         blocks:        0 /   0.00MB /   0.00MiB
`

const drutilEmpty = ` Vendor   Product           Rev 
 MATSHITA DVD-R   UJ-8A8    HB13

           Type: No Media Inserted
`

const diskutilSample = `   Device Identifier:         disk5
   Device Node:               /dev/disk5
   Whole:                     Yes
   Part of Whole:             disk5

   Volume Name:               THE_GREAT_ESCAPE 
   Mounted:                   Yes
   Mount Point:               /Volumes/THE_GREAT_ESCAPE
`

type call struct {
	binary string
	args   []string
}

type fakeExecutor struct {
	outputs map[string]string
	errs    map[string]error
	calls   []call
}

func (f *fakeExecutor) Output(_ context.Context, binary string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, call{binary: binary, args: args})
	if err := f.errs[binary]; err != nil {
		return nil, err
	}
	return []byte(f.outputs[binary]), nil
}

func TestParseDrutilDevice(t *testing.T) {
	device, ok := ParseDrutilDevice(drutilSample)
	if !ok || device != "/dev/disk5" {
		t.Fatalf("ParseDrutilDevice = %q, %v", device, ok)
	}
	if _, ok := ParseDrutilDevice(drutilEmpty); ok {
		t.Fatal("expected no device when no DVD-ROM line is present")
	}
}

func TestParseVolumeName(t *testing.T) {
	name, ok := ParseVolumeName(diskutilSample)
	if !ok || name != "THE_GREAT_ESCAPE" {
		t.Fatalf("ParseVolumeName = %q, %v", name, ok)
	}
	if _, ok := ParseVolumeName("Device Node: /dev/disk5\n"); ok {
		t.Fatal("expected no volume name")
	}
}

func TestParseLSBLK(t *testing.T) {
	label, fstype := ParseLSBLKLabelFSType(`LABEL="MY MOVIE" FSTYPE="udf"` + "\n")
	if label != "MY MOVIE" || fstype != "udf" {
		t.Fatalf("unexpected label/fstype %q %q", label, fstype)
	}

	listing := strings.Join([]string{
		`PATH="/dev/sda" TYPE="disk" FSTYPE=""`,
		`PATH="/dev/sda1" TYPE="part" FSTYPE="ext4"`,
		`PATH="/dev/sr0" TYPE="rom" FSTYPE=""`,
		`PATH="/dev/sr1" TYPE="rom" FSTYPE="udf"`,
	}, "\n")
	device, ok := ParseLSBLKOpticalDevice(listing)
	if !ok || device != "/dev/sr1" {
		t.Fatalf("ParseLSBLKOpticalDevice = %q, %v", device, ok)
	}
	if _, ok := ParseLSBLKOpticalDevice(`PATH="/dev/sr0" TYPE="rom" FSTYPE=""`); ok {
		t.Fatal("expected empty drive to be skipped")
	}
}

func TestParseLSBLKSkipsDataCD(t *testing.T) {
	listing := strings.Join([]string{
		`PATH="/dev/sr0" TYPE="rom" FSTYPE="iso9660"`,
		`PATH="/dev/sr1" TYPE="rom" FSTYPE="UDF"`,
	}, "\n")
	device, ok := ParseLSBLKOpticalDevice(listing)
	if !ok || device != "/dev/sr1" {
		t.Fatalf("ParseLSBLKOpticalDevice = %q, %v; want /dev/sr1", device, ok)
	}
	if _, ok := ParseLSBLKOpticalDevice(`PATH="/dev/sr0" TYPE="rom" FSTYPE="iso9660"`); ok {
		t.Fatal("expected an iso9660 data CD to be skipped")
	}
}

func TestDarwinProbe(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]string{"drutil": drutilSample, "diskutil": diskutilSample}}
	probe := NewProbeWithExecutor("darwin", exec)
	ctx := context.Background()

	device, err := probe.DetectDevice(ctx)
	if err != nil || device != "/dev/disk5" {
		t.Fatalf("DetectDevice = %q, %v", device, err)
	}
	name, err := probe.VolumeName(ctx, device)
	if err != nil || name != "THE_GREAT_ESCAPE" {
		t.Fatalf("VolumeName = %q, %v", name, err)
	}
	last := exec.calls[len(exec.calls)-1]
	if last.binary != "diskutil" || strings.Join(last.args, " ") != "info /dev/disk5" {
		t.Fatalf("unexpected diskutil call %+v", last)
	}
}

func TestDarwinProbeNoDVD(t *testing.T) {
	probe := NewProbeWithExecutor("darwin", &fakeExecutor{outputs: map[string]string{"drutil": drutilEmpty}})
	if _, err := probe.DetectDevice(context.Background()); !errors.Is(err, ErrNoDrive) {
		t.Fatalf("expected ErrNoDrive, got %v", err)
	}
}

func TestLinuxProbeTrayOpen(t *testing.T) {
	exec := &fakeExecutor{}
	probe := &linuxProbe{exec: exec, driveStatus: func(string) (DriveStatus, error) {
		return DriveStatusTrayOpen, nil
	}}
	_, err := probe.VolumeName(context.Background(), "/dev/sr0")
	if !errors.Is(err, ErrNoDisc) {
		t.Fatalf("expected ErrNoDisc, got %v", err)
	}
	if len(exec.calls) != 0 {
		t.Fatal("expected lsblk not to run when tray is open")
	}
}

func TestLinuxProbeReadsLabel(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]string{"lsblk": `LABEL="SEINFELD_S1_D1" FSTYPE="udf"`}}
	probe := &linuxProbe{exec: exec, driveStatus: func(string) (DriveStatus, error) {
		return DriveStatusDiscOK, nil
	}}
	name, err := probe.VolumeName(context.Background(), "/dev/sr0")
	if err != nil || name != "SEINFELD_S1_D1" {
		t.Fatalf("VolumeName = %q, %v", name, err)
	}
}

func TestLinuxProbeCommandFailure(t *testing.T) {
	exec := &fakeExecutor{errs: map[string]error{"lsblk": errors.New("exit status 32")}}
	probe := NewProbeWithExecutor("linux", exec)
	if _, err := probe.DetectDevice(context.Background()); err == nil {
		t.Fatal("expected error when lsblk fails")
	}
}

func TestEjectorCommands(t *testing.T) {
	tests := []struct {
		goos   string
		device string
		want   string
	}{
		{"darwin", "/dev/disk5", "diskutil eject /dev/disk5"},
		{"darwin", "", "drutil eject"},
		{"linux", "/dev/sr0", "eject /dev/sr0"},
	}
	for _, tt := range tests {
		exec := &fakeExecutor{}
		if err := NewEjectorWithExecutor(tt.goos, exec).Eject(context.Background(), tt.device); err != nil {
			t.Fatalf("Eject: %v", err)
		}
		got := strings.TrimSpace(exec.calls[0].binary + " " + strings.Join(exec.calls[0].args, " "))
		if got != tt.want {
			t.Errorf("%s eject = %q, want %q", tt.goos, got, tt.want)
		}
	}
}

func TestLinuxProbeUnlabelledDisc(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]string{"lsblk": `LABEL="" FSTYPE="iso9660"`}}
	probe := &linuxProbe{exec: exec}
	_, err := probe.VolumeName(context.Background(), "/dev/sr0")
	if err == nil || errors.Is(err, ErrNoDisc) {
		t.Fatalf("expected a label error distinct from ErrNoDisc, got %v", err)
	}
}

func TestLinuxProbeNoFilesystemIsNoDisc(t *testing.T) {
	exec := &fakeExecutor{outputs: map[string]string{"lsblk": `LABEL="" FSTYPE=""`}}
	probe := &linuxProbe{exec: exec}
	if _, err := probe.VolumeName(context.Background(), "/dev/sr0"); !errors.Is(err, ErrNoDisc) {
		t.Fatalf("expected ErrNoDisc, got %v", err)
	}
}
