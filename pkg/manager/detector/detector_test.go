package detector

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const ubuntuRelease = `PRETTY_NAME="Ubuntu 24.04.1 LTS"
NAME="Ubuntu"
VERSION_ID="24.04"
ID=ubuntu
ID_LIKE=debian
`

func TestParseOSRelease(t *testing.T) {
	info, err := ParseOSRelease(strings.NewReader(ubuntuRelease))
	if err != nil {
		t.Fatalf("ParseOSRelease() error: %v", err)
	}

	if info.Distribution != "ubuntu" {
		t.Errorf("expected Distribution 'ubuntu', got '%s'", info.Distribution)
	}
	if info.PrettyName != "Ubuntu 24.04.1 LTS" {
		t.Errorf("expected PrettyName 'Ubuntu 24.04.1 LTS', got '%s'", info.PrettyName)
	}
	if info.VersionID != "24.04" {
		t.Errorf("expected VersionID '24.04', got '%s'", info.VersionID)
	}
	if len(info.DistroFamily) != 1 || info.DistroFamily[0] != "debian" {
		t.Errorf("expected DistroFamily [debian], got %v", info.DistroFamily)
	}
	if info.Arch != runtime.GOARCH {
		t.Errorf("expected Arch '%s', got '%s'", runtime.GOARCH, info.Arch)
	}
}

func TestMatchesDistro(t *testing.T) {
	tests := []struct {
		name    string
		release string
		debian  bool
	}{
		{"ubuntu via ID_LIKE", ubuntuRelease, true},
		{"debian direct", "ID=debian\n", true},
		{"mint via family", "ID=linuxmint\nID_LIKE=\"ubuntu debian\"\n", true},
		{"fedora", "ID=fedora\n", false},
		{"arch", "ID=arch\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ParseOSRelease(strings.NewReader(tt.release))
			if err != nil {
				t.Fatalf("ParseOSRelease() error: %v", err)
			}
			if got := info.IsDebianFamily(); got != tt.debian {
				t.Errorf("IsDebianFamily() = %v, want %v", got, tt.debian)
			}
		})
	}
}

func TestPrettyNameFallback(t *testing.T) {
	info, err := ParseOSRelease(strings.NewReader("ID=debian\n"))
	if err != nil {
		t.Fatal(err)
	}
	if info.PrettyName != "debian" {
		t.Errorf("expected PrettyName to fall back to ID, got '%s'", info.PrettyName)
	}
}

func TestDetectMissingFile(t *testing.T) {
	orig := osReleasePath
	osReleasePath = filepath.Join(t.TempDir(), "missing")
	defer func() { osReleasePath = orig }()

	info, err := Detect()
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if info.Distribution != "unknown" {
		t.Errorf("expected unknown distribution, got '%s'", info.Distribution)
	}
}

func TestDetectFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "os-release")
	if err := os.WriteFile(path, []byte(ubuntuRelease), 0644); err != nil {
		t.Fatal(err)
	}

	orig := osReleasePath
	osReleasePath = path
	defer func() { osReleasePath = orig }()

	info, err := Detect()
	if err != nil {
		t.Fatalf("Detect() error: %v", err)
	}
	if !info.IsDebianFamily() {
		t.Error("expected Debian family")
	}
}
