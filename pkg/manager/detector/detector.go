// Package detector identifies the running distribution from os-release.
package detector

import (
	"bufio"
	"io"
	"os"
	"runtime"
	"strings"
)

// osReleasePath is a variable so tests can point it elsewhere.
var osReleasePath = "/etc/os-release"

// SystemInfo contains information about the detected system.
type SystemInfo struct {
	Arch         string
	Distribution string   // os-release ID (e.g., "ubuntu", "debian")
	DistroFamily []string // os-release ID_LIKE
	PrettyName   string   // Human-readable name
	VersionID    string   // Distribution version
}

// Detect reads the distribution from /etc/os-release.
// A missing file yields an "unknown" system rather than an error.
func Detect() (*SystemInfo, error) {
	f, err := os.Open(osReleasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &SystemInfo{
				Arch:         runtime.GOARCH,
				Distribution: "unknown",
				PrettyName:   "Unknown Linux",
			}, nil
		}
		return nil, err
	}
	defer f.Close()

	return ParseOSRelease(f)
}

// ParseOSRelease parses os-release KEY=value lines.
func ParseOSRelease(r io.Reader) (*SystemInfo, error) {
	info := &SystemInfo{Arch: runtime.GOARCH}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, found := strings.Cut(scanner.Text(), "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), "\"'")

		switch key {
		case "ID":
			info.Distribution = value
		case "ID_LIKE":
			info.DistroFamily = strings.Fields(value)
		case "VERSION_ID":
			info.VersionID = value
		case "PRETTY_NAME":
			info.PrettyName = value
		}
	}

	if info.PrettyName == "" {
		info.PrettyName = info.Distribution
	}
	return info, scanner.Err()
}

// MatchesDistro checks if the system matches any of the given distribution identifiers.
// It checks both the direct distribution ID and the ID_LIKE family.
func (s *SystemInfo) MatchesDistro(distros ...string) bool {
	for _, d := range distros {
		if s.Distribution == d {
			return true
		}
		for _, family := range s.DistroFamily {
			if family == d {
				return true
			}
		}
	}
	return false
}

// IsDebianFamily reports whether apt is the system's native package manager.
func (s *SystemInfo) IsDebianFamily() bool {
	return s.MatchesDistro("debian", "ubuntu")
}
